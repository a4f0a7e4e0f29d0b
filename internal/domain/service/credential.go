// Package service 定义领域服务与稳定契约
package service

import (
	"regexp"
	"strings"
)

// 网关凭证格式约束（OpenRouter 风格 key）
const (
	CredentialPrefix    = "sk-or-"
	CredentialMinLength = 20
	CredentialMaxLength = 256
)

var credentialCharset = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// 凭证校验问题描述，按规则顺序输出
const (
	problemPrefix    = `API key must start with "sk-or-"`
	problemTooShort  = "API key is too short"
	problemTooLong   = "API key is too long"
	problemCharacter = "API key contains invalid characters"
)

// ValidateCredential 完整校验网关凭证格式。
// 所有规则都会被评估（不短路），每条违反的规则产生一条问题描述。
func ValidateCredential(raw string) (bool, []string) {
	key := strings.TrimSpace(raw)

	var problems []string
	if !strings.HasPrefix(key, CredentialPrefix) {
		problems = append(problems, problemPrefix)
	}
	if len(key) < CredentialMinLength {
		problems = append(problems, problemTooShort)
	}
	if len(key) > CredentialMaxLength {
		problems = append(problems, problemTooLong)
	}
	if !credentialCharset.MatchString(key) {
		problems = append(problems, problemCharacter)
	}

	return len(problems) == 0, problems
}

// WellFormedForTransmission 发送前的窄校验：前缀 + 长度区间 + 字符集。
// 不通过时调用方应以合成错误结果短路该模型的分发，不发起网络调用。
func WellFormedForTransmission(raw string) bool {
	key := strings.TrimSpace(raw)
	if !strings.HasPrefix(key, CredentialPrefix) {
		return false
	}
	if len(key) < CredentialMinLength || len(key) > CredentialMaxLength {
		return false
	}
	return credentialCharset.MatchString(key)
}
