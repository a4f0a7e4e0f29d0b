// Package entity 定义领域实体
package entity

import "time"

// GenerationRequest 一次多模型生成请求，进入编排器后不再修改
type GenerationRequest struct {
	PromptText        string
	Credential        string
	RequestedModelIDs []string
	Attachments       []Attachment
}

// GenerationResult 单个模型的生成结果。
// 成功与失败互斥：Content 非空则 ErrorMessage 必为空，反之亦然。
type GenerationResult struct {
	ModelID      string    `json:"model_id"`
	Content      string    `json:"content,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	TokenCount   int       `json:"token_count,omitempty"`
	LatencyMs    int64     `json:"latency_ms"`
}

// SuccessResult 构建成功结果
func SuccessResult(modelID, content string, tokens int, latency time.Duration) GenerationResult {
	return GenerationResult{
		ModelID:    modelID,
		Content:    content,
		CreatedAt:  time.Now(),
		TokenCount: tokens,
		LatencyMs:  latency.Milliseconds(),
	}
}

// FailureResult 构建失败结果
func FailureResult(modelID, errMsg string, latency time.Duration) GenerationResult {
	return GenerationResult{
		ModelID:      modelID,
		ErrorMessage: errMsg,
		CreatedAt:    time.Now(),
		LatencyMs:    latency.Milliseconds(),
	}
}

// Succeeded 是否成功。ErrorMessage 的有无是唯一判定依据
func (r GenerationResult) Succeeded() bool {
	return r.ErrorMessage == ""
}
