package generation

import (
	"regexp"

	"llm-compare-api/internal/domain/entity"
)

// 发往网关前对所有文本值做的注入清理。
// 这是针对第三方 API 载荷的纵深防御，不是 HTML 渲染转义。
var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	jsSchemeRe     = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
)

// SanitizeMessages 对每条外发消息的每个文本值做一次清理，返回新序列
func SanitizeMessages(messages []entity.ConversationMessage) []entity.ConversationMessage {
	out := make([]entity.ConversationMessage, len(messages))
	for i, m := range messages {
		clean := entity.ConversationMessage{
			Role: m.Role,
			Text: sanitizeText(m.Text),
		}
		if len(m.Parts) > 0 {
			clean.Parts = make([]entity.ContentPart, len(m.Parts))
			for j, p := range m.Parts {
				clean.Parts[j] = p
				if p.Type == entity.PartText {
					clean.Parts[j].Text = sanitizeText(p.Text)
				}
			}
		}
		out[i] = clean
	}
	return out
}

// sanitizeText 移除脚本块、javascript: 协议与内联事件处理属性
func sanitizeText(s string) string {
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return s
}
