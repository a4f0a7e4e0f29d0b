package generation

import (
	"fmt"
	"strings"

	"llm-compare-api/internal/domain/entity"
)

// systemInstruction 固定的系统消息文本
const systemInstruction = "You are a helpful assistant. Provide a clear, complete answer to the user's request."

// Builder 把提示词与附件组装成提供商无关的会话消息序列
type Builder struct {
	encoder *Encoder
}

// NewBuilder 创建消息构建器
func NewBuilder(encoder *Encoder) *Builder {
	return &Builder{encoder: encoder}
}

// Build 构建会话：固定系统消息在前，其后恰好一条用户消息。
// 无附件时用户消息为纯文本；有附件时为结构化片段序列——一个文本片段
// （提示词按出现顺序逐个追加非图片附件的分隔块），其后每个图片附件
// 按出现顺序各占一个内联图片片段。
func (b *Builder) Build(promptText string, attachments []entity.Attachment) []entity.ConversationMessage {
	messages := []entity.ConversationMessage{
		entity.TextMessage(entity.RoleSystem, systemInstruction),
	}

	if len(attachments) == 0 {
		return append(messages, entity.TextMessage(entity.RoleUser, promptText))
	}

	var text strings.Builder
	text.WriteString(promptText)

	var imageParts []entity.ContentPart
	for _, att := range attachments {
		frag := b.encoder.Encode(att)
		if frag.IsImage {
			imageParts = append(imageParts, entity.ContentPart{
				Type:     entity.PartImage,
				ImageURL: frag.ImageURL,
			})
			continue
		}
		fmt.Fprintf(&text, "\n\n--- %s ---\n%s\n--- End of %s ---", att.FileName, frag.Text, att.FileName)
	}

	parts := make([]entity.ContentPart, 0, 1+len(imageParts))
	parts = append(parts, entity.ContentPart{Type: entity.PartText, Text: text.String()})
	parts = append(parts, imageParts...)

	return append(messages, entity.PartsMessage(entity.RoleUser, parts))
}
