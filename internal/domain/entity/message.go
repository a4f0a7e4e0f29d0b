// Package entity 定义领域实体
package entity

// Role 会话消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// PartType 结构化内容片段类型
type PartType string

const (
	PartText  PartType = "text"
	PartImage PartType = "image_url"
)

// ContentPart 会话消息中的一个结构化内容片段。
// Type 为 PartText 时使用 Text，为 PartImage 时使用 ImageURL（内联 data URI）。
type ContentPart struct {
	Type     PartType
	Text     string
	ImageURL string
}

// ConversationMessage 一条会话消息，构建后不再修改。
// Parts 为空时内容为纯文本 Text；非空时为有序结构化片段序列。
type ConversationMessage struct {
	Role  Role
	Text  string
	Parts []ContentPart
}

// TextMessage 创建纯文本消息
func TextMessage(role Role, text string) ConversationMessage {
	return ConversationMessage{Role: role, Text: text}
}

// PartsMessage 创建结构化内容消息
func PartsMessage(role Role, parts []ContentPart) ConversationMessage {
	return ConversationMessage{Role: role, Parts: parts}
}
