// Package entity 定义领域实体
package entity

// ModelDescriptor 描述一个可达模型的身份与附件能力。
// 进程启动时从配置构建一次，之后只读；能力判断以此为唯一依据。
type ModelDescriptor struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Provider        string `json:"provider"`
	ProviderModelID string `json:"provider_model_id"`

	// SupportsImageAttachments 是否接受内联图片附件
	SupportsImageAttachments bool `json:"supports_image_attachments"`
	// SupportsNonImageAttachments 是否接受非图片附件（文本嵌入等）
	SupportsNonImageAttachments bool `json:"supports_non_image_attachments"`
	// SupportsAttachments 为 false 时该模型不接受任何附件
	SupportsAttachments bool `json:"supports_attachments"`
}
