// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"llm-compare-api/internal/application/generation"
	"llm-compare-api/internal/domain/entity"
)

// GenerateRequest 多模型生成请求
type GenerateRequest struct {
	Prompt      string              `json:"prompt" binding:"required"`
	APIKey      string              `json:"api_key" binding:"required"`
	ModelIDs    []string            `json:"model_ids" binding:"required"`
	Attachments []AttachmentPayload `json:"attachments"`
}

// AttachmentPayload 附件载荷，Data 为 Base64 编码的文件内容
type AttachmentPayload struct {
	FileName string `json:"file_name" binding:"required"`
	Data     string `json:"data" binding:"required"`
}

// GenerateResponse 多模型生成响应
type GenerateResponse struct {
	Results    []ModelResult  `json:"results"`
	Kept       []string       `json:"kept"`
	Dropped    []DroppedModel `json:"dropped,omitempty"`
	DropReason string         `json:"drop_reason,omitempty"`
	Summary    Summary        `json:"summary"`
}

// ModelResult 单模型生成结果
type ModelResult struct {
	ModelID      string    `json:"model_id"`
	Content      string    `json:"content"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	TokenCount   int       `json:"token_count,omitempty"`
	LatencyMs    int64     `json:"latency_ms"`
}

// DroppedModel 因附件兼容性被剔除的模型
type DroppedModel struct {
	ModelID string `json:"model_id"`
	Cause   string `json:"cause"`
}

// Summary 生成结果汇总
type Summary struct {
	SuccessCount        int   `json:"success_count"`
	FailureCount        int   `json:"failure_count"`
	AvgSuccessLatencyMs int64 `json:"avg_success_latency_ms"`
}

// ModelInfo 模型目录条目
type ModelInfo struct {
	ID                          string `json:"id"`
	DisplayName                 string `json:"display_name"`
	Provider                    string `json:"provider"`
	SupportsAttachments         bool   `json:"supports_attachments"`
	SupportsImageAttachments    bool   `json:"supports_image_attachments"`
	SupportsNonImageAttachments bool   `json:"supports_non_image_attachments"`
}

// ValidateCredentialRequest 凭证校验请求
type ValidateCredentialRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

// ValidateCredentialResponse 凭证校验响应
type ValidateCredentialResponse struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// ToGenerateResponse 将应用层结果转换为响应 DTO
func ToGenerateResponse(outcome *generation.Outcome) GenerateResponse {
	results := make([]ModelResult, 0, len(outcome.Results))
	var successCount, failureCount int
	var totalSuccessLatency int64
	for _, r := range outcome.Results {
		results = append(results, ModelResult{
			ModelID:      r.ModelID,
			Content:      r.Content,
			ErrorMessage: r.ErrorMessage,
			CreatedAt:    r.CreatedAt,
			TokenCount:   r.TokenCount,
			LatencyMs:    r.LatencyMs,
		})
		if r.Succeeded() {
			successCount++
			totalSuccessLatency += r.LatencyMs
		} else {
			failureCount++
		}
	}

	var avgLatency int64
	if successCount > 0 {
		avgLatency = totalSuccessLatency / int64(successCount)
	}

	dropped := make([]DroppedModel, 0, len(outcome.Dropped))
	for _, d := range outcome.Dropped {
		dropped = append(dropped, DroppedModel{
			ModelID: d.ID,
			Cause:   string(d.Cause),
		})
	}

	return GenerateResponse{
		Results:    results,
		Kept:       outcome.Kept,
		Dropped:    dropped,
		DropReason: outcome.Reason,
		Summary: Summary{
			SuccessCount:        successCount,
			FailureCount:        failureCount,
			AvgSuccessLatencyMs: avgLatency,
		},
	}
}

// ToModelInfo 将领域模型描述符转换为目录条目
func ToModelInfo(m entity.ModelDescriptor) ModelInfo {
	return ModelInfo{
		ID:                          m.ID,
		DisplayName:                 m.DisplayName,
		Provider:                    m.Provider,
		SupportsAttachments:         m.SupportsAttachments,
		SupportsImageAttachments:    m.SupportsImageAttachments,
		SupportsNonImageAttachments: m.SupportsNonImageAttachments,
	}
}
