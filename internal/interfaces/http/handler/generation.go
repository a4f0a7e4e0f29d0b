// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"encoding/base64"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"llm-compare-api/internal/application/generation"
	"llm-compare-api/internal/domain/entity"
	"llm-compare-api/internal/interfaces/http/dto"
	"llm-compare-api/pkg/errors"
	"llm-compare-api/pkg/logger"
)

// GenerationService 生成编排服务接口
type GenerationService interface {
	GenerateResponses(ctx context.Context, req *entity.GenerationRequest) (*generation.Outcome, error)
}

// GenerationHandler 多模型生成处理器
type GenerationHandler struct {
	svc GenerationService
}

// NewGenerationHandler 创建多模型生成处理器
func NewGenerationHandler(svc GenerationService) *GenerationHandler {
	return &GenerationHandler{svc: svc}
}

// Generate 多模型并发生成
// @Summary 向多个模型分发同一请求
// @Description 对请求的模型做附件兼容性过滤，错峰并发调用网关，按启动顺序返回每个模型的结果
// @Tags Generations
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/generations [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	attachments, err := decodeAttachments(req.Attachments)
	if err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	outcome, err := h.svc.GenerateResponses(ctx, &entity.GenerationRequest{
		PromptText:        req.Prompt,
		Credential:        req.APIKey,
		RequestedModelIDs: req.ModelIDs,
		Attachments:       attachments,
	})
	if err != nil {
		writeAppError(c, err)
		return
	}

	logger.Info(ctx, "generation request completed",
		"results", len(outcome.Results),
		"dropped", len(outcome.Dropped),
	)
	dto.Success(c, dto.ToGenerateResponse(outcome))
}

// decodeAttachments 解码 Base64 附件载荷为领域附件
func decodeAttachments(payloads []dto.AttachmentPayload) ([]entity.Attachment, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	attachments := make([]entity.Attachment, 0, len(payloads))
	for _, p := range payloads {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidParam,
				"attachment data is not valid base64: "+p.FileName)
		}
		attachments = append(attachments, entity.NewAttachment(uuid.NewString(), p.FileName, data))
	}
	return attachments, nil
}

// writeAppError 把应用错误映射为 HTTP 错误响应
func writeAppError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	dto.ErrorWithDetail(c, appErr.HTTPStatus, appErr.Message, &dto.ErrorDetail{
		ErrorCode: string(appErr.Code),
		Details:   appErr.Detail,
	})
}
