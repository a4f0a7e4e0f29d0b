// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"llm-compare-api/internal/domain/service"
	"llm-compare-api/internal/interfaces/http/dto"
)

// CredentialHandler 凭证校验处理器
type CredentialHandler struct{}

// NewCredentialHandler 创建凭证校验处理器
func NewCredentialHandler() *CredentialHandler {
	return &CredentialHandler{}
}

// Validate 校验 API Key 格式
// @Summary 校验 API Key 格式
// @Description 仅做本地格式校验，不访问网关，返回全部格式问题
// @Tags Credentials
// @Accept json
// @Produce json
// @Param body body dto.ValidateCredentialRequest true "凭证校验请求"
// @Success 200 {object} dto.Response[dto.ValidateCredentialResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/credentials/validate [post]
func (h *CredentialHandler) Validate(c *gin.Context) {
	var req dto.ValidateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	valid, problems := service.ValidateCredential(req.APIKey)
	dto.Success(c, dto.ValidateCredentialResponse{
		Valid:    valid,
		Problems: problems,
	})
}
