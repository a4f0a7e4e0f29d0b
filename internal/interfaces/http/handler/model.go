// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"llm-compare-api/internal/domain/repository"
	"llm-compare-api/internal/interfaces/http/dto"
)

// ModelHandler 模型目录处理器
type ModelHandler struct {
	registry repository.ModelRegistry
}

// NewModelHandler 创建模型目录处理器
func NewModelHandler(registry repository.ModelRegistry) *ModelHandler {
	return &ModelHandler{registry: registry}
}

// List 列出模型目录
// @Summary 列出可用模型
// @Description 返回目录中全部模型及其附件能力
// @Tags Models
// @Produce json
// @Success 200 {object} dto.Response[[]dto.ModelInfo]
// @Router /v1/models [get]
func (h *ModelHandler) List(c *gin.Context) {
	models := h.registry.List()
	infos := make([]dto.ModelInfo, 0, len(models))
	for _, m := range models {
		infos = append(infos, dto.ToModelInfo(m))
	}
	dto.Success(c, infos)
}
