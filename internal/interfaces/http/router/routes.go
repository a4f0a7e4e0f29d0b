// Package router 提供 HTTP 路由配置
package router

import (
	"llm-compare-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(
	v1 *gin.RouterGroup,
	generationHandler *handler.GenerationHandler,
	modelHandler *handler.ModelHandler,
	credentialHandler *handler.CredentialHandler,
) {
	// 多模型生成
	generations := v1.Group("/generations")
	{
		generations.POST("", generationHandler.Generate)
	}

	// 模型目录
	models := v1.Group("/models")
	{
		models.GET("", modelHandler.List)
	}

	// 凭证校验
	credentials := v1.Group("/credentials")
	{
		credentials.POST("/validate", credentialHandler.Validate)
	}
}
