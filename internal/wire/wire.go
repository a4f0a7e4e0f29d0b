// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"llm-compare-api/internal/application/generation"
	"llm-compare-api/internal/config"
	"llm-compare-api/internal/infrastructure/gateway"
	"llm-compare-api/internal/infrastructure/persistence/redis"
	"llm-compare-api/internal/infrastructure/registry"
	"llm-compare-api/internal/interfaces/http/handler"
	"llm-compare-api/internal/interfaces/http/middleware"
	"llm-compare-api/internal/interfaces/http/router"
	"llm-compare-api/pkg/logger"
)

// App 应用依赖容器
type App struct {
	Router       *router.Router
	Registry     *registry.StaticModelRegistry
	Orchestrator *generation.Orchestrator
	RedisClient  *redis.Client
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	// 模型目录
	modelRegistry, err := registry.NewFromConfig(&cfg.Registry)
	if err != nil {
		return nil, nil, err
	}

	// 网关客户端与生成编排
	gatewayClient := gateway.NewClient(&cfg.Gateway, nil)
	encoder := generation.NewEncoder()
	builder := generation.NewBuilder(encoder)
	dispatcher := generation.NewDispatcher(gatewayClient, cfg.Dispatch.StaggerInterval)
	orchestrator := generation.NewOrchestrator(modelRegistry, builder, dispatcher)

	// Redis（可选，仅限流启用时连接）
	var redisClient *redis.Client
	var limiter middleware.RateLimiter
	if cfg.Cache.Redis.Enabled {
		redisClient, err = redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			return nil, nil, err
		}
		limiter = redis.NewRateLimiter(redisClient)
	}

	// HTTP 处理器与路由
	handlers := &router.Handlers{
		Health:     handler.NewHealthHandler(redisClient),
		Generation: handler.NewGenerationHandler(orchestrator),
		Model:      handler.NewModelHandler(modelRegistry),
		Credential: handler.NewCredentialHandler(),
	}
	r := router.New(cfg, handlers, limiter)

	cleanup := func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn(ctx, "failed to close redis client", "error", err)
			}
		}
	}

	return &App{
		Router:       r,
		Registry:     modelRegistry,
		Orchestrator: orchestrator,
		RedisClient:  redisClient,
	}, cleanup, nil
}
