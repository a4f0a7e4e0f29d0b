package generation

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"llm-compare-api/internal/domain/entity"
	"llm-compare-api/internal/domain/service"
	"llm-compare-api/internal/infrastructure/gateway"
	"llm-compare-api/pkg/logger"
	"llm-compare-api/pkg/metrics"
	"llm-compare-api/pkg/tracer"
)

// ErrMsgInvalidCredential 凭证未通过发送前校验时的合成错误文案
const ErrMsgInvalidCredential = "Invalid API key format"

// DefaultStaggerInterval 相邻模型调用的默认错峰间隔
const DefaultStaggerInterval = time.Second

// Gateway 分发器依赖的网关端口
type Gateway interface {
	Complete(ctx context.Context, providerModelID string, messages []entity.ConversationMessage, credential string) (*gateway.Completion, error)
}

// Dispatcher 错峰并发分发器：每个兼容模型一次调用，全部完成后按
// 启动顺序返回结果。不重试、不回退、不支持中途取消。
type Dispatcher struct {
	gateway  Gateway
	interval time.Duration
}

// NewDispatcher 创建分发器。interval <= 0 时使用默认错峰间隔
func NewDispatcher(gw Gateway, interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = DefaultStaggerInterval
	}
	return &Dispatcher{gateway: gw, interval: interval}
}

// Dispatch 对每个模型发起一次调用，第 i 个模型延迟 i*interval 启动。
// 每个模型独立产出成功或失败结果，任何单个失败都不影响其余模型；
// 返回切片与入参模型一一对应（启动顺序，而非完成顺序）。
func (d *Dispatcher) Dispatch(ctx context.Context, models []entity.ModelDescriptor, messages []entity.ConversationMessage, credential string) []entity.GenerationResult {
	ctx, span := tracer.Start(ctx, "generation.Dispatch")
	defer span.End()

	// 清理只做一次，对每条外发消息统一生效
	messages = SanitizeMessages(messages)

	results := make([]entity.GenerationResult, len(models))

	var g errgroup.Group
	for i, m := range models {
		i, m := i, m
		g.Go(func() error {
			if delay := time.Duration(i) * d.interval; delay > 0 {
				time.Sleep(delay)
			}
			results[i] = d.callModel(ctx, m, messages, credential)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// callModel 单个模型的完整调用路径：发送前凭证校验 -> 一次网关调用 -> 结果映射
func (d *Dispatcher) callModel(ctx context.Context, m entity.ModelDescriptor, messages []entity.ConversationMessage, credential string) entity.GenerationResult {
	ctx = logger.WithContext(ctx, logger.ModelIDKey, m.ID)
	start := time.Now()

	if !service.WellFormedForTransmission(credential) {
		logger.Warn(ctx, "credential rejected before dispatch")
		metrics.GenerationTotal.WithLabelValues(m.ID, "error").Inc()
		return entity.FailureResult(m.ID, ErrMsgInvalidCredential, time.Since(start))
	}

	metrics.DispatchInFlight.Inc()
	completion, err := d.gateway.Complete(ctx, m.ProviderModelID, messages, credential)
	metrics.DispatchInFlight.Dec()

	elapsed := time.Since(start)
	metrics.GenerationDuration.WithLabelValues(m.ID).Observe(elapsed.Seconds())

	if err != nil {
		logger.Warn(ctx, "model call failed", "error", err.Error(), "latency_ms", elapsed.Milliseconds())
		metrics.GenerationTotal.WithLabelValues(m.ID, "error").Inc()
		return entity.FailureResult(m.ID, err.Error(), elapsed)
	}

	logger.Info(ctx, "model call completed",
		"latency_ms", elapsed.Milliseconds(),
		"tokens", completion.TotalTokens,
	)
	metrics.GenerationTotal.WithLabelValues(m.ID, "success").Inc()
	if completion.TotalTokens > 0 {
		metrics.GatewayTokensUsed.WithLabelValues(m.ID).Add(float64(completion.TotalTokens))
	}

	return entity.SuccessResult(m.ID, completion.Content, completion.TotalTokens, elapsed)
}
