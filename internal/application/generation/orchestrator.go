package generation

import (
	"context"
	"strings"

	"llm-compare-api/internal/domain/entity"
	"llm-compare-api/internal/domain/repository"
	"llm-compare-api/pkg/errors"
	"llm-compare-api/pkg/logger"
	"llm-compare-api/pkg/tracer"
)

// Outcome 一次多模型生成的完整产出
type Outcome struct {
	Results []entity.GenerationResult
	Kept    []string
	Dropped []DroppedModel
	Reason  string
}

// Orchestrator 多模型生成编排器：兼容性过滤 -> 消息构建 -> 错峰分发 -> 聚合
type Orchestrator struct {
	registry   repository.ModelRegistry
	builder    *Builder
	dispatcher *Dispatcher
}

// NewOrchestrator 创建编排器
func NewOrchestrator(registry repository.ModelRegistry, builder *Builder, dispatcher *Dispatcher) *Orchestrator {
	return &Orchestrator{
		registry:   registry,
		builder:    builder,
		dispatcher: dispatcher,
	}
}

// GenerateResponses 编排入口。
// 配置类错误（未选择模型、未知模型、过滤后无兼容模型）在任何分发
// 之前同步返回；单模型的传输/凭证失败只体现在对应结果里。
func (o *Orchestrator) GenerateResponses(ctx context.Context, req *entity.GenerationRequest) (*Outcome, error) {
	ctx, span := tracer.Start(ctx, "generation.GenerateResponses")
	defer span.End()

	if len(req.RequestedModelIDs) == 0 {
		return nil, errors.ErrNoModelsRequested
	}

	models, err := o.resolveModels(req.RequestedModelIDs)
	if err != nil {
		return nil, err
	}

	outcome := FilterCompatible(models, req.Attachments)
	if len(outcome.Kept) == 0 {
		return nil, errors.New(errors.CodeNoCompatibleModels,
			"no compatible models for the supplied attachments").WithDetail(outcome.Reason)
	}

	logger.Info(ctx, "dispatching generation request",
		"requested", len(req.RequestedModelIDs),
		"compatible", len(outcome.Kept),
		"attachments", len(req.Attachments),
	)

	messages := o.builder.Build(req.PromptText, req.Attachments)
	results := o.dispatcher.Dispatch(ctx, outcome.Kept, messages, req.Credential)

	return &Outcome{
		Results: Aggregate(results),
		Kept:    outcome.KeptIDs(),
		Dropped: outcome.Dropped,
		Reason:  outcome.Reason,
	}, nil
}

// resolveModels 把请求的模型 id 解析为目录中的描述。
// 请求的 id 是集合语义：重复项只保留首次出现，顺序按首次出现排列，
// 保证每个模型至多一次分发、结果无重复。
func (o *Orchestrator) resolveModels(ids []string) ([]entity.ModelDescriptor, error) {
	models := make([]entity.ModelDescriptor, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		m, ok := o.registry.Get(id)
		if !ok {
			return nil, errors.New(errors.CodeUnknownModel, "unknown model id: "+strings.TrimSpace(id))
		}
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		models = append(models, m)
	}
	return models, nil
}

// Aggregate 结果聚合。当前为保序透传：结果位置即分发启动顺序，
// 成功与失败的区分只看 ErrorMessage 的有无。保留为显式接缝，
// 便于调用方在其上派生统计。
func Aggregate(results []entity.GenerationResult) []entity.GenerationResult {
	return results
}
