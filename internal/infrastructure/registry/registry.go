// Package registry 提供基于配置的静态模型目录实现
package registry

import (
	"fmt"
	"strings"

	"llm-compare-api/internal/config"
	"llm-compare-api/internal/domain/entity"
)

// StaticModelRegistry 内存模型目录，构建后只读，保持声明顺序
type StaticModelRegistry struct {
	models map[string]entity.ModelDescriptor
	order  []string
}

// NewFromConfig 从配置构建模型目录。
// 条目缺 id 或 id 重复视为配置错误。
func NewFromConfig(cfg *config.RegistryConfig) (*StaticModelRegistry, error) {
	if cfg == nil || len(cfg.Models) == 0 {
		return nil, fmt.Errorf("model registry is empty")
	}

	r := &StaticModelRegistry{
		models: make(map[string]entity.ModelDescriptor, len(cfg.Models)),
	}
	for _, m := range cfg.Models {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, fmt.Errorf("model entry without id")
		}
		if _, exists := r.models[id]; exists {
			return nil, fmt.Errorf("duplicate model id: %s", id)
		}

		providerModelID := strings.TrimSpace(m.ProviderModelID)
		if providerModelID == "" {
			providerModelID = id
		}
		displayName := strings.TrimSpace(m.DisplayName)
		if displayName == "" {
			displayName = id
		}

		r.models[id] = entity.ModelDescriptor{
			ID:                          id,
			DisplayName:                 displayName,
			Provider:                    m.Provider,
			ProviderModelID:             providerModelID,
			SupportsImageAttachments:    m.SupportsImageAttachments,
			SupportsNonImageAttachments: m.SupportsNonImageAttachments,
			SupportsAttachments:         m.SupportsAttachments,
		}
		r.order = append(r.order, id)
	}

	return r, nil
}

// Get 按 id 查找模型描述
func (r *StaticModelRegistry) Get(id string) (entity.ModelDescriptor, bool) {
	m, ok := r.models[strings.TrimSpace(id)]
	return m, ok
}

// List 按声明顺序返回全部模型描述
func (r *StaticModelRegistry) List() []entity.ModelDescriptor {
	out := make([]entity.ModelDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.models[id])
	}
	return out
}
