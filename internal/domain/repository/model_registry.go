// Package repository 定义领域仓储与跨层端口
package repository

import "llm-compare-api/internal/domain/entity"

// ModelRegistry 模型目录端口。实现必须保持条目声明顺序且构建后只读。
type ModelRegistry interface {
	// Get 按 id 查找模型描述
	Get(id string) (entity.ModelDescriptor, bool)
	// List 按声明顺序返回全部模型描述
	List() []entity.ModelDescriptor
}
