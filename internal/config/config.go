// Package config 提供配置加载和管理功能
package config

import (
	"time"
)

// Config 应用配置根结构
type Config struct {
	App           AppConfig           `yaml:"app" mapstructure:"app"`
	Server        ServerConfig        `yaml:"server" mapstructure:"server"`
	Gateway       GatewayConfig       `yaml:"gateway" mapstructure:"gateway"`
	Registry      RegistryConfig      `yaml:"registry" mapstructure:"registry"`
	Dispatch      DispatchConfig      `yaml:"dispatch" mapstructure:"dispatch"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Security      SecurityConfig      `yaml:"security" mapstructure:"security"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Version string `yaml:"version" mapstructure:"version"`
	Env     string `yaml:"env" mapstructure:"env"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPServerConfig `yaml:"http" mapstructure:"http"`
}

// HTTPServerConfig HTTP 服务器配置
type HTTPServerConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// GatewayConfig 模型网关配置
type GatewayConfig struct {
	// CompletionsURL 网关 completions 端点（必须为 https）
	CompletionsURL string `yaml:"completions_url" mapstructure:"completions_url"`
	// Referer 网关要求的来源标识头 (HTTP-Referer)
	Referer string `yaml:"referer" mapstructure:"referer"`
	// Title 网关要求的应用标识头 (X-Title)
	Title string `yaml:"title" mapstructure:"title"`
}

// RegistryConfig 模型目录配置
type RegistryConfig struct {
	Models []ModelConfig `yaml:"models" mapstructure:"models"`
}

// ModelConfig 单个模型描述配置
type ModelConfig struct {
	ID                          string `yaml:"id" mapstructure:"id"`
	DisplayName                 string `yaml:"display_name" mapstructure:"display_name"`
	Provider                    string `yaml:"provider" mapstructure:"provider"`
	ProviderModelID             string `yaml:"provider_model_id" mapstructure:"provider_model_id"`
	SupportsImageAttachments    bool   `yaml:"supports_image_attachments" mapstructure:"supports_image_attachments"`
	SupportsNonImageAttachments bool   `yaml:"supports_non_image_attachments" mapstructure:"supports_non_image_attachments"`
	SupportsAttachments         bool   `yaml:"supports_attachments" mapstructure:"supports_attachments"`
}

// DispatchConfig 分发调度配置
type DispatchConfig struct {
	// StaggerInterval 相邻模型调用之间的固定错峰间隔
	StaggerInterval time.Duration `yaml:"stagger_interval" mapstructure:"stagger_interval"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	Host         string        `yaml:"host" mapstructure:"host"`
	Port         int           `yaml:"port" mapstructure:"port"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// ObservabilityConfig 可观测性配置
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Tracing TracingConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// TracingConfig 追踪配置
type TracingConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Exporter   string  `yaml:"exporter" mapstructure:"exporter"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled           bool   `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond int    `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	KeyPrefix         string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
}
