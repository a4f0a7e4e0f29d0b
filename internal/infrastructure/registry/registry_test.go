package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-compare-api/internal/config"
)

func testRegistryConfig() *config.RegistryConfig {
	return &config.RegistryConfig{
		Models: []config.ModelConfig{
			{
				ID:                          "openai/gpt-4o",
				DisplayName:                 "GPT-4o",
				Provider:                    "OpenAI",
				SupportsAttachments:         true,
				SupportsImageAttachments:    true,
				SupportsNonImageAttachments: true,
			},
			{
				ID:       "deepseek/deepseek-chat",
				Provider: "DeepSeek",
			},
		},
	}
}

func TestNewFromConfig(t *testing.T) {
	r, err := NewFromConfig(testRegistryConfig())
	require.NoError(t, err)

	m, ok := r.Get("openai/gpt-4o")
	require.True(t, ok)
	assert.Equal(t, "GPT-4o", m.DisplayName)
	assert.True(t, m.SupportsAttachments)

	_, ok = r.Get("ghost")
	assert.False(t, ok)
}

func TestNewFromConfigDefaults(t *testing.T) {
	r, err := NewFromConfig(testRegistryConfig())
	require.NoError(t, err)

	// display_name 与 provider_model_id 缺省回退到 id
	m, ok := r.Get("deepseek/deepseek-chat")
	require.True(t, ok)
	assert.Equal(t, "deepseek/deepseek-chat", m.DisplayName)
	assert.Equal(t, "deepseek/deepseek-chat", m.ProviderModelID)
	assert.False(t, m.SupportsAttachments)
}

func TestListKeepsConfigOrder(t *testing.T) {
	r, err := NewFromConfig(testRegistryConfig())
	require.NoError(t, err)

	models := r.List()
	require.Len(t, models, 2)
	assert.Equal(t, "openai/gpt-4o", models[0].ID)
	assert.Equal(t, "deepseek/deepseek-chat", models[1].ID)
}

func TestNewFromConfigRejectsEmptyCatalog(t *testing.T) {
	_, err := NewFromConfig(&config.RegistryConfig{})
	require.Error(t, err)
}

func TestNewFromConfigRejectsMissingID(t *testing.T) {
	_, err := NewFromConfig(&config.RegistryConfig{
		Models: []config.ModelConfig{{DisplayName: "no id"}},
	})
	require.Error(t, err)
}

func TestNewFromConfigRejectsDuplicateID(t *testing.T) {
	_, err := NewFromConfig(&config.RegistryConfig{
		Models: []config.ModelConfig{{ID: "m"}, {ID: "m"}},
	})
	require.Error(t, err)
}
