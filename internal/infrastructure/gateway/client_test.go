package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-compare-api/internal/config"
	"llm-compare-api/internal/domain/entity"
)

const testCredential = "sk-or-v1-0123456789abcdef"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewTLSServer(handler)
	t.Cleanup(ts.Close)

	client := NewClient(&config.GatewayConfig{
		CompletionsURL: ts.URL,
		Referer:        "https://llm-compare.app",
		Title:          "LLM Compare",
	}, ts.Client())
	return client, ts
}

func userMessages(text string) []entity.ConversationMessage {
	return []entity.ConversationMessage{
		entity.TextMessage(entity.RoleSystem, "be helpful"),
		entity.TextMessage(entity.RoleUser, text),
	}
}

func TestCompleteSuccess(t *testing.T) {
	var captured struct {
		authorization string
		referer       string
		title         string
		contentType   string
		body          map[string]any
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.authorization = r.Header.Get("Authorization")
		captured.referer = r.Header.Get("HTTP-Referer")
		captured.title = r.Header.Get("X-Title")
		captured.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "the answer"}}],
			"usage": {"total_tokens": 42}
		}`))
	})

	completion, err := client.Complete(context.Background(), "openai/gpt-4o", userMessages("question"), testCredential)
	require.NoError(t, err)
	assert.Equal(t, "the answer", completion.Content)
	assert.Equal(t, 42, completion.TotalTokens)

	assert.Equal(t, "Bearer "+testCredential, captured.authorization)
	assert.Equal(t, "https://llm-compare.app", captured.referer)
	assert.Equal(t, "LLM Compare", captured.title)
	assert.Equal(t, "application/json", captured.contentType)
	assert.Equal(t, "openai/gpt-4o", captured.body["model"])

	messages, ok := captured.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "be helpful", first["content"])
}

func TestCompleteStructuredParts(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	})

	messages := []entity.ConversationMessage{
		entity.PartsMessage(entity.RoleUser, []entity.ContentPart{
			{Type: entity.PartText, Text: "look at this"},
			{Type: entity.PartImage, ImageURL: "data:image/png;base64,AA=="},
		}),
	}
	_, err := client.Complete(context.Background(), "m", messages, testCredential)
	require.NoError(t, err)

	raw := body["messages"].([]any)
	require.Len(t, raw, 1)
	parts := raw[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)

	textPart := parts[0].(map[string]any)
	assert.Equal(t, "text", textPart["type"])
	assert.Equal(t, "look at this", textPart["text"])

	imagePart := parts[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, "data:image/png;base64,AA==", imagePart["image_url"].(map[string]any)["url"])
}

func TestCompleteNoChoicesPlaceholder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [], "usage": {"total_tokens": 1}}`))
	})

	completion, err := client.Complete(context.Background(), "m", userMessages("q"), testCredential)
	require.NoError(t, err)
	assert.Equal(t, NoResponsePlaceholder, completion.Content)
}

func TestCompleteEmptyContentPlaceholder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": ""}}]}`))
	})

	completion, err := client.Complete(context.Background(), "m", userMessages("q"), testCredential)
	require.NoError(t, err)
	assert.Equal(t, NoResponsePlaceholder, completion.Content)
}

func TestCompleteAPIErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	})

	_, err := client.Complete(context.Background(), "m", userMessages("q"), testCredential)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "rate limited", apiErr.Error())
}

func TestCompleteAPIErrorWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Complete(context.Background(), "m", userMessages("q"), testCredential)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "gateway returned status 502", apiErr.Error())
}

func TestCompleteRejectsInsecureEndpoint(t *testing.T) {
	// 普通 http 端点在任何网络调用之前被拒绝
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(ts.Close)

	client := NewClient(&config.GatewayConfig{CompletionsURL: ts.URL}, ts.Client())
	_, err := client.Complete(context.Background(), "m", userMessages("q"), testCredential)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure gateway endpoint")
	assert.False(t, called)
}

func TestNewClientDefaultsHTTPClient(t *testing.T) {
	client := NewClient(&config.GatewayConfig{CompletionsURL: "https://example.com"}, nil)
	require.NotNil(t, client.httpClient)
	assert.Zero(t, client.httpClient.Timeout)
}
