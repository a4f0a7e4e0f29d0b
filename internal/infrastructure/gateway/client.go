// Package gateway 提供多模型网关 (OpenRouter 风格) 的 HTTP 客户端
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"llm-compare-api/internal/config"
	"llm-compare-api/internal/domain/entity"
)

var tracer = otel.Tracer("gateway")

// NoResponsePlaceholder 网关成功返回但没有任何补全内容时的占位文案
const NoResponsePlaceholder = "No response received"

// Completion 一次补全调用的结果
type Completion struct {
	Content     string
	TotalTokens int
}

// APIError 网关返回的非 2xx 响应。
// Message 优先取响应体中的结构化错误信息，缺失时退化为状态码描述。
type APIError struct {
	StatusCode int
	Message    string
}

// Error 实现 error 接口
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

// Client 网关客户端。凭证按调用传入，客户端本身不持有。
type Client struct {
	completionsURL string
	referer        string
	title          string
	httpClient     *http.Client
}

// NewClient 创建网关客户端。
// httpClient 为 nil 时使用不带超时的默认客户端：单次调用的时长
// 完全由传输层决定，上层不做取消与重试。
func NewClient(cfg *config.GatewayConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		completionsURL: cfg.CompletionsURL,
		referer:        cfg.Referer,
		title:          cfg.Title,
		httpClient:     httpClient,
	}
}

// --- 请求/响应线格式 ---

type apiRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type apiTextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiImagePart struct {
	Type     string      `json:"type"`
	ImageURL apiImageURL `json:"image_url"`
}

type apiImageURL struct {
	URL string `json:"url"`
}

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
	Usage   apiUsage    `json:"usage"`
}

type apiChoice struct {
	Message apiRespMessage `json:"message"`
}

type apiRespMessage struct {
	Content string `json:"content"`
}

type apiUsage struct {
	TotalTokens int `json:"total_tokens"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete 对单个模型执行一次补全调用。
// 端点必须为加密传输，否则在任何网络操作之前即返回错误。
func (c *Client) Complete(ctx context.Context, providerModelID string, messages []entity.ConversationMessage, credential string) (*Completion, error) {
	ctx, span := tracer.Start(ctx, "gateway.Complete")
	span.SetAttributes(attribute.String("gateway.model", providerModelID))
	defer span.End()

	u, err := url.Parse(c.completionsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway endpoint: %w", err)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("insecure gateway endpoint: %s scheme is not allowed", u.Scheme)
	}

	reqBody, err := json.Marshal(&apiRequest{
		Model:    providerModelID,
		Messages: toAPIMessages(messages),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+credential)
	httpReq.Header.Set("HTTP-Referer", c.referer)
	httpReq.Header.Set("X-Title", c.title)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: httpResp.StatusCode}
		var errBody apiErrorBody
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Error.Message
		}
		span.RecordError(apiErr)
		return nil, apiErr
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	content := NoResponsePlaceholder
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		content = resp.Choices[0].Message.Content
	}

	span.SetAttributes(attribute.Int("gateway.total_tokens", resp.Usage.TotalTokens))
	return &Completion{
		Content:     content,
		TotalTokens: resp.Usage.TotalTokens,
	}, nil
}

// toAPIMessages 将领域消息转换为网关线格式。
// 无结构化片段的消息序列化为纯字符串 content，否则为片段数组。
func toAPIMessages(messages []entity.ConversationMessage) []apiMessage {
	out := make([]apiMessage, 0, len(messages))
	for _, m := range messages {
		if len(m.Parts) == 0 {
			out = append(out, apiMessage{Role: string(m.Role), Content: m.Text})
			continue
		}

		parts := make([]any, 0, len(m.Parts))
		for _, p := range m.Parts {
			switch p.Type {
			case entity.PartImage:
				parts = append(parts, apiImagePart{
					Type:     "image_url",
					ImageURL: apiImageURL{URL: p.ImageURL},
				})
			default:
				parts = append(parts, apiTextPart{Type: "text", Text: p.Text})
			}
		}
		out = append(out, apiMessage{Role: string(m.Role), Content: parts})
	}
	return out
}
