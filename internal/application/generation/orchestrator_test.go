package generation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-compare-api/internal/domain/entity"
	"llm-compare-api/internal/infrastructure/gateway"
	apperrors "llm-compare-api/pkg/errors"
)

// fakeRegistry 固定目录的注册表替身
type fakeRegistry struct {
	models map[string]entity.ModelDescriptor
	order  []string
}

func newFakeRegistry(models ...entity.ModelDescriptor) *fakeRegistry {
	r := &fakeRegistry{models: map[string]entity.ModelDescriptor{}}
	for _, m := range models {
		r.models[m.ID] = m
		r.order = append(r.order, m.ID)
	}
	return r
}

func (r *fakeRegistry) Get(id string) (entity.ModelDescriptor, bool) {
	m, ok := r.models[id]
	return m, ok
}

func (r *fakeRegistry) List() []entity.ModelDescriptor {
	out := make([]entity.ModelDescriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.models[id])
	}
	return out
}

func newTestOrchestrator(gw Gateway, models ...entity.ModelDescriptor) *Orchestrator {
	return NewOrchestrator(
		newFakeRegistry(models...),
		NewBuilder(NewEncoder()),
		NewDispatcher(gw, time.Millisecond),
	)
}

func fullModel(id string) entity.ModelDescriptor {
	return entity.ModelDescriptor{
		ID:                          id,
		ProviderModelID:             id,
		SupportsAttachments:         true,
		SupportsImageAttachments:    true,
		SupportsNonImageAttachments: true,
	}
}

func TestGenerateResponsesNoModelsRequested(t *testing.T) {
	o := newTestOrchestrator(&fakeGateway{}, fullModel("m1"))

	_, err := o.GenerateResponses(context.Background(), &entity.GenerationRequest{
		PromptText: "q",
		Credential: testCredential,
	})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeNoModelsRequested, appErr.Code)
}

func TestGenerateResponsesUnknownModel(t *testing.T) {
	o := newTestOrchestrator(&fakeGateway{}, fullModel("m1"))

	_, err := o.GenerateResponses(context.Background(), &entity.GenerationRequest{
		PromptText:        "q",
		Credential:        testCredential,
		RequestedModelIDs: []string{"m1", "ghost"},
	})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUnknownModel, appErr.Code)
	assert.Contains(t, appErr.Message, "ghost")
}

func TestGenerateResponsesNoCompatibleModels(t *testing.T) {
	textUnfriendly := entity.ModelDescriptor{ID: "m1", ProviderModelID: "m1"}
	o := newTestOrchestrator(&fakeGateway{}, textUnfriendly)

	_, err := o.GenerateResponses(context.Background(), &entity.GenerationRequest{
		PromptText:        "q",
		Credential:        testCredential,
		RequestedModelIDs: []string{"m1"},
		Attachments:       []entity.Attachment{entity.NewAttachment("a1", "x.txt", []byte("x"))},
	})
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeNoCompatibleModels, appErr.Code)
	assert.Equal(t, "m1 does not support attachments", appErr.Detail)
}

func TestGenerateResponsesEndToEnd(t *testing.T) {
	gw := &fakeGateway{}
	imageOnlyModel := entity.ModelDescriptor{
		ID:                       "img",
		ProviderModelID:          "img",
		SupportsAttachments:      true,
		SupportsImageAttachments: true,
	}
	o := newTestOrchestrator(gw, fullModel("m1"), imageOnlyModel, fullModel("m2"))

	outcome, err := o.GenerateResponses(context.Background(), &entity.GenerationRequest{
		PromptText:        "summarize the notes",
		Credential:        testCredential,
		RequestedModelIDs: []string{"m1", "img", "m2"},
		Attachments:       []entity.Attachment{entity.NewAttachment("a1", "notes.txt", []byte("note body"))},
	})
	require.NoError(t, err)

	// img 被兼容性过滤，其余两个模型各产出一个结果
	assert.Equal(t, []string{"m1", "m2"}, outcome.Kept)
	require.Len(t, outcome.Dropped, 1)
	assert.Equal(t, "img", outcome.Dropped[0].ID)
	assert.Equal(t, "img does not support non-image attachments", outcome.Reason)

	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "m1", outcome.Results[0].ModelID)
	assert.Equal(t, "m2", outcome.Results[1].ModelID)
	for _, r := range outcome.Results {
		assert.True(t, r.Succeeded())
	}

	// 附件内容进入了外发消息
	require.Equal(t, 2, gw.callCount())
	messages := gw.calls[0].messages
	require.Len(t, messages, 2)
	assert.Equal(t, entity.RoleSystem, messages[0].Role)
	require.NotEmpty(t, messages[1].Parts)
	assert.Contains(t, messages[1].Parts[0].Text, "note body")
}

func TestGenerateResponsesDeduplicatesRequestedModels(t *testing.T) {
	// 请求的模型 id 是集合语义：重复 id 只分发一次，结果无重复
	gw := &fakeGateway{}
	o := newTestOrchestrator(gw, fullModel("m1"), fullModel("m2"))

	outcome, err := o.GenerateResponses(context.Background(), &entity.GenerationRequest{
		PromptText:        "q",
		Credential:        testCredential,
		RequestedModelIDs: []string{"m1", "m1", "m2", "m1"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2"}, outcome.Kept)
	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "m1", outcome.Results[0].ModelID)
	assert.Equal(t, "m2", outcome.Results[1].ModelID)
	assert.Equal(t, 2, gw.callCount())
}

func TestGenerateResponsesPerModelFailureDoesNotFailRequest(t *testing.T) {
	gw := &fakeGateway{}
	gw.respond = func(id string) (*gateway.Completion, error) {
		if id == "m2" {
			return nil, &gateway.APIError{StatusCode: 500, Message: "boom"}
		}
		return &gateway.Completion{Content: "fine"}, nil
	}
	o := newTestOrchestrator(gw, fullModel("m1"), fullModel("m2"))

	outcome, err := o.GenerateResponses(context.Background(), &entity.GenerationRequest{
		PromptText:        "q",
		Credential:        testCredential,
		RequestedModelIDs: []string{"m1", "m2"},
	})
	require.NoError(t, err)
	require.Len(t, outcome.Results, 2)
	assert.True(t, outcome.Results[0].Succeeded())
	assert.False(t, outcome.Results[1].Succeeded())
}
