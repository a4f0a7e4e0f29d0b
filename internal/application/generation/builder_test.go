package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-compare-api/internal/domain/entity"
)

func newTestBuilder() *Builder {
	return NewBuilder(NewEncoder())
}

func TestBuildWithoutAttachments(t *testing.T) {
	b := newTestBuilder()

	messages := b.Build("hello", nil)
	require.Len(t, messages, 2)

	assert.Equal(t, entity.RoleSystem, messages[0].Role)
	assert.Equal(t, systemInstruction, messages[0].Text)
	assert.Empty(t, messages[0].Parts)

	assert.Equal(t, entity.RoleUser, messages[1].Role)
	assert.Equal(t, "hello", messages[1].Text)
	assert.Empty(t, messages[1].Parts)
}

func TestBuildWithTextAttachments(t *testing.T) {
	b := newTestBuilder()
	attachments := []entity.Attachment{
		entity.NewAttachment("a1", "first.txt", []byte("alpha")),
		entity.NewAttachment("a2", "second.txt", []byte("beta")),
	}

	messages := b.Build("question", attachments)
	require.Len(t, messages, 2)

	user := messages[1]
	require.Len(t, user.Parts, 1)
	require.Equal(t, entity.PartText, user.Parts[0].Type)

	text := user.Parts[0].Text
	assert.True(t, strings.HasPrefix(text, "question"))
	assert.Contains(t, text, "--- first.txt ---\nalpha\n--- End of first.txt ---")
	assert.Contains(t, text, "--- second.txt ---\nbeta\n--- End of second.txt ---")
	// 附件按出现顺序追加
	assert.Less(t, strings.Index(text, "first.txt"), strings.Index(text, "second.txt"))
}

func TestBuildWithImageAttachments(t *testing.T) {
	b := newTestBuilder()
	attachments := []entity.Attachment{
		entity.NewAttachment("a1", "one.png", []byte{1}),
		entity.NewAttachment("a2", "two.png", []byte{2}),
	}

	messages := b.Build("describe", attachments)
	require.Len(t, messages, 2)

	user := messages[1]
	require.Len(t, user.Parts, 3)
	assert.Equal(t, entity.PartText, user.Parts[0].Type)
	assert.Equal(t, "describe", user.Parts[0].Text)
	assert.Equal(t, entity.PartImage, user.Parts[1].Type)
	assert.Equal(t, entity.PartImage, user.Parts[2].Type)
	// 图片按出现顺序排在文本片段之后
	assert.NotEqual(t, user.Parts[1].ImageURL, user.Parts[2].ImageURL)
}

func TestBuildMixedAttachmentsKeepsOrder(t *testing.T) {
	b := newTestBuilder()
	attachments := []entity.Attachment{
		entity.NewAttachment("a1", "img1.png", []byte{1}),
		entity.NewAttachment("a2", "notes.txt", []byte("note body")),
		entity.NewAttachment("a3", "img2.png", []byte{2}),
	}

	messages := b.Build("compare", attachments)
	user := messages[1]

	// 一个文本片段 + 两个图片片段
	require.Len(t, user.Parts, 3)
	assert.Equal(t, entity.PartText, user.Parts[0].Type)
	assert.Contains(t, user.Parts[0].Text, "notes.txt")
	assert.Equal(t, entity.PartImage, user.Parts[1].Type)
	assert.Equal(t, entity.PartImage, user.Parts[2].Type)
}

func TestBuildSystemMessageAlwaysFirst(t *testing.T) {
	b := newTestBuilder()

	for _, atts := range [][]entity.Attachment{
		nil,
		{entity.NewAttachment("a1", "x.txt", []byte("x"))},
		{entity.NewAttachment("a1", "x.png", []byte{1})},
	} {
		messages := b.Build("p", atts)
		require.NotEmpty(t, messages)
		assert.Equal(t, entity.RoleSystem, messages[0].Role)
	}
}
