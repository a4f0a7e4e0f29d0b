package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llm-compare-api/internal/domain/entity"
)

var (
	fullSupport = entity.ModelDescriptor{
		ID:                          "full",
		SupportsAttachments:         true,
		SupportsImageAttachments:    true,
		SupportsNonImageAttachments: true,
	}
	imageOnly = entity.ModelDescriptor{
		ID:                       "image-only",
		SupportsAttachments:      true,
		SupportsImageAttachments: true,
	}
	noSupport = entity.ModelDescriptor{
		ID: "no-support",
	}
)

func imageAtt() entity.Attachment {
	return entity.NewAttachment("a1", "photo.png", []byte{1})
}

func textAtt() entity.Attachment {
	return entity.NewAttachment("a2", "notes.txt", []byte("n"))
}

func TestFilterCompatibleNoAttachmentsIsIdentity(t *testing.T) {
	models := []entity.ModelDescriptor{noSupport, imageOnly, fullSupport}

	out := FilterCompatible(models, nil)
	assert.Equal(t, models, out.Kept)
	assert.Empty(t, out.Dropped)
	assert.Empty(t, out.Reason)
}

func TestFilterCompatibleImageOnlyAttachments(t *testing.T) {
	models := []entity.ModelDescriptor{fullSupport, imageOnly, noSupport}

	out := FilterCompatible(models, []entity.Attachment{imageAtt()})
	assert.Equal(t, []string{"full", "image-only"}, out.KeptIDs())
	require.Len(t, out.Dropped, 1)
	assert.Equal(t, "no-support", out.Dropped[0].ID)
	assert.Equal(t, CauseNoAttachmentSupport, out.Dropped[0].Cause)
	assert.Equal(t, "no-support does not support attachments", out.Reason)
}

func TestFilterCompatibleNonImageAttachments(t *testing.T) {
	models := []entity.ModelDescriptor{fullSupport, imageOnly, noSupport}

	out := FilterCompatible(models, []entity.Attachment{textAtt()})
	assert.Equal(t, []string{"full"}, out.KeptIDs())
	require.Len(t, out.Dropped, 2)
	assert.Equal(t, CauseNonImageUnsupported, out.Dropped[0].Cause)
	assert.Equal(t, "image-only", out.Dropped[0].ID)
	assert.Equal(t, CauseNoAttachmentSupport, out.Dropped[1].Cause)
}

func TestFilterCompatibleMixedAttachmentsRequireNonImageSupport(t *testing.T) {
	// 混合附件中只要含非图片附件，仅支持图片的模型也会被过滤
	models := []entity.ModelDescriptor{imageOnly, fullSupport}

	out := FilterCompatible(models, []entity.Attachment{imageAtt(), textAtt()})
	assert.Equal(t, []string{"full"}, out.KeptIDs())
	require.Len(t, out.Dropped, 1)
	assert.Equal(t, CauseNonImageUnsupported, out.Dropped[0].Cause)
}

func TestFilterCompatibleImageUnsupported(t *testing.T) {
	textOnly := entity.ModelDescriptor{
		ID:                          "text-only",
		SupportsAttachments:         true,
		SupportsNonImageAttachments: true,
	}

	out := FilterCompatible([]entity.ModelDescriptor{textOnly}, []entity.Attachment{imageAtt()})
	assert.Empty(t, out.Kept)
	require.Len(t, out.Dropped, 1)
	assert.Equal(t, CauseImageUnsupported, out.Dropped[0].Cause)
	assert.Equal(t, "text-only does not support image attachments", out.Reason)
}

func TestFilterCompatibleAllDropped(t *testing.T) {
	out := FilterCompatible([]entity.ModelDescriptor{noSupport}, []entity.Attachment{textAtt()})
	assert.Empty(t, out.Kept)
	assert.Equal(t, "no-support does not support attachments", out.Reason)
}

func TestFilterCompatibleKeepsOrder(t *testing.T) {
	a := fullSupport
	a.ID = "a"
	b := fullSupport
	b.ID = "b"
	c := fullSupport
	c.ID = "c"

	out := FilterCompatible([]entity.ModelDescriptor{c, a, b}, []entity.Attachment{imageAtt()})
	assert.Equal(t, []string{"c", "a", "b"}, out.KeptIDs())
}

func TestDropReasonPriority(t *testing.T) {
	// 完全不支持附件的原因优先于非图片原因
	reason := dropReason([]DroppedModel{
		{ID: "m1", Cause: CauseNonImageUnsupported},
		{ID: "m2", Cause: CauseNoAttachmentSupport},
		{ID: "m3", Cause: CauseImageUnsupported},
	})
	assert.Equal(t, "m2 does not support attachments", reason)

	reason = dropReason([]DroppedModel{
		{ID: "m1", Cause: CauseImageUnsupported},
		{ID: "m2", Cause: CauseNonImageUnsupported},
	})
	assert.Equal(t, "m2 does not support non-image attachments", reason)

	assert.Empty(t, dropReason(nil))
}
