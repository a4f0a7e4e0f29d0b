package generation

import (
	"fmt"
	"strings"

	"llm-compare-api/internal/domain/entity"
	"llm-compare-api/pkg/metrics"
)

// DropCause 模型被过滤的原因，按严重程度排序
type DropCause string

const (
	CauseNoAttachmentSupport DropCause = "no_attachment_support"
	CauseNonImageUnsupported DropCause = "non_image_unsupported"
	CauseImageUnsupported    DropCause = "image_unsupported"
)

// DroppedModel 被过滤掉的模型及原因
type DroppedModel struct {
	ID    string    `json:"id"`
	Cause DropCause `json:"cause"`
}

// FilterOutcome 兼容性过滤结果。Kept/Dropped 保持调用方的原始顺序；
// Reason 为面向用户的解释，按原因优先级选取（完全不支持附件 >
// 不支持非图片附件 > 不支持图片附件）。
type FilterOutcome struct {
	Kept    []entity.ModelDescriptor
	Dropped []DroppedModel
	Reason  string
}

// KeptIDs 保留模型的 id 序列
func (o FilterOutcome) KeptIDs() []string {
	ids := make([]string, 0, len(o.Kept))
	for _, m := range o.Kept {
		ids = append(ids, m.ID)
	}
	return ids
}

// FilterCompatible 按附件组合过滤模型集合。
// 无附件时为恒等操作；否则按模型能力标记逐个判定，不做任何
// 提供商特判。
func FilterCompatible(models []entity.ModelDescriptor, attachments []entity.Attachment) FilterOutcome {
	if len(attachments) == 0 {
		return FilterOutcome{Kept: models}
	}

	hasNonImage := false
	for _, att := range attachments {
		if !att.IsImage() {
			hasNonImage = true
			break
		}
	}

	var out FilterOutcome
	for _, m := range models {
		switch {
		case !m.SupportsAttachments:
			out.Dropped = append(out.Dropped, DroppedModel{ID: m.ID, Cause: CauseNoAttachmentSupport})
		case hasNonImage && !m.SupportsNonImageAttachments:
			out.Dropped = append(out.Dropped, DroppedModel{ID: m.ID, Cause: CauseNonImageUnsupported})
		case !hasNonImage && !m.SupportsImageAttachments:
			out.Dropped = append(out.Dropped, DroppedModel{ID: m.ID, Cause: CauseImageUnsupported})
		default:
			out.Kept = append(out.Kept, m)
		}
	}

	for _, d := range out.Dropped {
		metrics.ModelsDroppedTotal.WithLabelValues(string(d.Cause)).Inc()
	}
	out.Reason = dropReason(out.Dropped)
	return out
}

// dropReason 选取最高优先级的过滤原因并生成用户可读说明
func dropReason(dropped []DroppedModel) string {
	if len(dropped) == 0 {
		return ""
	}

	byCause := map[DropCause][]string{}
	for _, d := range dropped {
		byCause[d.Cause] = append(byCause[d.Cause], d.ID)
	}

	if ids := byCause[CauseNoAttachmentSupport]; len(ids) > 0 {
		return fmt.Sprintf("%s does not support attachments", strings.Join(ids, ", "))
	}
	if ids := byCause[CauseNonImageUnsupported]; len(ids) > 0 {
		return fmt.Sprintf("%s does not support non-image attachments", strings.Join(ids, ", "))
	}
	return fmt.Sprintf("%s does not support image attachments", strings.Join(byCause[CauseImageUnsupported], ", "))
}
