// Package generation 实现多模型生成请求的编排
package generation

import (
	"encoding/base64"
	"fmt"
	"mime"
	"unicode/utf8"

	"llm-compare-api/internal/domain/entity"
)

// 文本嵌入上限与截断标记
const (
	maxInlineTextChars = 10000
	truncationMarker   = "\n... [content truncated]"
)

// 按扩展名识别的纯文本文件，分类之外的补充判定
var plainTextExts = map[string]bool{
	"txt": true, "md": true, "markdown": true, "log": true,
	"go": true, "py": true, "js": true, "ts": true, "java": true,
	"c": true, "cc": true, "cpp": true, "h": true, "rs": true, "rb": true,
	"sh": true, "sql": true, "html": true, "css": true, "ini": true, "conf": true,
}

// Fragment 单个附件编码后的载荷片段。
// IsImage 为 true 时使用 ImageURL（内联 data URI），否则使用 Text。
type Fragment struct {
	IsImage  bool
	Text     string
	ImageURL string
}

// Encoder 附件编码器：把附件转换为可放入消息的载荷片段
type Encoder struct{}

// NewEncoder 创建附件编码器
func NewEncoder() *Encoder {
	return &Encoder{}
}

// ReadableAsText 该附件是否按文本内联处理。
// 依据分类（data）或识别出的纯文本扩展名。
func (e *Encoder) ReadableAsText(att entity.Attachment) bool {
	return att.Category == entity.CategoryData || plainTextExts[att.Extension()]
}

// Encode 编码单个附件。
// 图片整体内联（不设大小上限，与既有网关行为一致）；PDF 与其它二进制
// 类型输出占位说明；文本类内联并按上限截断。任何读取问题都降级为
// 占位文本，绝不让单个附件的失败中断整个请求。
func (e *Encoder) Encode(att entity.Attachment) Fragment {
	switch {
	case att.IsImage():
		return Fragment{IsImage: true, ImageURL: e.imageDataURI(att)}

	case att.Category == entity.CategoryPDF:
		return Fragment{Text: fmt.Sprintf(
			"[PDF file: %s (%s)] Text extraction is not supported; please paste the relevant content manually.",
			att.FileName, humanSize(att.SizeBytes),
		)}

	case e.ReadableAsText(att):
		return Fragment{Text: e.inlineText(att)}

	default:
		return Fragment{Text: fmt.Sprintf(
			"[%s file: %s (%s)] The content could not be read as text.",
			att.Category, att.FileName, humanSize(att.SizeBytes),
		)}
	}
}

// inlineText 解码文本内容并截断。解码失败时降级为提示占位文本
func (e *Encoder) inlineText(att entity.Attachment) string {
	if !utf8.Valid(att.Data) {
		return fmt.Sprintf(
			"[File: %s] The content could not be read; please paste it into the prompt manually.",
			att.FileName,
		)
	}

	runes := []rune(string(att.Data))
	if len(runes) <= maxInlineTextChars {
		return string(runes)
	}
	return string(runes[:maxInlineTextChars]) + truncationMarker
}

// imageDataURI 将图片整体编码为内联 data URI
func (e *Encoder) imageDataURI(att entity.Attachment) string {
	mimeType := mime.TypeByExtension("." + att.Extension())
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(att.Data)
}

// humanSize 字节数的可读表示
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
