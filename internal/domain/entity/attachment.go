// Package entity 定义领域实体
package entity

import (
	"path/filepath"
	"strings"
)

// AttachmentCategory 附件分类，入库时由文件扩展名推导一次，之后不再变化
type AttachmentCategory string

const (
	CategoryImage    AttachmentCategory = "image"
	CategoryPDF      AttachmentCategory = "pdf"
	CategoryDocument AttachmentCategory = "document"
	CategoryVideo    AttachmentCategory = "video"
	CategoryAudio    AttachmentCategory = "audio"
	CategoryArchive  AttachmentCategory = "archive"
	CategoryData     AttachmentCategory = "data"
	CategoryFile     AttachmentCategory = "file"
)

// Attachment 一次请求内的用户附件，随请求结束释放
type Attachment struct {
	ID        string             `json:"id"`
	FileName  string             `json:"file_name"`
	Category  AttachmentCategory `json:"category"`
	Data      []byte             `json:"-"`
	SizeBytes int64              `json:"size_bytes"`
}

// NewAttachment 创建附件并推导分类
func NewAttachment(id, fileName string, data []byte) Attachment {
	return Attachment{
		ID:        id,
		FileName:  fileName,
		Category:  CategoryFromFileName(fileName),
		Data:      data,
		SizeBytes: int64(len(data)),
	}
}

// IsImage 是否为图片附件
func (a Attachment) IsImage() bool {
	return a.Category == CategoryImage
}

// Extension 返回小写、不含点的扩展名
func (a Attachment) Extension() string {
	return normalizedExt(a.FileName)
}

var categoryByExt = map[string]AttachmentCategory{
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "webp": CategoryImage, "bmp": CategoryImage, "svg": CategoryImage,

	"pdf": CategoryPDF,

	"doc": CategoryDocument, "docx": CategoryDocument, "odt": CategoryDocument, "rtf": CategoryDocument,

	"mp4": CategoryVideo, "mov": CategoryVideo, "avi": CategoryVideo,
	"mkv": CategoryVideo, "webm": CategoryVideo,

	"mp3": CategoryAudio, "wav": CategoryAudio, "ogg": CategoryAudio,
	"m4a": CategoryAudio, "flac": CategoryAudio,

	"zip": CategoryArchive, "tar": CategoryArchive, "gz": CategoryArchive,
	"rar": CategoryArchive, "7z": CategoryArchive,

	"csv": CategoryData, "json": CategoryData, "xml": CategoryData,
	"yaml": CategoryData, "yml": CategoryData, "toml": CategoryData,
}

// CategoryFromFileName 根据文件扩展名推导附件分类
func CategoryFromFileName(fileName string) AttachmentCategory {
	if c, ok := categoryByExt[normalizedExt(fileName)]; ok {
		return c
	}
	return CategoryFile
}

func normalizedExt(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}
