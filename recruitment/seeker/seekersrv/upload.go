package seekersrv

import (
	"context"
	"errors"
	"strings"

	"github.com/Abraxas-365/hireboard/internal/pdf"
	"github.com/Abraxas-365/hireboard/pkg/fsx"
	"github.com/Abraxas-365/hireboard/recruitment/seeker"
)

const (
	MaxUploadSize  = 10 << 20
	MaxResumePages = 10
)

// Accepted content types, the same on both ends of an upload
var (
	ResumeTypes = map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/png":       true,
		"image/webp":      true,
	}
	PictureTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
)

// PDFCheck inspects a PDF before it is uploaded
type PDFCheck func(data []byte) error

// CheckResumePages opens the PDF and requires 1 to MaxResumePages pages
func CheckResumePages(data []byte) error {
	info, err := pdf.CheckPages(data, MaxResumePages)
	if err == nil {
		return nil
	}
	if info == nil {
		return seeker.ErrInvalidPDF().WithCause(err)
	}
	return seeker.ErrTooManyPages().WithDetail("pages", info.Pages).WithCause(err)
}

func readUpload(ctx context.Context, files fsx.FileReader, path string, allowed map[string]bool) (seeker.Upload, error) {
	info, err := files.Stat(ctx, path)
	if err != nil {
		return seeker.Upload{}, seeker.ErrFileReadFailed().WithDetail("path", path).WithCause(err)
	}
	if info.Size > MaxUploadSize {
		return seeker.Upload{}, seeker.ErrFileTooLarge().WithDetail("size", info.Size)
	}
	if info.ContentType != "" && !isGeneric(info.ContentType) && !allowed[info.ContentType] {
		return seeker.Upload{}, seeker.ErrUnsupportedFileType().WithDetail("content_type", info.ContentType)
	}

	data, err := files.ReadFile(ctx, path)
	if err != nil {
		return seeker.Upload{}, seeker.ErrFileReadFailed().WithDetail("path", path).WithCause(err)
	}
	if len(data) > MaxUploadSize {
		return seeker.Upload{}, seeker.ErrFileTooLarge().WithDetail("size", len(data))
	}
	if len(data) == 0 {
		return seeker.Upload{}, seeker.ErrFileReadFailed().WithDetail("path", path).WithCause(errors.New("file is empty"))
	}

	contentType := info.ContentType
	if contentType == "" || isGeneric(contentType) {
		contentType = fsx.DetectContentType(info.Name, data)
	}
	if !allowed[contentType] {
		return seeker.Upload{}, seeker.ErrUnsupportedFileType().WithDetail("content_type", contentType)
	}

	return seeker.Upload{FileName: info.Name, ContentType: contentType, Data: data}, nil
}

func isGeneric(contentType string) bool {
	return strings.HasPrefix(contentType, "application/octet-stream") || strings.HasPrefix(contentType, "binary/")
}
