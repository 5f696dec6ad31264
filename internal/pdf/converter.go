package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

// Info describes an opened PDF
type Info struct {
	Pages    int
	Title    string
	Author   string
	Producer string
}

// Inspect opens a PDF from memory and reads its page count and metadata
func Inspect(pdfData []byte) (*Info, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	meta := doc.Metadata()
	return &Info{
		Pages:    doc.NumPage(),
		Title:    meta["title"],
		Author:   meta["author"],
		Producer: meta["producer"],
	}, nil
}

// CheckPages opens the PDF and verifies it has between 1 and maxPages pages
func CheckPages(pdfData []byte, maxPages int) (*Info, error) {
	info, err := Inspect(pdfData)
	if err != nil {
		return nil, err
	}
	if info.Pages < 1 {
		return info, fmt.Errorf("PDF has no pages")
	}
	if maxPages > 0 && info.Pages > maxPages {
		return info, fmt.Errorf("PDF has %d pages, at most %d allowed", info.Pages, maxPages)
	}
	return info, nil
}

// RenderPages renders up to maxPages pages as JPEG images
func RenderPages(pdfData []byte, maxPages int) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if maxPages > 0 && pageCount > maxPages {
		pageCount = maxPages
	}
	images := make([][]byte, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("failed to render page %d: %w", i, err)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i, err)
		}
		images = append(images, buf.Bytes())
	}
	return images, nil
}

// ExtractText returns the text layer of every page, pages separated by a blank line
func ExtractText(pdfData []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return strings.Join(pages, "\n\n"), nil
}

// ToJPEG re-encodes a decodable image as JPEG
func ToJPEG(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// DetectImageFormat detects if data is a decodable image (jpeg or png)
func DetectImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}
