package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"lexfacts-backend/ocr"

	"github.com/ledongthuc/pdf"
)

// minNativeTextLength is the minimum amount of text the native PDF text
// layer must yield before the OCR fallback is considered
const minNativeTextLength = 100

// TextExtractor turns raw PDF bytes into plain text. Native text-layer
// extraction is tried first; when it yields too little text and an OCR
// client is configured, the whole document is re-read through OCR.
// Failures never propagate: they degrade to empty text and the caller
// treats empty text as a terminal condition for the document.
type TextExtractor struct {
	native func(data []byte) (string, error)
	ocr    ocr.Client
}

// NewTextExtractor creates a text extractor. ocrClient may be nil, in
// which case the OCR fallback is disabled.
func NewTextExtractor(ocrClient ocr.Client) *TextExtractor {
	return &TextExtractor{
		native: extractNativeText,
		ocr:    ocrClient,
	}
}

// Extract returns the plain text of a PDF, or "" when the document is
// empty or unreadable
func (x *TextExtractor) Extract(ctx context.Context, data []byte) string {
	texte, err := x.native(data)
	if err != nil {
		log.Printf("Warning: native PDF extraction failed: %v", err)
		texte = ""
	}

	if len(strings.TrimSpace(texte)) >= minNativeTextLength {
		return texte
	}

	// Below the threshold the native output is unusable; only OCR can
	// still save the document.
	if x.ocr == nil {
		return ""
	}

	ocrText, err := x.ocr.DetectDocumentText(ctx, data)
	if err != nil {
		log.Printf("Warning: OCR fallback failed: %v", err)
		return ""
	}
	return ocrText
}

// extractNativeText reads the PDF text layer page by page. The pdf parser
// panics on some malformed files, so the whole walk runs under recover.
func extractNativeText(data []byte) (texte string, err error) {
	defer func() {
		if r := recover(); r != nil {
			texte = ""
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the rest of the document
			log.Printf("Warning: failed to read page %d: %v", i, err)
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n\n")
	}

	return builder.String(), nil
}
