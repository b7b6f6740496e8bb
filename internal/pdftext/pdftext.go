// Package pdftext turns PDF bytes into plain text. Born-digital PDFs
// go through the embedded text layer; image-based PDFs fall back to
// multi-language OCR with post-correction of common misreads.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/menuscout/menuscout/internal/extract"
)

// minTextChars is the threshold below which the embedded text layer is
// considered absent and OCR takes over.
const minTextChars = 50

// Extract returns the text content of a PDF. It fails only when both
// the text layer and OCR fail.
func Extract(ctx context.Context, data []byte) (string, error) {
	text, layerErr := textLayer(data)
	if layerErr == nil && len(strings.TrimSpace(text)) >= minTextChars {
		return extract.Clean(text), nil
	}
	if layerErr != nil {
		log.Debug().Err(layerErr).Msg("pdf text layer unavailable, trying OCR")
	} else {
		log.Debug().Int("chars", len(strings.TrimSpace(text))).Msg("pdf text layer too short, trying OCR")
	}

	engine, err := newOCREngine()
	if err != nil {
		return "", fmt.Errorf("ocr engine: %w (text layer: %v)", err, layerErr)
	}
	defer engine.Close()

	recognized, err := engine.Recognize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("ocr: %w (text layer: %v)", err, layerErr)
	}
	return extract.Clean(CorrectOCRText(recognized)), nil
}

// textLayer reads the embedded text of a born-digital PDF.
// Grounded on ledongthuc/pdf, which decodes font-encoded glyphs into
// UTF-8 without rendering.
func textLayer(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	text := buf.String()
	if !utf8.ValidString(text) {
		// replace invalid sequences so downstream processing never fails
		var sb strings.Builder
		sb.Grow(len(text))
		for _, r := range text {
			sb.WriteRune(r)
		}
		text = sb.String()
	}
	return text, nil
}
