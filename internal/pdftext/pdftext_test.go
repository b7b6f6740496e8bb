package pdftext

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// buildMenuPDF produces a small born-digital PDF carrying menu lines.
func buildMenuPDF(t *testing.T, lines []string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	for _, line := range lines {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf fixture: %v", err)
	}
	return buf.Bytes()
}

func TestExtract_BornDigitalPDF(t *testing.T) {
	data := buildMenuPDF(t, []string{
		"Starters",
		"Onion soup 5.00",
		"Terrine maison 7.50",
		"Main courses",
		"Steak frites 18.50",
		"Catch of the day 16.00",
		"Desserts",
		"Tarte tatin 6.50",
	})
	got, err := Extract(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "Steak frites 18.50") {
		t.Fatalf("expected text layer content, got %q", got)
	}
	if len(strings.TrimSpace(got)) < minTextChars {
		t.Fatalf("expected at least %d chars, got %d", minTextChars, len(got))
	}
}

func TestTextLayer_RejectsGarbage(t *testing.T) {
	if _, err := textLayer([]byte("not a pdf at all")); err == nil {
		t.Fatalf("expected an error for non-PDF input")
	}
}
