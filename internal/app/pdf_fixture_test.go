package app

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// buildTestPDF renders a small born-digital menu PDF for candidate
// routing tests.
func buildTestPDF(t *testing.T) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	for _, line := range []string{
		"Starters",
		"Onion soup 5.00",
		"Main courses",
		"Steak frites 18.50",
		"Catch of the day 16.00",
		"Desserts",
		"Tarte tatin 6.50",
	} {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf fixture: %v", err)
	}
	return buf.Bytes()
}
