package pdftext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ocrLanguages are passed to tesseract; recognition covers the
// languages menus in the target markets are written in.
const ocrLanguages = "eng+fra+deu+ita+spa"

// ocrWhitelist restricts recognition to letters, digits, currency
// symbols, accented Latin letters and basic punctuation, which cuts
// down on symbol misreads in noisy scans.
const ocrWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"àâäçéèêëîïôöùûüÿæœÀÂÄÇÉÈÊËÎÏÔÖÙÛÜŸÆŒáíóúñÁÍÓÚÑßìòÌÒ" +
	"€$£.,:;!?()'\"-/& "

// ocrEngine owns the scratch directory the external tools work in.
// Close must run on every exit path or page images pile up on disk.
type ocrEngine struct {
	dir    string
	closed bool
}

func newOCREngine() (*ocrEngine, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not installed: %w", err)
	}
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not installed: %w", err)
	}
	dir, err := os.MkdirTemp("", "menuscout-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("ocr scratch dir: %w", err)
	}
	return &ocrEngine{dir: dir}, nil
}

func (e *ocrEngine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return os.RemoveAll(e.dir)
}

// Recognize rasterizes the PDF and runs tesseract over each page with
// single-block segmentation and the restricted character whitelist.
func (e *ocrEngine) Recognize(ctx context.Context, data []byte) (string, error) {
	src := filepath.Join(e.dir, "input.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	// 300 dpi is the sweet spot for tesseract on printed menus.
	raster := exec.CommandContext(ctx, "pdftoppm", "-png", "-r", "300", src, filepath.Join(e.dir, "page"))
	if out, err := raster.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(string(out)))
	}

	pages, err := filepath.Glob(filepath.Join(e.dir, "page*.png"))
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("no page images produced")
	}
	sort.Strings(pages)

	var b strings.Builder
	for _, page := range pages {
		cmd := exec.CommandContext(ctx, "tesseract", page, "stdout",
			"-l", ocrLanguages,
			"--psm", "6",
			"-c", "tessedit_char_whitelist="+ocrWhitelist,
		)
		out, err := cmd.Output()
		if err != nil {
			// one bad page should not sink the rest
			continue
		}
		b.Write(out)
		b.WriteString("\n")
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("ocr recognized no text")
	}
	return norm.NFC.String(text), nil
}
