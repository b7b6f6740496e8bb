package fetch

import "strings"

// Format classifies a fetched resource for routing to the right
// extractor.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatHTML    Format = "html"
	FormatUnknown Format = "unknown"
)

// DetectFormat decides the resource format from the Content-Type
// header, the leading bytes, and the URL suffix, in that order.
// Servers frequently omit or mislabel the header, so markup-like
// bodies fall back to HTML.
func DetectFormat(contentType string, body []byte, rawURL string) Format {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case ct == "application/pdf" || ct == "application/x-pdf":
		return FormatPDF
	case strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml"):
		return FormatHTML
	}
	if len(body) >= 5 && string(body[:5]) == "%PDF-" {
		return FormatPDF
	}
	lower := strings.ToLower(rawURL)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	if strings.HasSuffix(lower, ".pdf") {
		return FormatPDF
	}
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return FormatHTML
	}
	head := body
	if len(head) > 256 {
		head = head[:256]
	}
	if strings.HasPrefix(strings.TrimSpace(string(head)), "<") {
		return FormatHTML
	}
	return FormatUnknown
}
