// Package extract converts raw HTML into a cleaned plain-text blob
// biased toward menu-relevant content. Extraction never fails: when no
// region looks like a menu the whole visible body text is returned.
package extract

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minRegionChars is the minimum raw length for a scored region to win
// over the full-body fallback. Shorter fragments are usually nav
// leftovers.
const minRegionChars = 200

// strippedSelector removes structurally irrelevant elements before any
// scoring happens. The same exclusion list is applied to rendered DOMs.
const strippedSelector = "script, style, noscript, nav, header, footer, aside, form, iframe, svg, " +
	"[class*='cookie'], [id*='cookie'], [class*='consent'], [id*='consent'], " +
	"[class*='popup'], [id*='popup'], [class*='modal'], [class*='banner'], " +
	"[class*='advert'], [id*='advert'], [class*='sidebar'], [class*='newsletter']"

// regionSelectors is evaluated in priority order; all matches compete
// on score and the single best region wins.
var regionSelectors = []string{
	"[class*='menu']", "[id*='menu']",
	"[class*='carte']", "[id*='carte']",
	"[class*='speisekarte']",
	"[class*='food']", "[class*='dish']",
	"main", "article",
	"#content", ".content", "[class*='content']",
}

// menuKeywords covers menu vocabulary in the languages the extractor
// targets (en, fr, de, it, es).
var menuKeywords = []string{
	"starter", "appetizer", "main course", "dessert", "side",
	"entrée", "entree", "plat", "boisson", "fromage",
	"vorspeise", "hauptgericht", "nachspeise", "getränk", "beilage",
	"antipasti", "primi", "secondi", "dolci", "contorni",
	"entrante", "principal", "postre", "bebida",
	"menu", "carte", "speisekarte", "wine", "vin", "wein", "vino",
}

var priceRe = regexp.MustCompile(`[€$£]\s?\d+(?:[.,]\d{1,2})?|\d+[.,]\d{2}(?:\s?(?:€|\$|£))?`)

// priceWeight makes one price-like token worth several vocabulary hits;
// prices are the strongest menu signal a region can carry.
const priceWeight = 5

// Text extracts the most menu-relevant text from an HTML document.
// Deterministic: the same input always yields the same output.
func Text(input []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return ""
	}
	doc.Find(strippedSelector).Remove()

	best := ""
	bestScore := 0
	for _, sel := range regionSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := selectionText(s)
			if len(text) < minRegionChars {
				return
			}
			if sc := ScoreRegion(text); sc > bestScore {
				bestScore = sc
				best = text
			}
		})
	}
	if best == "" {
		best = selectionText(doc.Find("body"))
	}
	return Clean(best)
}

// ScoreRegion rates a text block by price density and menu vocabulary.
func ScoreRegion(text string) int {
	lower := strings.ToLower(text)
	s := priceWeight * len(priceRe.FindAllStringIndex(text, -1))
	for _, kw := range menuKeywords {
		s += strings.Count(lower, kw)
	}
	return s
}

// unsafeRe drops characters outside the safe set: letters, digits,
// whitespace, common punctuation and currency symbols.
var unsafeRe = regexp.MustCompile(`[^\p{L}\p{N}\s.,:;!?()'"€$£&@%/+*°\-]`)

var (
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
	lineEdges   = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
)

// Clean collapses whitespace runs and strips unsafe characters.
// Idempotent.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r", "\n")
	text = unsafeRe.ReplaceAllString(text, " ")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = lineEdges.ReplaceAllString(text, "")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// selectionText renders a selection to plain text, inserting newlines
// at block boundaries so items stay on their own lines.
func selectionText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		collectText(&b, n)
	}
	return strings.TrimSpace(b.String())
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript":
			return
		case "br", "hr":
			b.WriteString("\n")
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "div", "section", "dt", "dd":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(strings.ReplaceAll(n.Data, "\t", " "))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "div", "section", "dd":
			b.WriteString("\n")
		}
	}
}
