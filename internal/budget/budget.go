// Package budget reduces extracted text to the structuring service's
// character budget while preferring price-dense content over naive
// truncation.
package budget

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxChars is the structuring input budget. Roughly 4 chars per
// token keeps an 18k-char prompt well inside common model contexts.
const DefaultMaxChars = 18000

// priceRe matches currency-marked amounts and bare decimal prices like
// "12,50" or "12.50".
var priceRe = regexp.MustCompile(`[€$£]\s?\d+(?:[.,]\d{1,2})?|\d+[.,]\d{2}(?:\s?(?:€|\$|£))?`)

// Reduce returns text unchanged when it fits within maxChars.
// Otherwise it splits the text into paragraph-like segments, scores
// each by its count of price-like patterns, and reassembles the
// highest-scoring segments in their original order until the budget is
// filled.
func Reduce(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if len(text) <= maxChars {
		return text
	}
	segs := segment(text)
	type scored struct {
		index int
		score int
	}
	order := make([]scored, len(segs))
	for i, s := range segs {
		order[i] = scored{index: i, score: PriceCount(s)}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].score > order[j].score
	})

	keep := make(map[int]bool, len(segs))
	total := 0
	for _, sc := range order {
		n := len(segs[sc.index]) + 2
		if total+n > maxChars {
			continue
		}
		keep[sc.index] = true
		total += n
	}

	var b strings.Builder
	for i, s := range segs {
		if !keep[i] {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(s)
	}
	out := b.String()
	if out == "" {
		// degenerate input with one enormous segment: hard truncate
		return text[:maxChars]
	}
	return out
}

// PriceCount counts price-like substrings in s.
func PriceCount(s string) int {
	return len(priceRe.FindAllStringIndex(s, -1))
}

// segment splits on blank lines; single huge blocks are re-chunked at
// line boundaries so scoring has something to choose between.
func segment(text string) []string {
	parts := regexp.MustCompile(`\n\s*\n`).Split(text, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) <= 1200 {
			out = append(out, p)
			continue
		}
		out = append(out, chunkLines(p, 1200)...)
	}
	return out
}

func chunkLines(block string, target int) []string {
	lines := strings.Split(block, "\n")
	var out []string
	var cur strings.Builder
	for _, ln := range lines {
		if cur.Len() > 0 && cur.Len()+len(ln)+1 > target {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n")
		}
		cur.WriteString(ln)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
