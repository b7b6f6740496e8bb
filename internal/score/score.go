// Package score ranks candidate URLs by how likely they are to point
// at a menu. Scoring is a pure additive heuristic over the URL string;
// no I/O happens here.
package score

import (
	"net/url"
	"sort"
	"strings"
)

const (
	// pdfBonus rewards direct PDF links, which are very often the menu
	// itself.
	pdfBonus = 60
	// htmlBonus is a mild reward for explicit .html pages.
	htmlBonus = 10
	// depthPenalty is subtracted per path segment beyond the first to
	// prefer shallow URLs.
	depthPenalty = 5
)

// keywordWeights is applied to the lowercased URL string; each weight
// is multiplied by the number of occurrences. Negative entries push
// down pages that share a nav bar with the menu but never contain one.
var keywordWeights = map[string]int{
	"menu":        40,
	"carte":       40,
	"speisekarte": 35,
	"speise":      15,
	"card":        15,
	"food":        15,
	"dining":      15,
	"dish":        10,
	"order":       10,
	"eat":         5,
	"lunch":       10,
	"dinner":      10,
	"drink":       5,

	"contact":   -30,
	"about":     -30,
	"blog":      -30,
	"jobs":      -40,
	"career":    -40,
	"gallery":   -20,
	"news":      -25,
	"event":     -20,
	"privacy":   -40,
	"impressum": -30,
	"login":     -40,
	"booking":   -15,
	"reserv":    -15,
}

// URL computes the heuristic relevance score for a single URL.
func URL(raw string) int {
	lower := strings.ToLower(raw)
	s := 0
	if strings.HasSuffix(trimQuery(lower), ".pdf") {
		s += pdfBonus
	} else if strings.HasSuffix(trimQuery(lower), ".html") {
		s += htmlBonus
	}
	for kw, w := range keywordWeights {
		s += w * strings.Count(lower, kw)
	}
	s -= depthPenalty * pathDepth(raw)
	return s
}

// Rank returns the URLs ordered by descending score. Ties keep their
// input order; the overall order of equal scores is not significant.
func Rank(urls []string) []string {
	out := make([]string, len(urls))
	copy(out, urls)
	sort.SliceStable(out, func(i, j int) bool {
		return URL(out[i]) > URL(out[j])
	})
	return out
}

// Top ranks and truncates to the n best candidates.
func Top(urls []string, n int) []string {
	ranked := Rank(urls)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// pathDepth counts path segments beyond the first. Unparseable URLs
// get no penalty.
func pathDepth(raw string) int {
	u, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	segs := 0
	for _, p := range strings.Split(u.Path, "/") {
		if strings.TrimSpace(p) != "" {
			segs++
		}
	}
	if segs <= 1 {
		return 0
	}
	return segs - 1
}

func trimQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}
