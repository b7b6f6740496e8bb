package discover

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
)

// defaultMaxSitemapDepth bounds sitemap-index recursion so a cyclic or
// hostile index cannot keep discovery busy forever.
const defaultMaxSitemapDepth = 5

type sitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	Sitemaps []struct {
		Loc string `xml:"loc"`
	} `xml:"sitemap"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// fromSitemaps finds sitemap URLs via robots.txt (falling back to the
// conventional /sitemap.xml locations) and collects menu-flavored page
// entries from them.
func (d *Discoverer) fromSitemaps(ctx context.Context, base *url.URL) ([]string, error) {
	sitemaps := d.sitemapLocations(ctx, base)
	if len(sitemaps) == 0 {
		return nil, nil
	}
	depth := d.MaxSitemapDepth
	if depth <= 0 {
		depth = defaultMaxSitemapDepth
	}
	visited := map[string]bool{}
	var found []string
	var firstErr error
	for _, sm := range sitemaps {
		urls, err := d.walkSitemap(ctx, sm, depth, visited)
		found = append(found, urls...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return found, firstErr
}

// sitemapLocations reads case-insensitive "sitemap:" directives from
// robots.txt; without any it probes the two conventional paths.
func (d *Discoverer) sitemapLocations(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	var out []string
	if body, _, err := d.Client.Get(ctx, robotsURL); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(body)))
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if len(line) < 8 || !strings.EqualFold(line[:8], "sitemap:") {
				continue
			}
			loc := strings.TrimSpace(line[8:])
			if loc != "" {
				out = append(out, loc)
			}
		}
	}
	if len(out) == 0 {
		out = []string{
			base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String(),
			base.ResolveReference(&url.URL{Path: "/sitemap_index.xml"}).String(),
		}
	}
	return out
}

// walkSitemap fetches one sitemap document, recursing into nested
// sitemaps when the document is an index. Only <url><loc> entries whose
// text mentions a menu are kept, to bound volume.
func (d *Discoverer) walkSitemap(ctx context.Context, sitemapURL string, depth int, visited map[string]bool) ([]string, error) {
	if depth <= 0 || visited[sitemapURL] {
		return nil, nil
	}
	visited[sitemapURL] = true

	body, _, err := d.Client.Get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("sitemap %s: %w", sitemapURL, err)
	}

	var index sitemapIndex
	if err := xml.Unmarshal(body, &index); err == nil && len(index.Sitemaps) > 0 {
		var found []string
		var firstErr error
		for _, child := range index.Sitemaps {
			loc := strings.TrimSpace(child.Loc)
			if loc == "" {
				continue
			}
			urls, err := d.walkSitemap(ctx, loc, depth-1, visited)
			found = append(found, urls...)
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return found, firstErr
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("parse sitemap %s: %w", sitemapURL, err)
	}
	var found []string
	for _, entry := range set.URLs {
		loc := strings.TrimSpace(entry.Loc)
		if loc == "" {
			continue
		}
		lower := strings.ToLower(loc)
		if strings.Contains(lower, "menu") || strings.Contains(lower, "carte") {
			found = append(found, loc)
		}
	}
	return found, nil
}
