package discover

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// linkKeywords in anchor text mark a link as menu-flavored.
var linkKeywords = []string{"menu", "carte", "food"}

// fromHomepageLinks scrapes the homepage for internal anchors whose
// text suggests a menu. External links and unresolvable hrefs are
// skipped silently.
func (d *Discoverer) fromHomepageLinks(ctx context.Context, base *url.URL) ([]string, error) {
	body, _, err := d.Client.Get(ctx, base.String())
	if err != nil {
		return nil, fmt.Errorf("homepage %s: %w", base, err)
	}
	node, err := html.Parse(bytes.NewReader(body))
	if err != nil || node == nil {
		return nil, fmt.Errorf("parse homepage %s: %w", base, err)
	}

	var found []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "a") {
			if u := menuLink(n, base); u != "" {
				found = append(found, u)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return found, nil
}

// menuLink returns the resolved absolute URL of a menu-flavored,
// same-host anchor, or "".
func menuLink(a *html.Node, base *url.URL) string {
	text := strings.ToLower(anchorText(a))
	matched := false
	for _, kw := range linkKeywords {
		if strings.Contains(text, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return ""
	}
	var href string
	for _, attr := range a.Attr {
		if strings.EqualFold(attr.Key, "href") {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if !strings.EqualFold(resolved.Hostname(), base.Hostname()) {
		return ""
	}
	return resolved.String()
}

func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
