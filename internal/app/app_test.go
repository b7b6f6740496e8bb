package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/menuscout/menuscout/internal/xerrors"
)

const validMenuJSON = `{"starters":[{"name":"Onion soup","price":"5.00€"}],` +
	`"main_courses":[{"name":"Steak frites","price":"18.50€"},{"name":"Catch of the day","price":"16.00€"}],` +
	`"desserts":[{"name":"Tarte tatin","price":"6.50€"}],"drinks":[]}`

// fakeStructuring answers the Ollama wire format. It returns a valid
// menu only when the extracted text carries real menu content, which
// keeps the orchestrator honest about which page it extracted.
func fakeStructuring(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode structuring request: %v", err)
		}
		content := `{"starters":[],"main_courses":[],"desserts":[],"drinks":[]}`
		for _, m := range req.Messages {
			if strings.Contains(m.Content, "Steak frites") {
				content = validMenuJSON
			}
		}
		json.NewEncoder(w).Encode(map[string]any{"message": map[string]any{"content": content}})
	}))
}

const menuHTML = `<html><body><div class="menu">
  <h2>Starters</h2><p>Onion soup 5.00€ with gruyère croutons baked golden brown</p>
  <h2>Main courses</h2><p>Steak frites 18.50€ grass-fed beef with hand-cut fries</p>
  <p>Catch of the day 16.00€ ask your server about the fish</p>
  <h2>Desserts</h2><p>Tarte tatin 6.50€ with crème fraîche on the side</p>
</div></body></html>`

func testConfig(llmURL string) Config {
	return Config{
		LLMBaseURL:    llmURL,
		LLMModel:      "test-model",
		DisableRender: true,
		FetchTimeout:  5 * time.Second,
	}
}

func TestExtractMenu_DirectHTML(t *testing.T) {
	llm := fakeStructuring(t)
	defer llm.Close()

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, menuHTML)
			return
		}
		http.NotFound(w, r)
	}))
	defer site.Close()

	res, err := New(testConfig(llm.URL)).ExtractMenu(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceHTML {
		t.Fatalf("expected html source, got %s", res.Source)
	}
	if len(res.Menu.MainCourses) != 2 {
		t.Fatalf("unexpected menu: %+v", res.Menu)
	}
}

func TestExtractMenu_DiscoveryFindsLinkedMenuPage(t *testing.T) {
	llm := fakeStructuring(t)
	defer llm.Close()

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><p>Welcome to our restaurant.</p>
			  <a href="/food-and-drink">Our Menu</a></body></html>`)
		case "/food-and-drink":
			fmt.Fprint(w, menuHTML)
		default:
			http.NotFound(w, r)
		}
	}))
	defer site.Close()

	res, err := New(testConfig(llm.URL)).ExtractMenu(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SourceURL != site.URL+"/food-and-drink" {
		t.Fatalf("expected the linked menu page to win, got %q", res.SourceURL)
	}
}

func TestExtractMenu_RenderedTextWins(t *testing.T) {
	llm := fakeStructuring(t)
	defer llm.Close()

	// The static site serves nothing useful anywhere.
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><body><div id="app"></div></body></html>`)
			return
		}
		http.NotFound(w, r)
	}))
	defer site.Close()

	rendered := strings.Repeat("Filler line for minimum length.\n", 5) +
		"Steak frites 18.50€\nCatch of the day 16.00€\n"
	a := New(testConfig(llm.URL)).WithRenderer(rendererFunc(func(ctx context.Context, url string) (string, error) {
		return rendered, nil
	}))

	res, err := a.ExtractMenu(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceJS {
		t.Fatalf("expected js source, got %s", res.Source)
	}
}

func TestExtractMenu_RendererFailureDegrades(t *testing.T) {
	llm := fakeStructuring(t)
	defer llm.Close()

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, menuHTML)
			return
		}
		http.NotFound(w, r)
	}))
	defer site.Close()

	a := New(testConfig(llm.URL)).WithRenderer(rendererFunc(func(ctx context.Context, url string) (string, error) {
		return "", fmt.Errorf("browser launch failed")
	}))

	res, err := a.ExtractMenu(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("expected static fallback to succeed, got %v", err)
	}
	if res.Source != SourceHTML {
		t.Fatalf("expected html source after renderer failure, got %s", res.Source)
	}
}

func TestExtractMenu_ExhaustionIsNotFound(t *testing.T) {
	llm := fakeStructuring(t)
	defer llm.Close()

	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			fmt.Fprint(w, `<html><body><p>Closed for renovation. No menu online.</p></body></html>`)
			return
		}
		http.NotFound(w, r)
	}))
	defer site.Close()

	_, err := New(testConfig(llm.URL)).ExtractMenu(context.Background(), site.URL)
	if err == nil {
		t.Fatalf("expected not_found when no strategy succeeds")
	}
	if !xerrors.HasKind(err, xerrors.KindNotFound) {
		t.Fatalf("expected not_found kind, got %v", err)
	}
}

func TestExtractMenu_PDFCandidate(t *testing.T) {
	llm := fakeStructuring(t)
	defer llm.Close()

	pdfBody := buildTestPDF(t)
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="/menu.pdf">Menu</a></body></html>`)
		case "/menu.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write(pdfBody)
		default:
			http.NotFound(w, r)
		}
	}))
	defer site.Close()

	res, err := New(testConfig(llm.URL)).ExtractMenu(context.Background(), site.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourcePDF {
		t.Fatalf("expected pdf source, got %s", res.Source)
	}
	if !strings.HasSuffix(res.SourceURL, "/menu.pdf") {
		t.Fatalf("expected pdf URL as provenance, got %q", res.SourceURL)
	}
}

// rendererFunc adapts a function to the PageRenderer interface.
type rendererFunc func(ctx context.Context, url string) (string, error)

func (f rendererFunc) RenderAndExtract(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}
