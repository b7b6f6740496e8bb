package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/menuscout/menuscout/internal/xerrors"
)

func TestGet_SendsUserAgentAndReturnsBody(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>menu</html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "test-agent/1.0", PerRequestTimeout: 5 * time.Second}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "test-agent/1.0" {
		t.Fatalf("expected custom user agent, got %q", gotUA)
	}
	if !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if string(body) != "<html>menu</html>" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestGet_NonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 5 * time.Second}
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if !xerrors.HasKind(err, xerrors.KindFetch) {
		t.Fatalf("expected fetch error kind, got %v", err)
	}
}

func TestGet_RetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{MaxAttempts: 2, PerRequestTimeout: 5 * time.Second}
	body, _, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if string(body) != "ok" || attempts != 2 {
		t.Fatalf("expected second attempt to be served, attempts=%d body=%q", attempts, body)
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, _, err := c.Get(context.Background(), "ftp://example.com/menu.pdf"); err == nil {
		t.Fatalf("expected scheme rejection")
	}
}

func TestHead_ReportsExistence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		if r.URL.Path != "/menu" {
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 5 * time.Second}
	ok, err := c.Head(context.Background(), srv.URL+"/menu")
	if err != nil || !ok {
		t.Fatalf("expected existing path to probe true, ok=%v err=%v", ok, err)
	}
	ok, err = c.Head(context.Background(), srv.URL+"/nope")
	if err != nil {
		t.Fatalf("unexpected probe error: %v", err)
	}
	if ok {
		t.Fatalf("expected missing path to probe false")
	}
}
