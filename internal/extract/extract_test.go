package extract

import (
	"strings"
	"testing"
)

const menuPage = `<!doctype html>
<html>
  <head><title>Chez Test</title><script>var tracking = 1;</script></head>
  <body>
    <nav>Home | Contact | Jobs</nav>
    <div class="cookie-banner">We use cookies to improve your experience.</div>
    <div class="menu-list">
      <h2>Starters</h2>
      <p>Onion soup 5.00€ — a classic with gruyère croutons baked golden</p>
      <p>Terrine maison 7.50€ — served with pickles and toasted bread</p>
      <h2>Main courses</h2>
      <p>Steak frites 18.50€ — grass-fed beef with hand-cut fries</p>
      <p>Catch of the day 16.00€ — ask your server about today's fish</p>
      <h2>Desserts</h2>
      <p>Crème brûlée 6.50€ — vanilla bean custard with caramel crust</p>
    </div>
    <footer>© Chez Test — legal notice</footer>
  </body>
</html>`

func TestText_PrefersMenuRegion(t *testing.T) {
	got := Text([]byte(menuPage))
	if !strings.Contains(got, "Steak frites 18.50€") {
		t.Fatalf("expected menu content, got %q", got)
	}
	if strings.Contains(got, "Jobs") {
		t.Fatalf("did not expect nav text in extraction")
	}
	if strings.Contains(got, "cookies") {
		t.Fatalf("did not expect cookie banner text in extraction")
	}
	if strings.Contains(got, "legal notice") {
		t.Fatalf("did not expect footer text in extraction")
	}
}

func TestText_Idempotent(t *testing.T) {
	first := Text([]byte(menuPage))
	second := Text([]byte(menuPage))
	if first != second {
		t.Fatalf("extraction must be deterministic")
	}
	if Clean(first) != first {
		t.Fatalf("cleaning an already-clean extraction must be a no-op")
	}
}

func TestText_FallsBackToBody(t *testing.T) {
	html := `<!doctype html><html><body>
	  <p>Plain page without any menu markup but with visible text content
	  that should come back in full when no region qualifies.</p>
	</body></html>`
	got := Text([]byte(html))
	if !strings.Contains(got, "visible text content") {
		t.Fatalf("expected body fallback, got %q", got)
	}
}

func TestText_ShortRegionDoesNotWin(t *testing.T) {
	html := `<!doctype html><html><body>
	  <div class="menu">5.00€</div>
	  <p>The actual page body is much longer and talks about opening hours,
	  the chef, reservations and everything else a restaurant page contains
	  when the menu itself lives elsewhere on the site for some reason.</p>
	</body></html>`
	got := Text([]byte(html))
	if !strings.Contains(got, "opening hours") {
		t.Fatalf("expected full body when menu region is under threshold, got %q", got)
	}
}

func TestScoreRegion(t *testing.T) {
	priced := "Soup 5.00€\nSteak 18.50€\nCake 6.00€"
	plain := "We are open from Tuesday to Sunday"
	if ScoreRegion(priced) <= ScoreRegion(plain) {
		t.Fatalf("expected price-dense region to outscore prose")
	}
}

func TestClean_StripsUnsafeAndCollapses(t *testing.T) {
	got := Clean("Steak\t\tfrites   18.50€ ☃ ❄\n\n\n\nCake 6.00€")
	if strings.Contains(got, "☃") {
		t.Fatalf("expected unsafe characters stripped, got %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("expected newline runs collapsed, got %q", got)
	}
	if !strings.Contains(got, "Steak frites 18.50€") {
		t.Fatalf("expected whitespace collapsed, got %q", got)
	}
}
