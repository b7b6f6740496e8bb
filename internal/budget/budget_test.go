package budget

import (
	"strings"
	"testing"
)

func TestReduce_NoOpUnderBudget(t *testing.T) {
	inputs := []string{
		"",
		"short menu text",
		strings.Repeat("Steak 18.50€\n", 100),
	}
	for _, in := range inputs {
		if got := Reduce(in, DefaultMaxChars); got != in {
			t.Fatalf("expected no-op under budget, input %d chars changed", len(in))
		}
	}
}

func TestReduce_PrefersPriceDenseSegments(t *testing.T) {
	prose := strings.Repeat("Our chef trained in Lyon and loves seasonal produce. ", 20)
	menuBlock := "Soup 5.00€\nSteak frites 18.50€\nCrème brûlée 6.50€\nHouse wine 4.00€"
	text := prose + "\n\n" + menuBlock + "\n\n" + prose

	got := Reduce(text, len(menuBlock)+len(prose)/2)
	if !strings.Contains(got, "Steak frites 18.50€") {
		t.Fatalf("expected price-dense block to survive reduction, got %q", got)
	}
	if strings.Contains(got, "trained in Lyon") {
		t.Fatalf("expected prose to be dropped before menu content")
	}
}

func TestReduce_StaysNearBudget(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 400; i++ {
		b.WriteString("Dish number with price 12.50€ and some description text here\n\n")
	}
	max := 2000
	got := Reduce(b.String(), max)
	if len(got) > max {
		t.Fatalf("expected output within budget %d, got %d chars", max, len(got))
	}
	if got == "" {
		t.Fatalf("expected non-empty reduction")
	}
}

func TestReduce_DegenerateSingleBlock(t *testing.T) {
	text := strings.Repeat("x", 5000)
	got := Reduce(text, 1000)
	if len(got) > 1300 {
		t.Fatalf("expected a hard bound on a single opaque block, got %d chars", len(got))
	}
}

func TestPriceCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"Soup 5.00€ and Steak €18.50", 2},
		{"no prices here", 0},
		{"12,50 then 9.99 then $4", 3},
	}
	for _, c := range cases {
		if got := PriceCount(c.text); got != c.want {
			t.Fatalf("%q: expected %d prices, got %d", c.text, c.want, got)
		}
	}
}
