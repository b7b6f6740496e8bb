package menu

import "strings"

// Validator decides whether a structured menu is good enough to return
// to the caller. The ratio and minimum-count thresholds are empirical
// tuning values, kept as fields so callers and tests can adjust them.
type Validator struct {
	// MinItems is the minimum total item count across all categories.
	MinItems int
	// MinWellFormedRatio is the required fraction of well-formed items.
	MinWellFormedRatio float64
}

// DefaultValidator returns the thresholds used in production.
func DefaultValidator() Validator {
	return Validator{MinItems: 3, MinWellFormedRatio: 0.6}
}

// IsValid reports whether the menu meets all acceptance criteria:
// mandatory categories present as lists, at least MinItems items in
// total, at least MinWellFormedRatio of items well-formed, and at least
// one real price with a digit somewhere in the menu.
func (v Validator) IsValid(m Menu) bool {
	if m.Starters == nil || m.MainCourses == nil || m.Desserts == nil {
		return false
	}
	items := m.Items()
	if len(items) < v.MinItems {
		return false
	}
	anyReal := false
	for _, it := range items {
		if it.HasRealPrice() {
			anyReal = true
			break
		}
	}
	if !anyReal {
		return false
	}
	wellFormed := 0
	for _, it := range items {
		if isWellFormed(it, anyReal) {
			wellFormed++
		}
	}
	ratio := float64(wellFormed) / float64(len(items))
	return ratio >= v.MinWellFormedRatio
}

// isWellFormed requires a name longer than 2 characters and a non-empty
// price. A sentinel price only counts when some other item in the menu
// carries a real one.
func isWellFormed(it Item, menuHasRealPrice bool) bool {
	if len(strings.TrimSpace(it.Name)) <= 2 {
		return false
	}
	price := strings.TrimSpace(it.Price)
	if price == "" {
		return false
	}
	if strings.EqualFold(price, PriceUnknown) {
		return menuHasRealPrice
	}
	return true
}
