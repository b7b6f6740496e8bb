// Package menu holds the structured menu model plus the normalization
// and validation applied to structuring-service output.
package menu

import (
	"encoding/json"
	"sort"
	"strings"
)

// PriceUnknown is the sentinel used when a price is absent from the
// source material. The structuring prompt instructs the service to emit
// exactly this value rather than inventing a number.
const PriceUnknown = "N/A"

// Mandatory category keys. A validated menu always carries these, even
// when empty. "drinks" is well known but optional.
const (
	CategoryStarters    = "starters"
	CategoryMainCourses = "main_courses"
	CategoryDesserts    = "desserts"
	CategoryDrinks      = "drinks"
)

// Item is a single menu entry. Immutable once produced; it has no
// identity beyond its position within a category list.
type Item struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// HasRealPrice reports whether the item carries a non-sentinel price
// containing at least one digit.
func (it Item) HasRealPrice() bool {
	p := strings.TrimSpace(it.Price)
	if p == "" || strings.EqualFold(p, PriceUnknown) {
		return false
	}
	return strings.ContainsAny(p, "0123456789")
}

// Menu maps category names to ordered item lists. The four well-known
// categories are explicit fields so consumers can handle them
// exhaustively; anything else the structuring service returns lands in
// Extra.
type Menu struct {
	Starters    []Item
	MainCourses []Item
	Desserts    []Item
	Drinks      []Item
	Extra       map[string][]Item
}

// Items flattens all categories into a single slice, well-known
// categories first, extras in sorted key order for determinism.
func (m Menu) Items() []Item {
	out := make([]Item, 0, len(m.Starters)+len(m.MainCourses)+len(m.Desserts)+len(m.Drinks))
	out = append(out, m.Starters...)
	out = append(out, m.MainCourses...)
	out = append(out, m.Desserts...)
	out = append(out, m.Drinks...)
	keys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, m.Extra[k]...)
	}
	return out
}

// MarshalJSON emits the well-known categories as always-present arrays
// (never null) plus any extra categories at the top level.
func (m Menu) MarshalJSON() ([]byte, error) {
	obj := make(map[string][]Item, 4+len(m.Extra))
	obj[CategoryStarters] = emptyIfNil(m.Starters)
	obj[CategoryMainCourses] = emptyIfNil(m.MainCourses)
	obj[CategoryDesserts] = emptyIfNil(m.Desserts)
	obj[CategoryDrinks] = emptyIfNil(m.Drinks)
	for k, v := range m.Extra {
		switch k {
		case CategoryStarters, CategoryMainCourses, CategoryDesserts, CategoryDrinks:
			// well-known fields win over stray duplicates
		default:
			obj[k] = emptyIfNil(v)
		}
	}
	return json.Marshal(obj)
}

// UnmarshalJSON accepts an open-ended category object and folds unknown
// keys into Extra. Malformed category values decode to empty lists via
// PostProcess semantics applied by the caller; here the shape is taken
// as-is.
func (m *Menu) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = FromRaw(raw)
	return nil
}

func emptyIfNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}
