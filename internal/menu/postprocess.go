package menu

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FromRaw normalizes a decoded JSON object into a Menu. Every category
// value that is not an array becomes an empty list, item names and
// prices are coerced to trimmed strings, absent prices become the
// sentinel, and items without a name are discarded. The four well-known
// category keys are always populated on the result, even when the input
// omits them entirely.
func FromRaw(raw map[string]json.RawMessage) Menu {
	m := Menu{
		Starters:    []Item{},
		MainCourses: []Item{},
		Desserts:    []Item{},
		Drinks:      []Item{},
	}
	for key, val := range raw {
		items := normalizeItems(val, key)
		switch key {
		case CategoryStarters:
			m.Starters = items
		case CategoryMainCourses:
			m.MainCourses = items
		case CategoryDesserts:
			m.Desserts = items
		case CategoryDrinks:
			m.Drinks = items
		default:
			if m.Extra == nil {
				m.Extra = map[string][]Item{}
			}
			m.Extra[key] = items
		}
	}
	return m
}

// PostProcess parses a JSON object body and normalizes it. It is the
// single entry point the structuring client uses on service output.
func PostProcess(data []byte) (Menu, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Menu{}, err
	}
	return FromRaw(raw), nil
}

func normalizeItems(val json.RawMessage, category string) []Item {
	var entries []json.RawMessage
	if err := json.Unmarshal(val, &entries); err != nil {
		// non-array category value degrades to an empty list
		return []Item{}
	}
	out := make([]Item, 0, len(entries))
	for _, e := range entries {
		var fields map[string]any
		if err := json.Unmarshal(e, &fields); err != nil {
			continue
		}
		name := coerceString(fields["name"])
		if name == "" {
			continue
		}
		price := coerceString(fields["price"])
		if price == "" {
			price = PriceUnknown
		}
		out = append(out, Item{
			Name:        name,
			Price:       price,
			Description: coerceString(fields["description"]),
			Category:    category,
		})
	}
	return out
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
