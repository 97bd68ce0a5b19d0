package value

import "strings"

// TypeKey is the JSON-LD type discriminator.
const TypeKey = "@type"

// ListKey wraps an order-preserving list.
const ListKey = "@list"

// Map is a structured property value.
type Map = map[string]any

// =============================================================================
// NULL NORMALIZATION
// =============================================================================

// Normalize canonicalizes empty values to nil.
//
// Empty or whitespace-only strings, empty collections, collections whose
// members are all empty, and maps left with only a "@type" key are absent.
// Nested absent entries are removed from what remains. Numbers and booleans
// are kept as they are, including zero and false.
//
// Normalize is pure and idempotent.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
		return val
	case []string:
		out := make([]string, 0, len(val))
		for _, s := range val {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if n := Normalize(item); n != nil {
				out = append(out, n)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []map[string]any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if n := Normalize(item); n != nil {
				out = append(out, n)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if n := Normalize(item); n != nil {
				out[k] = n
			}
		}
		if len(out) == 0 {
			return nil
		}
		if _, ok := out[TypeKey]; ok && len(out) == 1 {
			return nil
		}
		return out
	default:
		return v
	}
}

// IsAbsent reports whether v normalizes to nil.
func IsAbsent(v any) bool {
	return Normalize(v) == nil
}

// =============================================================================
// LISTS
// =============================================================================

// OrderedList wraps items whose order is significant, such as an author
// sequence. Absent items are dropped first. A single item is returned
// unwrapped and no items yield nil.
func OrderedList(items []any) any {
	kept := Compact(items)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return Map{ListKey: kept}
	}
}

// Single collapses a one-element list to its element. Longer lists are
// returned as they are and empty lists yield nil.
func Single(items []any) any {
	kept := Compact(items)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return kept
	}
}

// Compact normalizes each item and drops the absent ones.
func Compact(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if n := Normalize(item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Strings converts a string slice to []any for Single and OrderedList.
func Strings(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
