package selection

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// KeySeparator joins the sorted ids of a canonical key.
// The separator never appears in franchise ids, so keys are unambiguous.
const KeySeparator = "|"

// Canonicalize produces the canonical comparison key for an id collection.
//
// The key is order-independent and duplicate-free: ids are NFC normalized,
// trimmed, deduplicated, sorted lexicographically, and joined with
// KeySeparator. Blank ids are dropped. Empty input yields the empty key.
//
// Canonicalize is pure and total - no side effects, no failure modes. It is
// the ONLY equivalence used to compare a requested id-set against a cached
// analysis; callers must never compare raw slices directly.
func Canonicalize(ids []string) string {
	if len(ids) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(ids))
	canonical := make([]string, 0, len(ids))
	for _, id := range ids {
		// NFC normalization keeps visually identical ids from producing
		// distinct keys (composed vs decomposed accents).
		id = norm.NFC.String(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		canonical = append(canonical, id)
	}

	sort.Strings(canonical)
	return strings.Join(canonical, KeySeparator)
}

// Equivalent reports whether two id collections denote the same selection,
// ignoring order and duplicates.
func Equivalent(a, b []string) bool {
	return Canonicalize(a) == Canonicalize(b)
}
