package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Catalog resolves franchise ids to their catalog records.
// Implemented by store.Store in production.
type Catalog interface {
	ReadFranchises(ctx context.Context, ids []string) ([]Franchise, error)
}

// TableGenerator is the default Generator: it assembles a side-by-side
// attribute table from catalog records.
//
// Determinism: the document id comes from the injected token generator and
// the timestamp from the injected now func, so tests can pin both and
// compare documents against golden files.
type TableGenerator struct {
	catalog Catalog
	tokens  TokenGenerator
	now     func() time.Time
}

// NewTableGenerator creates a TableGenerator over the given catalog.
// tokens defaults to UUIDv7Generator and now to time.Now when nil.
func NewTableGenerator(catalog Catalog, tokens TokenGenerator, now func() time.Time) *TableGenerator {
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	if now == nil {
		now = time.Now
	}
	return &TableGenerator{catalog: catalog, tokens: tokens, now: now}
}

// Generate builds a comparison document for ids.
//
// Franchise columns keep the requested order. Rows are the union of all
// attribute keys across the selected franchises; a profile's priority
// attributes come first (in profile order), the rest sorted alphabetically.
// Unknown ids fail generation - comparing a franchise that does not exist
// is a caller error the document must not paper over.
func (g *TableGenerator) Generate(ctx context.Context, ids []string, profile *Profile) (Document, error) {
	if len(ids) == 0 {
		return Document{}, fmt.Errorf("generate: empty id-set")
	}

	franchises, err := g.catalog.ReadFranchises(ctx, ids)
	if err != nil {
		return Document{}, fmt.Errorf("generate: read franchises: %w", err)
	}

	byID := make(map[string]Franchise, len(franchises))
	for _, f := range franchises {
		byID[f.ID] = f
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return Document{}, fmt.Errorf("generate: unknown franchise %q", id)
		}
	}

	names := make([]string, len(ids))
	attrSet := make(map[string]struct{})
	for i, id := range ids {
		f := byID[id]
		names[i] = f.Name
		for attr := range f.Attrs {
			attrSet[attr] = struct{}{}
		}
	}

	rows := make([]Row, 0, len(attrSet))
	for _, attr := range orderAttributes(attrSet, profile) {
		row := Row{Attribute: attr, Values: make(map[string]string, len(ids))}
		for _, id := range ids {
			if v, ok := byID[id].Attrs[attr]; ok {
				row.Values[id] = v
			}
		}
		rows = append(rows, row)
	}

	return Document{
		ID:          g.tokens.Generate(),
		Headline:    headline(names, profile),
		Franchises:  append([]string(nil), ids...),
		Names:       names,
		Rows:        rows,
		GeneratedAt: g.now().UTC(),
	}, nil
}

// orderAttributes returns the attribute names to render, profile priorities
// first, remainder alphabetical.
func orderAttributes(attrSet map[string]struct{}, profile *Profile) []string {
	ordered := make([]string, 0, len(attrSet))
	if profile != nil {
		for _, attr := range profile.Priorities {
			if _, ok := attrSet[attr]; ok {
				ordered = append(ordered, attr)
				delete(attrSet, attr)
			}
		}
	}

	rest := make([]string, 0, len(attrSet))
	for attr := range attrSet {
		rest = append(rest, attr)
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}

func headline(names []string, profile *Profile) string {
	base := fmt.Sprintf("Comparing %d franchise options", len(names))
	if profile != nil && profile.Name != "" {
		return fmt.Sprintf("%s for %s", base, profile.Name)
	}
	return base
}

// compile-time interface check
var _ Generator = (*TableGenerator)(nil)
