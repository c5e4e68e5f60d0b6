package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCatalog is an in-memory Catalog for generator tests.
type memCatalog struct {
	franchises map[string]Franchise
	err        error
}

func (c *memCatalog) ReadFranchises(ctx context.Context, ids []string) ([]Franchise, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []Franchise
	for _, id := range ids {
		if f, ok := c.franchises[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func testCatalog() *memCatalog {
	return &memCatalog{franchises: map[string]Franchise{
		"f-aroma": {
			ID:   "f-aroma",
			Name: "Aroma Coffee",
			Attrs: map[string]string{
				"investment":    "$150k-$250k",
				"royalty":       "5%",
				"franchise_fee": "$30k",
			},
		},
		"f-bloom": {
			ID:   "f-bloom",
			Name: "Bloom Florists",
			Attrs: map[string]string{
				"investment": "$80k-$120k",
				"royalty":    "6%",
				"territory":  "exclusive",
			},
		},
	}}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
}

func TestTableGenerator_ColumnsKeepRequestedOrder(t *testing.T) {
	gen := NewTableGenerator(testCatalog(), NewFixedTokenGenerator("doc-1"), fixedNow)

	doc, err := gen.Generate(context.Background(), []string{"f-bloom", "f-aroma"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"f-bloom", "f-aroma"}, doc.Franchises)
	assert.Equal(t, []string{"Bloom Florists", "Aroma Coffee"}, doc.Names)
}

func TestTableGenerator_RowsAreAttributeUnionSorted(t *testing.T) {
	gen := NewTableGenerator(testCatalog(), NewFixedTokenGenerator("doc-1"), fixedNow)

	doc, err := gen.Generate(context.Background(), []string{"f-aroma", "f-bloom"}, nil)
	require.NoError(t, err)

	attrs := make([]string, len(doc.Rows))
	for i, row := range doc.Rows {
		attrs[i] = row.Attribute
	}
	assert.Equal(t, []string{"franchise_fee", "investment", "royalty", "territory"}, attrs)

	// Missing attribute has no entry, not an empty string.
	for _, row := range doc.Rows {
		if row.Attribute == "territory" {
			_, hasAroma := row.Values["f-aroma"]
			assert.False(t, hasAroma)
			assert.Equal(t, "exclusive", row.Values["f-bloom"])
		}
	}
}

func TestTableGenerator_ProfilePrioritiesFirst(t *testing.T) {
	gen := NewTableGenerator(testCatalog(), NewFixedTokenGenerator("doc-1"), fixedNow)
	profile := &Profile{LeadID: "42", Name: "Dana", Priorities: []string{"royalty", "territory"}}

	doc, err := gen.Generate(context.Background(), []string{"f-aroma", "f-bloom"}, profile)
	require.NoError(t, err)

	attrs := make([]string, len(doc.Rows))
	for i, row := range doc.Rows {
		attrs[i] = row.Attribute
	}
	assert.Equal(t, []string{"royalty", "territory", "franchise_fee", "investment"}, attrs,
		"priority attributes lead, remainder alphabetical")
	assert.Equal(t, "Comparing 2 franchise options for Dana", doc.Headline)
}

func TestTableGenerator_UnknownIDFails(t *testing.T) {
	gen := NewTableGenerator(testCatalog(), NewFixedTokenGenerator("doc-1"), fixedNow)

	_, err := gen.Generate(context.Background(), []string{"f-aroma", "f-ghost"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "f-ghost")
}

func TestTableGenerator_EmptyIDSetFails(t *testing.T) {
	gen := NewTableGenerator(testCatalog(), NewFixedTokenGenerator("doc-1"), fixedNow)

	_, err := gen.Generate(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestTableGenerator_CatalogErrorPropagates(t *testing.T) {
	gen := NewTableGenerator(&memCatalog{err: fmt.Errorf("db locked")}, NewFixedTokenGenerator("doc-1"), fixedNow)

	_, err := gen.Generate(context.Background(), []string{"f-aroma"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db locked")
}

func TestTableGenerator_GoldenDocument(t *testing.T) {
	gen := NewTableGenerator(testCatalog(), NewFixedTokenGenerator("doc-0001"), fixedNow)

	doc, err := gen.Generate(context.Background(), []string{"f-aroma", "f-bloom"}, nil)
	require.NoError(t, err)

	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "comparison_document", data)
}

func TestFixedTokenGenerator_ReturnsInOrder(t *testing.T) {
	gen := NewFixedTokenGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator_UniqueAndSortable(t *testing.T) {
	gen := UUIDv7Generator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := gen.Generate()
		assert.Len(t, token, 36)
		assert.False(t, seen[token], "token %s generated twice", token)
		seen[token] = true
	}
}

func TestCachedAnalysis_CoversRequest(t *testing.T) {
	rec := &CachedAnalysis{IDSet: []string{"20", "10"}}
	assert.True(t, rec.CoversRequest([]string{"10", "20"}))
	assert.True(t, rec.CoversRequest([]string{"10", "20", "10"}))
	assert.False(t, rec.CoversRequest([]string{"10"}))
	assert.False(t, rec.CoversRequest([]string{"10", "20", "30"}))
}
