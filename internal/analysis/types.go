package analysis

import (
	"time"

	"github.com/fllin1/global-franchises-sub001/internal/selection"
)

// Franchise is a catalog record describing one franchise option.
// Attrs holds the comparable attributes (investment range, royalty fee,
// territory policy, ...) as free-form string values keyed by attribute name.
type Franchise struct {
	ID    string            `json:"id" yaml:"id"`
	Name  string            `json:"name" yaml:"name"`
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// Profile personalizes document generation for a lead.
// Priorities lists attribute names the lead cares about most, in order;
// the generator surfaces those rows first.
type Profile struct {
	LeadID     string   `json:"lead_id"`
	Name       string   `json:"name"`
	Budget     string   `json:"budget,omitempty"`
	Priorities []string `json:"priorities,omitempty"`
}

// Row is one attribute compared across the selected franchises.
// Values is keyed by franchise id; a franchise without the attribute has no
// entry (rendered empty).
type Row struct {
	Attribute string            `json:"attribute"`
	Values    map[string]string `json:"values"`
}

// Document is a generated comparison document.
type Document struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Franchises  []string  `json:"franchises"` // ids in requested order
	Names       []string  `json:"names"`      // display names, parallel to Franchises
	Rows        []Row     `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CachedAnalysis is a previously generated document together with the
// id-set it was generated from, persisted per lead.
//
// The IDSet is compared by canonical key, never element-wise: a cached
// record for [20,10] satisfies a request for [10,20].
type CachedAnalysis struct {
	LeadID      string    `json:"lead_id"`
	IDSet       []string  `json:"id_set"`
	Document    Document  `json:"document"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CoversRequest reports whether the cached analysis satisfies a requested
// id-set, i.e. their canonical keys match.
func (c *CachedAnalysis) CoversRequest(requested []string) bool {
	return selection.Equivalent(c.IDSet, requested)
}

// Source tells the caller whether a reconcile returned a cached document or
// a freshly generated one.
type Source string

const (
	// SourceCache means the cached document was reused without generation.
	SourceCache Source = "cache"
	// SourceGenerated means the Generator produced a new document.
	SourceGenerated Source = "generated"
)

// Result is the outcome of a successful reconcile.
type Result struct {
	Document Document
	Source   Source
	Key      string // canonical key of the id-set the document covers
}
