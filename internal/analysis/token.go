package analysis

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator generates unique document ids.
// Implemented by UUIDv7Generator (production) and FixedTokenGenerator (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 document ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so document ids
// sort by creation time - convenient when scanning stored analyses.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokenGenerator returns predetermined ids for deterministic tests and
// golden-file comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedTokenGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokenGenerator creates a generator that returns tokens in order.
//
// Example:
//
//	gen := NewFixedTokenGenerator("doc-1", "doc-2")
//	gen.Generate() // "doc-1"
//	gen.Generate() // "doc-2"
//	gen.Generate() // panic: tokens exhausted
func NewFixedTokenGenerator(tokens ...string) *FixedTokenGenerator {
	return &FixedTokenGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
// Panics when all tokens are consumed - a test asking for more ids than it
// provided is a test bug, and failing fast beats silently reusing ids.
func (g *FixedTokenGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic(fmt.Sprintf("FixedTokenGenerator: all %d tokens exhausted", len(g.tokens)))
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
