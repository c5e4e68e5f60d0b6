package analysis

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/fllin1/global-franchises-sub001/internal/selection"
)

// CacheSource reads the previously generated analysis for a lead.
// Returns (nil, nil) when no cached analysis exists.
type CacheSource interface {
	ReadAnalysis(ctx context.Context, leadID string) (*CachedAnalysis, error)
}

// ProfileSource resolves a lead id to its profile.
// Returns (nil, nil) when the lead has no profile.
type ProfileSource interface {
	ReadProfile(ctx context.Context, leadID string) (*Profile, error)
}

// Generator turns a franchise id-set (plus an optional profile) into a
// comparison document. Implemented by TableGenerator in production and by
// test doubles that count invocations.
type Generator interface {
	Generate(ctx context.Context, ids []string, profile *Profile) (Document, error)
}

// Request is the reconciliation entry point's input, assembled from the
// comparison view's query surface: a comma-separated id list and an
// optional lead id.
type Request struct {
	// RequestedIDs is the id-set the caller wants compared.
	// nil means "no explicit request - show me whatever is cached".
	RequestedIDs []string

	// LeadID is the bound lead context, or "" when anonymous.
	LeadID string
}

// Reconciler decides cache reuse vs regeneration.
//
// Profiles may be nil; profile resolution personalizes generation but is
// not required for correctness. Concurrent reconciles that miss the cache
// with the same canonical key share a single Generate call via
// singleflight.
type Reconciler struct {
	cache    CacheSource
	profiles ProfileSource
	gen      Generator
	group    singleflight.Group
}

// NewReconciler creates a Reconciler. cache and gen are required; profiles
// may be nil.
func NewReconciler(cache CacheSource, profiles ProfileSource, gen Generator) *Reconciler {
	return &Reconciler{cache: cache, profiles: profiles, gen: gen}
}

// Reconcile runs the cache-or-regenerate decision for one visit to the
// comparison view.
//
// Outcomes:
//   - cached document, when a cached analysis exists for req.LeadID and the
//     request either names no ids or names an id-set equivalent (by
//     canonical key) to the cached one
//   - freshly generated document, when the request names a non-empty id-set
//     that the cache does not cover
//   - *ReconcileError with ErrCodeValidation when there is nothing usable to
//     compare (no cache and no requested ids)
//   - *ReconcileError with ErrCodeGeneration when the Generator fails
//
// A cache read failure is logged and treated as a cache miss; it never
// reaches the caller.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (*Result, error) {
	requestedKey := selection.Canonicalize(req.RequestedIDs)

	if req.LeadID != "" {
		cached, err := r.cache.ReadAnalysis(ctx, req.LeadID)
		if err != nil {
			// Degrade to a miss: persistence trouble must not block the view.
			slog.Warn("cached analysis read failed, treating as miss",
				"lead_id", req.LeadID,
				"error", err,
			)
		} else if cached != nil {
			cachedKey := selection.Canonicalize(cached.IDSet)
			if req.RequestedIDs == nil || cached.CoversRequest(req.RequestedIDs) {
				slog.Debug("analysis cache hit",
					"lead_id", req.LeadID,
					"key", cachedKey,
				)
				return &Result{Document: cached.Document, Source: SourceCache, Key: cachedKey}, nil
			}
			slog.Debug("analysis cache miss",
				"lead_id", req.LeadID,
				"cached_key", cachedKey,
				"requested_key", requestedKey,
			)
		}
	}

	if requestedKey == "" {
		return nil, NewValidationError("no selection")
	}

	var profile *Profile
	if req.LeadID != "" && r.profiles != nil {
		p, err := r.profiles.ReadProfile(ctx, req.LeadID)
		if err != nil {
			// Personalization only - generation proceeds without it.
			slog.Warn("profile lookup failed, generating without profile",
				"lead_id", req.LeadID,
				"error", err,
			)
		} else {
			profile = p
		}
	}

	doc, err := r.generate(ctx, req, requestedKey, profile)
	if err != nil {
		return nil, NewGenerationError(err)
	}

	return &Result{Document: doc, Source: SourceGenerated, Key: requestedKey}, nil
}

// generate invokes the Generator, coalescing concurrent calls for the same
// (lead, canonical key) pair into a single execution.
func (r *Reconciler) generate(ctx context.Context, req Request, key string, profile *Profile) (Document, error) {
	flightKey := req.LeadID + "\x00" + key
	v, err, shared := r.group.Do(flightKey, func() (any, error) {
		return r.gen.Generate(ctx, req.RequestedIDs, profile)
	})
	if err != nil {
		return Document{}, err
	}
	if shared {
		slog.Debug("generation shared across concurrent requests", "key", key)
	}
	return v.(Document), nil
}

// ParseIDList parses the comma-separated id list consumed by the comparison
// view. Blank entries are dropped; surrounding whitespace is trimmed.
// Returns nil for an empty or all-blank input, which Reconcile treats as
// "no explicit request".
func ParseIDList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		ids = append(ids, p)
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
