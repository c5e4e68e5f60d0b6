package selection

// DefaultMaxSize is the default capacity bound for a selection set.
// Comparing more than ten franchises at once produces an unreadable
// document, so additions past the bound are silently ignored.
const DefaultMaxSize = 10

// ChangeKind distinguishes the mutation that triggered a notification.
type ChangeKind int

const (
	// ChangeAdd means an id was appended to the set.
	ChangeAdd ChangeKind = iota + 1
	// ChangeRemove means an id was removed from the set.
	ChangeRemove
	// ChangeClear means the set was emptied.
	ChangeClear
)

// Change describes a single effective mutation of a Set.
// Rejected mutations (duplicate add, add at capacity, remove of an absent
// id) produce no Change.
type Change struct {
	Kind ChangeKind
	ID   string // affected id; empty for ChangeClear
	Size int    // set size after the mutation
}

// Set is an ordered, capacity-bounded set of franchise ids.
//
// Insertion order is preserved so the display order of selected franchises
// is stable; membership checks have set semantics (no duplicates).
//
// Mutations cannot fail: a duplicate add or an add on a full set is a
// silent no-op. Callers are deliberately not told about the rejection -
// the bounded-selection UX treats the cap as a soft ceiling, not an error.
//
// Subscribers are notified synchronously, in registration order, after each
// effective mutation. Load replaces the contents without notifying; it
// exists so populating a set from persisted state does not itself schedule
// a write-back.
//
// Set is NOT safe for concurrent use. Ownership and serialization belong to
// engine.Coordinator.
type Set struct {
	ids         []string
	index       map[string]struct{}
	maxSize     int
	subscribers []func(Change)
}

// NewSet creates an empty set with the given capacity bound.
// A maxSize of zero or less falls back to DefaultMaxSize.
func NewSet(maxSize int) *Set {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Set{
		ids:     make([]string, 0, maxSize),
		index:   make(map[string]struct{}, maxSize),
		maxSize: maxSize,
	}
}

// Subscribe registers fn to be called synchronously after every effective
// mutation. Subscriptions cannot be removed; the set and its subscribers
// share a lifecycle.
func (s *Set) Subscribe(fn func(Change)) {
	s.subscribers = append(s.subscribers, fn)
}

// Add appends id to the set. No-op if id is already present or the set is
// at capacity.
func (s *Set) Add(id string) {
	if _, exists := s.index[id]; exists {
		return
	}
	if len(s.ids) >= s.maxSize {
		return
	}
	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}
	s.notify(Change{Kind: ChangeAdd, ID: id, Size: len(s.ids)})
}

// Remove deletes id from the set, preserving the relative order of the
// remaining ids. No-op if id is absent.
func (s *Set) Remove(id string) {
	if _, exists := s.index[id]; !exists {
		return
	}
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	s.notify(Change{Kind: ChangeRemove, ID: id, Size: len(s.ids)})
}

// Toggle removes id if present, otherwise adds it.
func (s *Set) Toggle(id string) {
	if _, exists := s.index[id]; exists {
		s.Remove(id)
		return
	}
	s.Add(id)
}

// Clear empties the set. No-op (and no notification) if already empty.
func (s *Set) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = s.ids[:0]
	clear(s.index)
	s.notify(Change{Kind: ChangeClear, Size: 0})
}

// Load replaces the set's contents with ids, WITHOUT notifying subscribers.
//
// Duplicates are dropped (first occurrence wins) and ids past the capacity
// bound are truncated, so a Load can never violate the set's invariants
// regardless of what the backing store returned.
func (s *Set) Load(ids []string) {
	s.ids = s.ids[:0]
	clear(s.index)
	for _, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		if len(s.ids) >= s.maxSize {
			break
		}
		s.ids = append(s.ids, id)
		s.index[id] = struct{}{}
	}
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id string) bool {
	_, exists := s.index[id]
	return exists
}

// Size returns the number of ids in the set.
func (s *Set) Size() int {
	return len(s.ids)
}

// MaxSize returns the capacity bound.
func (s *Set) MaxSize() int {
	return s.maxSize
}

// IDs returns a copy of the ids in insertion order.
// The copy keeps callers from aliasing the set's internal slice.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Key returns the canonical comparison key of the current contents.
func (s *Set) Key() string {
	return Canonicalize(s.ids)
}

func (s *Set) notify(c Change) {
	for _, fn := range s.subscribers {
		fn(c)
	}
}
