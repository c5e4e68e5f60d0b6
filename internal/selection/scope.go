package selection

import "fmt"

// Scope identifies the persistence and isolation boundary of a selection.
//
// Exactly one scope is active at a time. The zero value is the anonymous
// scope: selections live only in session-local storage. A lead-bound scope
// ties the selection to a durable lead record; mutations are persisted
// remotely under that lead's id.
//
// The persistence target is fully determined by the scope - anonymous goes
// to the local adapter, lead-bound goes to the remote adapter keyed by
// LeadID. Core logic never branches on which backend is active beyond this
// routing.
type Scope struct {
	leadID string
}

// Anonymous returns the anonymous (session-local) scope.
func Anonymous() Scope {
	return Scope{}
}

// ForLead returns a scope bound to the given lead id.
// Panics if leadID is empty - a bound scope without an id is a programming
// error, not a runtime condition.
func ForLead(leadID string) Scope {
	if leadID == "" {
		panic("selection: ForLead requires a non-empty lead id")
	}
	return Scope{leadID: leadID}
}

// Bound reports whether the scope is bound to a lead.
func (s Scope) Bound() bool {
	return s.leadID != ""
}

// LeadID returns the bound lead id, or "" for the anonymous scope.
func (s Scope) LeadID() string {
	return s.leadID
}

// Key returns a stable string form of the scope, suitable for logging and
// for keying scheduled persistence tasks.
func (s Scope) Key() string {
	if s.leadID == "" {
		return "anonymous"
	}
	return fmt.Sprintf("lead:%s", s.leadID)
}

// String implements fmt.Stringer.
func (s Scope) String() string {
	return s.Key()
}
