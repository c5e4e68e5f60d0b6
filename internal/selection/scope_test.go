package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_ZeroValueIsAnonymous(t *testing.T) {
	var s Scope
	assert.False(t, s.Bound())
	assert.Equal(t, "", s.LeadID())
	assert.Equal(t, "anonymous", s.Key())
}

func TestScope_Anonymous(t *testing.T) {
	s := Anonymous()
	assert.False(t, s.Bound())
	assert.Equal(t, "anonymous", s.String())
}

func TestScope_ForLead(t *testing.T) {
	s := ForLead("L42")
	assert.True(t, s.Bound())
	assert.Equal(t, "L42", s.LeadID())
	assert.Equal(t, "lead:L42", s.Key())
}

func TestScope_ForLeadEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { ForLead("") })
}

func TestScope_Equality(t *testing.T) {
	assert.Equal(t, ForLead("L1"), ForLead("L1"))
	assert.NotEqual(t, ForLead("L1"), ForLead("L2"))
	assert.NotEqual(t, Anonymous(), ForLead("L1"))
	assert.Equal(t, Anonymous(), Scope{}, "zero value and Anonymous() are the same scope")
}
