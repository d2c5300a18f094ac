package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/policy"
)

func TestPolicyFor_Itinerary(t *testing.T) {
	p := policy.PolicyFor(domain.ResourceItinerary)

	assert.True(t, p.OwnerBypass)
	assert.True(t, p.ViewerBypass)
	assert.False(t, p.ViewerExcluded)
}

func TestPolicyFor_Expense(t *testing.T) {
	p := policy.PolicyFor(domain.ResourceExpense)

	assert.True(t, p.OwnerBypass)
	assert.False(t, p.ViewerBypass)
	assert.True(t, p.ViewerExcluded)
}

func TestPolicyFor_Media(t *testing.T) {
	p := policy.PolicyFor(domain.ResourceMedia)

	assert.True(t, p.OwnerBypass)
	assert.True(t, p.ViewerBypass)
	assert.False(t, p.ViewerExcluded)
}

func TestPolicyFor_UnknownTypePanics(t *testing.T) {
	assert.Panics(t, func() {
		policy.PolicyFor(domain.ResourceType("hotel"))
	})
}
