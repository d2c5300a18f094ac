// Package policy implements the temporal, role-based visibility engine.
//
// The engine is two small pieces: a static per-resource-type flag table and a
// pure decision function over (role, joinedAt, resourceType, timestamp).
// It performs no I/O of its own beyond a single participant registry lookup
// and holds no mutable state, so it is safe for unrestricted concurrent use.
package policy

import (
	"fmt"

	"github.com/tripweave/backend/internal/domain"
)

// TypePolicy is the static visibility configuration for one resource type.
// The three flags are independent axes; ViewerBypass and ViewerExcluded are
// mutually exclusive.
type TypePolicy struct {
	// OwnerBypass exempts owners from every other rule. True for all current
	// types, and the evaluator additionally short-circuits on the owner role
	// before even reading this table, so a future misconfigured row can never
	// lock an owner out.
	OwnerBypass bool

	// ViewerBypass lets viewers see every resource of this type with no
	// temporal filter.
	ViewerBypass bool

	// ViewerExcluded hides every resource of this type from viewers,
	// regardless of any other condition.
	ViewerExcluded bool
}

// table maps each resource type to its flags. Changing resource-type
// semantics means changing this code, never runtime data.
var table = map[domain.ResourceType]TypePolicy{
	domain.ResourceItinerary: {OwnerBypass: true, ViewerBypass: true, ViewerExcluded: false},
	domain.ResourceExpense:   {OwnerBypass: true, ViewerBypass: false, ViewerExcluded: true},
	domain.ResourceMedia:     {OwnerBypass: true, ViewerBypass: true, ViewerExcluded: false},
}

func init() {
	// The type set is closed; a row violating the flag exclusivity is a
	// programming error caught at process start, not at request time.
	for rt, p := range table {
		if p.ViewerBypass && p.ViewerExcluded {
			panic(fmt.Sprintf("policy: resource type %q sets both ViewerBypass and ViewerExcluded", rt))
		}
	}
}

// PolicyFor returns the flag set for the given resource type.
// An unknown type is a programming error (a mismatched build, not bad user
// input) and panics.
func PolicyFor(rt domain.ResourceType) TypePolicy {
	p, ok := table[rt]
	if !ok {
		panic(fmt.Sprintf("policy: unknown resource type %q", rt))
	}
	return p
}
