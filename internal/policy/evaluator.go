package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
)

// Registry is the read-side contract the evaluator needs from the participant
// store. Defined here, in the consumer package, and satisfied by
// repo.ParticipantRepo.
//
// found=false means the user has no membership in the trip, the default-deny
// case. An infrastructure failure must surface as an error wrapping
// domain.ErrRegistryUnavailable, never as found=false.
type Registry interface {
	Lookup(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, bool, error)
}

// Evaluator answers visibility questions for trip resources.
// It is stateless: every call reads the registry fresh, so role changes and
// removals take effect on the very next call with no cache to invalidate.
type Evaluator struct {
	registry Registry
}

// NewEvaluator constructs an Evaluator backed by the given registry.
func NewEvaluator(registry Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// CanSee reports whether userID may see a resource of the given type with the
// given defining timestamp in tripID.
//
// A registry failure propagates as an error and the boolean is false: callers
// must fail closed and must not present the outcome as "no access", since it
// is an infrastructure fault, not a policy decision.
func (e *Evaluator) CanSee(ctx context.Context, tripID, userID uuid.UUID, rt domain.ResourceType, ts time.Time) (bool, error) {
	p, found, err := e.registry.Lookup(ctx, tripID, userID)
	if err != nil {
		return false, fmt.Errorf("policy.Evaluator.CanSee: %w", err)
	}
	if !found {
		return false, nil
	}
	return Decide(p.Role, p.JoinedAt, rt, ts), nil
}

// Decide is the pure per-row decision: no I/O, no clock, no state.
// Callers that filter large result sets should do one registry Lookup per
// (trip, user) and then call Decide once per row.
//
// Rules, in order, first match wins:
//  1. owners see everything, evaluated before the type policy is even
//     consulted, so no future table row can exclude an owner;
//  2. viewers: excluded types are never visible, bypass types always are;
//  3. otherwise the temporal rule applies: visible iff the resource
//     timestamp is at or after the join instant, compared as UTC instants.
//
// The lower bound is inclusive: a resource dated exactly at joinedAt is
// visible. Visibility never depends on the time of the query: a future-dated
// resource is visible to anyone whose join instant precedes it.
func Decide(role domain.Role, joinedAt time.Time, rt domain.ResourceType, ts time.Time) bool {
	if role == domain.RoleOwner {
		return true
	}
	p := PolicyFor(rt)
	if role == domain.RoleViewer {
		if p.ViewerExcluded {
			return false
		}
		if p.ViewerBypass {
			return true
		}
		// No current type reaches here for viewers; future types without
		// either flag fall through to the temporal rule.
	}
	return !ts.UTC().Before(joinedAt.UTC())
}
