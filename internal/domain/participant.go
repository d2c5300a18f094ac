package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant binds a user to a trip with a role and the join timestamp that
// anchors temporal visibility scoping.
//
// Invariants the registry upholds:
//   - at most one row per (trip, user);
//   - JoinedAt is set once at creation (trip creation or invite acceptance)
//     and never moves afterwards; role changes leave it untouched;
//   - a row with RoleOwner is exempt from temporal scoping entirely, so its
//     JoinedAt is carried but never consulted.
type Participant struct {
	TripID    uuid.UUID `json:"trip_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
	JoinedAt  time.Time `json:"joined_at"` // UTC instant
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
