package domain

import "fmt"

// Role is the trip-scoped role of a participant. It is a closed enumeration:
// owner, participant, viewer. Roles are stored as lowercase strings.
type Role string

const (
	// RoleOwner bypasses all visibility rules and may mutate memberships.
	RoleOwner Role = "owner"
	// RoleParticipant sees resources dated at or after their join instant.
	RoleParticipant Role = "participant"
	// RoleViewer has read-only access shaped by per-resource-type flags.
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleParticipant, RoleViewer:
		return true
	}
	return false
}

// ParseRole converts a string into a Role.
// Returns ErrValidation wrapped with the offending value for anything outside
// the closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}
