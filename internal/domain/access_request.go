package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessRequestStatus is the lifecycle state of an access request.
type AccessRequestStatus string

const (
	AccessRequestPending  AccessRequestStatus = "pending"
	AccessRequestApproved AccessRequestStatus = "approved"
	AccessRequestDenied   AccessRequestStatus = "denied"
)

// AccessRequest is a viewer's petition to be promoted to participant.
// At most one pending request exists per (trip, user); approval routes
// through the membership service so the role change takes immediate effect.
type AccessRequest struct {
	ID          uuid.UUID           `json:"id"`
	TripID      uuid.UUID           `json:"trip_id"`
	UserID      uuid.UUID           `json:"user_id"`
	Status      AccessRequestStatus `json:"status"`
	Message     string              `json:"message,omitempty"`
	DecidedByID *uuid.UUID          `json:"decided_by_id,omitempty"` // nil while pending
	DecidedAt   *time.Time          `json:"decided_at,omitempty"`    // nil while pending
	CreatedAt   time.Time           `json:"created_at"`
}
