// Package domain contains the core data types for the TripWeave backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (policy, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: an owned collection of itinerary items,
// expenses, and media files shared among participants.
// OwnerID is the creating user and never changes (ownership transfer is
// unsupported); additional members may still hold RoleOwner on their
// participant row.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	OwnerID   uuid.UUID  `json:"owner_id"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil when open-ended
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
