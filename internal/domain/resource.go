package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType tags the three kinds of trip resources the visibility policy
// knows about. The set is closed at compile time: adding a type means adding
// a policy table row, a repo, and a migration, not new evaluator logic.
type ResourceType string

const (
	ResourceItinerary ResourceType = "itinerary"
	ResourceExpense   ResourceType = "expense"
	ResourceMedia     ResourceType = "media"
)

// ItineraryItem is a scheduled entry on a trip's itinerary.
// StartsAt is the policy-defining timestamp for visibility scoping.
type ItineraryItem struct {
	ID        uuid.UUID  `json:"id"`
	TripID    uuid.UUID  `json:"trip_id"`
	Title     string     `json:"title"`
	Location  string     `json:"location,omitempty"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"` // nil for point-in-time items
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Expense is a shared cost recorded against a trip.
// AmountMinor is in the currency's minor unit (cents) to avoid float drift.
// IncurredAt is the policy-defining timestamp for visibility scoping.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	PaidByID    uuid.UUID `json:"paid_by_id"`
	Description string    `json:"description"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"` // ISO 4217, e.g. "EUR"
	IncurredAt  time.Time `json:"incurred_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MediaFile is an uploaded photo or video reference. The bytes themselves
// live in object storage under StorageKey; this record only carries metadata.
// CapturedAt is the policy-defining timestamp for visibility scoping.
type MediaFile struct {
	ID           uuid.UUID `json:"id"`
	TripID       uuid.UUID `json:"trip_id"`
	UploadedByID uuid.UUID `json:"uploaded_by_id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	StorageKey   string    `json:"storage_key"`
	CapturedAt   time.Time `json:"captured_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
