package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportRow is a single row in the flat per-trip export.
// One row per resource visible to the requesting user, across all three
// resource types, ordered by OccurredAt ascending. Detail is the
// type-specific human label (item title, expense description, media file
// name); AmountMinor and Currency are zero/empty for non-expense rows.
type ExportRow struct {
	TripID       uuid.UUID    `json:"trip_id"`
	TripName     string       `json:"trip_name"`
	ResourceType ResourceType `json:"resource_type"`
	ResourceID   uuid.UUID    `json:"resource_id"`
	Detail       string       `json:"detail"`
	OccurredAt   time.Time    `json:"occurred_at"`
	AmountMinor  int64        `json:"amount_minor,omitempty"`
	Currency     string       `json:"currency,omitempty"`
}
