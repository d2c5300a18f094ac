package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/policy"
	"github.com/tripweave/backend/internal/repo"
)

// ExportService assembles a flat, policy-filtered export of one trip:
// one row per itinerary item, expense, and media file the caller may see,
// ordered by occurrence time.
type ExportService struct {
	trips    repo.TripRepo
	members  repo.ParticipantRepo
	items    repo.ItineraryRepo
	expenses repo.ExpenseRepo
	media    repo.MediaRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, members repo.ParticipantRepo, items repo.ItineraryRepo, expenses repo.ExpenseRepo, media repo.MediaRepo) *ExportService {
	return &ExportService{trips: trips, members: members, items: items, expenses: expenses, media: media}
}

// Export returns the caller-visible rows of a trip across all three resource
// types. One registry lookup covers the whole export; each row is then a pure
// policy decision. Non-members get ErrNotFound.
func (s *ExportService) Export(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.ExportRow, error) {
	caller, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service.ExportService.Export: %w", domain.ErrNotFound)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}

	items, err := s.items.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: itinerary: %w", err)
	}
	for _, item := range items {
		if !policy.Decide(caller.Role, caller.JoinedAt, domain.ResourceItinerary, item.StartsAt) {
			continue
		}
		rows = append(rows, domain.ExportRow{
			TripID:       trip.ID,
			TripName:     trip.Name,
			ResourceType: domain.ResourceItinerary,
			ResourceID:   item.ID,
			Detail:       item.Title,
			OccurredAt:   item.StartsAt,
		})
	}

	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: expenses: %w", err)
	}
	for _, e := range expenses {
		if !policy.Decide(caller.Role, caller.JoinedAt, domain.ResourceExpense, e.IncurredAt) {
			continue
		}
		rows = append(rows, domain.ExportRow{
			TripID:       trip.ID,
			TripName:     trip.Name,
			ResourceType: domain.ResourceExpense,
			ResourceID:   e.ID,
			Detail:       e.Description,
			OccurredAt:   e.IncurredAt,
			AmountMinor:  e.AmountMinor,
			Currency:     e.Currency,
		})
	}

	media, err := s.media.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: media: %w", err)
	}
	for _, m := range media {
		if !policy.Decide(caller.Role, caller.JoinedAt, domain.ResourceMedia, m.CapturedAt) {
			continue
		}
		rows = append(rows, domain.ExportRow{
			TripID:       trip.ID,
			TripName:     trip.Name,
			ResourceType: domain.ResourceMedia,
			ResourceID:   m.ID,
			Detail:       m.FileName,
			OccurredAt:   m.CapturedAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].OccurredAt.Before(rows[j].OccurredAt)
	})

	return rows, nil
}
