package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/policy"
	"github.com/tripweave/backend/internal/repo"
)

// ItineraryService implements business logic for itinerary items and enforces
// the visibility policy on every read.
//
// Listing uses the batch path: one registry lookup per (trip, caller), then a
// pure policy decision per row. Single reads go through the evaluator.
type ItineraryService struct {
	members repo.ParticipantRepo
	items   repo.ItineraryRepo
	eval    *policy.Evaluator
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(members repo.ParticipantRepo, items repo.ItineraryRepo) *ItineraryService {
	return &ItineraryService{
		members: members,
		items:   items,
		eval:    policy.NewEvaluator(members),
	}
}

// Create validates and persists a new itinerary item.
// Viewers are read-only; owners and participants may create.
func (s *ItineraryService) Create(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if err := requireWriter(ctx, s.members, item.TripID, callerID); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	if err := validateItineraryItem(item); err != nil {
		return domain.ItineraryItem{}, err
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single item if the caller may see it; an item hidden by
// policy is indistinguishable from one that does not exist.
func (s *ItineraryService) GetByID(ctx context.Context, callerID, tripID, itemID uuid.UUID) (domain.ItineraryItem, error) {
	item, err := s.items.GetByID(ctx, tripID, itemID)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}

	visible, err := s.eval.CanSee(ctx, tripID, callerID, domain.ResourceItinerary, item.StartsAt)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	if !visible {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.GetByID: %w", domain.ErrNotFound)
	}
	return item, nil
}

// ListByTrip returns the items of a trip visible to the caller, starts_at
// ascending. Non-members get ErrNotFound.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	caller, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", domain.ErrNotFound)
	}

	items, err := s.items.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", err)
	}

	visible := []domain.ItineraryItem{}
	for _, item := range items {
		if policy.Decide(caller.Role, caller.JoinedAt, domain.ResourceItinerary, item.StartsAt) {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

// Update validates and persists changes to an existing item. The caller must
// hold a writing role and must be able to see the current row.
func (s *ItineraryService) Update(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if err := requireWriter(ctx, s.members, item.TripID, callerID); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	if _, err := s.GetByID(ctx, callerID, item.TripID, item.ID); err != nil {
		return domain.ItineraryItem{}, err
	}
	if err := validateItineraryItem(item); err != nil {
		return domain.ItineraryItem{}, err
	}

	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an item. Same role and visibility requirements as Update.
func (s *ItineraryService) Delete(ctx context.Context, callerID, tripID, itemID uuid.UUID) error {
	if err := requireWriter(ctx, s.members, tripID, callerID); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	if _, err := s.GetByID(ctx, callerID, tripID, itemID); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, tripID, itemID); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// requireWriter checks that the caller is a member with a role allowed to
// mutate trip resources. Viewers are read-only; non-members get ErrNotFound.
// Shared by the three resource services.
func requireWriter(ctx context.Context, members repo.ParticipantRepo, tripID, callerID uuid.UUID) error {
	caller, found, err := members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	if caller.Role == domain.RoleViewer {
		return domain.ErrForbidden
	}
	return nil
}

// validateItineraryItem enforces business rules common to Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - StartsAt must be set (the policy engine needs a defining timestamp).
//   - EndsAt, if set, must not be before StartsAt.
func validateItineraryItem(item domain.ItineraryItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if item.StartsAt.IsZero() {
		return fmt.Errorf("%w: starts_at is required", domain.ErrValidation)
	}
	if item.EndsAt != nil && item.EndsAt.Before(item.StartsAt) {
		return fmt.Errorf("%w: ends_at must not be before starts_at", domain.ErrValidation)
	}
	return nil
}
