package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// It holds the participant registry as well because creating a trip also
// creates the creator's owner membership, and every read is scoped to the
// caller's memberships.
type TripService struct {
	trips   repo.TripRepo
	members repo.ParticipantRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, members repo.ParticipantRepo) *TripService {
	return &TripService{trips: trips, members: members}
}

// Create validates and persists a new trip together with the caller's owner
// membership. The two inserts share one transaction so a failed membership
// insert cannot leave behind a trip nobody belongs to. The owner's JoinedAt
// is the creation instant, though the owner role makes it irrelevant to
// visibility.
func (s *TripService) Create(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	trip.OwnerID = callerID
	created, err := s.trips.CreateWithOwner(ctx, trip, domain.Participant{
		UserID:   callerID,
		Role:     domain.RoleOwner,
		JoinedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip. Non-members get ErrNotFound.
func (s *TripService) GetByID(ctx context.Context, callerID, tripID uuid.UUID) (domain.Trip, error) {
	_, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	if !found {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of the trips the caller belongs to.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, callerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListByMember(ctx, callerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and updates an existing trip. Owner role required.
func (s *TripService) Update(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if err := s.requireOwnerRole(ctx, trip.ID, callerID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip and, via ON DELETE CASCADE, all its memberships and
// resources. Owner role required.
func (s *TripService) Delete(ctx context.Context, callerID, tripID uuid.UUID) error {
	if err := s.requireOwnerRole(ctx, tripID, callerID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// requireOwnerRole checks the caller holds the owner role in the trip.
func (s *TripService) requireOwnerRole(ctx context.Context, tripID, callerID uuid.UUID) error {
	caller, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	if caller.Role != domain.RoleOwner {
		return domain.ErrForbidden
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - StartDate must be set.
//   - EndDate, if set, must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if trip.EndDate != nil && trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
