// Package service contains the business logic for the TripWeave API.
// Services validate inputs, enforce role-based rules, and orchestrate repo
// calls. No SQL lives here: services depend on repo interfaces, not
// implementations. The caller's user ID is always an explicit argument,
// never ambient state.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
)

// MembershipService is the role lifecycle handler: it owns every mutation of
// the participant registry. Role changes take effect on the next policy
// evaluation because nothing caches between the registry and the evaluator.
type MembershipService struct {
	members repo.ParticipantRepo
}

// NewMembershipService constructs a MembershipService backed by the provided
// participant registry.
func NewMembershipService(members repo.ParticipantRepo) *MembershipService {
	return &MembershipService{members: members}
}

// AddMember creates a membership row for userID, the invite-acceptance path.
// Only a trip owner may add members. JoinedAt is fixed to the current UTC
// instant at creation and never moves afterwards.
// New members join as participant or viewer; the owner role is only ever
// granted through Promote.
func (s *MembershipService) AddMember(ctx context.Context, callerID, tripID, userID uuid.UUID, role domain.Role) (domain.Participant, error) {
	if err := s.requireOwner(ctx, tripID, callerID); err != nil {
		return domain.Participant{}, fmt.Errorf("service.MembershipService.AddMember: %w", err)
	}
	if !role.Valid() || role == domain.RoleOwner {
		return domain.Participant{}, fmt.Errorf("%w: new members must join as participant or viewer", domain.ErrValidation)
	}

	p := domain.Participant{
		TripID:   tripID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	created, err := s.members.Create(ctx, p)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.MembershipService.AddMember: %w", err)
	}
	return created, nil
}

// Promote changes the role of an existing member. Owner-only.
//
// The target's JoinedAt is untouched: promoting a participant to owner does
// not rewrite history, but because the evaluator short-circuits on the owner
// role, the new owner immediately sees all historical resources anyway.
// There is no transition out of owner; demoting an owner is rejected.
func (s *MembershipService) Promote(ctx context.Context, callerID, tripID, userID uuid.UUID, newRole domain.Role) (domain.Participant, error) {
	if err := s.requireOwner(ctx, tripID, callerID); err != nil {
		return domain.Participant{}, fmt.Errorf("service.MembershipService.Promote: %w", err)
	}
	if !newRole.Valid() {
		return domain.Participant{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, newRole)
	}

	target, found, err := s.members.Lookup(ctx, tripID, userID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.MembershipService.Promote: %w", err)
	}
	if !found {
		return domain.Participant{}, fmt.Errorf("service.MembershipService.Promote: %w", domain.ErrNotFound)
	}
	if target.Role == domain.RoleOwner {
		return domain.Participant{}, fmt.Errorf("%w: owners cannot be demoted", domain.ErrValidation)
	}

	updated, err := s.members.UpdateRole(ctx, tripID, userID, newRole)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.MembershipService.Promote: %w", err)
	}
	return updated, nil
}

// Remove deletes a membership row. Owner-only. The removed user's very next
// visibility check falls through to default deny (row not found).
// Members holding the owner role cannot be removed.
func (s *MembershipService) Remove(ctx context.Context, callerID, tripID, userID uuid.UUID) error {
	if err := s.requireOwner(ctx, tripID, callerID); err != nil {
		return fmt.Errorf("service.MembershipService.Remove: %w", err)
	}

	target, found, err := s.members.Lookup(ctx, tripID, userID)
	if err != nil {
		return fmt.Errorf("service.MembershipService.Remove: %w", err)
	}
	if !found {
		return fmt.Errorf("service.MembershipService.Remove: %w", domain.ErrNotFound)
	}
	if target.Role == domain.RoleOwner {
		return fmt.Errorf("%w: owners cannot be removed", domain.ErrValidation)
	}

	if err := s.members.Delete(ctx, tripID, userID); err != nil {
		return fmt.Errorf("service.MembershipService.Remove: %w", err)
	}
	return nil
}

// ListMembers returns all memberships of a trip. Any member may list.
// Non-members get ErrNotFound so the trip's existence is not leaked.
func (s *MembershipService) ListMembers(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Participant, error) {
	_, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return nil, fmt.Errorf("service.MembershipService.ListMembers: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service.MembershipService.ListMembers: %w", domain.ErrNotFound)
	}

	members, err := s.members.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MembershipService.ListMembers: %w", err)
	}
	if members == nil {
		return []domain.Participant{}, nil
	}
	return members, nil
}

// requireOwner verifies the caller holds the owner role in the trip.
// Non-members get ErrNotFound (existence hidden); non-owner members get
// ErrForbidden.
func (s *MembershipService) requireOwner(ctx context.Context, tripID, callerID uuid.UUID) error {
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
