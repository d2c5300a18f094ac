package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
)

// AccessRequestService implements the viewer-to-participant upgrade flow.
// Approval routes the role change through the MembershipService so the
// promotion is subject to the same lifecycle rules as any other.
type AccessRequestService struct {
	requests   repo.AccessRequestRepo
	members    repo.ParticipantRepo
	membership *MembershipService
}

// NewAccessRequestService constructs an AccessRequestService backed by the
// provided repos and membership service.
func NewAccessRequestService(requests repo.AccessRequestRepo, members repo.ParticipantRepo, membership *MembershipService) *AccessRequestService {
	return &AccessRequestService{requests: requests, members: members, membership: membership}
}

// Request files a pending access request for the caller.
// Only viewers have anything to request: owners and participants already hold
// the role, so their requests are rejected as validation errors.
func (s *AccessRequestService) Request(ctx context.Context, callerID, tripID uuid.UUID, message string) (domain.AccessRequest, error) {
	caller, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Request: %w", err)
	}
	if !found {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Request: %w", domain.ErrNotFound)
	}
	if caller.Role != domain.RoleViewer {
		return domain.AccessRequest{}, fmt.Errorf("%w: only viewers can request participant access", domain.ErrValidation)
	}

	created, err := s.requests.Create(ctx, domain.AccessRequest{
		TripID:  tripID,
		UserID:  callerID,
		Message: message,
	})
	if err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Request: %w", err)
	}
	return created, nil
}

// ListPending returns a trip's open requests. Owner-only.
// Always returns a non-nil slice so callers can safely range over it.
func (s *AccessRequestService) ListPending(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.AccessRequest, error) {
	if err := s.requireOwnerRole(ctx, tripID, callerID); err != nil {
		return nil, fmt.Errorf("service.AccessRequestService.ListPending: %w", err)
	}

	requests, err := s.requests.ListPendingByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.AccessRequestService.ListPending: %w", err)
	}
	if requests == nil {
		return []domain.AccessRequest{}, nil
	}
	return requests, nil
}

// Approve grants a pending request: the request is claimed as approved first,
// then the requester is promoted from viewer to participant with immediate
// effect. Claiming before promoting means a decision that loses the race to a
// concurrent Deny never promotes anyone. Owner-only. The requester's JoinedAt
// does not move: they gain the participant temporal window anchored at their
// original join instant.
func (s *AccessRequestService) Approve(ctx context.Context, callerID, tripID, requestID uuid.UUID) (domain.AccessRequest, error) {
	if err := s.requireOwnerRole(ctx, tripID, callerID); err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Approve: %w", err)
	}

	decided, err := s.claim(ctx, callerID, tripID, requestID, domain.AccessRequestApproved)
	if err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Approve: %w", err)
	}

	if _, err := s.membership.Promote(ctx, callerID, tripID, decided.UserID, domain.RoleParticipant); err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Approve: %w", err)
	}
	return decided, nil
}

// Deny closes a pending request without any role change. Owner-only.
func (s *AccessRequestService) Deny(ctx context.Context, callerID, tripID, requestID uuid.UUID) (domain.AccessRequest, error) {
	if err := s.requireOwnerRole(ctx, tripID, callerID); err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Deny: %w", err)
	}

	decided, err := s.claim(ctx, callerID, tripID, requestID, domain.AccessRequestDenied)
	if err != nil {
		return domain.AccessRequest{}, fmt.Errorf("service.AccessRequestService.Deny: %w", err)
	}
	return decided, nil
}

// claim moves a pending request to the given terminal status. An unknown
// request is ErrNotFound; one that is already decided, whether observed up
// front or lost to a concurrent decision between the read and the update, is
// ErrValidation so Approve and Deny report the condition identically.
func (s *AccessRequestService) claim(ctx context.Context, callerID, tripID, requestID uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error) {
	ar, err := s.requests.GetByID(ctx, tripID, requestID)
	if err != nil {
		return domain.AccessRequest{}, err
	}
	if ar.Status != domain.AccessRequestPending {
		return domain.AccessRequest{}, fmt.Errorf("%w: request already decided", domain.ErrValidation)
	}

	decided, err := s.requests.Decide(ctx, tripID, requestID, callerID, status)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.AccessRequest{}, fmt.Errorf("%w: request already decided", domain.ErrValidation)
	}
	if err != nil {
		return domain.AccessRequest{}, err
	}
	return decided, nil
}

func (s *AccessRequestService) requireOwnerRole(ctx context.Context, tripID, callerID uuid.UUID) error {
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
