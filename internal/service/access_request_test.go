package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func newAccessRequestService(requests *mockAccessRequestRepo, members *mockParticipantRepo) *service.AccessRequestService {
	return service.NewAccessRequestService(requests, members, service.NewMembershipService(members))
}

func pendingRequest(id uuid.UUID) domain.AccessRequest {
	return domain.AccessRequest{
		ID:      id,
		TripID:  tripID,
		UserID:  carolID,
		Status:  domain.AccessRequestPending,
		Message: "joining the driving rotation",
	}
}

// ---- Request ---------------------------------------------------------------

func TestAccessRequestService_Request_ViewerFilesPending(t *testing.T) {
	var created domain.AccessRequest
	requests := &mockAccessRequestRepo{
		create: func(_ context.Context, ar domain.AccessRequest) (domain.AccessRequest, error) {
			ar.ID = uuid.New()
			ar.Status = domain.AccessRequestPending
			created = ar
			return ar, nil
		},
	}
	svc := newAccessRequestService(requests, crew())

	got, err := svc.Request(context.Background(), carolID, tripID, "joining the driving rotation")

	require.NoError(t, err)
	assert.Equal(t, domain.AccessRequestPending, got.Status)
	assert.Equal(t, carolID, created.UserID)
}

func TestAccessRequestService_Request_ParticipantRejected(t *testing.T) {
	svc := newAccessRequestService(&mockAccessRequestRepo{}, crew())

	_, err := svc.Request(context.Background(), aliceID, tripID, "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAccessRequestService_Request_NonMemberNotFound(t *testing.T) {
	svc := newAccessRequestService(&mockAccessRequestRepo{}, crew())

	_, err := svc.Request(context.Background(), strangerID, tripID, "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccessRequestService_Request_DuplicatePendingRejected(t *testing.T) {
	requests := &mockAccessRequestRepo{
		create: func(_ context.Context, _ domain.AccessRequest) (domain.AccessRequest, error) {
			// The partial unique index surfaces as a validation error.
			return domain.AccessRequest{}, domain.ErrValidation
		},
	}
	svc := newAccessRequestService(requests, crew())

	_, err := svc.Request(context.Background(), carolID, tripID, "again")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- ListPending -----------------------------------------------------------

func TestAccessRequestService_ListPending_OwnerOnly(t *testing.T) {
	svc := newAccessRequestService(&mockAccessRequestRepo{}, crew())

	_, err := svc.ListPending(context.Background(), carolID, tripID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAccessRequestService_ListPending_EmptyIsNonNil(t *testing.T) {
	requests := &mockAccessRequestRepo{
		listPendingByTrip: func(_ context.Context, _ uuid.UUID) ([]domain.AccessRequest, error) {
			return nil, nil
		},
	}
	svc := newAccessRequestService(requests, crew())

	got, err := svc.ListPending(context.Background(), ownerID, tripID)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Approve ---------------------------------------------------------------

func TestAccessRequestService_Approve_PromotesRequester(t *testing.T) {
	requestID := uuid.New()
	members := crew()
	var promotedTo domain.Role
	members.updateRole = func(_ context.Context, _, userID uuid.UUID, role domain.Role) (domain.Participant, error) {
		promotedTo = role
		return domain.Participant{TripID: tripID, UserID: userID, Role: role, JoinedAt: joinInstant}, nil
	}
	requests := &mockAccessRequestRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.AccessRequest, error) {
			return pendingRequest(requestID), nil
		},
		decide: func(_ context.Context, _, id, decidedBy uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error) {
			ar := pendingRequest(id)
			ar.Status = status
			ar.DecidedByID = &decidedBy
			now := time.Now().UTC()
			ar.DecidedAt = &now
			return ar, nil
		},
	}
	svc := newAccessRequestService(requests, members)

	got, err := svc.Approve(context.Background(), ownerID, tripID, requestID)

	require.NoError(t, err)
	assert.Equal(t, domain.AccessRequestApproved, got.Status)
	assert.Equal(t, domain.RoleParticipant, promotedTo)
	require.NotNil(t, got.DecidedByID)
	assert.Equal(t, ownerID, *got.DecidedByID)
}

func TestAccessRequestService_Approve_AlreadyDecidedRejected(t *testing.T) {
	requestID := uuid.New()
	requests := &mockAccessRequestRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.AccessRequest, error) {
			ar := pendingRequest(requestID)
			ar.Status = domain.AccessRequestApproved
			return ar, nil
		},
	}
	svc := newAccessRequestService(requests, crew())

	_, err := svc.Approve(context.Background(), ownerID, tripID, requestID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAccessRequestService_Approve_LostRaceDoesNotPromote(t *testing.T) {
	// The request reads as pending, but a concurrent decision claims it
	// before our update lands. The loser must not promote anyone.
	requestID := uuid.New()
	members := crew()
	members.updateRole = func(_ context.Context, _, _ uuid.UUID, _ domain.Role) (domain.Participant, error) {
		t.Fatal("a lost decision race must not touch roles")
		return domain.Participant{}, nil
	}
	requests := &mockAccessRequestRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.AccessRequest, error) {
			return pendingRequest(requestID), nil
		},
		decide: func(_ context.Context, _, _, _ uuid.UUID, _ domain.AccessRequestStatus) (domain.AccessRequest, error) {
			return domain.AccessRequest{}, domain.ErrNotFound
		},
	}
	svc := newAccessRequestService(requests, members)

	_, err := svc.Approve(context.Background(), ownerID, tripID, requestID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAccessRequestService_Approve_NonOwnerForbidden(t *testing.T) {
	svc := newAccessRequestService(&mockAccessRequestRepo{}, crew())

	_, err := svc.Approve(context.Background(), aliceID, tripID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ---- Deny ------------------------------------------------------------------

func TestAccessRequestService_Deny_NoRoleChange(t *testing.T) {
	requestID := uuid.New()
	members := crew()
	members.updateRole = func(_ context.Context, _, _ uuid.UUID, _ domain.Role) (domain.Participant, error) {
		t.Fatal("deny must not touch roles")
		return domain.Participant{}, nil
	}
	requests := &mockAccessRequestRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.AccessRequest, error) {
			return pendingRequest(requestID), nil
		},
		decide: func(_ context.Context, _, id, _ uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error) {
			ar := pendingRequest(id)
			ar.Status = status
			return ar, nil
		},
	}
	svc := newAccessRequestService(requests, members)

	got, err := svc.Deny(context.Background(), ownerID, tripID, requestID)

	require.NoError(t, err)
	assert.Equal(t, domain.AccessRequestDenied, got.Status)
}

func TestAccessRequestService_Deny_AlreadyDecidedRejected(t *testing.T) {
	// Deny reports an already-decided request exactly as Approve does.
	requestID := uuid.New()
	requests := &mockAccessRequestRepo{
		getByID: func(_ context.Context, _, _ uuid.UUID) (domain.AccessRequest, error) {
			ar := pendingRequest(requestID)
			ar.Status = domain.AccessRequestDenied
			return ar, nil
		},
	}
	svc := newAccessRequestService(requests, crew())

	_, err := svc.Deny(context.Background(), ownerID, tripID, requestID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
