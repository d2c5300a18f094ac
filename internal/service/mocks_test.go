package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones your test needs. Shared by all the
// service test files in this package.

type mockParticipantRepo struct {
	lookup     func(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, bool, error)
	create     func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	updateRole func(ctx context.Context, tripID, userID uuid.UUID, role domain.Role) (domain.Participant, error)
	delete     func(ctx context.Context, tripID, userID uuid.UUID) error
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

func (m *mockParticipantRepo) Lookup(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, bool, error) {
	return m.lookup(ctx, tripID, userID)
}
func (m *mockParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantRepo) UpdateRole(ctx context.Context, tripID, userID uuid.UUID, role domain.Role) (domain.Participant, error) {
	return m.updateRole(ctx, tripID, userID, role)
}
func (m *mockParticipantRepo) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	return m.delete(ctx, tripID, userID)
}
func (m *mockParticipantRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTrip(ctx, tripID)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

type mockTripRepo struct {
	create          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	createWithOwner func(ctx context.Context, trip domain.Trip, owner domain.Participant) (domain.Trip, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByMember    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update          func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) CreateWithOwner(ctx context.Context, trip domain.Trip, owner domain.Participant) (domain.Trip, error) {
	return m.createWithOwner(ctx, trip, owner)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByMember(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByMember(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockItineraryRepo struct {
	create     func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	getByID    func(ctx context.Context, tripID, itemID uuid.UUID) (domain.ItineraryItem, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	update     func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	delete     func(ctx context.Context, tripID, itemID uuid.UUID) error
}

func (m *mockItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.create(ctx, item)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.ItineraryItem, error) {
	return m.getByID(ctx, tripID, itemID)
}
func (m *mockItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockItineraryRepo) Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.update(ctx, item)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	return m.delete(ctx, tripID, itemID)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

type mockExpenseRepo struct {
	create     func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	getByID    func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update     func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete     func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, expenseID)
}
func (m *mockExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockMediaRepo struct {
	create     func(ctx context.Context, m domain.MediaFile) (domain.MediaFile, error)
	getByID    func(ctx context.Context, tripID, mediaID uuid.UUID) (domain.MediaFile, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.MediaFile, error)
	delete     func(ctx context.Context, tripID, mediaID uuid.UUID) error
}

func (m *mockMediaRepo) Create(ctx context.Context, mf domain.MediaFile) (domain.MediaFile, error) {
	return m.create(ctx, mf)
}
func (m *mockMediaRepo) GetByID(ctx context.Context, tripID, mediaID uuid.UUID) (domain.MediaFile, error) {
	return m.getByID(ctx, tripID, mediaID)
}
func (m *mockMediaRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.MediaFile, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockMediaRepo) Delete(ctx context.Context, tripID, mediaID uuid.UUID) error {
	return m.delete(ctx, tripID, mediaID)
}

var _ repo.MediaRepo = (*mockMediaRepo)(nil)

type mockAccessRequestRepo struct {
	create            func(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error)
	getByID           func(ctx context.Context, tripID, requestID uuid.UUID) (domain.AccessRequest, error)
	listPendingByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.AccessRequest, error)
	decide            func(ctx context.Context, tripID, requestID, decidedBy uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error)
}

func (m *mockAccessRequestRepo) Create(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error) {
	return m.create(ctx, ar)
}
func (m *mockAccessRequestRepo) GetByID(ctx context.Context, tripID, requestID uuid.UUID) (domain.AccessRequest, error) {
	return m.getByID(ctx, tripID, requestID)
}
func (m *mockAccessRequestRepo) ListPendingByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.AccessRequest, error) {
	return m.listPendingByTrip(ctx, tripID)
}
func (m *mockAccessRequestRepo) Decide(ctx context.Context, tripID, requestID, decidedBy uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error) {
	return m.decide(ctx, tripID, requestID, decidedBy, status)
}

var _ repo.AccessRequestRepo = (*mockAccessRequestRepo)(nil)

// ---- shared fixtures -------------------------------------------------------

var (
	tripID     = uuid.MustParse("5d2c7b1a-0001-4000-8000-00000000000a")
	ownerID    = uuid.MustParse("5d2c7b1a-0002-4000-8000-00000000000b")
	aliceID    = uuid.MustParse("5d2c7b1a-0003-4000-8000-00000000000c")
	carolID    = uuid.MustParse("5d2c7b1a-0004-4000-8000-00000000000d")
	strangerID = uuid.MustParse("5d2c7b1a-0005-4000-8000-00000000000e")

	joinInstant = time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
)

// membershipTable returns a participant repo whose Lookup answers from a fixed
// role map. Users absent from the map are non-members; every member shares
// joinInstant as their join time unless overridden in the test itself.
func membershipTable(roles map[uuid.UUID]domain.Role) *mockParticipantRepo {
	return &mockParticipantRepo{
		lookup: func(_ context.Context, trip, user uuid.UUID) (domain.Participant, bool, error) {
			role, ok := roles[user]
			if !ok {
				return domain.Participant{}, false, nil
			}
			return domain.Participant{
				TripID:   trip,
				UserID:   user,
				Role:     role,
				JoinedAt: joinInstant,
			}, true, nil
		},
	}
}

// crew is the standard membership cast: an owner, a participant, and a viewer.
func crew() *mockParticipantRepo {
	return membershipTable(map[uuid.UUID]domain.Role{
		ownerID: domain.RoleOwner,
		aliceID: domain.RoleParticipant,
		carolID: domain.RoleViewer,
	})
}
