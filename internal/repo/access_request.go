package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripweave/backend/internal/domain"
)

// AccessRequestRepo defines the persistence operations for AccessRequests.
type AccessRequestRepo interface {
	// Create inserts a pending request. A partial unique index on
	// (trip_id, user_id) WHERE status = 'pending' enforces at most one open
	// request per member; a conflict maps to domain.ErrValidation.
	Create(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error)

	// GetByID retrieves a single request scoped to the given trip.
	// Returns domain.ErrNotFound if no such request exists under that trip.
	GetByID(ctx context.Context, tripID, requestID uuid.UUID) (domain.AccessRequest, error)

	// ListPendingByTrip returns all pending requests of a trip, oldest first.
	ListPendingByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.AccessRequest, error)

	// Decide moves a pending request to approved or denied, recording the
	// deciding user and instant. Returns domain.ErrNotFound if the request
	// does not exist or is no longer pending.
	Decide(ctx context.Context, tripID, requestID, decidedBy uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error)
}

type pgAccessRequestRepo struct {
	db db
}

// NewAccessRequestRepo constructs an AccessRequestRepo backed by the provided
// db connection.
func NewAccessRequestRepo(db db) AccessRequestRepo {
	return &pgAccessRequestRepo{db: db}
}

func (r *pgAccessRequestRepo) Create(ctx context.Context, ar domain.AccessRequest) (domain.AccessRequest, error) {
	const q = `
		INSERT INTO access_requests (trip_id, user_id, status, message)
		VALUES (@trip_id, @user_id, 'pending', @message)
		RETURNING id, trip_id, user_id, status, message, decided_by_id, decided_at, created_at`

	args := pgx.NamedArgs{
		"trip_id": ar.TripID,
		"user_id": ar.UserID,
		"message": ar.Message,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAccessRequest(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.AccessRequest{}, fmt.Errorf("repo.AccessRequestRepo.Create: %w: request already pending", domain.ErrValidation)
		}
		return domain.AccessRequest{}, fmt.Errorf("repo.AccessRequestRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAccessRequestRepo) GetByID(ctx context.Context, tripID, requestID uuid.UUID) (domain.AccessRequest, error) {
	const q = `
		SELECT id, trip_id, user_id, status, message, decided_by_id, decided_at, created_at
		FROM access_requests
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": requestID, "trip_id": tripID})
	result, err := scanAccessRequest(row)
	if err != nil {
		return domain.AccessRequest{}, fmt.Errorf("repo.AccessRequestRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgAccessRequestRepo) ListPendingByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.AccessRequest, error) {
	const q = `
		SELECT id, trip_id, user_id, status, message, decided_by_id, decided_at, created_at
		FROM access_requests
		WHERE trip_id = @trip_id AND status = 'pending'
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.AccessRequestRepo.ListPendingByTrip: %w", err)
	}
	defer rows.Close()

	requests := []domain.AccessRequest{}
	for rows.Next() {
		ar, err := scanAccessRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AccessRequestRepo.ListPendingByTrip: scan: %w", err)
		}
		requests = append(requests, ar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AccessRequestRepo.ListPendingByTrip: rows: %w", err)
	}
	return requests, nil
}

// Decide flips a pending request in a single-row update. The status guard in
// the WHERE clause makes concurrent approvals resolve to exactly one winner.
func (r *pgAccessRequestRepo) Decide(ctx context.Context, tripID, requestID, decidedBy uuid.UUID, status domain.AccessRequestStatus) (domain.AccessRequest, error) {
	const q = `
		UPDATE access_requests
		SET status = @status, decided_by_id = @decided_by, decided_at = now()
		WHERE id = @id AND trip_id = @trip_id AND status = 'pending'
		RETURNING id, trip_id, user_id, status, message, decided_by_id, decided_at, created_at`

	args := pgx.NamedArgs{
		"id":         requestID,
		"trip_id":    tripID,
		"status":     string(status),
		"decided_by": decidedBy,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanAccessRequest(row)
	if err != nil {
		return domain.AccessRequest{}, fmt.Errorf("repo.AccessRequestRepo.Decide: %w", err)
	}
	return result, nil
}

// scanAccessRequest maps a single database row into a domain.AccessRequest.
func scanAccessRequest(s scanner) (domain.AccessRequest, error) {
	var (
		ar        domain.AccessRequest
		id        pgtype.UUID
		tripID    pgtype.UUID
		userID    pgtype.UUID
		status    string
		decidedBy pgtype.UUID
		decidedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &tripID, &userID, &status, &ar.Message, &decidedBy, &decidedAt, &ar.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccessRequest{}, domain.ErrNotFound
		}
		return domain.AccessRequest{}, err
	}

	ar.ID = uuid.UUID(id.Bytes)
	ar.TripID = uuid.UUID(tripID.Bytes)
	ar.UserID = uuid.UUID(userID.Bytes)
	ar.Status = domain.AccessRequestStatus(status)
	if decidedBy.Valid {
		db := uuid.UUID(decidedBy.Bytes)
		ar.DecidedByID = &db
	}
	if decidedAt.Valid {
		da := decidedAt.Time
		ar.DecidedAt = &da
	}
	return ar, nil
}
