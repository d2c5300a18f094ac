package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripweave/backend/internal/domain"
)

// ParticipantRepo is the participant registry: the persistence contract for
// (trip, user) membership rows. It satisfies policy.Registry via Lookup.
//
// Concurrent UpdateRole/Delete calls against the same row are serialized by
// Postgres single-row update semantics; that is where "immediate effect"
// read-after-write consistency comes from. There is no cache above this layer.
type ParticipantRepo interface {
	// Lookup returns the membership row for (tripID, userID).
	// found=false with a nil error means no membership exists (default deny).
	// An infrastructure failure returns an error wrapping
	// domain.ErrRegistryUnavailable and must never be reported as found=false.
	Lookup(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, bool, error)

	// Create inserts a membership row. joined_at is fixed at insert time and
	// is never updated afterwards. Returns domain.ErrValidation if the user
	// already has a row in the trip.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// UpdateRole changes the role of an existing membership in a single-row
	// transactional update, leaving joined_at untouched.
	// Returns domain.ErrNotFound if no membership exists.
	UpdateRole(ctx context.Context, tripID, userID uuid.UUID, role domain.Role) (domain.Participant, error)

	// Delete removes the membership row; subsequent Lookup calls return
	// found=false. Returns domain.ErrNotFound if no membership exists.
	Delete(ctx context.Context, tripID, userID uuid.UUID) error

	// ListByTrip returns all memberships of a trip, owners first, then by
	// joined_at ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db
// connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

// Lookup fetches one membership row. Distinguishing no-row from I/O failure
// is load-bearing here: the policy evaluator denies on the former and fails
// closed with an error on the latter.
func (r *pgParticipantRepo) Lookup(ctx context.Context, tripID, userID uuid.UUID) (domain.Participant, bool, error) {
	const q = `
		SELECT trip_id, user_id, role, joined_at, created_at, updated_at
		FROM participants
		WHERE trip_id = @trip_id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	p, err := scanParticipant(row)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Participant{}, false, nil
		}
		return domain.Participant{}, false,
			fmt.Errorf("repo.ParticipantRepo.Lookup: %w: %w", domain.ErrRegistryUnavailable, err)
	}
	return p, true, nil
}

// Create inserts a membership row. The primary key on (trip_id, user_id)
// enforces at most one row per pair; a conflict maps to ErrValidation.
func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO participants (trip_id, user_id, role, joined_at)
		VALUES (@trip_id, @user_id, @role, @joined_at)
		RETURNING trip_id, user_id, role, joined_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":   p.TripID,
		"user_id":   p.UserID,
		"role":      string(p.Role),
		"joined_at": p.JoinedAt.UTC(),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanParticipant(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w: user already a member", domain.ErrValidation)
		}
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return result, nil
}

// UpdateRole sets only the role column. joined_at is deliberately absent from
// the SET list: the temporal anchor never moves with the role.
func (r *pgParticipantRepo) UpdateRole(ctx context.Context, tripID, userID uuid.UUID, role domain.Role) (domain.Participant, error) {
	const q = `
		UPDATE participants
		SET role = @role, updated_at = now()
		WHERE trip_id = @trip_id AND user_id = @user_id
		RETURNING trip_id, user_id, role, joined_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id": tripID,
		"user_id": userID,
		"role":    string(role),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.UpdateRole: %w", err)
	}
	return result, nil
}

// Delete removes the membership row by composite key.
func (r *pgParticipantRepo) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	const q = `DELETE FROM participants WHERE trip_id = @trip_id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByTrip returns all memberships of a trip, owners first.
func (r *pgParticipantRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT trip_id, user_id, role, joined_at, created_at, updated_at
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY (role = 'owner') DESC, joined_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTrip: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTrip: rows: %w", err)
	}
	return participants, nil
}

// scanParticipant maps a single database row into a domain.Participant.
// joined_at comes back as timestamptz; it is normalized to UTC so all policy
// comparisons happen on UTC instants regardless of the session time zone.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		tripID pgtype.UUID
		userID pgtype.UUID
		role   string
	)

	err := s.Scan(&tripID, &userID, &role, &p.JoinedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.TripID = uuid.UUID(tripID.Bytes)
	p.UserID = uuid.UUID(userID.Bytes)
	p.Role = domain.Role(role)
	p.JoinedAt = p.JoinedAt.UTC()
	return p, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
