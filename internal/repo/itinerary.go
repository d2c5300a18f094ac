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

// ItineraryRepo defines the persistence operations for ItineraryItems.
// Visibility filtering does NOT happen here: repos return every row of the
// trip and the service layer applies the policy decision per row.
type ItineraryRepo interface {
	Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)

	// GetByID retrieves a single item scoped to the given trip.
	// Returns domain.ErrNotFound if no such item exists under that trip.
	GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.ItineraryItem, error)

	// ListByTrip returns all items of a trip ordered by starts_at ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error)

	Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	Delete(ctx context.Context, tripID, itemID uuid.UUID) error
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

func (r *pgItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	const q = `
		INSERT INTO itinerary_items (trip_id, title, location, starts_at, ends_at, notes)
		VALUES (@trip_id, @title, @location, @starts_at, @ends_at, @notes)
		RETURNING id, trip_id, title, location, starts_at, ends_at, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":   item.TripID,
		"title":     item.Title,
		"location":  item.Location,
		"starts_at": item.StartsAt.UTC(),
		"ends_at":   item.EndsAt,
		"notes":     item.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItineraryItem(row)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, tripID, itemID uuid.UUID) (domain.ItineraryItem, error) {
	const q = `
		SELECT id, trip_id, title, location, starts_at, ends_at, notes, created_at, updated_at
		FROM itinerary_items
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	result, err := scanItineraryItem(row)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	const q = `
		SELECT id, trip_id, title, location, starts_at, ends_at, notes, created_at, updated_at
		FROM itinerary_items
		WHERE trip_id = @trip_id
		ORDER BY starts_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	items := []domain.ItineraryItem{}
	for rows.Next() {
		item, err := scanItineraryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByTrip: rows: %w", err)
	}
	return items, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	const q = `
		UPDATE itinerary_items
		SET title      = @title,
		    location   = @location,
		    starts_at  = @starts_at,
		    ends_at    = @ends_at,
		    notes      = @notes,
		    updated_at = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING id, trip_id, title, location, starts_at, ends_at, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":        item.ID,
		"trip_id":   item.TripID,
		"title":     item.Title,
		"location":  item.Location,
		"starts_at": item.StartsAt.UTC(),
		"ends_at":   item.EndsAt,
		"notes":     item.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItineraryItem(row)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, tripID, itemID uuid.UUID) error {
	const q = `DELETE FROM itinerary_items WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": itemID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanItineraryItem maps a single database row into a domain.ItineraryItem.
// starts_at is normalized to UTC for policy comparisons.
func scanItineraryItem(s scanner) (domain.ItineraryItem, error) {
	var (
		item   domain.ItineraryItem
		id     pgtype.UUID
		tripID pgtype.UUID
		endsAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &tripID, &item.Title, &item.Location, &item.StartsAt, &endsAt,
		&item.Notes, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		}
		return domain.ItineraryItem{}, err
	}

	item.ID = uuid.UUID(id.Bytes)
	item.TripID = uuid.UUID(tripID.Bytes)
	item.StartsAt = item.StartsAt.UTC()
	if endsAt.Valid {
		ea := endsAt.Time.UTC()
		item.EndsAt = &ea
	}
	return item, nil
}
