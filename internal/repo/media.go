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

// MediaRepo defines the persistence operations for MediaFile metadata.
// Object storage upload/download is an external concern; only the metadata
// rows that feed the visibility policy live here.
type MediaRepo interface {
	Create(ctx context.Context, m domain.MediaFile) (domain.MediaFile, error)

	// GetByID retrieves a single media record scoped to the given trip.
	// Returns domain.ErrNotFound if no such record exists under that trip.
	GetByID(ctx context.Context, tripID, mediaID uuid.UUID) (domain.MediaFile, error)

	// ListByTrip returns all media of a trip ordered by captured_at ascending.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.MediaFile, error)

	Delete(ctx context.Context, tripID, mediaID uuid.UUID) error
}

type pgMediaRepo struct {
	db db
}

// NewMediaRepo constructs a MediaRepo backed by the provided db connection.
func NewMediaRepo(db db) MediaRepo {
	return &pgMediaRepo{db: db}
}

func (r *pgMediaRepo) Create(ctx context.Context, m domain.MediaFile) (domain.MediaFile, error) {
	const q = `
		INSERT INTO media_files (trip_id, uploaded_by_id, file_name, content_type, storage_key, captured_at)
		VALUES (@trip_id, @uploaded_by_id, @file_name, @content_type, @storage_key, @captured_at)
		RETURNING id, trip_id, uploaded_by_id, file_name, content_type, storage_key, captured_at, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":        m.TripID,
		"uploaded_by_id": m.UploadedByID,
		"file_name":      m.FileName,
		"content_type":   m.ContentType,
		"storage_key":    m.StorageKey,
		"captured_at":    m.CapturedAt.UTC(),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanMediaFile(row)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("repo.MediaRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMediaRepo) GetByID(ctx context.Context, tripID, mediaID uuid.UUID) (domain.MediaFile, error) {
	const q = `
		SELECT id, trip_id, uploaded_by_id, file_name, content_type, storage_key, captured_at, created_at, updated_at
		FROM media_files
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": mediaID, "trip_id": tripID})
	result, err := scanMediaFile(row)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("repo.MediaRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgMediaRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.MediaFile, error) {
	const q = `
		SELECT id, trip_id, uploaded_by_id, file_name, content_type, storage_key, captured_at, created_at, updated_at
		FROM media_files
		WHERE trip_id = @trip_id
		ORDER BY captured_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.MediaRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	media := []domain.MediaFile{}
	for rows.Next() {
		m, err := scanMediaFile(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MediaRepo.ListByTrip: scan: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MediaRepo.ListByTrip: rows: %w", err)
	}
	return media, nil
}

func (r *pgMediaRepo) Delete(ctx context.Context, tripID, mediaID uuid.UUID) error {
	const q = `DELETE FROM media_files WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": mediaID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.MediaRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.MediaRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanMediaFile maps a single database row into a domain.MediaFile.
func scanMediaFile(s scanner) (domain.MediaFile, error) {
	var (
		m          domain.MediaFile
		id         pgtype.UUID
		tripID     pgtype.UUID
		uploadedBy pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &uploadedBy, &m.FileName, &m.ContentType, &m.StorageKey,
		&m.CapturedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MediaFile{}, domain.ErrNotFound
		}
		return domain.MediaFile{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	m.TripID = uuid.UUID(tripID.Bytes)
	m.UploadedByID = uuid.UUID(uploadedBy.Bytes)
	m.CapturedAt = m.CapturedAt.UTC()
	return m, nil
}
