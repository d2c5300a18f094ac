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

// MediaService implements business logic for media file metadata and enforces
// the visibility policy on every read. Media follows the itinerary pattern:
// viewers see everything, participants are temporally scoped by capture date.
type MediaService struct {
	members repo.ParticipantRepo
	media   repo.MediaRepo
	eval    *policy.Evaluator
}

// NewMediaService constructs a MediaService backed by the provided repos.
func NewMediaService(members repo.ParticipantRepo, media repo.MediaRepo) *MediaService {
	return &MediaService{
		members: members,
		media:   media,
		eval:    policy.NewEvaluator(members),
	}
}

// Create validates and persists a media record, recording the caller as
// uploader. Viewers are read-only.
func (s *MediaService) Create(ctx context.Context, callerID uuid.UUID, m domain.MediaFile) (domain.MediaFile, error) {
	if err := requireWriter(ctx, s.members, m.TripID, callerID); err != nil {
		return domain.MediaFile{}, fmt.Errorf("service.MediaService.Create: %w", err)
	}
	m.UploadedByID = callerID
	if err := validateMediaFile(m); err != nil {
		return domain.MediaFile{}, err
	}

	created, err := s.media.Create(ctx, m)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("service.MediaService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single media record if the caller may see it.
func (s *MediaService) GetByID(ctx context.Context, callerID, tripID, mediaID uuid.UUID) (domain.MediaFile, error) {
	m, err := s.media.GetByID(ctx, tripID, mediaID)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("service.MediaService.GetByID: %w", err)
	}

	visible, err := s.eval.CanSee(ctx, tripID, callerID, domain.ResourceMedia, m.CapturedAt)
	if err != nil {
		return domain.MediaFile{}, fmt.Errorf("service.MediaService.GetByID: %w", err)
	}
	if !visible {
		return domain.MediaFile{}, fmt.Errorf("service.MediaService.GetByID: %w", domain.ErrNotFound)
	}
	return m, nil
}

// ListByTrip returns the media of a trip visible to the caller, captured_at
// ascending. Non-members get ErrNotFound.
// Always returns a non-nil slice so callers can safely range over it.
func (s *MediaService) ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.MediaFile, error) {
	caller, found, err := s.members.Lookup(ctx, tripID, callerID)
	if err != nil {
		return nil, fmt.Errorf("service.MediaService.ListByTrip: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("service.MediaService.ListByTrip: %w", domain.ErrNotFound)
	}

	media, err := s.media.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.MediaService.ListByTrip: %w", err)
	}

	visible := []domain.MediaFile{}
	for _, m := range media {
		if policy.Decide(caller.Role, caller.JoinedAt, domain.ResourceMedia, m.CapturedAt) {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

// Delete removes a media record. The caller must hold a writing role and
// must be able to see the current row.
func (s *MediaService) Delete(ctx context.Context, callerID, tripID, mediaID uuid.UUID) error {
	if err := requireWriter(ctx, s.members, tripID, callerID); err != nil {
		return fmt.Errorf("service.MediaService.Delete: %w", err)
	}
	if _, err := s.GetByID(ctx, callerID, tripID, mediaID); err != nil {
		return err
	}
	if err := s.media.Delete(ctx, tripID, mediaID); err != nil {
		return fmt.Errorf("service.MediaService.Delete: %w", err)
	}
	return nil
}

// validateMediaFile enforces business rules for Create.
//   - FileName and StorageKey must be non-empty.
//   - CapturedAt must be set (the policy engine needs a defining timestamp).
func validateMediaFile(m domain.MediaFile) error {
	if strings.TrimSpace(m.FileName) == "" {
		return fmt.Errorf("%w: file_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(m.StorageKey) == "" {
		return fmt.Errorf("%w: storage_key is required", domain.ErrValidation)
	}
	if m.CapturedAt.IsZero() {
		return fmt.Errorf("%w: captured_at is required", domain.ErrValidation)
	}
	return nil
}
