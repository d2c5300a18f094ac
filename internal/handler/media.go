package handler

import (
	"net/http"
	"time"

	"github.com/tripweave/backend/internal/domain"
)

// mediaFileRequest is the JSON body for registering uploaded media.
// The bytes are uploaded to object storage out of band; this endpoint only
// records the metadata row that the visibility policy filters on.
type mediaFileRequest struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	StorageKey  string    `json:"storage_key"`
	CapturedAt  time.Time `json:"captured_at"`
}

// CreateMediaFile handles POST /trips/{tripID}/media.
func (s *Server) CreateMediaFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req mediaFileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.media.Create(r.Context(), caller, domain.MediaFile{
		TripID:      tripID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		StorageKey:  req.StorageKey,
		CapturedAt:  req.CapturedAt,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListMediaFiles handles GET /trips/{tripID}/media.
// The response contains only the records the caller may see.
func (s *Server) ListMediaFiles(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	media, err := s.media.ListByTrip(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"data": media})
}

// GetMediaFile handles GET /trips/{tripID}/media/{mediaID}.
func (s *Server) GetMediaFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	mediaID, ok := pathUUID(w, r, "mediaID")
	if !ok {
		return
	}

	m, err := s.media.GetByID(r.Context(), caller, tripID, mediaID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}

// DeleteMediaFile handles DELETE /trips/{tripID}/media/{mediaID}.
func (s *Server) DeleteMediaFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	mediaID, ok := pathUUID(w, r, "mediaID")
	if !ok {
		return
	}

	if err := s.media.Delete(r.Context(), caller, tripID, mediaID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
