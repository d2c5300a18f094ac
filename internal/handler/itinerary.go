package handler

import (
	"net/http"
	"time"

	"github.com/tripweave/backend/internal/domain"
)

// itineraryItemRequest is the JSON body for creating and updating items.
type itineraryItemRequest struct {
	Title    string     `json:"title"`
	Location string     `json:"location,omitempty"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// CreateItineraryItem handles POST /trips/{tripID}/itinerary.
func (s *Server) CreateItineraryItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req itineraryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.itinerary.Create(r.Context(), caller, domain.ItineraryItem{
		TripID:   tripID,
		Title:    req.Title,
		Location: req.Location,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListItineraryItems handles GET /trips/{tripID}/itinerary.
// The response contains only the items the caller may see.
func (s *Server) ListItineraryItems(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	items, err := s.itinerary.ListByTrip(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"data": items})
}

// GetItineraryItem handles GET /trips/{tripID}/itinerary/{itemID}.
func (s *Server) GetItineraryItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	item, err := s.itinerary.GetByID(r.Context(), caller, tripID, itemID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// UpdateItineraryItem handles PUT /trips/{tripID}/itinerary/{itemID}.
func (s *Server) UpdateItineraryItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var req itineraryItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.itinerary.Update(r.Context(), caller, domain.ItineraryItem{
		ID:       itemID,
		TripID:   tripID,
		Title:    req.Title,
		Location: req.Location,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteItineraryItem handles DELETE /trips/{tripID}/itinerary/{itemID}.
func (s *Server) DeleteItineraryItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	if err := s.itinerary.Delete(r.Context(), caller, tripID, itemID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
