package handler

import (
	"net/http"
)

// accessRequestBody is the JSON body for POST /trips/{tripID}/access-requests.
type accessRequestBody struct {
	Message string `json:"message,omitempty"`
}

// CreateAccessRequest handles POST /trips/{tripID}/access-requests:
// a viewer asking to be promoted to participant.
func (s *Server) CreateAccessRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req accessRequestBody
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.requests.Request(r.Context(), caller, tripID, req.Message)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListAccessRequests handles GET /trips/{tripID}/access-requests.
// Owner role required; returns pending requests only.
func (s *Server) ListAccessRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	requests, err := s.requests.ListPending(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"data": requests})
}

// ApproveAccessRequest handles POST /trips/{tripID}/access-requests/{requestID}/approve.
// The requester is promoted viewer→participant with immediate effect.
func (s *Server) ApproveAccessRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	requestID, ok := pathUUID(w, r, "requestID")
	if !ok {
		return
	}

	decided, err := s.requests.Approve(r.Context(), caller, tripID, requestID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, decided)
}

// DenyAccessRequest handles POST /trips/{tripID}/access-requests/{requestID}/deny.
func (s *Server) DenyAccessRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	requestID, ok := pathUUID(w, r, "requestID")
	if !ok {
		return
	}

	decided, err := s.requests.Deny(r.Context(), caller, tripID, requestID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, decided)
}
