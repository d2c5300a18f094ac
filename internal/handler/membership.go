package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
)

// addMemberRequest is the JSON body for POST /trips/{tripID}/members.
type addMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// promoteRequest is the JSON body for PUT /trips/{tripID}/members/{userID}.
type promoteRequest struct {
	Role string `json:"role"`
}

// ListMembers handles GET /trips/{tripID}/members.
func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	members, err := s.members.ListMembers(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"data": members})
}

// AddMember handles POST /trips/{tripID}/members: the invite-acceptance path.
// Owner role required; new members join as participant or viewer.
func (s *Server) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req addMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == (uuid.UUID{}) {
		respondRequestError(w, "user_id is required")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	member, err := s.members.AddMember(r.Context(), caller, tripID, req.UserID, role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, member)
}

// PromoteMember handles PUT /trips/{tripID}/members/{userID}: a role change
// with immediate effect on the very next visibility check. Owner role required.
func (s *Server) PromoteMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	var req promoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	member, err := s.members.Promote(r.Context(), caller, tripID, userID, role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, member)
}

// RemoveMember handles DELETE /trips/{tripID}/members/{userID}.
// Owner role required; the removed user's next visibility check default-denies.
func (s *Server) RemoveMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	userID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	if err := s.members.Remove(r.Context(), caller, tripID, userID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
