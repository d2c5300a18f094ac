package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripweave/backend/internal/domain"
)

// expenseRequest is the JSON body for creating and updating expenses.
// IncurredOn is date-granular on the wire ("2025-06-20"); it becomes the UTC
// midnight instant that feeds the visibility policy.
type expenseRequest struct {
	Description string             `json:"description"`
	AmountMinor int64              `json:"amount_minor"`
	Currency    string             `json:"currency"`
	IncurredOn  openapi_types.Date `json:"incurred_on"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.expenses.Create(r.Context(), caller, domain.Expense{
		TripID:      tripID,
		Description: req.Description,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		IncurredAt:  req.IncurredOn.Time.UTC(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListExpenses handles GET /trips/{tripID}/expenses.
// Viewers receive an empty list: the expense type is excluded from viewers
// entirely by the policy table.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), caller, tripID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"data": expenses})
}

// GetExpense handles GET /trips/{tripID}/expenses/{expenseID}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}

	e, err := s.expenses.GetByID(r.Context(), caller, tripID, expenseID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, e)
}

// UpdateExpense handles PUT /trips/{tripID}/expenses/{expenseID}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}

	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.expenses.Update(r.Context(), caller, domain.Expense{
		ID:          expenseID,
		TripID:      tripID,
		Description: req.Description,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		IncurredAt:  req.IncurredOn.Time.UTC(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "expenseID")
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), caller, tripID, expenseID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
