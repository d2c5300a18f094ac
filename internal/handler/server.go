// Package handler implements the HTTP handlers for the TripWeave API.
// All handlers are methods on Server; methods are split into domain-specific
// files (trip.go, itinerary.go, etc.) but all share the same Server struct so
// they can access its dependencies. Routing lives in Routes.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripweave/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, callerID, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, callerID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, callerID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, callerID, tripID uuid.UUID) error
}

// MembershipServicer defines the role lifecycle operations.
type MembershipServicer interface {
	AddMember(ctx context.Context, callerID, tripID, userID uuid.UUID, role domain.Role) (domain.Participant, error)
	Promote(ctx context.Context, callerID, tripID, userID uuid.UUID, newRole domain.Role) (domain.Participant, error)
	Remove(ctx context.Context, callerID, tripID, userID uuid.UUID) error
	ListMembers(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Participant, error)
}

// ItineraryServicer defines the itinerary operations.
type ItineraryServicer interface {
	Create(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	GetByID(ctx context.Context, callerID, tripID, itemID uuid.UUID) (domain.ItineraryItem, error)
	ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	Update(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	Delete(ctx context.Context, callerID, tripID, itemID uuid.UUID) error
}

// ExpenseServicer defines the expense operations.
type ExpenseServicer interface {
	Create(ctx context.Context, callerID uuid.UUID, e domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, callerID, tripID, expenseID uuid.UUID) (domain.Expense, error)
	ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, callerID uuid.UUID, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, callerID, tripID, expenseID uuid.UUID) error
}

// MediaServicer defines the media metadata operations.
type MediaServicer interface {
	Create(ctx context.Context, callerID uuid.UUID, m domain.MediaFile) (domain.MediaFile, error)
	GetByID(ctx context.Context, callerID, tripID, mediaID uuid.UUID) (domain.MediaFile, error)
	ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.MediaFile, error)
	Delete(ctx context.Context, callerID, tripID, mediaID uuid.UUID) error
}

// AccessRequestServicer defines the access-request flow operations.
type AccessRequestServicer interface {
	Request(ctx context.Context, callerID, tripID uuid.UUID, message string) (domain.AccessRequest, error)
	ListPending(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.AccessRequest, error)
	Approve(ctx context.Context, callerID, tripID, requestID uuid.UUID) (domain.AccessRequest, error)
	Deny(ctx context.Context, callerID, tripID, requestID uuid.UUID) (domain.AccessRequest, error)
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the service dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips      TripServicer
	members    MembershipServicer
	itinerary  ItineraryServicer
	expenses   ExpenseServicer
	media      MediaServicer
	requests   AccessRequestServicer
	export     ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, members MembershipServicer, itinerary ItineraryServicer, expenses ExpenseServicer, media MediaServicer, requests AccessRequestServicer, export ExportServicer) *Server {
	return &Server{
		trips:     trips,
		members:   members,
		itinerary: itinerary,
		expenses:  expenses,
		media:     media,
		requests:  requests,
		export:    export,
	}
}

// Routes returns the authenticated API router. Mount it behind the
// authenticator middleware; every handler assumes middleware.UserID is set.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/export", s.ExportTrip)

			r.Route("/members", func(r chi.Router) {
				r.Get("/", s.ListMembers)
				r.Post("/", s.AddMember)
				r.Put("/{userID}", s.PromoteMember)
				r.Delete("/{userID}", s.RemoveMember)
			})

			r.Route("/access-requests", func(r chi.Router) {
				r.Post("/", s.CreateAccessRequest)
				r.Get("/", s.ListAccessRequests)
				r.Post("/{requestID}/approve", s.ApproveAccessRequest)
				r.Post("/{requestID}/deny", s.DenyAccessRequest)
			})

			r.Route("/itinerary", func(r chi.Router) {
				r.Post("/", s.CreateItineraryItem)
				r.Get("/", s.ListItineraryItems)
				r.Get("/{itemID}", s.GetItineraryItem)
				r.Put("/{itemID}", s.UpdateItineraryItem)
				r.Delete("/{itemID}", s.DeleteItineraryItem)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", s.CreateExpense)
				r.Get("/", s.ListExpenses)
				r.Get("/{expenseID}", s.GetExpense)
				r.Put("/{expenseID}", s.UpdateExpense)
				r.Delete("/{expenseID}", s.DeleteExpense)
			})

			r.Route("/media", func(r chi.Router) {
				r.Post("/", s.CreateMediaFile)
				r.Get("/", s.ListMediaFiles)
				r.Get("/{mediaID}", s.GetMediaFile)
				r.Delete("/{mediaID}", s.DeleteMediaFile)
			})
		})
	})

	return r
}

// Health handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
