package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/handler"
)

// mockItineraryServicer is a test double for handler.ItineraryServicer.
type mockItineraryServicer struct {
	create     func(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	getByID    func(ctx context.Context, callerID, tripID, itemID uuid.UUID) (domain.ItineraryItem, error)
	listByTrip func(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.ItineraryItem, error)
	update     func(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	delete     func(ctx context.Context, callerID, tripID, itemID uuid.UUID) error
}

func (m *mockItineraryServicer) Create(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.create(ctx, callerID, item)
}
func (m *mockItineraryServicer) GetByID(ctx context.Context, callerID, tripID, itemID uuid.UUID) (domain.ItineraryItem, error) {
	return m.getByID(ctx, callerID, tripID, itemID)
}
func (m *mockItineraryServicer) ListByTrip(ctx context.Context, callerID, tripID uuid.UUID) ([]domain.ItineraryItem, error) {
	return m.listByTrip(ctx, callerID, tripID)
}
func (m *mockItineraryServicer) Update(ctx context.Context, callerID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.update(ctx, callerID, item)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, callerID, tripID, itemID uuid.UUID) error {
	return m.delete(ctx, callerID, tripID, itemID)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// ---- POST /trips/{tripID}/itinerary ----------------------------------------

func TestCreateItineraryItem_201(t *testing.T) {
	var got domain.ItineraryItem
	svc := &mockItineraryServicer{
		create: func(_ context.Context, _ uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
			got = item
			item.ID = uuid.New()
			return item, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":     "Col du Galibier",
		"location":  "Savoie",
		"starts_at": "2025-06-20T08:00:00Z",
	})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{itinerary: svc}).ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+tripID.String()+"/itinerary", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, tripID, got.TripID)
	assert.Equal(t, time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC), got.StartsAt)
}

func TestCreateItineraryItem_403_Viewer(t *testing.T) {
	svc := &mockItineraryServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.ItineraryItem) (domain.ItineraryItem, error) {
			return domain.ItineraryItem{}, fmt.Errorf("create: %w", domain.ErrForbidden)
		},
	}

	body := jsonBody(t, map[string]any{"title": "x", "starts_at": "2025-06-20T08:00:00Z"})
	rec := httptest.NewRecorder()
	newRouter(serverDeps{itinerary: svc}).ServeHTTP(rec, authedRequest(http.MethodPost, "/trips/"+tripID.String()+"/itinerary", body))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// ---- GET /trips/{tripID}/itinerary -----------------------------------------

func TestListItineraryItems_200(t *testing.T) {
	svc := &mockItineraryServicer{
		listByTrip: func(_ context.Context, _, _ uuid.UUID) ([]domain.ItineraryItem, error) {
			return []domain.ItineraryItem{
				{ID: uuid.New(), TripID: tripID, Title: "Col du Galibier", StartsAt: joinInstant},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(serverDeps{itinerary: svc}).ServeHTTP(rec, authedRequest(http.MethodGet, "/trips/"+tripID.String()+"/itinerary", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.ItineraryItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 1)
}

// ---- DELETE /trips/{tripID}/itinerary/{itemID} ------------------------------

func TestDeleteItineraryItem_404_Hidden(t *testing.T) {
	svc := &mockItineraryServicer{
		delete: func(_ context.Context, _, _, _ uuid.UUID) error {
			return fmt.Errorf("delete: %w", domain.ErrNotFound)
		},
	}

	rec := httptest.NewRecorder()
	newRouter(serverDeps{itinerary: svc}).ServeHTTP(rec, authedRequest(http.MethodDelete, "/trips/"+tripID.String()+"/itinerary/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
