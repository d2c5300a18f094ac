package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/domain"
	"github.com/tripweave/backend/internal/repo"
)

func itineraryFixture(tripID uuid.UUID) domain.ItineraryItem {
	return domain.ItineraryItem{
		TripID:   tripID,
		Title:    "Col du Galibier",
		Location: "Savoie",
		StartsAt: time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC),
		Notes:    "early start",
	}
}

func createTrip(t *testing.T, tx pgx.Tx) domain.Trip {
	t.Helper()
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return trip
}

func TestItineraryRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	trip := createTrip(t, tx)
	r := repo.NewItineraryRepo(tx)

	got, err := r.Create(context.Background(), itineraryFixture(trip.ID))

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.True(t, got.StartsAt.Equal(time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, got.StartsAt.Location())
}

func TestItineraryRepo_GetByID_ScopedToTrip(t *testing.T) {
	tx := newTestTx(t)
	trip := createTrip(t, tx)
	other := createTrip(t, tx)
	r := repo.NewItineraryRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, itineraryFixture(trip.ID))
	require.NoError(t, err)

	// Correct trip finds it; another trip's scope does not.
	_, err = r.GetByID(ctx, trip.ID, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, other.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryRepo_ListByTrip_OrderedByStartsAt(t *testing.T) {
	tx := newTestTx(t)
	trip := createTrip(t, tx)
	r := repo.NewItineraryRepo(tx)
	ctx := context.Background()

	late := itineraryFixture(trip.ID)
	late.StartsAt = late.StartsAt.Add(48 * time.Hour)
	late.Title = "Col de l'Iseran"
	_, err := r.Create(ctx, late)
	require.NoError(t, err)

	early := itineraryFixture(trip.ID)
	_, err = r.Create(ctx, early)
	require.NoError(t, err)

	got, err := r.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Col du Galibier", got[0].Title)
	assert.Equal(t, "Col de l'Iseran", got[1].Title)
}

func TestItineraryRepo_Update(t *testing.T) {
	tx := newTestTx(t)
	trip := createTrip(t, tx)
	r := repo.NewItineraryRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, itineraryFixture(trip.ID))
	require.NoError(t, err)

	created.Title = "Col du Galibier (north side)"
	ends := created.StartsAt.Add(3 * time.Hour)
	created.EndsAt = &ends

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Col du Galibier (north side)", got.Title)
	require.NotNil(t, got.EndsAt)
	assert.True(t, got.EndsAt.Equal(ends))
}

func TestItineraryRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	trip := createTrip(t, tx)
	r := repo.NewItineraryRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, itineraryFixture(trip.ID))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, trip.ID, created.ID))

	_, err = r.GetByID(ctx, trip.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
