package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tripweave/backend/internal/handler"
	"github.com/tripweave/backend/internal/middleware"
)

// Shared fixtures and helpers for the handler tests in this package.

var (
	callerID = uuid.MustParse("7a91e3d0-0001-4000-8000-000000000001")
	tripID   = uuid.MustParse("7a91e3d0-0002-4000-8000-000000000002")

	joinInstant = time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
)

// serverDeps lets each test fill in only the servicers it exercises.
type serverDeps struct {
	trips     handler.TripServicer
	members   handler.MembershipServicer
	itinerary handler.ItineraryServicer
	expenses  handler.ExpenseServicer
	media     handler.MediaServicer
	requests  handler.AccessRequestServicer
	export    handler.ExportServicer
}

// newRouter wires the given mocks into the production router.
func newRouter(d serverDeps) http.Handler {
	srv := handler.NewServer(d.trips, d.members, d.itinerary, d.expenses, d.media, d.requests, d.export)
	return srv.Routes()
}

// authedRequest builds a request carrying callerID in the context, the way the
// authenticator middleware would have set it.
func authedRequest(method, target string, body *bytes.Buffer) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithUserID(req.Context(), callerID))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorCode extracts the error.code field from an error envelope response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error.Code
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error.Message
}
