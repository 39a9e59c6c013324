package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/handler/gen"
	"github.com/pkordes/trip-planner/internal/links"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create           func(ctx context.Context, in domain.NewTrip) (domain.Trip, error)
	confirm          func(ctx context.Context, id uuid.UUID) (domain.ConfirmResult, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listParticipants func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.ConfirmResult, error) {
	return m.confirm(ctx, id)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listParticipants(ctx, tripID)
}

// mockParticipantServicer is a test double for handler.ParticipantServicer.
type mockParticipantServicer struct {
	confirm func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
}

func (m *mockParticipantServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.confirm(ctx, id)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.ParticipantServicer = (*mockParticipantServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

const webBaseURL = "https://app.example.com"

// newHTTPHandler wires a Server with the given mocks into the generated chi
// router, exactly as main.go does in production.
func newHTTPHandler(t *testing.T, trips handler.TripServicer, participants handler.ParticipantServicer) http.Handler {
	t.Helper()
	lb, err := links.New("https://api.example.com", webBaseURL)
	require.NoError(t, err)
	return handler.NewHTTPHandler(handler.NewServer(trips, participants, lb), nil)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) gen.ErrorDetail {
	t.Helper()
	var resp gen.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}
