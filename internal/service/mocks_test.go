package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/links"
	"github.com/pkordes/trip-planner/internal/mail"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockTripRepo) CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error) {
	return m.create(ctx, trip, participants)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.confirm(ctx, id)
}

// mockParticipantRepo is a hand-written test double for repo.ParticipantRepo.
type mockParticipantRepo struct {
	listByTripID func(ctx context.Context, tripID uuid.UUID, filter domain.ParticipantFilter) ([]domain.Participant, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	confirm      func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, filter domain.ParticipantFilter) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID, filter)
}
func (m *mockParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.confirm(ctx, id)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.TripRepo        = (*mockTripRepo)(nil)
	_ repo.ParticipantRepo = (*mockParticipantRepo)(nil)
)

// recordingMailer records every message it is asked to send.
// fail, if set, decides per message whether Send returns an error.
type recordingMailer struct {
	mu   sync.Mutex
	sent []domain.Message
	fail func(msg domain.Message) error
}

func (m *recordingMailer) Send(_ context.Context, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	if m.fail != nil {
		return m.fail(msg)
	}
	return nil
}

// addresses returns the sorted recipient addresses of every recorded message.
func (m *recordingMailer) addresses() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, msg := range m.sent {
		for _, r := range msg.To {
			out = append(out, r.Address)
		}
	}
	sort.Strings(out)
	return out
}

var _ service.Mailer = (*recordingMailer)(nil)

// fakeStore is an in-memory implementation of both repos, used by the
// end-to-end workflow tests.
type fakeStore struct {
	mu           sync.Mutex
	trips        map[uuid.UUID]domain.Trip
	participants []domain.Participant
	writes       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{trips: map[uuid.UUID]domain.Trip{}}
}

type fakeTrips struct{ *fakeStore }
type fakeParticipants struct{ *fakeStore }

func (f fakeTrips) CreateWithParticipants(_ context.Context, trip domain.Trip, ps []domain.Participant) (domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	trip.ID = uuid.New()
	f.trips[trip.ID] = trip
	for _, p := range ps {
		p.ID = uuid.New()
		p.TripID = trip.ID
		f.participants = append(f.participants, p)
		trip.Participants = append(trip.Participants, p)
	}
	return trip, nil
}

func (f fakeTrips) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (f fakeTrips) Confirm(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[id]
	if !ok || t.IsConfirmed {
		return false, nil
	}
	f.writes++
	t.IsConfirmed = true
	f.trips[id] = t
	return true, nil
}

func (f fakeParticipants) ListByTripID(_ context.Context, tripID uuid.UUID, filter domain.ParticipantFilter) ([]domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Participant{}
	for _, p := range f.participants {
		if p.TripID != tripID || (filter.ExcludeOwner && p.IsOwner) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsOwner && !out[j].IsOwner })
	return out, nil
}

func (f fakeParticipants) GetByID(_ context.Context, id uuid.UUID) (domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Participant{}, domain.ErrNotFound
}

func (f fakeParticipants) Confirm(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.participants {
		if p.ID == id && !p.IsConfirmed {
			f.participants[i].IsConfirmed = true
			f.writes++
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// newComposer returns a Composer with en_US dates and example.com links.
func newComposer(t *testing.T) *mail.Composer {
	t.Helper()
	dates, err := mail.NewDateFormatter("en_US")
	require.NoError(t, err)
	lb, err := links.New("https://api.example.com", "https://app.example.com")
	require.NoError(t, err)
	return mail.NewComposer(dates, lb)
}

// newTripService wires a TripService over the given repos and mailer.
func newTripService(t *testing.T, trips repo.TripRepo, participants repo.ParticipantRepo, mailer service.Mailer) *service.TripService {
	t.Helper()
	notifier := service.NewNotifier(mailer, 4, nil, nil)
	return service.NewTripService(trips, participants, newComposer(t), notifier, nil)
}

func hasAddress(msg domain.Message, addr string) bool {
	for _, r := range msg.To {
		if strings.EqualFold(r.Address, addr) {
			return true
		}
	}
	return false
}
