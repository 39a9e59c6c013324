package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestParticipantService_Confirm(t *testing.T) {
	id := uuid.New()
	calls := 0
	r := &mockParticipantRepo{
		getByID: func(_ context.Context, got uuid.UUID) (domain.Participant, error) {
			return domain.Participant{ID: got, Email: "bob@x.com"}, nil
		},
		confirm: func(_ context.Context, got uuid.UUID) (bool, error) {
			calls++
			assert.Equal(t, id, got)
			return true, nil
		},
	}
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewParticipantService(r, m)

	p, err := svc.Confirm(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, p.IsConfirmed)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.ParticipantsConfirmed))
}

func TestParticipantService_Confirm_AlreadyConfirmed(t *testing.T) {
	r := &mockParticipantRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Participant, error) {
			return domain.Participant{ID: id, IsConfirmed: true}, nil
		},
		confirm: func(context.Context, uuid.UUID) (bool, error) {
			t.Fatal("Confirm must not be called for a confirmed participant")
			return false, nil
		},
	}
	svc := service.NewParticipantService(r, nil)

	p, err := svc.Confirm(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.True(t, p.IsConfirmed)
}

func TestParticipantService_Confirm_NotFound(t *testing.T) {
	r := &mockParticipantRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Participant, error) {
			return domain.Participant{}, domain.ErrNotFound
		},
	}
	svc := service.NewParticipantService(r, nil)

	_, err := svc.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantService_Confirm_RepoError(t *testing.T) {
	repoErr := errors.New("connection reset")
	r := &mockParticipantRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Participant, error) {
			return domain.Participant{ID: id}, nil
		},
		confirm: func(context.Context, uuid.UUID) (bool, error) { return false, repoErr },
	}
	svc := service.NewParticipantService(r, nil)

	_, err := svc.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repoErr)
}

// Confirming an invitee through the link from the trip confirmation email.
func TestParticipantService_Confirm_AfterTripConfirm(t *testing.T) {
	store := newFakeStore()
	mailer := &recordingMailer{}
	trips := newTripService(t, fakeTrips{store}, fakeParticipants{store}, mailer)
	trip := createScenarioTrip(t, trips, mailer)
	res, err := trips.Confirm(context.Background(), trip.ID)
	require.NoError(t, err)

	svc := service.NewParticipantService(fakeParticipants{store}, nil)
	bob := res.Delivery.Results[0].ParticipantID

	p, err := svc.Confirm(context.Background(), bob)
	require.NoError(t, err)
	assert.True(t, p.IsConfirmed)

	all, err := trips.ListParticipants(context.Background(), trip.ID)
	require.NoError(t, err)
	confirmed := 0
	for _, p := range all {
		if p.IsConfirmed {
			confirmed++
		}
	}
	assert.Equal(t, 2, confirmed, "owner and the invitee who clicked")
}
