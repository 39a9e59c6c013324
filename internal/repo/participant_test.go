package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/testutil"
)

func TestParticipantRepo_ListByTripID(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := createTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)

	got, err := r.ListByTripID(context.Background(), trip.ID, domain.ParticipantFilter{})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].IsOwner, "owner is listed first")
	assert.Equal(t, "bob@x.com", got[1].Email)
	assert.Equal(t, "cid@x.com", got[2].Email)
}

func TestParticipantRepo_ListByTripID_ExcludeOwner(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := createTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)

	got, err := r.ListByTripID(context.Background(), trip.ID, domain.ParticipantFilter{ExcludeOwner: true})

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.False(t, p.IsOwner)
	}
}

func TestParticipantRepo_ListByTripID_UnknownTrip(t *testing.T) {
	r := repo.NewParticipantRepo(testutil.NewTx(t))

	got, err := r.ListByTripID(context.Background(), uuid.New(), domain.ParticipantFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParticipantRepo_GetByID(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := createTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)
	want := trip.Invitees()[0]

	got, err := r.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, want.Email, got.Email)
}

func TestParticipantRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewParticipantRepo(testutil.NewTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParticipantRepo_Confirm(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := createTrip(t, repo.NewTripRepo(tx))
	r := repo.NewParticipantRepo(tx)
	ctx := context.Background()
	invitee := trip.Invitees()[0]

	changed, err := r.Confirm(ctx, invitee.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := r.GetByID(ctx, invitee.ID)
	require.NoError(t, err)
	assert.True(t, got.IsConfirmed)

	changed, err = r.Confirm(ctx, invitee.ID)
	require.NoError(t, err)
	assert.False(t, changed, "already confirmed")
}

func TestParticipantRepo_Confirm_OwnerAlreadyConfirmed(t *testing.T) {
	tx := testutil.NewTx(t)
	trip := createTrip(t, repo.NewTripRepo(tx))
	owner, _ := trip.Owner()

	changed, err := repo.NewParticipantRepo(tx).Confirm(context.Background(), owner.ID)

	require.NoError(t, err)
	assert.False(t, changed)
}
