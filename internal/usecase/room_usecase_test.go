package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voteroom/voteroom/internal/domain"
	"github.com/voteroom/voteroom/internal/domain/events"
	"github.com/voteroom/voteroom/internal/domain/models"
)

func TestCreateRoom_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.roomUC.CreateRoom(ctx, "", []string{"A"})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = f.roomUC.CreateRoom(ctx, "Lunch", nil)
	assert.ErrorIs(t, err, domain.ErrNoOptions)

	_, err = f.roomUC.CreateRoom(ctx, "Lunch", []string{"Pizza", ""})
	assert.ErrorIs(t, err, domain.ErrEmptyOption)
}

func TestCreateRoom_PreservesOptionOrder(t *testing.T) {
	f := newFixture(t)

	room := f.createRoom(t, "Lunch", "Sushi", "Pizza", "Sushi")

	// Stored exactly as given: no dedup, no drop, no reorder.
	assert.Equal(t, models.StringList{"Sushi", "Pizza", "Sushi"}, room.Options)
	assert.Equal(t, []string{"Pizza", "Sushi", "Sushi"}, room.CanonicalOptions())
	assert.Equal(t, models.StatusOpen, room.Status)
	assert.NotEmpty(t, room.AdminSecret)
}

func TestStartVote_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")

	err := f.roomUC.StartVote(ctx, room.ID, "wrong-secret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, f.roomUC.StartVote(ctx, room.ID, room.AdminSecret))

	got, err := f.roomUC.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVoting, got.Status)

	// No longer Open: the state-filtered lookup reads as absence.
	err = f.roomUC.StartVote(ctx, room.ID, room.AdminSecret)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestStartVote_PublishesOptionsToVoters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Sushi", "Pizza")
	voter := f.join(t, room)

	sub := f.bus.Subscribe(room.ID, domain.VoterRole{VoterID: voter.ID})
	defer sub.Close()

	require.NoError(t, f.roomUC.StartVote(ctx, room.ID, room.AdminSecret))

	evs := drain(sub)
	require.Len(t, evs, 1)

	started, ok := evs[0].(events.VoteStarted)
	require.True(t, ok)
	// Display order, not canonical order.
	assert.Equal(t, []string{"Sushi", "Pizza"}, started.Options)
}

func TestEndVote_RequiresVotingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")

	_, err := f.roomUC.EndVote(ctx, room.ID, room.AdminSecret)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	require.NoError(t, f.roomUC.StartVote(ctx, room.ID, room.AdminSecret))

	_, err = f.roomUC.EndVote(ctx, room.ID, "wrong-secret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	tally, err := f.roomUC.EndVote(ctx, room.ID, room.AdminSecret)
	require.NoError(t, err)

	// Zero ballots: all-zero scores in canonical option order.
	assert.Equal(t, models.Tally{
		{Option: "Pizza", Score: 0},
		{Option: "Sushi", Score: 0},
	}, tally)

	got, err := f.roomUC.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnded, got.Status)
}

func TestEndVote_TearsDownChannel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")
	require.NoError(t, f.roomUC.StartVote(ctx, room.ID, room.AdminSecret))

	sub := f.adminSub(room)

	_, err := f.roomUC.EndVote(ctx, room.ID, room.AdminSecret)
	require.NoError(t, err)

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription should terminate on end of vote")
	}
}

func TestExpire_ConvergesWithEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")
	f.join(t, room)

	require.NoError(t, f.roomUC.StartVote(ctx, room.ID, room.AdminSecret))

	_, err := f.roomUC.EndVote(ctx, room.ID, room.AdminSecret)
	require.NoError(t, err)

	// The timer fires later regardless; it must be a harmless no-op.
	f.scheduler.Expire(room.ID)
	f.scheduler.Expire(room.ID)

	_, err = f.roomUC.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestExpire_DeletesRegardlessOfStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")
	voter := f.join(t, room)

	sub := f.adminSub(room)

	f.scheduler.Expire(room.ID)

	_, err := f.roomUC.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	// Voters go with the room.
	_, err = f.voters.GetByID(ctx, voter.ID)
	assert.Error(t, err)

	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription should terminate on expiry")
	}
}

func TestClassify_RoleFromSecrets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")
	voter := f.join(t, room)

	role, err := f.roomUC.Classify(ctx, room.ID, room.AdminSecret, voter.ID, voter.Secret)
	require.NoError(t, err)
	assert.Equal(t, domain.AdminRole{RoomID: room.ID}, role)

	role, err = f.roomUC.Classify(ctx, room.ID, "", voter.ID, voter.Secret)
	require.NoError(t, err)
	assert.Equal(t, domain.VoterRole{VoterID: voter.ID}, role)

	// Wrong or missing secrets degrade to anonymous, never an error.
	role, err = f.roomUC.Classify(ctx, room.ID, "nope", voter.ID, "nope")
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousRole{}, role)

	otherRoom := f.createRoom(t, "Dinner", "Tacos")

	// A voter secret from another room does not grant the voter role.
	role, err = f.roomUC.Classify(ctx, otherRoom.ID, "", voter.ID, voter.Secret)
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousRole{}, role)
}
