package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voteroom/voteroom/internal/domain"
	"github.com/voteroom/voteroom/internal/domain/models"
)

func TestProject_TotalOverEventAndRole(t *testing.T) {
	roomID := uuid.New()
	voterID := uuid.New()
	otherID := uuid.New()

	admin := domain.AdminRole{RoomID: roomID}
	voter := domain.VoterRole{VoterID: voterID}
	other := domain.VoterRole{VoterID: otherID}
	anon := domain.AnonymousRole{}

	all := []Event{
		NewVoter{VoterID: voterID},
		NewVoterCount{Count: 2},
		VoterApproved{VoterID: voterID},
		VoteStartable{},
		VoteStarted{Options: []string{"Pizza", "Sushi"}},
		NewVote{VoterID: voterID},
		NewVoteCount{Count: 1},
		VoteEndable{},
		VoteEnded{Tally: models.Tally{{Option: "Pizza", Score: 2}}},
	}

	// Every (event, role) pair has defined behavior: a notification or a
	// deliberate nothing. None may panic.
	for _, ev := range all {
		for _, role := range []domain.Role{admin, voter, other, anon} {
			assert.NotPanics(t, func() {
				Project(ev, role)
			})
		}

		// Anonymous subscribers receive heartbeats only.
		_, ok := Project(ev, anon)
		assert.False(t, ok, "anonymous must not see %T", ev)
	}
}

func TestProject_RoleVisibility(t *testing.T) {
	roomID := uuid.New()
	voterID := uuid.New()

	admin := domain.AdminRole{RoomID: roomID}
	voter := domain.VoterRole{VoterID: voterID}

	tests := []struct {
		name      string
		event     Event
		adminSees bool
		voterSees bool
	}{
		{"new voter is admin-only", NewVoter{VoterID: voterID}, true, false},
		{"voter count goes to both", NewVoterCount{Count: 1}, true, true},
		{"vote startable is admin-only", VoteStartable{}, true, false},
		{"vote started is voter-only", VoteStarted{Options: []string{"A"}}, false, true},
		{"new vote is admin-only", NewVote{VoterID: voterID}, true, false},
		{"vote count goes to both", NewVoteCount{Count: 1}, true, true},
		{"vote endable is admin-only", VoteEndable{}, true, false},
		{"vote ended is voter-only", VoteEnded{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Project(tt.event, admin)
			assert.Equal(t, tt.adminSees, ok)

			_, ok = Project(tt.event, voter)
			assert.Equal(t, tt.voterSees, ok)
		})
	}
}

func TestProject_ApprovalIsPersonalized(t *testing.T) {
	approvedID := uuid.New()

	ev := VoterApproved{VoterID: approvedID}

	notif, ok := Project(ev, domain.VoterRole{VoterID: approvedID})
	require.True(t, ok)
	assert.Equal(t, "approved", notif.Name)

	// Other voters are not told about someone else's approval.
	_, ok = Project(ev, domain.VoterRole{VoterID: uuid.New()})
	assert.False(t, ok)

	notif, ok = Project(ev, domain.AdminRole{RoomID: uuid.New()})
	require.True(t, ok)
	assert.Equal(t, "voter_approved", notif.Name)
}
