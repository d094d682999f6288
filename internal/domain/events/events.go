// Package events defines the ephemeral per-room notifications and their
// role-based projection. Events are fire-and-forget: they are never
// persisted and a room with no live subscribers drops them.
package events

import (
	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain/models"
)

// Event is a closed set of room notifications. Projection dispatches
// exhaustively over the concrete types below.
type Event interface {
	isEvent()
}

// NewVoter fires when someone joins an open room.
type NewVoter struct {
	VoterID uuid.UUID
}

// NewVoterCount carries the total voter count after a join.
type NewVoterCount struct {
	Count int
}

// VoterApproved fires when the admin approves a voter.
type VoterApproved struct {
	VoterID uuid.UUID
}

// VoteStartable fires exactly once, on the zero-to-one transition of the
// room's approved-voter count.
type VoteStartable struct{}

// VoteStarted fires on the Open to Voting transition and carries the
// options in display order so voters can render the ballot form.
type VoteStarted struct {
	Options []string
}

// NewVote fires when a voter submits a ballot, including resubmissions.
type NewVote struct {
	VoterID uuid.UUID
}

// NewVoteCount carries the submitted-ballot count after a submission.
type NewVoteCount struct {
	Count int
}

// VoteEndable fires exactly once, on the zero-to-one transition of the
// room's submitted-ballot count.
type VoteEndable struct{}

// VoteEnded fires on the Voting to Ended transition and carries the final
// tally. It is the last event a subscriber can observe before teardown.
type VoteEnded struct {
	Tally models.Tally
}

func (NewVoter) isEvent()      {}
func (NewVoterCount) isEvent() {}
func (VoterApproved) isEvent() {}
func (VoteStartable) isEvent() {}
func (VoteStarted) isEvent()   {}
func (NewVote) isEvent()       {}
func (NewVoteCount) isEvent()  {}
func (VoteEndable) isEvent()   {}
func (VoteEnded) isEvent()     {}
