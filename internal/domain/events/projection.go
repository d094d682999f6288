package events

import (
	"github.com/voteroom/voteroom/internal/domain"
)

// Notification is the rendered, subscriber-facing form of an event. The
// transport layer owns the wire encoding (SSE framing, WebSocket JSON); it
// marshals Data as-is.
type Notification struct {
	Name string `json:"event"`
	Data any    `json:"data,omitempty"`
}

// Project maps an (event, role) pair to at most one notification. It is a
// total function over the closed event and role sets: a pair with no
// defined mapping returns ok=false, and the transport's periodic heartbeat
// covers the silence so intermediaries do not drop the connection.
//
// An unknown combination must fall through to ok=false, never panic.
func Project(ev Event, role domain.Role) (Notification, bool) {
	switch e := ev.(type) {
	case NewVoter:
		// Only the admin sees individual joins; voters just see the count.
		if _, ok := role.(domain.AdminRole); ok {
			return Notification{Name: "new_voter", Data: map[string]any{"voter_id": e.VoterID}}, true
		}

	case NewVoterCount:
		switch role.(type) {
		case domain.AdminRole, domain.VoterRole:
			return Notification{Name: "new_voter_count", Data: map[string]any{"count": e.Count}}, true
		}

	case VoterApproved:
		switch r := role.(type) {
		case domain.AdminRole:
			return Notification{Name: "voter_approved", Data: map[string]any{"voter_id": e.VoterID}}, true
		case domain.VoterRole:
			// Personalized unblock: only the approved voter is told.
			if r.VoterID == e.VoterID {
				return Notification{Name: "approved"}, true
			}
		}

	case VoteStartable:
		if _, ok := role.(domain.AdminRole); ok {
			return Notification{Name: "vote_startable"}, true
		}

	case VoteStarted:
		if _, ok := role.(domain.VoterRole); ok {
			return Notification{Name: "vote_started", Data: map[string]any{"options": e.Options}}, true
		}

	case NewVote:
		if _, ok := role.(domain.AdminRole); ok {
			return Notification{Name: "new_vote", Data: map[string]any{"voter_id": e.VoterID}}, true
		}

	case NewVoteCount:
		switch role.(type) {
		case domain.AdminRole, domain.VoterRole:
			return Notification{Name: "new_vote_count", Data: map[string]any{"count": e.Count}}, true
		}

	case VoteEndable:
		if _, ok := role.(domain.AdminRole); ok {
			return Notification{Name: "vote_endable"}, true
		}

	case VoteEnded:
		if _, ok := role.(domain.VoterRole); ok {
			return Notification{Name: "vote_ended", Data: map[string]any{"tally": e.Tally}}, true
		}
	}

	return Notification{}, false
}
