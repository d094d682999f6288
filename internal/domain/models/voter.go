package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain"
)

type Voter struct {
	ID       uuid.UUID `json:"id" db:"id"`
	RoomID   uuid.UUID `json:"room_id" db:"room_id"`
	Secret   string    `json:"-" db:"secret"`
	Approved bool      `json:"approved" db:"approved"`
	// Ballot is nil until the voter submits; when present it is a full
	// permutation of the room's options.
	Ballot   StringList `json:"ballot,omitempty" db:"ballot"`
	JoinedAt time.Time  `json:"joined_at" db:"joined_at"`
}

// NewVoter builds an unapproved voter for the room with a fresh secret.
func NewVoter(roomID uuid.UUID) (*Voter, error) {
	secret, err := domain.NewSecret()
	if err != nil {
		return nil, err
	}

	return &Voter{
		ID:       uuid.New(),
		RoomID:   roomID,
		Secret:   secret,
		Approved: false,
		JoinedAt: time.Now(),
	}, nil
}
