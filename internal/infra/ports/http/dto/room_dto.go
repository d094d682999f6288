package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain/models"
)

type CreateRoomRequest struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type CreateRoomResponse struct {
	RoomID      uuid.UUID `json:"room_id"`
	AdminSecret string    `json:"admin_secret"`
}

type RoomResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Options   []string          `json:"options"`
	Status    models.RoomStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewRoomResponseFromModel(room *models.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Options:   room.Options,
		Status:    room.Status,
		CreatedAt: room.CreatedAt,
	}
}

type JoinRoomResponse struct {
	VoterID     uuid.UUID `json:"voter_id"`
	VoterSecret string    `json:"voter_secret"`
}

type SubmitBallotRequest struct {
	Ballot []string `json:"ballot"`
}

type EndVoteResponse struct {
	Tally models.Tally `json:"tally"`
}
