package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain/models"
)

// RoomRepository is the durable store for rooms. Implementations signal
// absence with sql.ErrNoRows; the usecases map that to the domain
// not-found errors.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error)

	// GetByIDAndStatus is the state-filtered lookup: a room in another
	// status is indistinguishable from an absent one.
	GetByIDAndStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) (*models.Room, error)

	// UpdateStatus transitions the room only if it is still in from,
	// reporting whether a row was updated. Racing transitions lose here.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.RoomStatus) (bool, error)

	// DeleteWithVoters removes the room and all its voters atomically.
	// Deleting an absent room is a no-op, not an error.
	DeleteWithVoters(ctx context.Context, id uuid.UUID) error
}

// VoterRepository is the durable store for voters.
type VoterRepository interface {
	Create(ctx context.Context, voter *models.Voter) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Voter, error)

	// SetApproved marks the voter approved, reporting whether the row
	// changed. An already-approved voter yields false, which keeps
	// approval idempotent and edge events single-shot.
	SetApproved(ctx context.Context, id uuid.UUID) (bool, error)

	// SetBallot overwrites the voter's ballot. Last write wins.
	SetBallot(ctx context.Context, id uuid.UUID, ballot []string) error

	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Voter, error)
	CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error)
	CountApprovedByRoom(ctx context.Context, roomID uuid.UUID) (int, error)
	CountBallotsByRoom(ctx context.Context, roomID uuid.UUID) (int, error)
}
