// Package memory holds in-memory repository adapters. They back the dev
// mode and the test suite; nothing in them survives a restart.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/usecase"
)

type roomRepository struct {
	rooms map[uuid.UUID]models.Room
	mu    sync.RWMutex

	voters *voterRepository
}

// NewRoomRepository builds the in-memory room store. It shares voter state
// with the given voter repository so DeleteWithVoters stays atomic.
func NewRoomRepository(voters usecase.VoterRepository) usecase.RoomRepository {
	return &roomRepository{
		rooms:  make(map[uuid.UUID]models.Room),
		voters: voters.(*voterRepository),
	}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.ID] = *room

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	return &room, nil
}

func (r *roomRepository) GetByIDAndStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok || room.Status != status {
		return nil, sql.ErrNoRows
	}

	return &room, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.RoomStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok || room.Status != from {
		return false, nil
	}

	room.Status = to
	r.rooms[id] = room

	return true, nil
}

func (r *roomRepository) DeleteWithVoters(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, id)
	r.voters.deleteByRoom(id)

	return nil
}
