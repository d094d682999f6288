package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/usecase"
)

type voterRepository struct {
	voters map[uuid.UUID]models.Voter
	mu     sync.RWMutex
}

func NewVoterRepository() usecase.VoterRepository {
	return &voterRepository{
		voters: make(map[uuid.UUID]models.Voter),
	}
}

func (r *voterRepository) Create(ctx context.Context, voter *models.Voter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.voters[voter.ID] = *voter

	return nil
}

func (r *voterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Voter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	voter, ok := r.voters[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	return &voter, nil
}

func (r *voterRepository) SetApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	voter, ok := r.voters[id]
	if !ok || voter.Approved {
		return false, nil
	}

	voter.Approved = true
	r.voters[id] = voter

	return true, nil
}

func (r *voterRepository) SetBallot(ctx context.Context, id uuid.UUID, ballot []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	voter, ok := r.voters[id]
	if !ok {
		return sql.ErrNoRows
	}

	voter.Ballot = append(models.StringList(nil), ballot...)
	r.voters[id] = voter

	return nil
}

func (r *voterRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Voter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var voters []*models.Voter

	for _, voter := range r.voters {
		if voter.RoomID == roomID {
			v := voter
			voters = append(voters, &v)
		}
	}

	sort.Slice(voters, func(i, j int) bool {
		return voters[i].JoinedAt.Before(voters[j].JoinedAt)
	})

	return voters, nil
}

func (r *voterRepository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.count(roomID, func(models.Voter) bool { return true }), nil
}

func (r *voterRepository) CountApprovedByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.count(roomID, func(v models.Voter) bool { return v.Approved }), nil
}

func (r *voterRepository) CountBallotsByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.count(roomID, func(v models.Voter) bool { return v.Ballot != nil }), nil
}

func (r *voterRepository) count(roomID uuid.UUID, match func(models.Voter) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0

	for _, voter := range r.voters {
		if voter.RoomID == roomID && match(voter) {
			count++
		}
	}

	return count
}

// deleteByRoom is called by the room repository under its own lock as part
// of the atomic room+voters delete.
func (r *voterRepository) deleteByRoom(roomID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, voter := range r.voters {
		if voter.RoomID == roomID {
			delete(r.voters, id)
		}
	}
}
