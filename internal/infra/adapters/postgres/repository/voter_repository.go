package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/usecase"
)

type voterRepo struct {
	db *sqlx.DB
}

func NewVoterRepo(db *sqlx.DB) usecase.VoterRepository {
	return &voterRepo{db: db}
}

func (r *voterRepo) Create(ctx context.Context, voter *models.Voter) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO voters (id, room_id, secret, approved, ballot, joined_at) VALUES ($1, $2, $3, $4, $5, $6)",
		voter.ID,
		voter.RoomID,
		voter.Secret,
		voter.Approved,
		voter.Ballot,
		voter.JoinedAt,
	)

	return err
}

func (r *voterRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Voter, error) {
	var voter models.Voter

	err := r.db.GetContext(ctx, &voter, "SELECT * FROM voters WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	return &voter, nil
}

func (r *voterRepo) SetApproved(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(
		ctx,
		"UPDATE voters SET approved = true WHERE id = $1 AND approved = false",
		id,
	)
	if err != nil {
		return false, err
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return aff > 0, nil
}

func (r *voterRepo) SetBallot(ctx context.Context, id uuid.UUID, ballot []string) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE voters SET ballot = $1 WHERE id = $2",
		models.StringList(ballot),
		id,
	)

	return err
}

func (r *voterRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*models.Voter, error) {
	var voters []*models.Voter

	err := r.db.SelectContext(ctx, &voters, "SELECT * FROM voters WHERE room_id = $1 ORDER BY joined_at", roomID)
	if err != nil {
		return nil, err
	}

	return voters, nil
}

func (r *voterRepo) CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM voters WHERE room_id = $1", roomID)
}

func (r *voterRepo) CountApprovedByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM voters WHERE room_id = $1 AND approved = true", roomID)
}

func (r *voterRepo) CountBallotsByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM voters WHERE room_id = $1 AND ballot IS NOT NULL", roomID)
}

func (r *voterRepo) count(ctx context.Context, query string, roomID uuid.UUID) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, query, roomID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
