package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/usecase"
)

type roomRepo struct {
	db *sqlx.DB
}

func NewRoomRepo(db *sqlx.DB) usecase.RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *models.Room) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO rooms (id, name, options, admin_secret, status, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		room.ID,
		room.Name,
		room.Options,
		room.AdminSecret,
		room.Status,
		room.CreatedAt,
	)

	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	var room models.Room

	err := r.db.GetContext(ctx, &room, "SELECT * FROM rooms WHERE id = $1", id)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepo) GetByIDAndStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) (*models.Room, error) {
	var room models.Room

	err := r.db.GetContext(ctx, &room, "SELECT * FROM rooms WHERE id = $1 AND status = $2", id, status)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *roomRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.RoomStatus) (bool, error) {
	res, err := r.db.ExecContext(
		ctx,
		"UPDATE rooms SET status = $1 WHERE id = $2 AND status = $3",
		to,
		id,
		from,
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

func (r *roomRepo) DeleteWithVoters(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}

	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM voters WHERE room_id = $1", id); err != nil {
		return fmt.Errorf("delete voters: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM rooms WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}

	return tx.Commit()
}
