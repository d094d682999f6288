package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain"
	"github.com/voteroom/voteroom/internal/domain/events"
	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/eventbus"
)

// RoomUsecase is the room lifecycle state machine: Open accepts voters,
// Voting accepts ballots, Ended is terminal.
type RoomUsecase interface {
	CreateRoom(ctx context.Context, name string, options []string) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	StartVote(ctx context.Context, roomID uuid.UUID, adminSecret string) error
	EndVote(ctx context.Context, roomID uuid.UUID, adminSecret string) (models.Tally, error)

	// Classify resolves the optional secrets of a live subscriber into its
	// role, once per connection. Unmatched or missing secrets degrade to
	// anonymous, never to an error.
	Classify(ctx context.Context, roomID uuid.UUID, adminSecret string, voterID uuid.UUID, voterSecret string) (domain.Role, error)
}

type roomUsecase struct {
	roomRepo  RoomRepository
	voterRepo VoterRepository
	bus       *eventbus.Bus
	scheduler *ExpiryScheduler
}

func NewRoomUsecase(roomRepo RoomRepository, voterRepo VoterRepository, bus *eventbus.Bus, scheduler *ExpiryScheduler) RoomUsecase {
	return &roomUsecase{
		roomRepo:  roomRepo,
		voterRepo: voterRepo,
		bus:       bus,
		scheduler: scheduler,
	}
}

func (uc *roomUsecase) CreateRoom(ctx context.Context, name string, options []string) (*models.Room, error) {
	room, err := models.NewRoom(name, options)
	if err != nil {
		return nil, err
	}

	if err := uc.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	uc.scheduler.Schedule(room.ID)

	return room, nil
}

func (uc *roomUsecase) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := uc.roomRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}

		return nil, fmt.Errorf("get room: %w", err)
	}

	return room, nil
}

func (uc *roomUsecase) StartVote(ctx context.Context, roomID uuid.UUID, adminSecret string) error {
	room, err := uc.lookupAs(ctx, roomID, models.StatusOpen, adminSecret)
	if err != nil {
		return err
	}

	moved, err := uc.roomRepo.UpdateStatus(ctx, roomID, models.StatusOpen, models.StatusVoting)
	if err != nil {
		return fmt.Errorf("start vote: %w", err)
	}

	if !moved {
		// Lost the race with a concurrent transition or an expiry.
		return domain.ErrRoomNotFound
	}

	uc.bus.Publish(roomID, events.VoteStarted{Options: room.Options})

	return nil
}

func (uc *roomUsecase) EndVote(ctx context.Context, roomID uuid.UUID, adminSecret string) (models.Tally, error) {
	room, err := uc.lookupAs(ctx, roomID, models.StatusVoting, adminSecret)
	if err != nil {
		return nil, err
	}

	moved, err := uc.roomRepo.UpdateStatus(ctx, roomID, models.StatusVoting, models.StatusEnded)
	if err != nil {
		return nil, fmt.Errorf("end vote: %w", err)
	}

	if !moved {
		return nil, domain.ErrRoomNotFound
	}

	voters, err := uc.voterRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list voters: %w", err)
	}

	ballots := make([][]string, 0, len(voters))
	for _, voter := range voters {
		if voter.Ballot != nil {
			ballots = append(ballots, voter.Ballot)
		}
	}

	tally := ComputeTally(room.CanonicalOptions(), ballots)

	// Last event on the channel, then the channel itself goes away.
	uc.bus.Publish(roomID, events.VoteEnded{Tally: tally})
	uc.bus.Teardown(roomID)

	return tally, nil
}

func (uc *roomUsecase) Classify(ctx context.Context, roomID uuid.UUID, adminSecret string, voterID uuid.UUID, voterSecret string) (domain.Role, error) {
	room, err := uc.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if adminSecret != "" && domain.SecretsEqual(adminSecret, room.AdminSecret) {
		return domain.AdminRole{RoomID: room.ID}, nil
	}

	if voterSecret != "" && voterID != uuid.Nil {
		voter, err := uc.voterRepo.GetByID(ctx, voterID)
		if err == nil && voter.RoomID == room.ID && domain.SecretsEqual(voterSecret, voter.Secret) {
			return domain.VoterRole{VoterID: voter.ID}, nil
		}
	}

	return domain.AnonymousRole{}, nil
}

// lookupAs fetches the room filtered by status and checks the admin
// secret. Wrong status reads as absence, and a wrong secret is surfaced
// the same way, so callers cannot probe for room existence.
func (uc *roomUsecase) lookupAs(ctx context.Context, roomID uuid.UUID, status models.RoomStatus, adminSecret string) (*models.Room, error) {
	room, err := uc.roomRepo.GetByIDAndStatus(ctx, roomID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}

		return nil, fmt.Errorf("get room by status: %w", err)
	}

	if !domain.SecretsEqual(adminSecret, room.AdminSecret) {
		return nil, domain.ErrUnauthorized
	}

	return room, nil
}
