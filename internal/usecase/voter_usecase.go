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

// VoterUsecase is voter admission and balloting, gated by the capability
// secrets. Notifications are best-effort: the state change always lands
// before any event is published and is never rolled back for one.
type VoterUsecase interface {
	Join(ctx context.Context, roomID uuid.UUID) (*models.Voter, error)
	Approve(ctx context.Context, voterID uuid.UUID, adminSecret string) error
	SubmitBallot(ctx context.Context, voterID uuid.UUID, voterSecret string, ballot []string) error
}

type voterUsecase struct {
	roomRepo  RoomRepository
	voterRepo VoterRepository
	bus       *eventbus.Bus
}

func NewVoterUsecase(roomRepo RoomRepository, voterRepo VoterRepository, bus *eventbus.Bus) VoterUsecase {
	return &voterUsecase{
		roomRepo:  roomRepo,
		voterRepo: voterRepo,
		bus:       bus,
	}
}

func (uc *voterUsecase) Join(ctx context.Context, roomID uuid.UUID) (*models.Voter, error) {
	room, err := uc.roomRepo.GetByIDAndStatus(ctx, roomID, models.StatusOpen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoomNotFound
		}

		return nil, fmt.Errorf("get open room: %w", err)
	}

	voter, err := models.NewVoter(room.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.voterRepo.Create(ctx, voter); err != nil {
		return nil, fmt.Errorf("create voter: %w", err)
	}

	count, err := uc.voterRepo.CountByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("count voters: %w", err)
	}

	uc.bus.Publish(room.ID, events.NewVoter{VoterID: voter.ID})
	uc.bus.Publish(room.ID, events.NewVoterCount{Count: count})

	return voter, nil
}

func (uc *voterUsecase) Approve(ctx context.Context, voterID uuid.UUID, adminSecret string) error {
	voter, room, err := uc.lookupVoter(ctx, voterID)
	if err != nil {
		return err
	}

	if !domain.SecretsEqual(adminSecret, room.AdminSecret) {
		return domain.ErrUnauthorized
	}

	changed, err := uc.voterRepo.SetApproved(ctx, voter.ID)
	if err != nil {
		return fmt.Errorf("approve voter: %w", err)
	}

	if !changed {
		// Re-approval is a no-op and must not re-fire anything.
		return nil
	}

	approved, err := uc.voterRepo.CountApprovedByRoom(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("count approved voters: %w", err)
	}

	uc.bus.Publish(room.ID, events.VoterApproved{VoterID: voter.ID})

	// Edge-triggered: only the zero-to-one transition unlocks the start
	// button, not every approval. Two first approvals racing can both
	// read back 2 and skip the edge; the count-based read-back accepts
	// that window.
	if approved == 1 {
		uc.bus.Publish(room.ID, events.VoteStartable{})
	}

	return nil
}

func (uc *voterUsecase) SubmitBallot(ctx context.Context, voterID uuid.UUID, voterSecret string, ballot []string) error {
	voter, _, err := uc.lookupVoter(ctx, voterID)
	if err != nil {
		return err
	}

	if !domain.SecretsEqual(voterSecret, voter.Secret) {
		return domain.ErrUnauthorized
	}

	room, err := uc.roomRepo.GetByIDAndStatus(ctx, voter.RoomID, models.StatusVoting)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRoomNotFound
		}

		return fmt.Errorf("get voting room: %w", err)
	}

	if !voter.Approved {
		return domain.ErrUnauthorized
	}

	if !room.AcceptsBallot(ballot) {
		return domain.ErrBallotMismatch
	}

	first := voter.Ballot == nil

	if err := uc.voterRepo.SetBallot(ctx, voter.ID, ballot); err != nil {
		return fmt.Errorf("store ballot: %w", err)
	}

	// Read back after the write; under concurrent submissions the
	// broadcast count may lag a fast-follow write. The next event
	// converges it.
	count, err := uc.voterRepo.CountBallotsByRoom(ctx, room.ID)
	if err != nil {
		return fmt.Errorf("count ballots: %w", err)
	}

	uc.bus.Publish(room.ID, events.NewVote{VoterID: voter.ID})
	uc.bus.Publish(room.ID, events.NewVoteCount{Count: count})

	// Same accepted miss window as VoteStartable: concurrent first
	// submissions can both read back 2.
	if first && count == 1 {
		uc.bus.Publish(room.ID, events.VoteEndable{})
	}

	return nil
}

func (uc *voterUsecase) lookupVoter(ctx context.Context, voterID uuid.UUID) (*models.Voter, *models.Room, error) {
	voter, err := uc.voterRepo.GetByID(ctx, voterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrVoterNotFound
		}

		return nil, nil, fmt.Errorf("get voter: %w", err)
	}

	room, err := uc.roomRepo.GetByID(ctx, voter.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrVoterNotFound
		}

		return nil, nil, fmt.Errorf("get voter room: %w", err)
	}

	return voter, room, nil
}
