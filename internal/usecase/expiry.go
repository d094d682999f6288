package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/application/constant"
	"github.com/voteroom/voteroom/internal/application/metric"
	"github.com/voteroom/voteroom/internal/eventbus"
)

// ExpiryScheduler guarantees every room is eventually deleted, whether or
// not an admin ever ends the vote. Scheduled expirations live only in
// process memory; they are not persisted across restarts.
type ExpiryScheduler struct {
	ttl       time.Duration
	roomRepo  RoomRepository
	bus       *eventbus.Bus
	deleteTTL time.Duration
}

func NewExpiryScheduler(ttl time.Duration, roomRepo RoomRepository, bus *eventbus.Bus) *ExpiryScheduler {
	return &ExpiryScheduler{
		ttl:       ttl,
		roomRepo:  roomRepo,
		bus:       bus,
		deleteTTL: 10 * time.Second,
	}
}

// Schedule arms the one-shot expiry for a freshly created room. The timer
// is never cancelled: if the admin ends the vote first, the later firing
// is a harmless no-op because the delete is delete-if-exists.
func (s *ExpiryScheduler) Schedule(roomID uuid.UUID) {
	time.AfterFunc(s.ttl, func() {
		s.Expire(roomID)
	})
}

// Expire deletes the room and all its voters regardless of status and
// tears down its event channel. It races freely with a manual end; both
// paths converge on "absent from the store". Fire-and-forget: a failed
// delete is logged and dropped, never retried.
func (s *ExpiryScheduler) Expire(roomID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), s.deleteTTL)
	defer cancel()

	if err := s.roomRepo.DeleteWithVoters(ctx, roomID); err != nil {
		slog.Error(
			"expire room",
			slog.String("room_id", roomID.String()),
			slog.Any(constant.Error, err),
		)

		return
	}

	s.bus.Teardown(roomID)
	metric.IncrementExpiredRooms()

	slog.Info("room expired", slog.String("room_id", roomID.String()))
}
