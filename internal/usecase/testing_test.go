package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voteroom/voteroom/internal/domain"
	"github.com/voteroom/voteroom/internal/domain/events"
	"github.com/voteroom/voteroom/internal/domain/models"
	"github.com/voteroom/voteroom/internal/eventbus"
	"github.com/voteroom/voteroom/internal/infra/adapters/memory"
	"github.com/voteroom/voteroom/internal/usecase"
)

// fixture wires the usecases against the in-memory adapters, with a TTL
// long enough that no test room expires on its own.
type fixture struct {
	rooms  usecase.RoomRepository
	voters usecase.VoterRepository
	bus    *eventbus.Bus

	roomUC    usecase.RoomUsecase
	voterUC   usecase.VoterUsecase
	scheduler *usecase.ExpiryScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	voters := memory.NewVoterRepository()
	rooms := memory.NewRoomRepository(voters)
	bus := eventbus.New()

	scheduler := usecase.NewExpiryScheduler(time.Hour, rooms, bus)

	return &fixture{
		rooms:     rooms,
		voters:    voters,
		bus:       bus,
		roomUC:    usecase.NewRoomUsecase(rooms, voters, bus, scheduler),
		voterUC:   usecase.NewVoterUsecase(rooms, voters, bus),
		scheduler: scheduler,
	}
}

func (f *fixture) createRoom(t *testing.T, name string, options ...string) *models.Room {
	t.Helper()

	room, err := f.roomUC.CreateRoom(context.Background(), name, options)
	require.NoError(t, err)

	return room
}

func (f *fixture) join(t *testing.T, room *models.Room) *models.Voter {
	t.Helper()

	voter, err := f.voterUC.Join(context.Background(), room.ID)
	require.NoError(t, err)

	return voter
}

// adminSub subscribes as the room admin; publishes are synchronous, so
// after an operation returns its events are already buffered.
func (f *fixture) adminSub(room *models.Room) *eventbus.Subscription {
	return f.bus.Subscribe(room.ID, domain.AdminRole{RoomID: room.ID})
}

func drain(sub *eventbus.Subscription) []events.Event {
	var out []events.Event

	for {
		select {
		case ev := <-sub.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}
