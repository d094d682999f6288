package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voteroom/voteroom/internal/domain"
	"github.com/voteroom/voteroom/internal/usecase"
)

func TestSchedule_FiresAfterTTL(t *testing.T) {
	f := newFixture(t)

	short := usecase.NewExpiryScheduler(10*time.Millisecond, f.rooms, f.bus)

	room := f.createRoom(t, "Lunch", "Pizza", "Sushi")
	short.Schedule(room.ID)

	require.Eventually(t, func() bool {
		_, err := f.roomUC.GetRoom(context.Background(), room.ID)
		return errors.Is(err, domain.ErrRoomNotFound)
	}, time.Second, 5*time.Millisecond)
}
