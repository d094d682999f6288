// Package eventbus implements the per-room live notification channel.
// It is a broadcast primitive, not a log: events published with no
// subscribers are dropped, and a subscriber never observes backlog.
package eventbus

import (
	"sync"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/application/metric"
	"github.com/voteroom/voteroom/internal/domain"
	"github.com/voteroom/voteroom/internal/domain/events"
)

// subscriberBuffer bounds each subscriber's pending events. A subscriber
// that falls this far behind loses events (a gap); consumers treat a gap
// as a resync trigger, never an error.
const subscriberBuffer = 16

// Bus owns the room-id to channel mapping. The mutex guards only
// lookup, insert and remove; delivery happens outside it.
type Bus struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]map[*Subscription]struct{}
}

func New() *Bus {
	return &Bus{
		rooms: make(map[uuid.UUID]map[*Subscription]struct{}),
	}
}

// Subscription is one live consumer of a room's events.
type Subscription struct {
	role   domain.Role
	roomID uuid.UUID

	events chan events.Event
	done   chan struct{}

	bus  *Bus
	once sync.Once
}

// Events streams the room's events published after the subscription was
// taken. The channel is never closed; select on Done for termination.
func (s *Subscription) Events() <-chan events.Event {
	return s.events
}

// Done is closed when the subscription ends, either by Close or by the
// room's teardown. It is the clean end-of-stream signal.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Role is the classification computed when the subscription was taken.
func (s *Subscription) Role() domain.Role {
	return s.role
}

// Close drops the subscription. It has no effect on room state and is
// safe to call more than once, including after teardown.
func (s *Subscription) Close() {
	s.bus.mu.Lock()

	if subs, ok := s.bus.rooms[s.roomID]; ok {
		delete(subs, s)
	}

	s.bus.mu.Unlock()

	s.finish()
}

func (s *Subscription) finish() {
	s.once.Do(func() {
		close(s.done)
		metric.DecrementSubscribers()
	})
}

// Subscribe registers a consumer on the room's channel, creating the
// channel lazily. The role is fixed for the subscription's lifetime.
func (b *Bus) Subscribe(roomID uuid.UUID, role domain.Role) *Subscription {
	sub := &Subscription{
		role:   role,
		roomID: roomID,
		events: make(chan events.Event, subscriberBuffer),
		done:   make(chan struct{}),
		bus:    b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.rooms[roomID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		b.rooms[roomID] = subs
	}

	subs[sub] = struct{}{}
	metric.IncrementSubscribers()

	return sub
}

// Publish delivers ev to the room's current subscribers. Delivery is
// non-blocking: a full subscriber buffer drops the event for that
// subscriber only. Zero subscribers means the event evaporates.
func (b *Bus) Publish(roomID uuid.UUID, ev events.Event) {
	b.mu.Lock()

	subs := make([]*Subscription, 0, len(b.rooms[roomID]))
	for sub := range b.rooms[roomID] {
		subs = append(subs, sub)
	}

	b.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.events <- ev:
		case <-sub.done:
			// Closed between snapshot and send; nothing to deliver.
		default:
			metric.IncrementDroppedEvents()
		}
	}
}

// Teardown removes the room's channel. Every outstanding subscription
// terminates cleanly. Idempotent: tearing down an absent room is a no-op.
func (b *Bus) Teardown(roomID uuid.UUID) {
	b.mu.Lock()

	subs := b.rooms[roomID]
	delete(b.rooms, roomID)

	b.mu.Unlock()

	for sub := range subs {
		sub.finish()
	}
}
