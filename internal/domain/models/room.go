package models

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/voteroom/voteroom/internal/domain"
)

type RoomStatus string

const (
	StatusOpen   RoomStatus = "open"
	StatusVoting RoomStatus = "voting"
	StatusEnded  RoomStatus = "ended"
)

type Room struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Options     StringList `json:"options" db:"options"`
	AdminSecret string     `json:"-" db:"admin_secret"`
	Status      RoomStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// NewRoom validates the inputs and builds an Open room with a fresh admin
// secret. Options are stored exactly as given, in insertion order; the
// canonical view used for ballot comparison is derived, never stored.
func NewRoom(name string, options []string) (*Room, error) {
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	if len(options) == 0 {
		return nil, domain.ErrNoOptions
	}

	for _, opt := range options {
		if opt == "" {
			return nil, domain.ErrEmptyOption
		}
	}

	secret, err := domain.NewSecret()
	if err != nil {
		return nil, err
	}

	return &Room{
		ID:          uuid.New(),
		Name:        name,
		Options:     append(StringList(nil), options...),
		AdminSecret: secret,
		Status:      StatusOpen,
		CreatedAt:   time.Now(),
	}, nil
}

// CanonicalOptions returns the sorted view of the option set, used for
// ballot-equality checks and as the tally's seed order.
func (r *Room) CanonicalOptions() []string {
	canonical := append([]string(nil), r.Options...)
	sort.Strings(canonical)

	return canonical
}

// AcceptsBallot reports whether ballot is a permutation of the room's
// options. Comparison is order-independent: both sides are canonicalized.
func (r *Room) AcceptsBallot(ballot []string) bool {
	if len(ballot) != len(r.Options) {
		return false
	}

	sorted := append([]string(nil), ballot...)
	sort.Strings(sorted)

	canonical := r.CanonicalOptions()
	for i := range canonical {
		if sorted[i] != canonical[i] {
			return false
		}
	}

	return true
}
