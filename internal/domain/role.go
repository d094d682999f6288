package domain

import "github.com/google/uuid"

// Role is the classification of a live subscriber, computed once at
// subscribe time from the capability secrets it presented. The set is
// closed: projection dispatches over the concrete types below.
type Role interface {
	isRole()
}

// AdminRole is a subscriber holding the room's admin secret.
type AdminRole struct {
	RoomID uuid.UUID
}

// VoterRole is a subscriber holding a voter secret for the room.
type VoterRole struct {
	VoterID uuid.UUID
}

// AnonymousRole is a subscriber with no or non-matching secrets.
// It only ever receives heartbeats.
type AnonymousRole struct{}

func (AdminRole) isRole()     {}
func (VoterRole) isRole()     {}
func (AnonymousRole) isRole() {}
