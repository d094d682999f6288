package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom_SecretsAreUnique(t *testing.T) {
	a, err := NewRoom("Lunch", []string{"Pizza"})
	require.NoError(t, err)

	b, err := NewRoom("Lunch", []string{"Pizza"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.AdminSecret)
	assert.NotEqual(t, a.AdminSecret, b.AdminSecret)
}

func TestCanonicalOptions_DoesNotMutateDisplayOrder(t *testing.T) {
	room, err := NewRoom("Lunch", []string{"Sushi", "Pizza"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Pizza", "Sushi"}, room.CanonicalOptions())
	assert.Equal(t, StringList{"Sushi", "Pizza"}, room.Options)
}

func TestAcceptsBallot(t *testing.T) {
	room, err := NewRoom("Lunch", []string{"Pizza", "Sushi", "Pizza"})
	require.NoError(t, err)

	// Order-independent, multiset-exact.
	assert.True(t, room.AcceptsBallot([]string{"Sushi", "Pizza", "Pizza"}))
	assert.False(t, room.AcceptsBallot([]string{"Pizza", "Sushi"}))
	assert.False(t, room.AcceptsBallot([]string{"Pizza", "Sushi", "Sushi"}))
	assert.False(t, room.AcceptsBallot([]string{"Pizza", "Sushi", "Tacos"}))

	// AcceptsBallot must not reorder the candidate ballot.
	ballot := []string{"Sushi", "Pizza", "Pizza"}
	room.AcceptsBallot(ballot)
	assert.Equal(t, []string{"Sushi", "Pizza", "Pizza"}, ballot)
}
