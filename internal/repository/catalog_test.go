package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogSeed(t *testing.T) {
	c := DefaultCatalog()

	events := c.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Rock Concert", events[0].Name)
	assert.Equal(t, "Jazz Night", events[1].Name)

	seats, err := c.Seats(1)
	require.NoError(t, err)
	require.Len(t, seats, 20)
	assert.Equal(t, "A1", seats[0].Number)
	assert.Equal(t, "A20", seats[19].Number)
	for _, s := range seats {
		assert.False(t, s.Sold(), "seed seats must start unsold")
	}

	seats2, err := c.Seats(2)
	require.NoError(t, err)
	require.Len(t, seats2, 15)
	assert.Equal(t, "B15", seats2[14].Number)
}

func TestCatalogNotFound(t *testing.T) {
	c := DefaultCatalog()

	_, err := c.Seats(99)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = c.Event(99)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = c.FindSeat(99, 1)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = c.FindSeat(1, 21)
	assert.ErrorIs(t, err, ErrSeatNotFound)

	assert.False(t, c.HasEvent(0))
	assert.True(t, c.HasEvent(1))
}

func TestCatalogFindSeat(t *testing.T) {
	c := DefaultCatalog()
	s, err := c.FindSeat(2, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.ID)
	assert.Equal(t, "B7", s.Number)
}
