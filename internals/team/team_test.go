package team

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockquest/api-server/internals/quotes"
)

func quote(symbol string, price float64) quotes.Quote {
	return quotes.Quote{Symbol: symbol, Name: symbol, Price: price}
}

func filled(n int, price float64) *Selection {
	s := NewSelection()
	for i := 0; i < n; i++ {
		s.Add(quote(fmt.Sprintf("STK%d", i), price))
	}
	return s
}

func TestStateTransitions(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, StateEmpty, s.State())

	s.Add(quote("A", 100))
	assert.Equal(t, StatePartial, s.State())

	for _, sym := range []string{"B", "C", "D", "E"} {
		s.Add(quote(sym, 100))
	}
	assert.Equal(t, StateEligible, s.State())

	require.NoError(t, s.AssignCaptain("A"))
	assert.Equal(t, StateEligible, s.State())

	require.NoError(t, s.AssignViceCaptain("B"))
	assert.Equal(t, StateReady, s.State())

	// removing the captain's stock drops the count below the minimum and
	// clears the role
	s.Remove("A")
	assert.Equal(t, StatePartial, s.State())
	assert.Empty(t, s.Captain())

	// a replacement restores eligibility; the vice-captain survived but
	// the captain seat is still open
	s.Add(quote("F", 100))
	assert.Equal(t, StateEligible, s.State())
	assert.Equal(t, "B", s.ViceCaptain())
}

func TestAddCapacityAndDuplicates(t *testing.T) {
	s := filled(MaxStocks, 100)
	assert.Equal(t, MaxStocks, s.Size())

	warn := s.Add(quote("OVERFLOW", 100))
	assert.Equal(t, WarnAtCapacity, warn)
	assert.Equal(t, MaxStocks, s.Size())

	s = filled(3, 100)
	warn = s.Add(quote("STK0", 100))
	assert.Equal(t, WarnAlreadySelected, warn)
	assert.Equal(t, 3, s.Size())
}

func TestAddThenRemoveRestoresPriorState(t *testing.T) {
	s := filled(5, 100)
	require.NoError(t, s.AssignCaptain("STK0"))

	before := s.State()
	cost := s.TotalCost()

	s.Add(quote("TEMP", 250))
	require.NoError(t, s.AssignViceCaptain("TEMP"))
	s.Remove("TEMP")

	assert.Equal(t, before, s.State())
	assert.Equal(t, cost, s.TotalCost())
	assert.Empty(t, s.ViceCaptain())
	assert.Equal(t, "STK0", s.Captain())
}

func TestRoleConflictPolicy(t *testing.T) {
	s := filled(5, 100)
	require.NoError(t, s.AssignCaptain("STK0"))

	// assigning VC to the current captain is rejected, never silently
	// steals the role
	err := s.AssignViceCaptain("STK0")
	assert.ErrorIs(t, err, ErrRoleConflict)
	assert.Equal(t, "STK0", s.Captain())
	assert.Empty(t, s.ViceCaptain())

	require.NoError(t, s.AssignViceCaptain("STK1"))
	err = s.AssignCaptain("STK1")
	assert.ErrorIs(t, err, ErrRoleConflict)

	// unassigning the captain is not enough while STK1 still holds the
	// vice-captain seat
	s.UnassignCaptain()
	err = s.AssignCaptain("STK1")
	assert.ErrorIs(t, err, ErrRoleConflict)

	// once the symbol holds no role it is free to take either one
	s.UnassignViceCaptain()
	require.NoError(t, s.AssignCaptain("STK1"))
	assert.Empty(t, s.ViceCaptain())

	err = s.AssignCaptain("GHOST")
	assert.ErrorIs(t, err, ErrNotInSelection)
}

func TestTotalCost(t *testing.T) {
	s := NewSelection()
	s.Add(quote("A", 100.5))
	s.Add(quote("B", 250))
	assert.Equal(t, (100.5+250)*LotSize, s.TotalCost())

	assert.Zero(t, NewSelection().TotalCost())
}

func TestCanSubmit(t *testing.T) {
	// fewer than 5 stocks is never submittable, roles or not
	s := filled(4, 100)
	require.NoError(t, s.AssignCaptain("STK0"))
	require.NoError(t, s.AssignViceCaptain("STK1"))
	assert.False(t, s.CanSubmit(1e9))

	s = filled(5, 100)
	assert.False(t, s.CanSubmit(1e9)) // no roles yet
	require.NoError(t, s.AssignCaptain("STK0"))
	require.NoError(t, s.AssignViceCaptain("STK1"))
	assert.True(t, s.CanSubmit(5000))
	assert.False(t, s.CanSubmit(4999)) // cost is 5*100*10 = 5000
}

func TestClear(t *testing.T) {
	s := filled(5, 100)
	require.NoError(t, s.AssignCaptain("STK0"))
	s.Clear()
	assert.Equal(t, StateEmpty, s.State())
	assert.Empty(t, s.Captain())
	assert.Zero(t, s.TotalCost())
}
