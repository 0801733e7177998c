package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLineup_Aggregates(t *testing.T) {
	assigned := []AssignedSlot{
		{Slot: Slot{Label: "P", Eligible: []string{"P"}}, Player: Player{ID: "1", FullName: "Ace", Salary: 9000, FPPG: 20}},
		{Slot: Slot{Label: "C", Eligible: []string{"C"}}, Player: Player{ID: "2", FullName: "Catch", Salary: 4000, FPPG: 10}},
	}
	lineup := NewLineup(assigned)

	assert.Equal(t, 13000, lineup.SalaryTotal)
	assert.Equal(t, 30.0, lineup.FPPGTotal)
	assert.Len(t, lineup.Players, 2)
}

func TestLineup_FPPGTotalIgnoresDeviatedFPPG(t *testing.T) {
	assigned := []AssignedSlot{
		{Slot: Slot{Label: "P"}, Player: Player{ID: "1", FPPG: 20, DeviatedFPPG: 999}},
	}
	lineup := NewLineup(assigned)
	assert.Equal(t, 20.0, lineup.FPPGTotal)
}

func TestLineup_SameRoster(t *testing.T) {
	a := NewLineup([]AssignedSlot{
		{Slot: Slot{Label: "P"}, Player: Player{ID: "1"}},
		{Slot: Slot{Label: "C"}, Player: Player{ID: "2"}},
	})
	b := NewLineup([]AssignedSlot{
		{Slot: Slot{Label: "C"}, Player: Player{ID: "2"}},
		{Slot: Slot{Label: "P"}, Player: Player{ID: "1"}},
	})
	c := NewLineup([]AssignedSlot{
		{Slot: Slot{Label: "P"}, Player: Player{ID: "1"}},
		{Slot: Slot{Label: "C"}, Player: Player{ID: "3"}},
	})

	assert.True(t, a.SameRoster(b))
	assert.False(t, a.SameRoster(c))
}

func TestLineup_PlayerIDsSorted(t *testing.T) {
	l := NewLineup([]AssignedSlot{
		{Slot: Slot{Label: "P"}, Player: Player{ID: "zz"}},
		{Slot: Slot{Label: "C"}, Player: Player{ID: "aa"}},
	})
	assert.Equal(t, []string{"aa", "zz"}, l.PlayerIDs())
}

func TestLineup_String(t *testing.T) {
	l := NewLineup([]AssignedSlot{
		{Slot: Slot{Label: "P"}, Player: Player{ID: "1", FullName: "Ace", Salary: 9000, FPPG: 20}},
	})
	s := l.String()
	assert.Contains(t, s, "P: Ace")
	assert.Contains(t, s, "salary=9000")
}
