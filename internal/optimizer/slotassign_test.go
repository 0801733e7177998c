package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSlots_DKNFL_FlexOverflow(t *testing.T) {
	tmpl, err := LookupRosterTemplate(DraftKings, NFL)
	require.NoError(t, err)

	chosen := []Player{
		{ID: "qb", Positions: []string{"QB"}},
		{ID: "rb1", Positions: []string{"RB"}},
		{ID: "rb2", Positions: []string{"RB"}},
		{ID: "wr1", Positions: []string{"WR"}},
		{ID: "wr2", Positions: []string{"WR"}},
		{ID: "wr3", Positions: []string{"WR"}},
		{ID: "te", Positions: []string{"TE"}},
		{ID: "rb3", Positions: []string{"RB"}}, // overflow into FLEX
		{ID: "dst", Positions: []string{"DST"}},
	}

	assigned, err := AssignSlots(chosen, tmpl)
	require.NoError(t, err)
	require.Len(t, assigned, 9)

	labels := make(map[string]string) // playerID -> slot label
	for _, a := range assigned {
		labels[a.Player.ID] = a.Slot.Label
	}
	assert.Equal(t, "QB", labels["qb"])
	assert.Equal(t, "DST", labels["dst"])
	assert.Equal(t, "FLEX", labels["rb3"])
}

func TestAssignSlots_DKMLB_FlexConstraintPropagation(t *testing.T) {
	tmpl, err := LookupRosterTemplate(DraftKings, MLB)
	require.NoError(t, err)

	chosen := []Player{
		{ID: "p1", Positions: []string{"P"}},
		{ID: "p2", Positions: []string{"P"}},
		{ID: "c", Positions: []string{"C"}},
		{ID: "b1", Positions: []string{"1B"}},
		{ID: "b2", Positions: []string{"2B"}},
		{ID: "b3", Positions: []string{"3B"}},
		{ID: "ss", Positions: []string{"SS"}},
		{ID: "of1", Positions: []string{"OF"}},
		{ID: "of2", Positions: []string{"OF"}},
		{ID: "of3", Positions: []string{"OF"}},
	}

	assigned, err := AssignSlots(chosen, tmpl)
	require.NoError(t, err)
	require.Len(t, assigned, 10)

	seen := make(map[string]bool)
	for _, a := range assigned {
		player := a.Player
		assert.True(t, player.EligibleFor(a.Slot.Eligible), "player %s must be eligible for slot %q", player.ID, a.Slot.Label)
		seen[a.Player.ID] = true
	}
	assert.Len(t, seen, 10)
}

func TestAssignSlots_MultiEligiblePlayerFillsOpenSlot(t *testing.T) {
	tmpl, err := LookupRosterTemplate(DraftKings, MLB)
	require.NoError(t, err)

	chosen := []Player{
		{ID: "p1", Positions: []string{"P"}},
		{ID: "p2", Positions: []string{"P"}},
		{ID: "flexc1b", Positions: []string{"C", "1B"}}, // eligible for both the C and 1B slots
		{ID: "b1", Positions: []string{"1B"}},
		{ID: "b2", Positions: []string{"2B"}},
		{ID: "b3", Positions: []string{"3B"}},
		{ID: "ss", Positions: []string{"SS"}},
		{ID: "of1", Positions: []string{"OF"}},
		{ID: "of2", Positions: []string{"OF"}},
		{ID: "of3", Positions: []string{"OF"}},
	}

	assigned, err := AssignSlots(chosen, tmpl)
	require.NoError(t, err)
	require.Len(t, assigned, 10)
}

func TestAssignSlots_WrongPlayerCount(t *testing.T) {
	tmpl, err := LookupRosterTemplate(FanDuel, NBA)
	require.NoError(t, err)

	_, err = AssignSlots([]Player{{ID: "1", Positions: []string{"PG"}}}, tmpl)
	assert.True(t, errors.Is(err, ErrInvalidLineup))
}

func TestAssignSlots_NoEligiblePlayerForSlot(t *testing.T) {
	tmpl, err := LookupRosterTemplate(FanDuel, NBA)
	require.NoError(t, err)

	chosen := make([]Player, tmpl.TotalPlayers())
	for i := range chosen {
		chosen[i] = Player{ID: "x" + string(rune('a'+i)), Positions: []string{"C"}} // none eligible for PG/SG/SF/PF slots
	}
	_, err = AssignSlots(chosen, tmpl)
	assert.True(t, errors.Is(err, ErrInvalidLineup))
}
