package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fdMLBPlayers() []PlayerRecord {
	return []PlayerRecord{
		{ID: "p1", FullName: "Ace", Position: "P", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 10},
		{ID: "c1", FullName: "Catch", Position: "C", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 11},
		{ID: "b1", FullName: "First", Position: "1B", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 12},
		{ID: "b2", FullName: "Second", Position: "2B", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 13},
		{ID: "b3", FullName: "Third", Position: "3B", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 14},
		{ID: "ss", FullName: "Short", Position: "SS", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 15},
		{ID: "of1", FullName: "Out1", Position: "OF", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 16},
		{ID: "of2", FullName: "Out2", Position: "OF", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 17},
		{ID: "of3", FullName: "Out3", Position: "OF", Team: "AAA", Opponent: "BBB", Salary: 3000, FPPG: 18},
	}
}

func TestNormalize_InvalidSiteSport(t *testing.T) {
	_, _, _, err := Normalize(Request{Site: "BETMGM", Sport: "MLB"})
	assert.True(t, errors.Is(err, ErrInvalidSite))

	_, _, _, err = Normalize(Request{Site: "FANDUEL", Sport: "NHL"})
	assert.True(t, errors.Is(err, ErrInvalidSport))
}

func TestNormalize_EmptyPoolAfterFiltering(t *testing.T) {
	_, _, _, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: nil})
	assert.True(t, errors.Is(err, ErrEmptyPlayerPool))
}

func TestNormalize_SalaryBandOnlyAppliedInsideBudgetHalf(t *testing.T) {
	// FD MLB budget is 35000; budget/2 = 17500.
	low := 10000 // below budget/2: must be ignored
	_, _, cc, err := Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(),
		MinTotalSalary: &low,
	})
	require.NoError(t, err)
	assert.Nil(t, cc.MinTotalSalary)

	inBand := 20000
	_, _, cc, err = Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(),
		MinTotalSalary: &inBand,
	})
	require.NoError(t, err)
	require.NotNil(t, cc.MinTotalSalary)
	assert.Equal(t, inBand, *cc.MinTotalSalary)
}

func TestNormalize_MaxSalaryAutoRaisedToMin(t *testing.T) {
	min, max := 30000, 20000 // max below min but both inside band
	_, _, cc, err := Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(),
		MinTotalSalary: &min, MaxTotalSalary: &max,
	})
	require.NoError(t, err)
	require.NotNil(t, cc.MaxTotalSalary)
	assert.Equal(t, min, *cc.MaxTotalSalary)
}

func TestNormalize_NumberOfLineupsClamped(t *testing.T) {
	_, _, cc, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(), NumberOfLineups: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, cc.NumberOfLineups)

	_, _, cc, err = Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(), NumberOfLineups: 500})
	require.NoError(t, err)
	assert.Equal(t, 200, cc.NumberOfLineups)
}

func TestNormalize_MaxExposurePercentage(t *testing.T) {
	pct := 30.0
	_, _, cc, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(), MaxExposure: &pct})
	require.NoError(t, err)
	require.NotNil(t, cc.GlobalMaxExposure)
	assert.Equal(t, 0.3, *cc.GlobalMaxExposure)
}

func TestNormalize_VariationEnablesRandomness(t *testing.T) {
	v := 10.0 // >1 branch: /500
	_, _, cc, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(), Variation: &v})
	require.NoError(t, err)
	assert.True(t, cc.RandomnessEnabled)
	base := v / 500
	assert.InDelta(t, base/1.5, cc.MinDeviation, 1e-9)
	assert.InDelta(t, base*1.5, cc.MaxDeviation, 1e-9)
}

func TestNormalize_UnknownTeamInMinMax(t *testing.T) {
	maxP := 3
	_, _, _, err := Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(),
		MinMaxPlayersFromTeam: []MinMaxTeamEntry{{TeamName: "ZZZ", MaxPlayers: &maxP}},
	})
	assert.True(t, errors.Is(err, ErrIncorrectTeamName))
}

func TestNormalize_ZeroMaxRemovesTeam(t *testing.T) {
	players := fdMLBPlayers()
	players = append(players, PlayerRecord{ID: "bu1", FullName: "Bench", Position: "OF", Team: "CCC", Opponent: "DDD", Salary: 3000, FPPG: 5})

	zero := 0
	_, normalized, cc, err := Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: players,
		MinMaxPlayersFromTeam: []MinMaxTeamEntry{{TeamName: "AAA", MaxPlayers: &zero}},
	})
	require.NoError(t, err)
	assert.True(t, cc.RemovedTeams["AAA"])
	require.Len(t, normalized, 1)
	assert.Equal(t, "CCC", normalized[0].Team)
}

func TestNormalize_ZeroMaxRemovesAllTeams_EmptyPool(t *testing.T) {
	zero := 0
	_, _, _, err := Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(),
		MinMaxPlayersFromTeam: []MinMaxTeamEntry{{TeamName: "AAA", MaxPlayers: &zero}},
	})
	assert.True(t, errors.Is(err, ErrEmptyPlayerPool))
}

func TestNormalize_MLBStackingBuildsBatterOnlyEquality(t *testing.T) {
	n := 3
	_, _, cc, err := Normalize(Request{
		Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(),
		Stacking: []StackingEntry{{TeamName: "aaa", NumberOfPlayers: &n}},
	})
	require.NoError(t, err)
	require.Len(t, cc.MLBStacks, 1)
	assert.Equal(t, "AAA", cc.MLBStacks[0].Team)
	assert.Equal(t, 3, cc.MLBStacks[0].NumberOfPlayers)
	require.Len(t, cc.TeamConstraints["AAA"], 1)
	assert.True(t, cc.TeamConstraints["AAA"][0].BatterOnly)
	assert.Equal(t, OpEqual, cc.TeamConstraints["AAA"][0].Op)
}

func TestNormalize_NFLStackingValidatesTeams(t *testing.T) {
	players := []PlayerRecord{
		{ID: "qb1", FullName: "QB1", Position: "QB", Team: "AAA", Salary: 7000, FPPG: 20},
	}
	_, _, _, err := Normalize(Request{
		Site: "FANDUEL", Sport: "NFL", Players: players,
		Stacking: []StackingEntry{{StackType: "QB_WR", StackTeams: []string{"ZZZ"}}},
	})
	assert.True(t, errors.Is(err, ErrIncorrectTeamName))
}

func TestNormalize_PlayerWithNoPosition(t *testing.T) {
	players := []PlayerRecord{{ID: "x", FullName: "Nopos", Position: "", Team: "AAA", Salary: 3000, FPPG: 5}}
	_, _, _, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: players})
	assert.True(t, errors.Is(err, ErrIncorrectPositionName))
}

func TestNormalize_ForcedPlayerKeepsRealFPPG(t *testing.T) {
	players := fdMLBPlayers()
	players[0].Force = true
	_, normalized, _, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: players})
	require.NoError(t, err)
	require.True(t, normalized[0].Force)
	assert.Equal(t, 10.0, normalized[0].FPPG)
}

func TestNormalize_SolverSelection(t *testing.T) {
	_, _, cc, err := Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers(), Solver: "cbc"})
	require.NoError(t, err)
	assert.Equal(t, "CBC", cc.SolverName)

	_, _, cc, err = Normalize(Request{Site: "FANDUEL", Sport: "MLB", Players: fdMLBPlayers()})
	require.NoError(t, err)
	assert.Equal(t, "DEFAULT", cc.SolverName)
}
