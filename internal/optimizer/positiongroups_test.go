package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPositionGroups_DKNFL(t *testing.T) {
	tmpl, err := LookupRosterTemplate(DraftKings, NFL)
	assert.NoError(t, err)

	groups := BuildPositionGroups(tmpl.Slots)

	assert.Equal(t, PositionPlaces{Min: 1, Optional: 0}, groups.Positions["QB"])
	assert.Equal(t, PositionPlaces{Min: 2, Optional: 1}, groups.Positions["RB"])
	assert.Equal(t, PositionPlaces{Min: 3, Optional: 1}, groups.Positions["WR"])
	assert.Equal(t, PositionPlaces{Min: 1, Optional: 1}, groups.Positions["TE"])
	assert.Equal(t, PositionPlaces{Min: 1, Optional: 0}, groups.Positions["DST"])

	flexKey := groupKey([]string{"RB", "WR", "TE"})
	flexPlaces, ok := groups.Positions[flexKey]
	assert.True(t, ok)
	assert.Equal(t, 7, flexPlaces.Min)

	// single-position groups are ordered before the multi-eligibility FLEX
	// group, so constraints are imposed narrowest-first.
	assert.Equal(t, flexKey, groups.Order[len(groups.Order)-1])

	qbrb := groupKey([]string{"QB", "RB"})
	places, ok := groups.NotLinkedPositions[qbrb]
	assert.True(t, ok)
	assert.Equal(t, PositionPlaces{Min: 3, Optional: 1}, places)
	assert.Equal(t, 2, groups.NotLinkedArity[qbrb])
	assert.ElementsMatch(t, []string{"QB", "RB"}, groups.Eligible(qbrb))

	// A not-linked key never collides with a direct group key: the RB+TE+WR
	// combo is already the FLEX slot's own direct key, so it must not also
	// appear in NotLinkedPositions.
	_, collides := groups.NotLinkedPositions[flexKey]
	assert.False(t, collides)
}

func TestBuildPositionGroups_DKMLB_NotLinkedArity(t *testing.T) {
	tmpl, err := LookupRosterTemplate(DraftKings, MLB)
	assert.NoError(t, err)

	groups := BuildPositionGroups(tmpl.Slots)

	found2way, found3way := false, false
	for _, key := range groups.NotLinkedOrder {
		switch groups.NotLinkedArity[key] {
		case 2:
			found2way = true
		case 3:
			found3way = true
		}
	}
	assert.True(t, found2way, "expected at least one 2-way not-linked group")
	assert.True(t, found3way, "expected at least one 3-way not-linked group")

	// Every not-linked group containing "P" must still be tracked (the
	// model builder is responsible for excluding it, not this layer).
	pKey := groupKey([]string{"P", "2B"})
	_, ok := groups.NotLinkedPositions[pKey]
	assert.True(t, ok)
}

func TestBuildPositionGroups_FDNBA_AllDirectEqual(t *testing.T) {
	tmpl, err := LookupRosterTemplate(FanDuel, NBA)
	assert.NoError(t, err)

	groups := BuildPositionGroups(tmpl.Slots)

	assert.Equal(t, PositionPlaces{Min: 2, Optional: 0}, groups.Positions["PG"])
	assert.Equal(t, PositionPlaces{Min: 2, Optional: 0}, groups.Positions["SG"])
	assert.Equal(t, PositionPlaces{Min: 1, Optional: 0}, groups.Positions["C"])
}
