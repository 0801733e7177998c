package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupRosterTemplate_AllSix(t *testing.T) {
	tests := []struct {
		site  Site
		sport Sport
		slots int
	}{
		{DraftKings, NFL, 9},
		{FanDuel, NFL, 9},
		{DraftKings, MLB, 10},
		{FanDuel, MLB, 9},
		{DraftKings, NBA, 8},
		{FanDuel, NBA, 9},
	}
	for _, tt := range tests {
		t.Run(string(tt.site)+"_"+string(tt.sport), func(t *testing.T) {
			tmpl, err := LookupRosterTemplate(tt.site, tt.sport)
			assert.NoError(t, err)
			assert.Len(t, tmpl.Slots, tt.slots)
			assert.Equal(t, tt.slots, tmpl.TotalPlayers())
			assert.Greater(t, tmpl.Budget, 0)
		})
	}
}

func TestLookupRosterTemplate_Unsupported(t *testing.T) {
	_, err := LookupRosterTemplate(DraftKings, "NHL")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedCombination))
}
