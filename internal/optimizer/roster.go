package optimizer

import "fmt"

// Slot is a single named position in a roster template. Eligible lists the
// position tags that may fill it; a flex slot lists more than one.
type Slot struct {
	Label    string
	Eligible []string
}

// RosterTemplate is the static per-site/sport roster shape.
type RosterTemplate struct {
	Site           Site
	Sport          Sport
	Slots          []Slot
	Budget         int
	MaxFromOneTeam int
}

// TotalPlayers is the slot count.
func (t RosterTemplate) TotalPlayers() int {
	return len(t.Slots)
}

// templateKey is how templates are registered and looked up.
type templateKey struct {
	site  Site
	sport Sport
}

var rosterTemplates = map[templateKey]RosterTemplate{
	{DraftKings, NFL}: {
		Site: DraftKings, Sport: NFL, Budget: 50000, MaxFromOneTeam: 8,
		Slots: []Slot{
			{"QB", []string{"QB"}},
			{"RB", []string{"RB"}},
			{"RB", []string{"RB"}},
			{"WR", []string{"WR"}},
			{"WR", []string{"WR"}},
			{"WR", []string{"WR"}},
			{"TE", []string{"TE"}},
			{"FLEX", []string{"RB", "WR", "TE"}},
			{"DST", []string{"DST"}},
		},
	},
	{FanDuel, NFL}: {
		Site: FanDuel, Sport: NFL, Budget: 60000, MaxFromOneTeam: 4,
		Slots: []Slot{
			{"QB", []string{"QB"}},
			{"RB", []string{"RB"}},
			{"RB", []string{"RB"}},
			{"WR", []string{"WR"}},
			{"WR", []string{"WR"}},
			{"WR", []string{"WR"}},
			{"TE", []string{"TE"}},
			{"FLEX", []string{"RB", "WR", "TE"}},
			{"D", []string{"DST"}},
		},
	},
	{DraftKings, MLB}: {
		Site: DraftKings, Sport: MLB, Budget: 50000, MaxFromOneTeam: 5,
		Slots: []Slot{
			{"P", []string{"P"}},
			{"P", []string{"P"}},
			{"C", []string{"C", "1B"}},
			{"1B", []string{"C", "1B"}},
			{"2B", []string{"2B"}},
			{"3B", []string{"3B"}},
			{"SS", []string{"SS"}},
			{"OF", []string{"OF"}},
			{"OF", []string{"OF"}},
			{"OF", []string{"OF"}},
		},
	},
	{FanDuel, MLB}: {
		Site: FanDuel, Sport: MLB, Budget: 35000, MaxFromOneTeam: 5,
		Slots: []Slot{
			{"P", []string{"P"}},
			{"C/1B", []string{"C", "1B"}},
			{"2B", []string{"2B"}},
			{"3B", []string{"3B"}},
			{"SS", []string{"SS"}},
			{"OF", []string{"OF"}},
			{"OF", []string{"OF"}},
			{"OF", []string{"OF"}},
			{"UTIL", []string{"C", "1B", "2B", "3B", "SS", "OF"}},
		},
	},
	{DraftKings, NBA}: {
		Site: DraftKings, Sport: NBA, Budget: 50000, MaxFromOneTeam: 4,
		Slots: []Slot{
			{"PG", []string{"PG"}},
			{"SG", []string{"SG"}},
			{"SF", []string{"SF"}},
			{"PF", []string{"PF"}},
			{"C", []string{"C"}},
			{"G", []string{"PG", "SG"}},
			{"F", []string{"SF", "PF"}},
			{"UTIL", []string{"PG", "SG", "SF", "PF", "C"}},
		},
	},
	{FanDuel, NBA}: {
		Site: FanDuel, Sport: NBA, Budget: 60000, MaxFromOneTeam: 4,
		Slots: []Slot{
			{"PG", []string{"PG"}},
			{"PG", []string{"PG"}},
			{"SG", []string{"SG"}},
			{"SG", []string{"SG"}},
			{"SF", []string{"SF"}},
			{"SF", []string{"SF"}},
			{"PF", []string{"PF"}},
			{"PF", []string{"PF"}},
			{"C", []string{"C"}},
		},
	},
}

// LookupRosterTemplate returns the static template for a site/sport pair.
func LookupRosterTemplate(site Site, sport Sport) (RosterTemplate, error) {
	t, ok := rosterTemplates[templateKey{site, sport}]
	if !ok {
		return RosterTemplate{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedCombination, site, sport)
	}
	return t, nil
}
