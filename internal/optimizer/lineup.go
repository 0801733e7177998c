package optimizer

import (
	"fmt"
	"sort"
	"strings"
)

// AssignedSlot pairs a roster slot with the player placed in it.
type AssignedSlot struct {
	Slot   Slot
	Player Player
}

// Lineup is the §4.5 value object: an immutable, fully slotted roster plus
// its aggregate totals.
type Lineup struct {
	Slots       []AssignedSlot
	Players     []Player
	FPPGTotal   float64
	SalaryTotal int
}

// NewLineup builds a Lineup from a completed slot assignment, computing the
// aggregate totals from each player's real FPPG (never DeviatedFPPG, which
// is a solver-only perturbation — see generator.go's applyDeviation).
func NewLineup(assigned []AssignedSlot) Lineup {
	players := make([]Player, len(assigned))
	var fppg float64
	var salary int
	for i, a := range assigned {
		players[i] = a.Player
		fppg += a.Player.FPPG
		salary += a.Player.Salary
	}
	return Lineup{
		Slots:       assigned,
		Players:     players,
		FPPGTotal:   fppg,
		SalaryTotal: salary,
	}
}

// String renders the lineup deterministically (slot order, then
// "Label: PlayerName"), for logging and golden-file tests.
func (l Lineup) String() string {
	var b strings.Builder
	for i, a := range l.Slots {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", a.Slot.Label, a.Player.FullName)
	}
	fmt.Fprintf(&b, " [salary=%d fppg=%.2f]", l.SalaryTotal, l.FPPGTotal)
	return b.String()
}

// SameRoster reports whether two lineups contain the same multiset of
// players, irrespective of slot assignment order.
func (l Lineup) SameRoster(other Lineup) bool {
	if len(l.Players) != len(other.Players) {
		return false
	}
	a := playerIDMultiset(l.Players)
	b := playerIDMultiset(other.Players)
	if len(a) != len(b) {
		return false
	}
	for id, count := range a {
		if b[id] != count {
			return false
		}
	}
	return true
}

func playerIDMultiset(players []Player) map[string]int {
	m := make(map[string]int, len(players))
	for _, p := range players {
		m[p.ID]++
	}
	return m
}

// PlayerIDs returns the sorted player IDs in the lineup, a stable key for
// diversity/uniqueness comparisons.
func (l Lineup) PlayerIDs() []string {
	ids := make([]string, len(l.Players))
	for i, p := range l.Players {
		ids[i] = p.ID
	}
	sort.Strings(ids)
	return ids
}
