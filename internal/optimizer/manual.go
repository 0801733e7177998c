package optimizer

import "fmt"

// AddPlayerToLineup is the imperative manual-lock helper (§7): it places a
// single player into the first open slot it's eligible for, enforcing the
// same budget and team-cap invariants the solver enforces, without running
// a MILP. Callers use it to build a lineup by hand or to patch one slot at
// a time outside Generator.Run.
func AddPlayerToLineup(lineup Lineup, template RosterTemplate, player Player) (Lineup, error) {
	projectedSalary := lineup.SalaryTotal + player.Salary
	if projectedSalary > template.Budget {
		return lineup, fmt.Errorf("%w: adding %s would bring salary to %d (budget %d)", ErrOverBudget, player.FullName, projectedSalary, template.Budget)
	}

	if template.MaxFromOneTeam > 0 {
		teamCount := 0
		for _, p := range lineup.Players {
			if p.Team == player.Team {
				teamCount++
			}
		}
		if teamCount+1 > template.MaxFromOneTeam {
			return lineup, fmt.Errorf("%w: %s already has %d players from %s", ErrTeamCapExceeded, "lineup", teamCount, player.Team)
		}
	}

	// Mark template slot indices already consumed by this partial lineup.
	// Slots with the same label are interchangeable, so each existing
	// assignment consumes the first not-yet-marked template slot sharing
	// its label.
	filled := make([]bool, len(template.Slots))
	for _, assigned := range lineup.Slots {
		for si, tmplSlot := range template.Slots {
			if filled[si] || tmplSlot.Label != assigned.Slot.Label {
				continue
			}
			filled[si] = true
			break
		}
	}

	openSlot := -1
	for si, tmplSlot := range template.Slots {
		if filled[si] {
			continue
		}
		if !player.EligibleFor(tmplSlot.Eligible) {
			continue
		}
		openSlot = si
		break
	}
	if openSlot == -1 {
		return lineup, fmt.Errorf("%w: no open slot eligible for %s", ErrPositionOverfilled, player.FullName)
	}

	newSlots := append(append([]AssignedSlot(nil), lineup.Slots...), AssignedSlot{
		Slot:   template.Slots[openSlot],
		Player: player,
	})
	return NewLineup(newSlots), nil
}
