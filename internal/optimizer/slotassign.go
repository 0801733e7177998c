package optimizer

import "fmt"

// AssignSlots places a chosen player set into a roster template's named
// slots (§4.4). It runs a constraint-propagation loop rather than a general
// bipartite-matching solver (see DESIGN.md's Open Question decision): pin
// every slot/player with exactly one remaining option, repeat until nothing
// is pinnable, then break the tie by assigning the most-constrained open
// slot its first remaining candidate. A no-progress counter guards against
// the rare adversarial eligibility graph the spec calls out, surfacing
// ErrInvalidLineup instead of looping forever.
func AssignSlots(chosen []Player, template RosterTemplate) ([]AssignedSlot, error) {
	n := len(template.Slots)
	if len(chosen) != n {
		return nil, fmt.Errorf("%w: expected %d players, got %d", ErrInvalidLineup, n, len(chosen))
	}

	assignedSlot := make([]int, n)
	for i := range assignedSlot {
		assignedSlot[i] = -1
	}
	usedPlayer := make([]bool, n)
	remaining := n

	noProgressLimit := n*3 + 5
	noProgress := 0

	for remaining > 0 {
		progressed := false

		// Pass 1: slots with exactly one eligible remaining player.
		for si, slot := range template.Slots {
			if assignedSlot[si] != -1 {
				continue
			}
			candidates := candidateIndices(slot, chosen, usedPlayer)
			if len(candidates) == 0 {
				return nil, fmt.Errorf("%w: no eligible player left for slot %q", ErrInvalidLineup, slot.Label)
			}
			if len(candidates) == 1 {
				assignedSlot[si] = candidates[0]
				usedPlayer[candidates[0]] = true
				remaining--
				progressed = true
			}
		}
		if progressed {
			noProgress = 0
			continue
		}

		// Pass 2: players eligible for exactly one open slot.
		for pi, p := range chosen {
			if usedPlayer[pi] {
				continue
			}
			openSlots := openSlotIndices(p, template.Slots, assignedSlot)
			if len(openSlots) == 1 {
				si := openSlots[0]
				assignedSlot[si] = pi
				usedPlayer[pi] = true
				remaining--
				progressed = true
			}
		}
		if progressed {
			noProgress = 0
			continue
		}

		// Pass 3: heuristic pin — the most-constrained open slot takes its
		// first remaining candidate (pool order), breaking a pair/triple
		// ambiguity arbitrarily but deterministically.
		bestSlot := -1
		var bestCandidates []int
		for si, slot := range template.Slots {
			if assignedSlot[si] != -1 {
				continue
			}
			candidates := candidateIndices(slot, chosen, usedPlayer)
			if bestSlot == -1 || len(candidates) < len(bestCandidates) {
				bestSlot, bestCandidates = si, candidates
			}
		}
		if bestSlot != -1 && len(bestCandidates) > 0 {
			assignedSlot[bestSlot] = bestCandidates[0]
			usedPlayer[bestCandidates[0]] = true
			remaining--
			progressed = true
		}

		if progressed {
			noProgress = 0
			continue
		}

		noProgress++
		if noProgress > noProgressLimit {
			return nil, ErrInvalidLineup
		}
	}

	out := make([]AssignedSlot, n)
	for si, slot := range template.Slots {
		// Detached copy (spec §3 "Ownership"): the label rewrite below is
		// lineup-local and must never leak back onto the caller's pool.
		placed := chosen[assignedSlot[si]]
		placed.ProviderPosition = slot.Label
		out[si] = AssignedSlot{Slot: slot, Player: placed}
	}
	return out, nil
}

func candidateIndices(slot Slot, chosen []Player, used []bool) []int {
	var out []int
	for i, p := range chosen {
		if used[i] {
			continue
		}
		if p.EligibleFor(slot.Eligible) {
			out = append(out, i)
		}
	}
	return out
}

func openSlotIndices(p Player, slots []Slot, assignedSlot []int) []int {
	var out []int
	for si, slot := range slots {
		if assignedSlot[si] != -1 {
			continue
		}
		if p.EligibleFor(slot.Eligible) {
			out = append(out, si)
		}
	}
	return out
}
