package optimizer

import (
	"context"
	"math/rand"
)

// Generator runs the sequential MILP solve loop of spec §4.3. It owns the
// player pool for the duration of a run; mutable per-player bookkeeping
// (DeviatedFPPG, NumLineupsUsed) lives on the Generator's own copy of the
// pool, never on the caller's.
type Generator struct {
	cc       CoreConstraints
	template RosterTemplate
	groups   PositionGroups
	pool     []Player
	backend  Backend
	rng      *rand.Rand

	retired map[string]bool
}

// NewGenerator constructs a Generator from validated inputs. Excluded
// players must already be absent from players (Normalize guarantees this).
// Injured players (unless forced), players whose resolved exposure cap is
// zero, and — when a stacking rule names a team whitelist — QBs/DEFs whose
// team isn't on that whitelist (§4.3 step 6) are all dropped here before any
// model is built.
func NewGenerator(template RosterTemplate, players []Player, cc CoreConstraints, backend Backend, rng *rand.Rand) *Generator {
	allowedQBTeams, qbWhitelisted := stackWhitelist(cc.NFLStacks, StackQBWR, StackQBTE, StackQBWRTE)
	allowedDefTeams, defWhitelisted := stackWhitelist(cc.NFLStacks, StackRBDef)

	pool := make([]Player, 0, len(players))
	for _, p := range players {
		if p.IsInjured && !p.Force {
			continue
		}
		cap := p.EffectiveExposureCap(cc.GlobalMaxExposure)
		if cap != nil && *cap <= 0 {
			continue
		}
		if cc.Sport == NFL {
			if qbWhitelisted && isQB(p) && !allowedQBTeams[p.Team] {
				continue
			}
			if defWhitelisted && isDEF(p) && !allowedDefTeams[p.Team] {
				continue
			}
		}
		pool = append(pool, p)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Generator{
		cc:       cc,
		template: template,
		groups:   BuildPositionGroups(template.Slots),
		pool:     pool,
		backend:  backend,
		rng:      rng,
		retired:  make(map[string]bool),
	}
}

// Run executes the loop: build a model, solve, slot-assign, bookkeep, and
// repeat until NumberOfLineups lineups are produced or the backend reports
// infeasibility. Per-iteration errors (infeasible solve, invalid lineup) are
// swallowed so the run returns whatever it already produced (§7).
func (g *Generator) Run(ctx context.Context) ([]Lineup, error) {
	if len(g.pool) == 0 {
		return nil, ErrEmptyPlayerPool
	}

	var lineups []Lineup
	var diffLineups []Lineup
	var maxPointsCap *float64

	for len(lineups) < g.cc.NumberOfLineups {
		alive := g.aliveIndices()
		if len(alive) < g.template.TotalPlayers() {
			break
		}

		model, varPlayers := g.buildModel(alive, lineups, diffLineups, maxPointsCap)

		result, err := g.backend.Solve(ctx, model, BackendOptions{Threads: g.cc.SolverThreads, Message: g.cc.SolverMessage})
		if err != nil || !result.Feasible {
			break
		}

		var chosen []Player
		for i, sel := range result.Selected {
			if sel {
				chosen = append(chosen, varPlayers[i])
			}
		}

		assigned, err := AssignSlots(chosen, g.template)
		if err != nil {
			// Invalid lineup: abandon this iteration, return what we have.
			break
		}

		lineup := NewLineup(assigned)

		if len(lineups) == 0 {
			// Seed diffLineups with the very first lineup so the next
			// iteration's model already carries a distinctness cut against
			// it — otherwise, absent numberOfUniquePlayers or an exposure
			// cap, an identical model would just reproduce it (grounded on
			// original_source/lineup_optimizer.py's unconditional
			// diff_lineups.append(lineup) on the first solve).
			diffLineups = append(diffLineups, lineup)
		} else {
			prev := lineups[len(lineups)-1]
			switch {
			case almostEqual(lineup.FPPGTotal, prev.FPPGTotal):
				if len(diffLineups) == 0 {
					diffLineups = append(diffLineups, prev)
				}
				diffLineups = append(diffLineups, lineup)
			case lineup.FPPGTotal < prev.FPPGTotal:
				cap := lineup.FPPGTotal - 0.01
				maxPointsCap = &cap
				diffLineups = nil
			}
		}

		lineups = append(lineups, lineup)
		g.bookkeepExposure(lineup)

		if g.cc.RandomnessEnabled {
			g.applyDeviation(lineup)
		}
	}

	return lineups, nil
}

// stackWhitelist unions the Teams lists of every rule matching one of kinds
// that itself carries a non-empty whitelist. The second return value is
// false when no matching rule restricted teams, meaning every team stays
// eligible (§4.3 step 6's whitelist only activates when the request names
// specific stackTeams).
func stackWhitelist(rules []StackRule, kinds ...StackKind) (map[string]bool, bool) {
	want := make(map[StackKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	allowed := make(map[string]bool)
	restricted := false
	for _, r := range rules {
		if !want[r.Kind] || len(r.Teams) == 0 {
			continue
		}
		restricted = true
		for _, t := range r.Teams {
			allowed[t] = true
		}
	}
	return allowed, restricted
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}

// aliveIndices returns pool indices for players not retired by exposure
// bookkeeping.
func (g *Generator) aliveIndices() []int {
	var out []int
	for i, p := range g.pool {
		if g.retired[p.ID] {
			continue
		}
		out = append(out, i)
	}
	return out
}

// applyDeviation perturbs the deviated FPPG of every player selected in
// lineup, per spec §4.3 step 1: deviated_fppg *= (1 - U(minDev, maxDev)).
func (g *Generator) applyDeviation(lineup Lineup) {
	inLineup := make(map[string]bool, len(lineup.Players))
	for _, p := range lineup.Players {
		inLineup[p.ID] = true
	}
	for i := range g.pool {
		if !inLineup[g.pool[i].ID] {
			continue
		}
		u := g.cc.MinDeviation + g.rng.Float64()*(g.cc.MaxDeviation-g.cc.MinDeviation)
		g.pool[i].DeviatedFPPG = g.pool[i].DeviatedFPPG * (1 - u)
	}
}

// bookkeepExposure increments NumLineupsUsed for every selected player and
// retires any player whose resolved exposure cap is now met (§4.3 step 9).
func (g *Generator) bookkeepExposure(lineup Lineup) {
	selected := make(map[string]bool, len(lineup.Players))
	for _, p := range lineup.Players {
		selected[p.ID] = true
	}
	for i := range g.pool {
		if !selected[g.pool[i].ID] {
			continue
		}
		g.pool[i].NumLineupsUsed++
		cap := g.pool[i].EffectiveExposureCap(g.cc.GlobalMaxExposure)
		if cap == nil {
			continue
		}
		used := float64(g.pool[i].NumLineupsUsed) / float64(g.cc.NumberOfLineups)
		if *cap <= used {
			g.retired[g.pool[i].ID] = true
			g.pool[i].FPPG = sentinelRetiredFPPG
			g.pool[i].DeviatedFPPG = sentinelRetiredFPPG
		}
	}
}
