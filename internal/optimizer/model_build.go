package optimizer

import "strconv"

// buildModel assembles one iteration's MILP (spec §4.3 steps 1-8) over the
// currently-alive pool indices.
func (g *Generator) buildModel(alive []int, lineups []Lineup, diffLineups []Lineup, maxPointsCap *float64) (Model, []Player) {
	n := len(alive)
	varPlayers := make([]Player, n)
	for i, idx := range alive {
		varPlayers[i] = g.pool[idx]
	}
	indexOf := make(map[string]int, n)
	for i, p := range varPlayers {
		indexOf[p.ID] = i
	}

	model := Model{NumVars: n, Objective: make([]float64, n)}
	for i, p := range varPlayers {
		if g.cc.RandomnessEnabled {
			model.Objective[i] = p.DeviatedFPPG
		} else {
			model.Objective[i] = p.FPPG
		}
	}

	// Step 2: salary band.
	salaryTerms := termsFor(varPlayers, func(p Player) float64 { return float64(p.Salary) })
	maxSalary := float64(g.template.Budget)
	if g.cc.MaxTotalSalary != nil {
		maxSalary = float64(*g.cc.MaxTotalSalary)
	}
	model.AddConstraint(LessOrEqual, maxSalary, "salary_max", salaryTerms...)
	if g.cc.MinTotalSalary != nil {
		model.AddConstraint(GreaterOrEqual, float64(*g.cc.MinTotalSalary), "salary_min", salaryTerms...)
	}

	// Step 3: roster size.
	model.AddConstraint(Equal, float64(g.template.TotalPlayers()), "roster_size", allTerms(n)...)

	// Step 4: position constraints.
	g.addPositionConstraints(&model, varPlayers)

	// Step 5: team cap.
	g.addTeamCapConstraints(&model, varPlayers)

	// Step 6: sport-specific stacking rules.
	g.addSportRules(&model, varPlayers)

	// Step 7: per-team equality/inequality constraints.
	g.addTeamConstraints(&model, varPlayers)

	// Forced players: hard x_p = 1 (preferred over the sentinel-FPPG
	// workaround, per DESIGN.md's Open Question resolution).
	for i, p := range varPlayers {
		if p.Force {
			model.AddConstraint(Equal, 1, "force:"+p.ID, Term{Var: i, Coeff: 1})
		}
	}

	// Step 8: diversity.
	g.addDiversityConstraints(&model, varPlayers, indexOf, lineups, diffLineups, maxPointsCap)

	return model, varPlayers
}

func termsFor(players []Player, weight func(Player) float64) []Term {
	terms := make([]Term, 0, len(players))
	for i, p := range players {
		terms = append(terms, Term{Var: i, Coeff: weight(p)})
	}
	return terms
}

func allTerms(n int) []Term {
	terms := make([]Term, n)
	for i := 0; i < n; i++ {
		terms[i] = Term{Var: i, Coeff: 1}
	}
	return terms
}

func termsWhere(players []Player, pred func(Player) bool) []Term {
	var terms []Term
	for i, p := range players {
		if pred(p) {
			terms = append(terms, Term{Var: i, Coeff: 1})
		}
	}
	return terms
}

func (g *Generator) addPositionConstraints(model *Model, players []Player) {
	site, sport := g.cc.Site, g.cc.Sport

	for _, key := range g.groups.Order {
		eligible := g.groups.Eligible(key)
		places := g.groups.Positions[key]
		terms := termsWhere(players, func(p Player) bool { return p.EligibleFor(eligible) })
		if len(terms) == 0 && places.Min == 0 {
			continue
		}

		// A group that overlaps another — either a flex/UTIL slot's own
		// broad eligibility, or an atomic position folded into one — can
		// only ever be a lower bound: its membership isn't disjoint from
		// the group(s) it shares players with, so pinning both sides to
		// "=" at once is jointly infeasible (their mins don't sum to
		// places.Min the way independent slots' would). A group with zero
		// overlap anywhere in the template — pitcher, QB, DST, or any
		// other fully exclusive slot, on any site — can be pinned exactly
		// without changing the feasible set, which also shrinks the
		// search tree.
		op := GreaterOrEqual
		if !g.groups.Overlapping[key] {
			op = Equal
		}
		model.AddConstraint(op, float64(places.Min), "pos:"+key, terms...)
	}

	if site == DraftKings && (sport == MLB || sport == NBA) {
		for _, key := range g.groups.NotLinkedOrder {
			if g.groups.NotLinkedArity[key] != 2 {
				continue
			}
			eligible := g.groups.Eligible(key)
			if containsPosition(eligible, "P") {
				continue
			}
			places := g.groups.NotLinkedPositions[key]
			terms := termsWhere(players, func(p Player) bool { return p.EligibleFor(eligible) })
			if len(terms) == 0 {
				continue
			}
			model.AddConstraint(GreaterOrEqual, float64(places.Min), "notlinked:"+key, terms...)
		}
	}
}

func containsPosition(positions []string, target string) bool {
	for _, p := range positions {
		if p == target {
			return true
		}
	}
	return false
}

func (g *Generator) addTeamCapConstraints(model *Model, players []Player) {
	if g.template.MaxFromOneTeam <= 0 {
		return
	}
	teams := distinctTeams(players)
	for _, team := range teams {
		terms := termsWhere(players, func(p Player) bool { return p.Team == team })
		model.AddConstraint(LessOrEqual, float64(g.template.MaxFromOneTeam), "teamcap:"+team, terms...)
	}
}

func distinctTeams(players []Player) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, p := range players {
		if p.Team == "" || seen[p.Team] {
			continue
		}
		seen[p.Team] = true
		teams = append(teams, p.Team)
	}
	return teams
}

// addSportRules implements §4.3 step 6: big-M stacking and avoidance rules.
func (g *Generator) addSportRules(model *Model, players []Player) {
	bigM := float64(g.template.MaxFromOneTeam)
	if bigM <= 0 {
		bigM = float64(g.template.TotalPlayers())
	}

	if g.cc.NoBattersVsPitchers && g.cc.Sport == MLB {
		for qi, q := range players {
			if !isPitcher(q) {
				continue
			}
			batterTerms := termsWhere(players, func(p Player) bool { return isBatter(p) && p.Team == q.Opponent })
			if len(batterTerms) == 0 {
				continue
			}
			terms := append(append([]Term(nil), batterTerms...), Term{Var: qi, Coeff: bigM})
			model.AddConstraint(LessOrEqual, bigM, "no_batters_vs_p:"+q.ID, terms...)
		}
	}

	if g.cc.Sport == NFL {
		for _, rule := range g.cc.NFLStacks {
			switch rule.Kind {
			case StackQBWR, StackQBTE, StackQBWRTE:
				receiverPositions := receiverPositionsFor(rule.Kind)
				for qi, q := range players {
					if !isQB(q) {
						continue
					}
					recvTerms := termsWhere(players, func(p Player) bool {
						return p.Team == q.Team && containsAnyPosition(p.Positions, receiverPositions)
					})
					if len(recvTerms) == 0 {
						continue
					}
					terms := append(append([]Term(nil), recvTerms...), Term{Var: qi, Coeff: -1})
					model.AddConstraint(GreaterOrEqual, 0, "stack_qb:"+q.ID, terms...)
				}
			case StackRBDef:
				for di, d := range players {
					if !isDEF(d) {
						continue
					}
					rbTerms := termsWhere(players, func(p Player) bool { return p.Team == d.Team && isRB(p) })
					if len(rbTerms) == 0 {
						continue
					}
					terms := append(append([]Term(nil), rbTerms...), Term{Var: di, Coeff: -1})
					model.AddConstraint(GreaterOrEqual, 0, "stack_rbdef:"+d.ID, terms...)
				}
			}
		}

		if g.cc.NoDefVsOppPlayers {
			for di, d := range players {
				if !isDEF(d) {
					continue
				}
				offenseTerms := termsWhere(players, func(p Player) bool { return p.Team == d.Opponent && !isDEF(p) })
				if len(offenseTerms) == 0 {
					continue
				}
				terms := append(append([]Term(nil), offenseTerms...), Term{Var: di, Coeff: bigM})
				model.AddConstraint(LessOrEqual, bigM, "no_def_vs_opp:"+d.ID, terms...)
			}
		}

		// no_qb_rb_k_from_team (supplemented from original_source/): at most
		// one of the QB's own-team RBs/Ks joins the QB in the lineup.
		// sum(rbk) + (M-1)*x_qb <= M, which reduces to sum(rbk) <= 1 when the
		// QB is selected and is slack (<= M) otherwise, mirroring the
		// original's `1 + (x_qb - 1) * (-M + 1)` bound algebraically.
		if g.cc.NoQBRBKSameTeam {
			for qi, q := range players {
				if !isQB(q) {
					continue
				}
				rbkTerms := termsWhere(players, func(p Player) bool {
					return p.Team == q.Team && (isRB(p) || isK(p))
				})
				if len(rbkTerms) == 0 {
					continue
				}
				terms := append(append([]Term(nil), rbkTerms...), Term{Var: qi, Coeff: bigM - 1})
				model.AddConstraint(LessOrEqual, bigM, "no_qb_rb_k:"+q.ID, terms...)
			}
		}

		// no_rb_wr_te_k_from_team: no RB/WR/K may share a team with a
		// selected TE (big-M form, same shape as no_batters_vs_pitchers).
		if g.cc.NoRBWRTEKSameTeam {
			for ti, t := range players {
				if !isTE(t) {
					continue
				}
				rbwrkTerms := termsWhere(players, func(p Player) bool {
					return p.Team == t.Team && (isRB(p) || isWR(p) || isK(p))
				})
				if len(rbwrkTerms) == 0 {
					continue
				}
				terms := append(append([]Term(nil), rbwrkTerms...), Term{Var: ti, Coeff: bigM})
				model.AddConstraint(LessOrEqual, bigM, "no_rb_wr_te_k:"+t.ID, terms...)
			}
		}
	}
}

func receiverPositionsFor(kind StackKind) []string {
	switch kind {
	case StackQBWR:
		return []string{"WR"}
	case StackQBTE:
		return []string{"TE"}
	case StackQBWRTE:
		return []string{"WR", "TE"}
	}
	return nil
}

func containsAnyPosition(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func isPitcher(p Player) bool { return containsPosition(p.Positions, "P") && p.Primary() == "P" }
func isBatter(p Player) bool  { return !isPitcher(p) }
func isQB(p Player) bool      { return p.Primary() == "QB" }
func isRB(p Player) bool      { return p.Primary() == "RB" }
func isWR(p Player) bool      { return p.Primary() == "WR" }
func isTE(p Player) bool      { return p.Primary() == "TE" }
func isK(p Player) bool       { return p.Primary() == "K" }
func isDEF(p Player) bool     { return p.Primary() == "DST" }

// addTeamConstraints implements §4.3 step 7.
func (g *Generator) addTeamConstraints(model *Model, players []Player) {
	for team, constraints := range g.cc.TeamConstraints {
		for ci, tc := range constraints {
			var terms []Term
			if tc.BatterOnly {
				terms = termsWhere(players, func(p Player) bool { return p.Team == team && isBatter(p) })
			} else {
				terms = termsWhere(players, func(p Player) bool { return p.Team == team })
			}
			if len(terms) == 0 {
				continue
			}
			op := LessOrEqual
			switch tc.Op {
			case OpEqual:
				op = Equal
			case OpAtLeast:
				op = GreaterOrEqual
			case OpAtMost:
				op = LessOrEqual
			}
			model.AddConstraint(op, float64(tc.Value), teamConstraintLabel(team, ci), terms...)
		}
	}
}

func teamConstraintLabel(team string, idx int) string {
	return "teamconstraint:" + team + ":" + strconv.Itoa(idx)
}

// addDiversityConstraints implements §4.3 step 8.
func (g *Generator) addDiversityConstraints(model *Model, players []Player, indexOf map[string]int, lineups []Lineup, diffLineups []Lineup, maxPointsCap *float64) {
	if g.cc.NumberOfUniquePlayers != nil {
		k := *g.cc.NumberOfUniquePlayers
		for li, prior := range lineups {
			terms := lineupTerms(players, indexOf, prior)
			if len(terms) == 0 {
				continue
			}
			model.AddConstraint(LessOrEqual, float64(g.template.TotalPlayers()-k), "diversity:"+strconv.Itoa(li), terms...)
		}
		return
	}

	for li, prior := range diffLineups {
		terms := lineupTerms(players, indexOf, prior)
		if len(terms) == 0 {
			continue
		}
		model.AddConstraint(LessOrEqual, float64(g.template.TotalPlayers()-1), "tied:"+strconv.Itoa(li), terms...)
	}

	if maxPointsCap != nil {
		terms := make([]Term, len(players))
		for i, p := range players {
			coeff := p.FPPG
			if g.cc.RandomnessEnabled {
				coeff = p.DeviatedFPPG
			}
			terms[i] = Term{Var: i, Coeff: coeff}
		}
		model.AddConstraint(LessOrEqual, *maxPointsCap, "objective_cap", terms...)
	}
}

func lineupTerms(players []Player, indexOf map[string]int, lineup Lineup) []Term {
	var terms []Term
	for _, lp := range lineup.Players {
		if i, ok := indexOf[lp.ID]; ok {
			terms = append(terms, Term{Var: i, Coeff: 1})
		}
	}
	return terms
}
