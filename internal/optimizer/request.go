package optimizer

import (
	"fmt"
	"strings"
)

// PlayerRecord is the wire shape of one pool entrant (§6).
type PlayerRecord struct {
	ID          string   `json:"id"`
	FullName    string   `json:"fullName"`
	Position    string   `json:"position"`
	FPPG        float64  `json:"fppg"`
	Salary      int      `json:"salary"`
	Team        string   `json:"team"`
	Opponent    string   `json:"opponent"`
	Injured     bool     `json:"injured"`
	Force       bool     `json:"force"`
	Exclude     bool     `json:"exclude"`
	MaxExposure *float64 `json:"maxExposure"`
}

// StackingEntry is one element of the request's "stacking" list. Its shape
// is sport-dependent: MLB uses TeamName/NumberOfPlayers, NFL uses
// StackType/StackTeams.
type StackingEntry struct {
	TeamName        string   `json:"teamName"`
	NumberOfPlayers *int     `json:"numberOfPlayers"`
	StackType       string   `json:"stackType"`
	StackTeams      []string `json:"stackTeams"`
}

// MinMaxTeamEntry is one element of "minMaxPlayersFromTeam".
type MinMaxTeamEntry struct {
	TeamName   string `json:"teamName"`
	MinPlayers *int   `json:"minPlayers"`
	MaxPlayers *int   `json:"maxPlayers"`
}

// Request is the external configuration object (§6).
type Request struct {
	Site    string         `json:"site"`
	Sport   string         `json:"sport"`
	Players []PlayerRecord `json:"players"`

	NumberOfLineups int `json:"numberOfLineups"`

	MinTotalSalary *int `json:"minTotalSalary"`
	MaxTotalSalary *int `json:"maxTotalSalary"`

	MaxExposure *float64 `json:"maxExposure"`

	Variation *float64 `json:"variation"`

	NumberOfUniquePlayers *int `json:"numberOfUniquePlayers"`

	Stacking []StackingEntry `json:"stacking"`

	MinMaxPlayersFromTeam []MinMaxTeamEntry `json:"minMaxPlayersFromTeam"`

	NoBattersVsPitchers bool `json:"noBattersVsPitchers"`
	NoDefVsOppPlayers   bool `json:"noDefVsOppPlayers"`

	// NoQBRBKFromTeam / NoRBWRTEKFromTeam are NFL anti-stack options
	// supplemented from original_source/ (see CoreConstraints).
	NoQBRBKFromTeam   bool `json:"no_qb_rb_k_from_team"`
	NoRBWRTEKFromTeam bool `json:"no_rb_wr_te_k_from_team"`

	Solver  string `json:"solver"`
	Message int    `json:"message"`
	Threads int    `json:"threads"`
}

// Normalize validates and coerces a Request into the core's typed inputs:
// the roster template, the filtered/promoted player pool, and the validated
// constraints. It is the single config-driven entry point (see DESIGN.md's
// "Duplicated factory" decision).
func Normalize(req Request) (RosterTemplate, []Player, CoreConstraints, error) {
	site := Site(strings.ToUpper(strings.TrimSpace(req.Site)))
	if site != DraftKings && site != FanDuel {
		return RosterTemplate{}, nil, CoreConstraints{}, fmt.Errorf("%w: %q", ErrInvalidSite, req.Site)
	}
	sport := Sport(strings.ToUpper(strings.TrimSpace(req.Sport)))
	if sport != NFL && sport != MLB && sport != NBA {
		return RosterTemplate{}, nil, CoreConstraints{}, fmt.Errorf("%w: %q", ErrInvalidSport, req.Sport)
	}

	template, err := LookupRosterTemplate(site, sport)
	if err != nil {
		return RosterTemplate{}, nil, CoreConstraints{}, err
	}

	cc := CoreConstraints{
		Site:            site,
		Sport:           sport,
		TeamConstraints: make(map[string][]TeamConstraint),
		RemovedTeams:    make(map[string]bool),
	}

	cc.NumberOfLineups = req.NumberOfLineups
	if cc.NumberOfLineups <= 0 {
		cc.NumberOfLineups = 1
	}
	if cc.NumberOfLineups > 200 {
		cc.NumberOfLineups = 200
	}

	if req.MinTotalSalary != nil && *req.MinTotalSalary > template.Budget/2 && *req.MinTotalSalary <= template.Budget {
		v := *req.MinTotalSalary
		cc.MinTotalSalary = &v
	}
	if req.MaxTotalSalary != nil && *req.MaxTotalSalary > template.Budget/2 && *req.MaxTotalSalary <= template.Budget {
		v := *req.MaxTotalSalary
		cc.MaxTotalSalary = &v
	}
	if cc.MaxTotalSalary != nil && cc.MinTotalSalary != nil && *cc.MaxTotalSalary < *cc.MinTotalSalary {
		v := *cc.MinTotalSalary
		cc.MaxTotalSalary = &v
	}

	if req.MaxExposure != nil {
		v := normalizeExposure(*req.MaxExposure)
		cc.GlobalMaxExposure = &v
	}

	if req.Variation != nil && *req.Variation > 0 {
		v := *req.Variation
		if v > 1 {
			v = v / 500
		} else {
			v = v / 5
		}
		cc.RandomnessEnabled = true
		cc.MinDeviation = v / 1.5
		cc.MaxDeviation = v * 1.5
	}

	cc.NumberOfUniquePlayers = req.NumberOfUniquePlayers

	cc.NoBattersVsPitchers = req.NoBattersVsPitchers && sport == MLB
	cc.NoDefVsOppPlayers = req.NoDefVsOppPlayers && sport == NFL
	cc.NoQBRBKSameTeam = req.NoQBRBKFromTeam && sport == NFL
	cc.NoRBWRTEKSameTeam = req.NoRBWRTEKFromTeam && sport == NFL

	switch strings.ToUpper(req.Solver) {
	case "CBC":
		cc.SolverName = "CBC"
	case "COIN":
		cc.SolverName = "COIN"
	default:
		cc.SolverName = "DEFAULT"
	}
	cc.SolverThreads = req.Threads
	cc.SolverMessage = req.Message

	teamsInPool := make(map[string]bool)
	players := make([]Player, 0, len(req.Players))
	for _, rec := range req.Players {
		team := uppercaseTeam(rec.Team)
		if team != "" {
			teamsInPool[team] = true
		}
	}

	for _, entry := range req.MinMaxPlayersFromTeam {
		team := uppercaseTeam(entry.TeamName)
		if team == "" {
			continue
		}
		if !teamsInPool[team] {
			return RosterTemplate{}, nil, CoreConstraints{}, fmt.Errorf("%w: %q", ErrIncorrectTeamName, entry.TeamName)
		}
		if entry.MaxPlayers != nil && *entry.MaxPlayers == 0 {
			cc.RemovedTeams[team] = true
			continue
		}
		if entry.MinPlayers != nil {
			cc.TeamConstraints[team] = append(cc.TeamConstraints[team], TeamConstraint{Op: OpAtLeast, Value: *entry.MinPlayers})
		}
		if entry.MaxPlayers != nil {
			cc.TeamConstraints[team] = append(cc.TeamConstraints[team], TeamConstraint{Op: OpAtMost, Value: *entry.MaxPlayers})
		}
	}

	for _, s := range req.Stacking {
		switch sport {
		case MLB:
			team := uppercaseTeam(s.TeamName)
			if team == "" {
				continue
			}
			if !teamsInPool[team] {
				return RosterTemplate{}, nil, CoreConstraints{}, fmt.Errorf("%w: %q", ErrIncorrectTeamName, s.TeamName)
			}
			n := 0
			if s.NumberOfPlayers != nil {
				n = *s.NumberOfPlayers
			}
			if n == 0 {
				cc.RemovedTeams[team] = true
				continue
			}
			cc.MLBStacks = append(cc.MLBStacks, MLBStackRule{Team: team, NumberOfPlayers: n})
			cc.TeamConstraints[team] = append(cc.TeamConstraints[team], TeamConstraint{Op: OpEqual, Value: n, BatterOnly: true})
		case NFL:
			kind := StackKind(strings.ToUpper(s.StackType))
			switch kind {
			case StackQBWR, StackQBTE, StackQBWRTE, StackRBDef:
			default:
				continue
			}
			teams := make([]string, 0, len(s.StackTeams))
			for _, t := range s.StackTeams {
				team := uppercaseTeam(t)
				if !teamsInPool[team] {
					return RosterTemplate{}, nil, CoreConstraints{}, fmt.Errorf("%w: %q", ErrIncorrectTeamName, t)
				}
				teams = append(teams, team)
			}
			cc.NFLStacks = append(cc.NFLStacks, StackRule{Kind: kind, Teams: teams})
		}
	}

	for _, rec := range req.Players {
		if rec.Exclude {
			continue
		}
		team := uppercaseTeam(rec.Team)
		if cc.RemovedTeams[team] {
			continue
		}
		positions := ParsePositions(rec.Position)
		if len(positions) == 0 {
			return RosterTemplate{}, nil, CoreConstraints{}, fmt.Errorf("%w: player %q has no position", ErrIncorrectPositionName, rec.ID)
		}

		p := Player{
			ID:        rec.ID,
			FullName:  rec.FullName,
			Team:      team,
			Opponent:  uppercaseTeam(rec.Opponent),
			Positions: positions,
			Salary:    rec.Salary,
			FPPG:      rec.FPPG,
			IsInjured: rec.Injured,
			Force:     rec.Force,
			Exclude:   rec.Exclude,
		}
		if rec.MaxExposure != nil {
			v := normalizeExposure(*rec.MaxExposure)
			p.MaxExposure = &v
		}
		// Force=true players get a hard x_p=1 constraint in the MILP
		// (see model_build.go), so FPPG is left at its real value here;
		// sentinelForceFPPG is not applied.
		p.DeviatedFPPG = p.FPPG
		players = append(players, p)
	}

	if len(players) == 0 {
		return RosterTemplate{}, nil, CoreConstraints{}, ErrEmptyPlayerPool
	}

	return template, players, cc, nil
}
