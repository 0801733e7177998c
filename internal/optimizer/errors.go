package optimizer

import "errors"

// Validation errors: thrown to the caller before any solve begins.
var (
	ErrInvalidSite            = errors.New("invalid site")
	ErrInvalidSport           = errors.New("invalid sport")
	ErrUnsupportedCombination = errors.New("unsupported site/sport combination")
	ErrEmptyPlayerPool        = errors.New("empty player pool after filtering")
	ErrIncorrectTeamName      = errors.New("constraint references unknown team")
	ErrIncorrectPositionName  = errors.New("constraint references unknown position")
)

// Internal, non-fatal errors: swallowed by the generator loop so a partial
// run can still return what it produced.
var (
	ErrInvalidLineup = errors.New("slot assigner could not place the chosen player set")
	ErrInfeasible    = errors.New("no feasible solution")
)

// Manual-lock errors: raised only by AddPlayerToLineup (§7), never by the
// solver loop.
var (
	ErrOverBudget         = errors.New("lineup would exceed budget")
	ErrPositionOverfilled = errors.New("position already has no open slot")
	ErrTeamCapExceeded    = errors.New("team cap exceeded")
)
