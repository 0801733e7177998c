package optimizer

import "context"

// CompareOp is the relation of a linear constraint.
type CompareOp int

const (
	LessOrEqual CompareOp = iota
	GreaterOrEqual
	Equal
)

// Term is one coefficient·variable pair in a linear expression, addressed
// by the variable's index (0 to Model.NumVars-1).
type Term struct {
	Var   int
	Coeff float64
}

// LinearConstraint is a single row: sum(terms) <op> rhs.
type LinearConstraint struct {
	Terms []Term
	Op    CompareOp
	RHS   float64
	Label string // diagnostic only
}

// Model is the solver-agnostic description of one iteration's MILP: a set
// of binary decision variables, a linear objective to maximize, and a list
// of linear constraints over those variables.
type Model struct {
	NumVars     int
	Objective   []float64 // coefficient per variable index
	Constraints []LinearConstraint
}

// AddConstraint appends a constraint built from (variable index, coeff)
// pairs.
func (m *Model) AddConstraint(op CompareOp, rhs float64, label string, terms ...Term) {
	m.Constraints = append(m.Constraints, LinearConstraint{Terms: terms, Op: op, RHS: rhs, Label: label})
}

// SolveResult is the outcome of one Solve call.
type SolveResult struct {
	Feasible  bool
	Selected  []bool // per variable index
	Objective float64
}

// BackendOptions carry the solver-tuning knobs forwarded verbatim from the
// request (§4.2, §6: "message", "threads").
type BackendOptions struct {
	Threads int
	Message int
}

// Backend is the abstract "maximize with binary decision variables"
// capability (§4.2). Implementations must not mutate Model, must be
// deterministic given identical inputs, and may break ties arbitrarily.
type Backend interface {
	Solve(ctx context.Context, model Model, opts BackendOptions) (SolveResult, error)
}

// NewBackend selects a concrete Backend by name, per the request's "solver"
// field (§6).
func NewBackend(name string) Backend {
	switch name {
	case "CBC", "COIN":
		return &CBCBackend{Binary: "cbc"}
	default:
		return &BranchAndBoundBackend{}
	}
}
