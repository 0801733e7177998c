package optimizer

import (
	"context"
	"math"
)

// BranchAndBoundBackend is the default open-source MILP backend: a Big-M
// simplex LP relaxation (simplex.go) wrapped in a depth-first branch-and-
// bound search over the binary variables. It has no external process
// dependency, matching the "default" backend §4.2 describes.
type BranchAndBoundBackend struct{}

// node is one branch-and-bound frontier entry: fixed lower/upper bounds per
// variable (0<=x<=1 by default; branching tightens a single variable to a
// point).
type node struct {
	lb, ub []float64
}

func (b *BranchAndBoundBackend) Solve(ctx context.Context, model Model, opts BackendOptions) (SolveResult, error) {
	n := model.NumVars
	rows := modelToRows(model)

	rootUB := make([]float64, n)
	for i := range rootUB {
		rootUB[i] = 1
	}

	best := SolveResult{Feasible: false, Objective: math.Inf(-1)}
	stack := []node{{lb: make([]float64, n), ub: rootUB}}

	const maxNodes = 50000
	explored := 0
	for len(stack) > 0 && explored < maxNodes {
		select {
		case <-ctx.Done():
			if best.Feasible {
				return best, nil
			}
			return SolveResult{}, ctx.Err()
		default:
		}
		explored++

		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		boundedRows := append(append([]lpRow(nil), rows...), boundRows(n, cur.lb)...)
		feasible, x, obj, err := solveRelaxation(n, model.Objective, boundedRows, cur.ub)
		if err != nil {
			continue
		}
		if !feasible {
			continue
		}
		if obj <= best.Objective+simplexEpsilon && best.Feasible {
			continue // cannot improve on the incumbent
		}

		frac := mostFractional(x)
		if frac == -1 {
			selected := make([]bool, n)
			for i, v := range x {
				selected[i] = v > 0.5
			}
			if obj > best.Objective {
				best = SolveResult{Feasible: true, Selected: selected, Objective: obj}
			}
			continue
		}

		floorUB := append([]float64(nil), cur.ub...)
		floorUB[frac] = 0
		stack = append(stack, node{lb: cur.lb, ub: floorUB})

		ceilLB := append([]float64(nil), cur.lb...)
		ceilLB[frac] = 1
		stack = append(stack, node{lb: ceilLB, ub: cur.ub})
	}

	return best, nil
}

func mostFractional(x []float64) int {
	best := -1
	bestDist := simplexEpsilon
	for i, v := range x {
		dist := math.Abs(v - math.Round(v))
		if dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// boundRows turns per-variable lower bounds (from branching) into explicit
// x_i >= lb_i rows; upper bounds are passed straight through to
// solveRelaxation as the ub argument instead of materializing rows for them.
func boundRows(n int, lb []float64) []lpRow {
	var out []lpRow
	for i, v := range lb {
		if v <= 0 {
			continue
		}
		coeffs := make([]float64, n)
		coeffs[i] = 1
		out = append(out, lpRow{coeffs: coeffs, op: GreaterOrEqual, rhs: v})
	}
	return out
}

func modelToRows(model Model) []lpRow {
	rows := make([]lpRow, 0, len(model.Constraints))
	for _, c := range model.Constraints {
		coeffs := make([]float64, model.NumVars)
		for _, t := range c.Terms {
			coeffs[t.Var] += t.Coeff
		}
		rows = append(rows, lpRow{coeffs: coeffs, op: c.Op, rhs: c.RHS})
	}
	return rows
}
