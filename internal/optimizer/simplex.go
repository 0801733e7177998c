package optimizer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// bigM is the Big-M penalty applied to artificial variables. Player FPPG
// and salary figures are bounded well below this, so it dominates the
// objective whenever an artificial variable is still basic.
const bigM = 1e7

const simplexEpsilon = 1e-7

// lpRow is one normalized (RHS >= 0) constraint row over the structural
// variables, before slack/surplus/artificial columns are appended.
type lpRow struct {
	coeffs []float64
	op     CompareOp
	rhs    float64
}

// solveRelaxation solves the LP relaxation max c·x s.t. rows, 0<=x<=ub using
// a Big-M tableau simplex with Bland's rule (deterministic, cycle-free).
// It reports infeasible if any artificial variable remains basic and
// positive at the optimum.
func solveRelaxation(n int, objective []float64, rows []lpRow, ub []float64) (feasible bool, x []float64, obj float64, err error) {
	normalized := make([]lpRow, 0, len(rows)+n)
	for _, r := range rows {
		normalized = append(normalized, normalizeRow(r))
	}
	for i := 0; i < n; i++ {
		if ub[i] < math.Inf(1) {
			row := make([]float64, n)
			row[i] = 1
			normalized = append(normalized, lpRow{coeffs: row, op: LessOrEqual, rhs: ub[i]})
		}
	}

	m := len(normalized)
	if m == 0 {
		// Unconstrained (beyond box bounds handled above, which never
		// happens in practice since the generator always imposes a roster
		// size constraint); treat as trivially feasible at zero.
		return true, make([]float64, n), 0, nil
	}

	var numSlack, numSurplus, numArtificial int
	for _, r := range normalized {
		switch r.op {
		case LessOrEqual:
			numSlack++
		case GreaterOrEqual:
			numSurplus++
			numArtificial++
		case Equal:
			numArtificial++
		}
	}

	totalCols := n + numSlack + numSurplus + numArtificial + 1 // +1 for RHS
	tab := mat.NewDense(m+1, totalCols, nil)

	slackStart := n
	surplusStart := slackStart + numSlack
	artificialStart := surplusStart + numSurplus
	rhsCol := totalCols - 1

	basis := make([]int, m)
	si, pi, ai := 0, 0, 0
	for i, r := range normalized {
		for j := 0; j < n; j++ {
			tab.Set(i, j, r.coeffs[j])
		}
		tab.Set(i, rhsCol, r.rhs)
		switch r.op {
		case LessOrEqual:
			col := slackStart + si
			tab.Set(i, col, 1)
			basis[i] = col
			si++
		case GreaterOrEqual:
			scol := surplusStart + pi
			tab.Set(i, scol, -1)
			pi++
			acol := artificialStart + ai
			tab.Set(i, acol, 1)
			basis[i] = acol
			ai++
		case Equal:
			acol := artificialStart + ai
			tab.Set(i, acol, 1)
			basis[i] = acol
			ai++
		}
	}

	// Objective row: minimize -c·x + M·sum(artificial). Stored as the cost
	// row z_j - c_j (reduced costs); we maintain it directly rather than
	// tracking a separate c vector.
	objRow := make([]float64, totalCols)
	for j := 0; j < n; j++ {
		objRow[j] = -objective[j]
	}
	for k := 0; k < numArtificial; k++ {
		objRow[artificialStart+k] = bigM
	}
	for i := 0; i < totalCols; i++ {
		tab.Set(m, i, objRow[i])
	}
	// Price out the artificial variables that start in the basis so the
	// objective row reflects reduced costs relative to the initial basis.
	for i := 0; i < m; i++ {
		if basis[i] >= artificialStart {
			pivotEliminate(tab, i, basis[i])
		}
	}

	const maxIterations = 20000
	for iter := 0; iter < maxIterations; iter++ {
		// Bland's rule: smallest-index column with a negative reduced cost.
		enter := -1
		for j := 0; j < totalCols-1; j++ {
			if tab.At(m, j) < -simplexEpsilon {
				enter = j
				break
			}
		}
		if enter == -1 {
			break // optimal
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			a := tab.At(i, enter)
			if a <= simplexEpsilon {
				continue
			}
			ratio := tab.At(i, rhsCol) / a
			if ratio < bestRatio-simplexEpsilon ||
				(math.Abs(ratio-bestRatio) <= simplexEpsilon && (leave == -1 || basis[i] < basis[leave])) {
				bestRatio = ratio
				leave = i
			}
		}
		if leave == -1 {
			return false, nil, 0, fmt.Errorf("lp relaxation unbounded")
		}

		pivotEliminate(tab, leave, enter)
		basis[leave] = enter
	}

	for i := 0; i < m; i++ {
		if basis[i] >= artificialStart && tab.At(i, rhsCol) > simplexEpsilon {
			return false, nil, 0, nil // infeasible
		}
	}

	x = make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			x[basis[i]] = tab.At(i, rhsCol)
		}
	}
	total := 0.0
	for j := 0; j < n; j++ {
		total += objective[j] * x[j]
	}
	return true, x, total, nil
}

func normalizeRow(r lpRow) lpRow {
	if r.rhs >= 0 {
		return lpRow{coeffs: append([]float64(nil), r.coeffs...), op: r.op, rhs: r.rhs}
	}
	coeffs := make([]float64, len(r.coeffs))
	for i, c := range r.coeffs {
		coeffs[i] = -c
	}
	op := r.op
	switch r.op {
	case LessOrEqual:
		op = GreaterOrEqual
	case GreaterOrEqual:
		op = LessOrEqual
	}
	return lpRow{coeffs: coeffs, op: op, rhs: -r.rhs}
}

// pivotEliminate performs a Gauss-Jordan pivot on column `col` using row
// `pivotRow` as the pivot row: normalizes pivotRow so tab[pivotRow][col]==1,
// then eliminates col from every other row, including the objective row.
func pivotEliminate(tab *mat.Dense, pivotRow int, col int) {
	rows, cols := tab.Dims()
	pv := tab.At(pivotRow, col)
	if math.Abs(pv) > simplexEpsilon {
		for j := 0; j < cols; j++ {
			tab.Set(pivotRow, j, tab.At(pivotRow, j)/pv)
		}
	}
	for i := 0; i < rows; i++ {
		if i == pivotRow {
			continue
		}
		factor := tab.At(i, col)
		if math.Abs(factor) <= simplexEpsilon {
			continue
		}
		for j := 0; j < cols; j++ {
			tab.Set(i, j, tab.At(i, j)-factor*tab.At(pivotRow, j))
		}
	}
}

