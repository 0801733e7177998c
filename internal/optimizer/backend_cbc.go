package optimizer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// CBCBackend is the "alternate CBC-style backend" of §4.2: it writes the
// model as an LP-format file, shells out to a CBC-compatible solver binary,
// and parses the resulting solution file. No Go CBC binding exists in the
// retrieved example pack (see DESIGN.md), so this invokes the real external
// solver as a subprocess the way production DFS tooling does.
type CBCBackend struct {
	Binary string // defaults to "cbc" when empty
}

func (b *CBCBackend) Solve(ctx context.Context, model Model, opts BackendOptions) (SolveResult, error) {
	binary := b.Binary
	if binary == "" {
		binary = "cbc"
	}

	lpFile, err := os.CreateTemp("", "lineup-*.lp")
	if err != nil {
		return SolveResult{}, fmt.Errorf("cbc backend: create lp file: %w", err)
	}
	defer os.Remove(lpFile.Name())

	if err := writeLPFormat(lpFile, model); err != nil {
		lpFile.Close()
		return SolveResult{}, fmt.Errorf("cbc backend: write lp file: %w", err)
	}
	lpFile.Close()

	solFile := lpFile.Name() + ".sol"
	defer os.Remove(solFile)

	args := []string{lpFile.Name()}
	if opts.Threads > 0 {
		args = append(args, "threads", strconv.Itoa(opts.Threads))
	}
	if opts.Message <= 0 {
		args = append(args, "-log", "0")
	} else {
		args = append(args, "-log", strconv.Itoa(opts.Message))
	}
	args = append(args, "solve", "solution", solFile)

	cmd := exec.CommandContext(ctx, binary, args...)
	if err := cmd.Run(); err != nil {
		return SolveResult{}, fmt.Errorf("cbc backend: solver invocation failed: %w", err)
	}

	return parseCBCSolution(solFile, model)
}

// writeLPFormat emits the model in the CPLEX LP format CBC accepts:
// Maximize / Subject To / Binaries / End.
func writeLPFormat(w *os.File, model Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "Maximize\n obj: ")
	for i, c := range model.Objective {
		if c == 0 {
			continue
		}
		fmt.Fprintf(bw, "%+g x%d ", c, i)
	}
	fmt.Fprint(bw, "\n")

	fmt.Fprint(bw, "Subject To\n")
	for idx, c := range model.Constraints {
		fmt.Fprintf(bw, " c%d: ", idx)
		for _, t := range c.Terms {
			fmt.Fprintf(bw, "%+g x%d ", t.Coeff, t.Var)
		}
		switch c.Op {
		case LessOrEqual:
			fmt.Fprintf(bw, "<= %g\n", c.RHS)
		case GreaterOrEqual:
			fmt.Fprintf(bw, ">= %g\n", c.RHS)
		case Equal:
			fmt.Fprintf(bw, "= %g\n", c.RHS)
		}
	}

	fmt.Fprint(bw, "Binaries\n")
	for i := 0; i < model.NumVars; i++ {
		fmt.Fprintf(bw, " x%d\n", i)
	}
	fmt.Fprint(bw, "End\n")

	return bw.Flush()
}

// parseCBCSolution reads CBC's "solution" writer output: a header line
// followed by "<index> <name> <value> <rowActivity>" rows. We only need
// variable values by name (x<idx>).
func parseCBCSolution(path string, model Model) (SolveResult, error) {
	numVars := model.NumVars
	f, err := os.Open(path)
	if err != nil {
		return SolveResult{Feasible: false}, nil // solver reported infeasible, no solution file
	}
	defer f.Close()

	values := make([]float64, numVars)
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			if strings.Contains(strings.ToLower(line), "infeasible") {
				return SolveResult{Feasible: false}, nil
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		name := fields[1]
		if !strings.HasPrefix(name, "x") {
			continue
		}
		idx, err := strconv.Atoi(name[1:])
		if err != nil || idx < 0 || idx >= numVars {
			continue
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		values[idx] = v
	}

	selected := make([]bool, numVars)
	obj := 0.0
	for i, v := range values {
		selected[i] = v > 0.5
		if selected[i] {
			obj += model.Objective[i]
		}
	}
	return SolveResult{Feasible: true, Selected: selected, Objective: obj}, nil
}
