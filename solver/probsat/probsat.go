// Package probsat implements the probSAT stochastic local-search engine of
// spec.md §4.7: within an unsatisfied clause, sample a variable to flip
// proportional to epsilon^breakCount.
package probsat

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/solver"
)

// Options configures a probSAT run.
type Options struct {
	MaxFlips int64
	Epsilon  float64
	Restarts int
	Seed     int64
	Log      *logrus.Entry
}

// DefaultOptions mirrors common probSAT defaults from the literature.
var DefaultOptions = Options{
	MaxFlips: 10000,
	Epsilon:  0.9,
	Restarts: 10,
	Seed:     1,
}

// Solve runs probSAT over f. Two calls with the same f and Options.Seed
// produce byte-identical results (spec.md §8 invariant 3).
func Solve(f *cnf.Formula, opts Options) *solver.Result {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(discardLogger)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	res := &solver.Result{
		Solver:     "probsat",
		NumVars:    f.NumVars,
		NumClauses: len(f.Clauses),
		Status:     solver.Unknown,
	}

	for attempt := 0; attempt < opts.Restarts; attempt++ {
		assignment, flips, ok := attempt1(f, opts, rng)
		res.Flips += flips
		if ok {
			res.Status = solver.SAT
			res.Assignment = assignment
			return res
		}
		res.Restarts++
		log.WithField("attempt", attempt).Debug("probsat: restart exhausted max-flips")
	}
	return res
}

func attempt1(f *cnf.Formula, opts Options, rng *rand.Rand) (cnf.Assignment, int64, bool) {
	assignment := make(cnf.Assignment, f.NumVars)
	for v := 1; v <= f.NumVars; v++ {
		assignment[v] = rng.Intn(2) == 1
	}

	var flips int64
	weights := make([]float64, 0, 8)
	for step := int64(0); step < opts.MaxFlips; step++ {
		unsat := unsatisfiedClauses(f, assignment)
		if len(unsat) == 0 {
			return assignment, flips, true
		}
		clause := unsat[rng.Intn(len(unsat))]

		weights = weights[:0]
		total := 0.0
		for _, l := range clause {
			b := breakCount(f, assignment, l.Var())
			w := pow(opts.Epsilon, b)
			weights = append(weights, w)
			total += w
		}

		target := rng.Float64() * total
		chosen := clause[len(clause)-1].Var()
		acc := 0.0
		for i, w := range weights {
			acc += w
			if target < acc {
				chosen = clause[i].Var()
				break
			}
		}

		assignment[chosen] = !assignment[chosen]
		flips++
	}
	return assignment, flips, false
}

// breakCount is the number of currently satisfied clauses that would become
// unsatisfied if variable v were flipped.
func breakCount(f *cnf.Formula, assignment cnf.Assignment, v int) int {
	assignment[v] = !assignment[v]
	broken := 0
clauseLoop:
	for _, c := range f.Clauses {
		hasVar := false
		for _, l := range c {
			if l.Var() == v {
				hasVar = true
			}
		}
		if !hasVar {
			continue
		}
		for _, l := range c {
			if val, _ := assignment.Eval(l); val {
				continue clauseLoop
			}
		}
		broken++
	}
	assignment[v] = !assignment[v]
	return broken
}

func unsatisfiedClauses(f *cnf.Formula, assignment cnf.Assignment) []cnf.Clause {
	var out []cnf.Clause
clauseLoop:
	for _, c := range f.Clauses {
		for _, l := range c {
			if v, _ := assignment.Eval(l); v {
				continue clauseLoop
			}
		}
		out = append(out, c)
	}
	return out
}

func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
