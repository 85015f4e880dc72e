// Package walksat implements the WalkSAT stochastic local-search engine of
// spec.md §4.5: noise-biased flips inside a randomly chosen unsatisfied
// clause, with a caller-seeded PRNG for reproducibility.
package walksat

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/solver"
)

// Options configures a WalkSAT run.
type Options struct {
	MaxFlips int64
	Noise    float64 // in [0,1]
	Restarts int
	Seed     int64
	Log      *logrus.Entry
}

// DefaultOptions mirrors common WalkSAT defaults from the literature.
var DefaultOptions = Options{
	MaxFlips: 10000,
	Noise:    0.5,
	Restarts: 10,
	Seed:     1,
}

// Solve runs WalkSAT over f. Two calls with the same f and Options.Seed
// produce byte-identical results (spec.md §8 invariant 3).
func Solve(f *cnf.Formula, opts Options) *solver.Result {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(discardLogger)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	res := &solver.Result{
		Solver:     "walksat",
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
		log.WithField("attempt", attempt).Debug("walksat: restart exhausted max-flips")
	}
	return res
}

// attempt1 runs a single WalkSAT attempt: a random initial assignment
// followed by up to MaxFlips noise-biased or greedy flips.
func attempt1(f *cnf.Formula, opts Options, rng *rand.Rand) (cnf.Assignment, int64, bool) {
	assignment := make(cnf.Assignment, f.NumVars)
	for v := 1; v <= f.NumVars; v++ {
		assignment[v] = rng.Intn(2) == 1
	}

	var flips int64
	for step := int64(0); step < opts.MaxFlips; step++ {
		unsat := unsatisfiedClauses(f, assignment)
		if len(unsat) == 0 {
			return assignment, flips, true
		}
		clause := unsat[rng.Intn(len(unsat))]

		var chosenVar int
		if rng.Float64() < opts.Noise {
			chosenVar = clause[rng.Intn(len(clause))].Var()
		} else {
			chosenVar = minBreakVar(f, assignment, clause)
		}
		assignment[chosenVar] = !assignment[chosenVar]
		flips++
	}
	return assignment, flips, false
}

// unsatisfiedClauses returns every clause of f not satisfied by assignment.
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

// minBreakVar picks the variable in clause whose flip minimizes the break
// score: the total number of clauses of f left unsatisfied after the flip.
// Ties are broken by first occurrence in the clause.
func minBreakVar(f *cnf.Formula, assignment cnf.Assignment, clause cnf.Clause) int {
	bestVar := clause[0].Var()
	bestScore := -1
	for _, l := range clause {
		v := l.Var()
		assignment[v] = !assignment[v]
		score := countUnsatisfied(f, assignment)
		assignment[v] = !assignment[v]
		if bestScore == -1 || score < bestScore {
			bestScore = score
			bestVar = v
		}
	}
	return bestVar
}

func countUnsatisfied(f *cnf.Formula, assignment cnf.Assignment) int {
	count := 0
clauseLoop:
	for _, c := range f.Clauses {
		for _, l := range c {
			if v, _ := assignment.Eval(l); v {
				continue clauseLoop
			}
		}
		count++
	}
	return count
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
