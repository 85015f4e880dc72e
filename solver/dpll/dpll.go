// Package dpll implements the plain and Jeroslow-Wang-weighted variants of
// the Davis-Putnam-Logemann-Loveland backtracking search: recursive
// branching with unit propagation and (single-pass) pure-literal
// elimination, grounded in the reduction semantics of spec.md §4.3/§4.4.
package dpll

import (
	"github.com/sirupsen/logrus"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/solver"
)

// Branching selects the next decision literal given the current active
// clause set. Baseline and Jeroslow-Wang supply distinct strategies; both
// receive only clauses that contain exclusively undecided literals (the
// reduction pass already drops satisfied clauses and falsified literals).
type Branching func(clauses []cnf.Clause) cnf.Literal

// Options configures a DPLL run.
type Options struct {
	// Branch picks the decision literal; defaults to FirstLiteral.
	Branch Branching
	// Log receives search-progress tracing at Debug level; nil is
	// equivalent to a discard logger.
	Log *logrus.Entry
}

type counters struct {
	decisions        int64
	unitPropagations int64
	pureEliminations int64
}

// FirstLiteral is the baseline branching rule of spec.md §4.3: the first
// literal of the first remaining clause.
func FirstLiteral(clauses []cnf.Clause) cnf.Literal {
	return clauses[0][0]
}

// Solve runs DPLL over f and returns a Result compatible with every other
// engine in the suite. name is the "solver" field value ("dpll" or
// "dpll-jw", typically).
func Solve(name string, f *cnf.Formula, opts Options) *solver.Result {
	if opts.Branch == nil {
		opts.Branch = FirstLiteral
	}
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(discardLogger)
	}

	clauses := make([]cnf.Clause, len(f.Clauses))
	copy(clauses, f.Clauses)

	cs := &counters{}
	assignment := make(cnf.Assignment, f.NumVars)

	res := &solver.Result{
		Solver:     name,
		NumVars:    f.NumVars,
		NumClauses: len(f.Clauses),
	}

	sat, finalAssignment := search(clauses, assignment, opts.Branch, cs, log)
	if sat {
		res.Status = solver.SAT
		res.Assignment = finalAssignment
	} else {
		res.Status = solver.UNSAT
	}
	res.Decisions = cs.decisions
	res.UnitPropagations = cs.unitPropagations
	res.PureEliminations = cs.pureEliminations
	return res
}

// search is the recursive DPLL core described in spec.md §4.3, steps 1-4.
func search(clauses []cnf.Clause, assignment cnf.Assignment, branch Branching, cs *counters, log *logrus.Entry) (bool, cnf.Assignment) {
	clauses, conflict := unitPropagate(clauses, assignment, cs)
	if conflict {
		return false, nil
	}

	clauses = eliminatePureLiterals(clauses, assignment, cs)

	if len(clauses) == 0 {
		return true, assignment
	}

	lit := branch(clauses)
	cs.decisions++
	log.WithField("literal", int(lit)).Debug("dpll: branch decision")

	// Try true, then false, cloning assignment+clauses so backtracking
	// never corrupts the parent frame's state.
	for _, candidate := range [2]cnf.Literal{lit, lit.Negate()} {
		childAssignment := assignment.Clone()
		childAssignment[candidate.Var()] = candidate.Positive()
		childClauses, conflict := reduce(clauses, candidate)
		if conflict {
			continue
		}
		if sat, final := search(childClauses, childAssignment, branch, cs, log); sat {
			return true, final
		}
	}
	return false, nil
}

// reduce applies spec.md §4.3's reduction semantics for assigning literal l
// true: clauses containing l are dropped (satisfied); -l is removed from
// clauses containing it. A clause emptied this way is a conflict.
func reduce(clauses []cnf.Clause, l cnf.Literal) ([]cnf.Clause, bool) {
	neg := l.Negate()
	out := make([]cnf.Clause, 0, len(clauses))
	for _, c := range clauses {
		keep := make(cnf.Clause, 0, len(c))
		satisfied := false
		for _, lit := range c {
			switch lit {
			case l:
				satisfied = true
			case neg:
				// dropped
			default:
				keep = append(keep, lit)
			}
		}
		if satisfied {
			continue
		}
		if len(keep) == 0 {
			return nil, true
		}
		out = append(out, keep)
	}
	return out, false
}

// unitPropagate repeatedly assigns the literal of any unit clause (a clause
// with exactly one literal remaining) until a fixpoint or a conflict.
func unitPropagate(clauses []cnf.Clause, assignment cnf.Assignment, cs *counters) ([]cnf.Clause, bool) {
	for {
		unitIdx := -1
		for i, c := range clauses {
			if len(c) == 1 {
				unitIdx = i
				break
			}
			if len(c) == 0 {
				return nil, true
			}
		}
		if unitIdx == -1 {
			return clauses, false
		}
		lit := clauses[unitIdx][0]
		assignment[lit.Var()] = lit.Positive()
		cs.unitPropagations++
		var conflict bool
		clauses, conflict = reduce(clauses, lit)
		if conflict {
			return nil, true
		}
	}
}

// eliminatePureLiterals performs a single pass (per spec.md §9's adopted
// source semantics) over the active clause set, assigning every literal
// that appears with only one polarity.
func eliminatePureLiterals(clauses []cnf.Clause, assignment cnf.Assignment, cs *counters) []cnf.Clause {
	polarity := map[int]int{} // var -> bitmask: 1=seen positive, 2=seen negative
	for _, c := range clauses {
		for _, l := range c {
			if l.Positive() {
				polarity[l.Var()] |= 1
			} else {
				polarity[l.Var()] |= 2
			}
		}
	}

	var pureLits []cnf.Literal
	for v, mask := range polarity {
		switch mask {
		case 1:
			pureLits = append(pureLits, cnf.Literal(v))
		case 2:
			pureLits = append(pureLits, cnf.Literal(-v))
		}
	}
	if len(pureLits) == 0 {
		return clauses
	}

	for _, lit := range pureLits {
		assignment[lit.Var()] = lit.Positive()
		cs.pureEliminations++
		var conflict bool
		clauses, conflict = reduce(clauses, lit)
		if conflict {
			// A pure literal can never conflict: it appears with only one
			// polarity, so reduce only ever drops clauses for it.
			panic("pure literal elimination produced a conflict")
		}
	}
	return clauses
}

var discardLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
