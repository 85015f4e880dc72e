// Package cnf implements the shared data model for conjunctive-normal-form
// SAT formulas: literals, clauses, the DIMACS text format, and the Sudoku
// encoder that turns a 9x9 grid into a CNF instance.
package cnf

import "fmt"

// Literal is a non-zero signed variable reference. Its magnitude is the
// 1-indexed variable id; its sign is the polarity.
type Literal int

// Var returns the variable id referenced by l, always positive.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Negate returns the complementary literal of l.
func (l Literal) Negate() Literal {
	return -l
}

// Positive reports whether l asserts its variable true.
func (l Literal) Positive() bool {
	return l > 0
}

func (l Literal) String() string {
	return fmt.Sprintf("%d", int(l))
}

// Clause is an ordered disjunction of literals.
type Clause []Literal

// Formula is a CNF instance: an upper bound on variable ids, the declared
// clause count from the DIMACS header (which may be corrected to match the
// clause slice), and the clauses themselves.
type Formula struct {
	NumVars    int
	NumClauses int
	Clauses    []Clause
}

// Clone returns a deep copy of f so that a solver mutating its working
// clause set (e.g. DPLL's reduction) never disturbs the original formula,
// which callers may reuse for verification.
func (f *Formula) Clone() *Formula {
	out := &Formula{
		NumVars:    f.NumVars,
		NumClauses: f.NumClauses,
		Clauses:    make([]Clause, len(f.Clauses)),
	}
	for i, c := range f.Clauses {
		out.Clauses[i] = append(Clause(nil), c...)
	}
	return out
}

// Assignment is a partial mapping from 1-indexed variable id to Boolean.
type Assignment map[int]bool

// Eval reports the truth value of literal l under a, and whether that value
// is defined. A clause is satisfied under a if Eval returns (true, true) for
// at least one of its literals.
func (a Assignment) Eval(l Literal) (value bool, defined bool) {
	v, ok := a[l.Var()]
	if !ok {
		return false, false
	}
	if l.Positive() {
		return v, true
	}
	return !v, true
}

// Clone returns a copy of the assignment.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Satisfies reports whether every clause of f has at least one literal that
// is either true under a or unassigned (an unassigned variable is free: it
// can always be extended to satisfy that literal), matching the "universal
// extension" semantics of the data model's SAT invariant.
func (f *Formula) Satisfies(a Assignment) bool {
clauseLoop:
	for _, c := range f.Clauses {
		for _, l := range c {
			v, defined := a.Eval(l)
			if !defined || v {
				continue clauseLoop
			}
		}
		return false
	}
	return true
}
