package cdcl

import "github.com/gosat/satkit/cnf"

// lit is the CDCL engine's internal literal representation: 2*varID for the
// positive literal, 2*varID+1 for its negation, with varID 0-indexed. This
// mirrors the compact literal encoding used throughout the wider SAT-solver
// ecosystem (and this suite's own teacher package) so that watch lists can
// be plain slices indexed directly by lit.
type lit int32

func posLit(varID int) lit { return lit(varID * 2) }
func negLit(varID int) lit { return posLit(varID) + 1 }

func (l lit) variable() int  { return int(l) / 2 }
func (l lit) positive() bool { return l&1 == 0 }
func (l lit) opposite() lit  { return l ^ 1 }

// fromCNF converts the shared 1-indexed signed Literal into the engine's
// 0-indexed encoding.
func fromCNF(l cnf.Literal) lit {
	v := l.Var() - 1
	if l.Positive() {
		return posLit(v)
	}
	return negLit(v)
}

// lbool is a lifted Boolean: a variable's value may be Unknown until it is
// assigned.
type lbool int8

const (
	lUnknown lbool = 0
	lTrue    lbool = 1
	lFalse   lbool = -1
)

func lift(b bool) lbool {
	if b {
		return lTrue
	}
	return lFalse
}
