package dpll

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/solver"
)

func TestSolve_TrivialSatisfiable(t *testing.T) {
	f := &cnf.Formula{NumVars: 1, Clauses: []cnf.Clause{{1}}}
	res := Solve("dpll", f, Options{})
	require.Equal(t, solver.SAT, res.Status)
	require.True(t, f.Satisfies(res.Assignment))
}

func TestSolve_TrivialUnsatisfiable(t *testing.T) {
	f := &cnf.Formula{NumVars: 1, Clauses: []cnf.Clause{{1}, {-1}}}
	res := Solve("dpll", f, Options{})
	require.Equal(t, solver.UNSAT, res.Status)
	require.Nil(t, res.Assignment)
}

func TestSolve_TwoVariableAllCombosForbiddenIsUnsatisfiable(t *testing.T) {
	// Every one of the four (x1,x2) truth assignments is excluded by one
	// clause, so the formula is unsatisfiable regardless of search order.
	f := &cnf.Formula{
		NumVars: 2,
		Clauses: []cnf.Clause{
			{1, 2},
			{1, -2},
			{-1, 2},
			{-1, -2},
		},
	}
	res := Solve("dpll", f, Options{})
	require.Equal(t, solver.UNSAT, res.Status)
}

func TestSolve_PigeonholeTwoIntoOneIsUnsatisfiable(t *testing.T) {
	// x1: pigeon 1 -> hole 1, x2: pigeon 2 -> hole 1.
	f := &cnf.Formula{
		NumVars: 2,
		Clauses: []cnf.Clause{
			{1},       // pigeon 1 must go somewhere
			{2},       // pigeon 2 must go somewhere
			{-1, -2},  // hole 1 holds at most one pigeon
		},
	}
	res := Solve("dpll", f, Options{})
	require.Equal(t, solver.UNSAT, res.Status)
}

func TestSolve_JeroslowWangBranchingFindsSameAnswer(t *testing.T) {
	// {-3} forces x3 false, {-2, 3} then forces x2 false, {-1, 2} forces x1
	// false, and {1, 2, 3} is left with no true literal: the formula is
	// unsatisfiable, and both branching rules must report that.
	f := &cnf.Formula{
		NumVars: 3,
		Clauses: []cnf.Clause{{1, 2, 3}, {-1, 2}, {-2, 3}, {-3}},
	}
	res := Solve("dpll-jw", f, Options{Branch: JeroslowWang})
	require.Equal(t, solver.UNSAT, res.Status)
	require.Nil(t, res.Assignment)
	require.Equal(t, Solve("dpll", f, Options{}).Status, res.Status)
}

func TestSolve_CountersAreNonNegative(t *testing.T) {
	f := &cnf.Formula{
		NumVars: 4,
		Clauses: []cnf.Clause{{1, 2}, {-1, 3}, {-2, -3, 4}, {-4, 1}},
	}
	res := Solve("dpll", f, Options{})
	require.GreaterOrEqual(t, res.Decisions, int64(0))
	require.GreaterOrEqual(t, res.UnitPropagations, int64(0))
	require.GreaterOrEqual(t, res.PureEliminations, int64(0))
}

func TestJeroslowWang_PrefersLiteralInShorterClauses(t *testing.T) {
	// Literals 1, 2 and 4 each appear only in one 2-literal clause (weight
	// 2^-2 = 0.25), while literal 3 appears in a unit clause and a 2-literal
	// clause (weight 2^-1 + 2^-2 = 0.75), so 3 must win.
	clauses := []cnf.Clause{{1, 2}, {3}, {3, 4}}
	got := JeroslowWang(clauses)
	require.Equal(t, cnf.Literal(3), got)
}
