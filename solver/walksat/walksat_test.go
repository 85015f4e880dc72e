package walksat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosat/satkit/cnf"
	"github.com/gosat/satkit/solver"
)

func easySatisfiableFormula() *cnf.Formula {
	return &cnf.Formula{
		NumVars: 3,
		Clauses: []cnf.Clause{{1, 2}, {-1, 3}, {-2, -3}, {1, -2, 3}},
	}
}

func TestSolve_FindsSatisfyingAssignment(t *testing.T) {
	f := easySatisfiableFormula()
	opts := DefaultOptions
	opts.Seed = 7
	res := Solve(f, opts)
	require.Equal(t, solver.SAT, res.Status)
	require.True(t, f.Satisfies(res.Assignment))
}

func TestSolve_SameSeedIsReproducible(t *testing.T) {
	f := easySatisfiableFormula()
	opts := DefaultOptions
	opts.Seed = 42

	first := Solve(f, opts)
	second := Solve(f, opts)

	require.Equal(t, first.Status, second.Status)
	require.Equal(t, first.Assignment, second.Assignment)
	require.Equal(t, first.Flips, second.Flips)
	require.Equal(t, first.Restarts, second.Restarts)
}

func TestSolve_DifferentSeedsMayExploreDifferently(t *testing.T) {
	f := easySatisfiableFormula()
	optsA := DefaultOptions
	optsA.Seed = 1
	optsB := DefaultOptions
	optsB.Seed = 2

	resA := Solve(f, optsA)
	resB := Solve(f, optsB)
	// Both seeds should still find a model on an easy instance; the seeds
	// only need to be free to disagree on the path taken, not the outcome.
	require.Equal(t, solver.SAT, resA.Status)
	require.Equal(t, solver.SAT, resB.Status)
}

func TestSolve_ExhaustsRestartsOnUnsatisfiableInstance(t *testing.T) {
	f := &cnf.Formula{
		NumVars: 1,
		Clauses: []cnf.Clause{{1}, {-1}},
	}
	opts := DefaultOptions
	opts.MaxFlips = 50
	opts.Restarts = 3
	res := Solve(f, opts)
	require.Equal(t, solver.Unknown, res.Status)
	require.Equal(t, int64(opts.Restarts), res.Restarts)
}

func TestMinBreakVar_PrefersZeroBreakFlip(t *testing.T) {
	f := &cnf.Formula{
		NumVars: 2,
		Clauses: []cnf.Clause{{1, 2}, {1, -2}},
	}
	// Flipping var 2 breaks nothing (both clauses already satisfied by
	// var 1), while flipping var 1 leaves {1, 2} unsatisfied.
	a := cnf.Assignment{1: true, 2: false}
	got := minBreakVar(f, a, cnf.Clause{1, 2})
	require.Equal(t, 2, got)
}
