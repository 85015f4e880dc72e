package probsat

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

func TestPow_IntegerExponent(t *testing.T) {
	require.InDelta(t, 1.0, pow(0.9, 0), 1e-9)
	require.InDelta(t, 0.9, pow(0.9, 1), 1e-9)
	require.InDelta(t, 0.81, pow(0.9, 2), 1e-9)
}

func TestBreakCount_ZeroWhenVariableIsIrrelevantToSatisfaction(t *testing.T) {
	f := &cnf.Formula{
		NumVars: 2,
		Clauses: []cnf.Clause{{1, 2}},
	}
	a := cnf.Assignment{1: true, 2: false}
	// Flipping var 2 cannot break the only clause: var 1 alone satisfies it.
	require.Equal(t, 0, breakCount(f, a, 2))
}
