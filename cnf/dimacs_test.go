package cnf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseDIMACS_StandardFormat(t *testing.T) {
	in := strings.Join([]string{
		"c a trivial satisfiable instance",
		"p cnf 3 2",
		"1 -2 0",
		"2 3 0",
	}, "\n")

	f, err := ParseDIMACS(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, f.NumVars)
	require.Equal(t, 2, f.NumClauses)

	want := []Clause{{1, -2}, {2, 3}}
	if diff := cmp.Diff(want, f.Clauses); diff != "" {
		t.Errorf("clauses mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDIMACS_MissingProblemLine(t *testing.T) {
	in := "1 0\n-1 2 0\n"
	f, err := ParseDIMACS(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 2, f.NumClauses)
	require.Equal(t, 0, f.NumVars, "num vars stays at zero when no problem line and no range check input")
}

func TestParseDIMACS_CommentsAnywhereAndMultilineClause(t *testing.T) {
	in := strings.Join([]string{
		"p cnf 3 1",
		"1 -2",
		"c this comment interrupts the clause",
		"3 0",
	}, "\n")

	f, err := ParseDIMACS(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, f.Clauses, 1)
	require.Equal(t, Clause{1, -2, 3}, f.Clauses[0])
}

func TestParseDIMACS_OutOfRangeLiteral(t *testing.T) {
	in := "p cnf 2 1\n3 0\n"
	_, err := ParseDIMACS(strings.NewReader(in))
	require.Error(t, err)
}

func TestParseDIMACS_PercentTrailer(t *testing.T) {
	in := "p cnf 2 1\n1 2 0\n%\n0\n"
	f, err := ParseDIMACS(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, f.Clauses, 1, "content after a lone %% trailer line is ignored")
}

func TestWriteDIMACS_RoundTrip(t *testing.T) {
	f := &Formula{
		NumVars:    3,
		NumClauses: 2,
		Clauses:    []Clause{{1, -2}, {2, 3, -1}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDIMACS(&buf, f))

	got, err := ParseDIMACS(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(f.Clauses, got.Clauses); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFormula_Satisfies(t *testing.T) {
	f := &Formula{NumVars: 2, Clauses: []Clause{{1, -2}, {2}}}

	require.True(t, f.Satisfies(Assignment{1: true, 2: true}))
	require.False(t, f.Satisfies(Assignment{1: false, 2: false}))
	// An unassigned variable is free to be extended either way, so a clause
	// touching only unassigned variables never blocks satisfaction.
	require.True(t, f.Satisfies(Assignment{}))
}

func TestFormula_Satisfies_EmptyClauseIsUnsatisfiable(t *testing.T) {
	f := &Formula{NumVars: 1, Clauses: []Clause{{}}}
	require.False(t, f.Satisfies(Assignment{1: true}))
}

func TestFormula_Satisfies_TautologyClauseIsTriviallyTrue(t *testing.T) {
	f := &Formula{NumVars: 1, Clauses: []Clause{{1, -1}}}
	require.True(t, f.Satisfies(Assignment{1: true}))
	require.True(t, f.Satisfies(Assignment{1: false}))
}
