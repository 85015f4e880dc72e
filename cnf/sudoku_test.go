package cnf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const easyPuzzle = "" +
	"534678912\n" +
	"672195348\n" +
	"198342567\n" +
	"859761423\n" +
	"426853791\n" +
	"713924856\n" +
	"961537284\n" +
	"287419635\n" +
	"345286179\n"

func TestParseGrid_FormatGrid_RoundTrip(t *testing.T) {
	lines := strings.Split(strings.TrimRight(easyPuzzle, "\n"), "\n")
	g, err := ParseGrid(lines)
	require.NoError(t, err)
	require.Equal(t, easyPuzzle, FormatGrid(g))
}

func TestEncodeSudoku_SolvedGridSatisfiesItsOwnEncoding(t *testing.T) {
	lines := strings.Split(strings.TrimRight(easyPuzzle, "\n"), "\n")
	g, err := ParseGrid(lines)
	require.NoError(t, err)

	f := EncodeSudoku(g)
	require.Equal(t, SudokuVars, f.NumVars)

	a := make(Assignment, SudokuVars)
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			for v := 1; v <= sudokuSize; v++ {
				a[sudokuVar(r, c, v)] = g[r][c] == v
			}
		}
	}
	require.True(t, f.Satisfies(a))

	decoded, err := DecodeSudoku(a)
	require.NoError(t, err)
	require.Equal(t, g, decoded)
}

func TestEncodeSudoku_ConflictingCluesAreUnsatisfiable(t *testing.T) {
	var g Grid
	g[0][0] = 1
	g[0][1] = 1 // same row, same value: violates the row-uniqueness family

	f := EncodeSudoku(g)

	// Any assignment respecting both unit clue clauses (1 at (0,0) and
	// (0,1)) necessarily violates the row's at-most-one-per-value family,
	// so no assignment can satisfy the whole formula.
	a := make(Assignment, SudokuVars)
	a[sudokuVar(0, 0, 1)] = true
	a[sudokuVar(0, 1, 1)] = true
	require.False(t, f.Satisfies(a))
}

func TestSudokuVar_PackedIndexingMatchesSpecFormula(t *testing.T) {
	// var_index = row*81 + col*9 + value (0-indexed value), offset by one
	// for DIMACS' 1-indexed variables.
	require.Equal(t, 1, sudokuVar(0, 0, 1))
	require.Equal(t, 9, sudokuVar(0, 0, 9))
	require.Equal(t, 10, sudokuVar(0, 1, 1))
	require.Equal(t, 82, sudokuVar(1, 0, 1))
	require.Equal(t, 729, sudokuVar(8, 8, 9))
}
