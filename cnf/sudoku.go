package cnf

import "github.com/pkg/errors"

// Sudoku grids are fixed at 9x9 with 3x3 boxes; the encoding below assumes
// these constants throughout and is not generalized to other sizes, matching
// spec.md's "fixed size" requirement.
const (
	sudokuSize  = 9
	sudokuBox   = 3
	SudokuVars  = sudokuSize * sudokuSize * sudokuSize // 729
	sudokuEmpty = 0
)

// Grid is a 9x9 Sudoku puzzle. A zero entry denotes an empty cell.
type Grid [sudokuSize][sudokuSize]int

// sudokuVar returns the DIMACS (1-indexed) variable id for "cell (r,c) holds
// value v", v in [1,9]. The 0-indexed packed form r*81+c*9+(v-1) lives in
// [0, 728]; DIMACS variables start at 1, so the encoder offsets by one,
// giving r*81+c*9+v in [1, 729].
func sudokuVar(r, c, v int) int {
	return r*sudokuSize*sudokuSize + c*sudokuSize + (v - 1) + 1
}

// EncodeSudoku translates a 9x9 grid into a CNF formula under the fixed
// variable indexing "cell (r,c) holds value v" = r*81 + c*9 + v (DIMACS
// 1-indexed). It emits the standard four Sudoku constraint families (cell,
// row, column, box) plus one unit clause per clue.
func EncodeSudoku(g Grid) *Formula {
	f := &Formula{NumVars: SudokuVars}

	addAtLeastOne := func(vars []int) {
		c := make(Clause, len(vars))
		for i, v := range vars {
			c[i] = Literal(v)
		}
		f.Clauses = append(f.Clauses, c)
	}
	addAtMostOnePairs := func(vars []int) {
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				f.Clauses = append(f.Clauses, Clause{Literal(-vars[i]), Literal(-vars[j])})
			}
		}
	}

	// Cell: each cell holds at least one value, and at most one.
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			vars := make([]int, sudokuSize)
			for v := 1; v <= sudokuSize; v++ {
				vars[v-1] = sudokuVar(r, c, v)
			}
			addAtLeastOne(vars)
			addAtMostOnePairs(vars)
		}
	}

	// Row: for each row and value, at least one column holds it, and at
	// most one.
	for r := 0; r < sudokuSize; r++ {
		for v := 1; v <= sudokuSize; v++ {
			vars := make([]int, sudokuSize)
			for c := 0; c < sudokuSize; c++ {
				vars[c] = sudokuVar(r, c, v)
			}
			addAtLeastOne(vars)
			addAtMostOnePairs(vars)
		}
	}

	// Column: symmetric, across rows.
	for c := 0; c < sudokuSize; c++ {
		for v := 1; v <= sudokuSize; v++ {
			vars := make([]int, sudokuSize)
			for r := 0; r < sudokuSize; r++ {
				vars[r] = sudokuVar(r, c, v)
			}
			addAtLeastOne(vars)
			addAtMostOnePairs(vars)
		}
	}

	// Box: for each 3x3 box and value, at least one of its nine cells holds
	// it, and at most one.
	for br := 0; br < sudokuBox; br++ {
		for bc := 0; bc < sudokuBox; bc++ {
			for v := 1; v <= sudokuSize; v++ {
				vars := make([]int, 0, sudokuSize)
				for dr := 0; dr < sudokuBox; dr++ {
					for dc := 0; dc < sudokuBox; dc++ {
						r := br*sudokuBox + dr
						c := bc*sudokuBox + dc
						vars = append(vars, sudokuVar(r, c, v))
					}
				}
				addAtLeastOne(vars)
				addAtMostOnePairs(vars)
			}
		}
	}

	// Clue: assert the given value at every filled-in cell.
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			if g[r][c] != sudokuEmpty {
				f.Clauses = append(f.Clauses, Clause{Literal(sudokuVar(r, c, g[r][c]))})
			}
		}
	}

	f.NumClauses = len(f.Clauses)
	return f
}

// DecodeSudoku converts a satisfying assignment of EncodeSudoku's formula
// back into a 9x9 grid. Supplements the encoder with the grid-recovery
// half of the round trip (present in the original Python sudoku encoder
// but dropped from the distilled spec).
func DecodeSudoku(a Assignment) (Grid, error) {
	var g Grid
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			found := 0
			for v := 1; v <= sudokuSize; v++ {
				if a[sudokuVar(r, c, v)] {
					found++
					g[r][c] = v
				}
			}
			if found != 1 {
				return g, errors.Errorf("cell (%d,%d) has %d assigned values, want exactly 1", r, c, found)
			}
		}
	}
	return g, nil
}

// ParseGrid reads a 9x9 Sudoku grid in the row-major, no-separator text
// format described in spec.md §6.3: nine lines of nine digits, '0' for
// empty cells.
func ParseGrid(lines []string) (Grid, error) {
	var g Grid
	if len(lines) < sudokuSize {
		return g, errors.Errorf("grid has %d lines, want %d", len(lines), sudokuSize)
	}
	for r := 0; r < sudokuSize; r++ {
		line := lines[r]
		if len(line) < sudokuSize {
			return g, errors.Errorf("row %d has %d columns, want %d", r, len(line), sudokuSize)
		}
		for c := 0; c < sudokuSize; c++ {
			d := line[c]
			if d < '0' || d > '9' {
				return g, errors.Errorf("row %d col %d: invalid digit %q", r, c, d)
			}
			g[r][c] = int(d - '0')
		}
	}
	return g, nil
}

// FormatGrid renders a Grid in the same nine-lines-of-nine-digits format
// ParseGrid reads.
func FormatGrid(g Grid) string {
	buf := make([]byte, 0, sudokuSize*(sudokuSize+1))
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			buf = append(buf, byte('0'+g[r][c]))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
