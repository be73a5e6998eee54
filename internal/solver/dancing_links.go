package solver

import (
	"fmt"

	"github.com/kpitt/exactcover"
	"github.com/kpitt/exactcover/internal/puzzle"
)

// DancingLinks solves a Sudoku puzzle by modeling it as an exact cover
// problem and delegating the search to the exactcover engine.
//
// There are 4 families of constraints each cell's candidate placements must
// satisfy:
//  1. Cell constraints: each cell holds exactly one value (81 constraints)
//  2. Row constraints: each row holds each digit 1-9 exactly once (81)
//  3. Column constraints: each column holds each digit 1-9 exactly once (81)
//  4. Box constraints: each 3x3 box holds each digit 1-9 exactly once (81)
//
// Total: 324 constraints, one universe element per constraint. Each
// candidate (row, col, value) placement becomes one matrix row that covers
// exactly 4 of those elements, always in the fixed order
// [cell, row, column, box]. decodeRow recovers the placement straight from a
// chosen row's elements; no side table is needed.
type DancingLinks struct {
	Puzzle *puzzle.Puzzle

	solver   *exactcover.Solver[int]
	rowCount int
}

// NewDancingLinks creates a new Dancing Links solver for the given puzzle.
func NewDancingLinks(p *puzzle.Puzzle) *DancingLinks {
	return newDancingLinks(p, exactcover.Options[int]{})
}

func newDancingLinks(p *puzzle.Puzzle, opts exactcover.Options[int]) *DancingLinks {
	dl := &DancingLinks{Puzzle: p}
	rows := dl.buildRows()
	dl.rowCount = len(rows)

	s, err := exactcover.ConstructWithOptions(exactcover.SliceRows(rows), exactcover.NaturalEqual[int](), opts)
	if err != nil {
		// Every column label here is a plain int compared with ==, and every
		// row comes from an in-memory slice, so construction cannot fail for
		// a well-formed puzzle.
		panic(fmt.Sprintf("exactcover: unexpected construction error: %v", err))
	}
	dl.solver = s
	return dl
}

// buildRows enumerates one candidate row per (cell, value) the puzzle still
// allows, each listing the 4 constraint elements it covers.
func (dl *DancingLinks) buildRows() [][]int {
	var rows [][]int
	for r := range 9 {
		for c := range 9 {
			cell := dl.Puzzle.Grid[r][c]
			if cell.IsSolved() {
				rows = append(rows, constraintRow(r, c, int(cell.Value())))
				continue
			}
			for val := 1; val <= 9; val++ {
				if cell.HasCandidate(int8(val)) {
					rows = append(rows, constraintRow(r, c, val))
				}
			}
		}
	}
	return rows
}

// constraintRow returns the 4 constraint elements a (row, col, value)
// placement covers, in [cell, row, column, box] order.
func constraintRow(r, c, val int) []int {
	cellConstraint := r*9 + c
	rowConstraint := 81 + r*9 + (val - 1)
	colConstraint := 162 + c*9 + (val - 1)
	boxConstraint := 243 + (r/3*3+c/3)*9 + (val - 1)
	return []int{cellConstraint, rowConstraint, colConstraint, boxConstraint}
}

// decodeRow recovers the (row, col, value) placement a chosen row represents
// from its constraint elements: the cell constraint fixes the cell, and the
// row constraint's offset within its 9-wide block fixes the value.
func decodeRow(elements []int) (r, c, val int) {
	r, c = rowColFromIndex(elements[0])
	val = (elements[1]-81)%9 + 1
	return r, c, val
}

// getColumnName returns a descriptive name for the constraint at the given
// universe index, used for debugging and display.
func (dl *DancingLinks) getColumnName(index int) string {
	switch {
	case index < 81:
		r, c := index/9, index%9
		return fmt.Sprintf("R%dC%d", r, c)
	case index < 162:
		idx := index - 81
		return fmt.Sprintf("R%d#%d", idx/9, idx%9+1)
	case index < 243:
		idx := index - 162
		return fmt.Sprintf("C%d#%d", idx/9, idx%9+1)
	default:
		idx := index - 243
		return fmt.Sprintf("B%d#%d", idx/9, idx%9+1)
	}
}

// ColumnCount reports the number of constraint columns in the matrix built
// for the puzzle's current state.
func (dl *DancingLinks) ColumnCount() int { return dl.solver.Columns() }

// RowCount reports the number of candidate placement rows in the matrix
// built for the puzzle's current state.
func (dl *DancingLinks) RowCount() int { return dl.rowCount }

// Solve attempts to solve the sudoku using the Dancing Links exact-cover
// search, applying the first solution found to the puzzle.
func (dl *DancingLinks) Solve() bool {
	sol, ok, err := dl.solver.Next()
	if err != nil || !ok {
		return false
	}
	return dl.applySolution(sol)
}

// applySolution writes every (row, col, value) placement in sol onto the
// puzzle grid.
func (dl *DancingLinks) applySolution(sol *exactcover.Solution[int]) bool {
	for _, row := range sol.Rows {
		r, c, val := decodeRow(row.Elements)
		cell := dl.Puzzle.Grid[r][c]
		if !cell.IsSolved() {
			dl.Puzzle.PlaceValue(r, c, val)
		}
	}
	return true
}

// SolveDancingLinks solves the sudoku using the Dancing Links algorithm.
func (s *Solver) SolveDancingLinks() bool {
	dl := NewDancingLinks(s.puzzle)
	return dl.Solve()
}
