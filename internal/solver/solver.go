package solver

import (
	"github.com/kpitt/exactcover/internal/puzzle"
)

// Solver drives the Sudoku-solving entry points over a single puzzle. The
// only solving strategy wired up is the Dancing Links exact-cover search in
// dancing_links.go; Solver exists as the stable handle cmd/sudoku and the
// example programs hold onto, independent of which search backs it.
type Solver struct {
	puzzle *puzzle.Puzzle
}

// NewSolver creates a Solver for the given puzzle.
func NewSolver(p *puzzle.Puzzle) *Solver {
	return &Solver{puzzle: p}
}

// Solve attempts to solve the puzzle, applying the first solution found.
// It reports whether a solution was found.
func (s *Solver) Solve() bool {
	return s.SolveDancingLinks()
}
