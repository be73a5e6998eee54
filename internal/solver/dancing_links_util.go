package solver

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/kpitt/exactcover"
	"github.com/kpitt/exactcover/internal/puzzle"
)

// DancingLinksOptions configures the Dancing Links solver behavior.
type DancingLinksOptions struct {
	EnableDebugging bool
	TimeLimit       time.Duration
	MaxSolutions    int
}

// DefaultDancingLinksOptions returns sensible default options.
func DefaultDancingLinksOptions() *DancingLinksOptions {
	return &DancingLinksOptions{
		EnableDebugging: false,
		TimeLimit:       10 * time.Second,
		MaxSolutions:    1,
	}
}

// DancingLinksStats tracks solving statistics.
type DancingLinksStats struct {
	NodesVisited   int
	BacktrackCount int
	SolutionsFound int
	TimeElapsed    time.Duration
	MatrixSize     MatrixInfo
}

// MatrixInfo provides information about the constraint matrix.
type MatrixInfo struct {
	Columns    int
	Rows       int
	TotalNodes int
	Density    float64 // percentage of non-zero entries
}

// SolveWithStats solves using Dancing Links and returns detailed statistics.
//
// TimeLimit is preserved for interface compatibility but is not enforced
// mid-search: the exactcover engine runs a single Next() call to completion
// without yielding, by design (it never suspends within a search step), so
// there is no point at which this function could safely interrupt it.
func (dl *DancingLinks) SolveWithStats(options *DancingLinksOptions) (bool, *DancingLinksStats) {
	if options == nil {
		options = DefaultDancingLinksOptions()
	}

	stats := &DancingLinksStats{}
	instrumented := newDancingLinks(dl.Puzzle, exactcover.Options[int]{
		OnStep: func(k exactcover.StepKind) {
			switch k {
			case exactcover.StepDescend, exactcover.StepDeadEnd:
				stats.NodesVisited++
			case exactcover.StepBacktrack:
				stats.BacktrackCount++
			}
			if options.EnableDebugging {
				fmt.Printf("step: %v\n", k)
			}
		},
	})
	stats.MatrixSize = instrumented.matrixInfo()

	start := time.Now()
	solved := instrumented.Solve()
	stats.TimeElapsed = time.Since(start)
	if solved {
		stats.SolutionsFound = 1
		*dl = *instrumented
	}

	return solved, stats
}

// matrixInfo calculates information about the constraint matrix. Every row
// this package builds covers exactly 4 constraints, so the node count
// follows directly from the row count without walking any links.
func (dl *DancingLinks) matrixInfo() MatrixInfo {
	info := MatrixInfo{
		Columns:    dl.solver.Columns(),
		Rows:       dl.rowCount,
		TotalNodes: dl.rowCount * 4,
	}
	if info.Columns > 0 && info.Rows > 0 {
		info.Density = float64(info.TotalNodes) / float64(info.Columns*info.Rows) * 100.0
	}
	return info
}

// PrintStats displays solving statistics in a formatted way.
func (stats *DancingLinksStats) PrintStats() {
	fmt.Printf("\n%s\n", color.HiCyanString("Dancing Links Statistics"))
	fmt.Printf("%s\n", color.HiCyanString("========================"))

	fmt.Printf("Matrix Info:\n")
	fmt.Printf("  Columns:     %s\n", color.HiYellowString("%d", stats.MatrixSize.Columns))
	fmt.Printf("  Rows:        %s\n", color.HiYellowString("%d", stats.MatrixSize.Rows))
	fmt.Printf("  Total Nodes: %s\n", color.HiYellowString("%d", stats.MatrixSize.TotalNodes))
	fmt.Printf("  Density:     %s\n", color.HiYellowString("%.2f%%", stats.MatrixSize.Density))

	fmt.Printf("\nSearch Statistics:\n")
	fmt.Printf("  Nodes Visited:   %s\n", color.HiGreenString("%d", stats.NodesVisited))
	fmt.Printf("  Backtracks:      %s\n", color.HiRedString("%d", stats.BacktrackCount))
	fmt.Printf("  Solutions Found: %s\n", color.HiGreenString("%d", stats.SolutionsFound))
	fmt.Printf("  Time Elapsed:    %s\n", color.HiBlueString("%v", stats.TimeElapsed))

	if stats.TimeElapsed.Nanoseconds() > 0 {
		nodesPerSec := float64(stats.NodesVisited) / stats.TimeElapsed.Seconds()
		fmt.Printf("  Nodes/Second:    %s\n", color.HiMagentaString("%.0f", nodesPerSec))
	}
}

// ValidateSolution checks if the current puzzle state is a valid Sudoku
// solution.
func (dl *DancingLinks) ValidateSolution() error {
	p := dl.Puzzle

	for r := range 9 {
		for c := range 9 {
			if !p.Grid[r][c].IsSolved() {
				return fmt.Errorf("cell (%d,%d) is not filled", r, c)
			}
		}
	}

	for r := range 9 {
		seen := make(map[int8]bool)
		for c := range 9 {
			val := p.Grid[r][c].Value()
			if val < 1 || val > 9 {
				return fmt.Errorf("invalid value %d in cell (%d,%d)", val, r, c)
			}
			if seen[val] {
				return fmt.Errorf("duplicate value %d in row %d", val, r)
			}
			seen[val] = true
		}
	}

	for c := range 9 {
		seen := make(map[int8]bool)
		for r := range 9 {
			val := p.Grid[r][c].Value()
			if seen[val] {
				return fmt.Errorf("duplicate value %d in column %d", val, c)
			}
			seen[val] = true
		}
	}

	for box := range 9 {
		seen := make(map[int8]bool)
		boxRow, boxCol := box/3, box%3
		for i := range 9 {
			r, c := boxRow*3+i/3, boxCol*3+i%3
			val := p.Grid[r][c].Value()
			if seen[val] {
				return fmt.Errorf("duplicate value %d in box %d", val, box)
			}
			seen[val] = true
		}
	}

	return nil
}

// PrintMatrix prints a visual summary of the constraint matrix the puzzle
// currently builds (for debugging).
func (dl *DancingLinks) PrintMatrix() {
	fmt.Printf("\n%s\n", color.HiCyanString("Constraint Matrix Structure"))
	fmt.Printf("%s\n", color.HiCyanString("==========================="))

	info := dl.matrixInfo()
	fmt.Printf("Columns: %s\n", color.HiYellowString("%d", info.Columns))
	fmt.Printf("Rows:    %s (%d constraints each)\n", color.HiYellowString("%d", info.Rows), 4)

	sample := []string{
		dl.getColumnName(0), dl.getColumnName(81), dl.getColumnName(162), dl.getColumnName(243),
	}
	fmt.Printf("Example column labels: %s\n", color.HiYellowString("%v", sample))
}

// CountSolutions counts exact covers of the current puzzle state, up to
// maxSolutions, restoring the puzzle to its original state afterward.
func (dl *DancingLinks) CountSolutions(maxSolutions int) int {
	fresh := NewDancingLinks(dl.Puzzle)
	count := 0
	for count < maxSolutions {
		_, ok, err := fresh.solver.Next()
		if err != nil || !ok {
			break
		}
		count++
	}
	fresh.solver.Close()
	return count
}

// SolveWithDancingLinks provides a high-level interface with various
// options.
func SolveWithDancingLinks(p *puzzle.Puzzle, options *DancingLinksOptions) (bool, *DancingLinksStats, error) {
	if options == nil {
		options = DefaultDancingLinksOptions()
	}

	dl := NewDancingLinks(p)
	solved, stats := dl.SolveWithStats(options)

	var err error
	if solved {
		err = dl.ValidateSolution()
	}

	return solved, stats, err
}
