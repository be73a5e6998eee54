// Package exactcover solves the exact cover problem with Knuth's Dancing
// Links (DLX) technique and the smallest-column-first branching heuristic.
// Given a universe implicit in the input and a collection of subsets, it
// enumerates every sub-collection whose members are pairwise disjoint and
// whose union is the whole universe, one covering per call to Next.
//
// The search is iterative rather than recursive so that a Solver's stack
// frame is an explicit field: control returns to the caller between
// solutions, never in the middle of building one. The search itself performs
// no heap allocation; apart from the Solution returned for each exact cover,
// all allocation happens during Construct.
package exactcover

// StepKind identifies which branch of the search state machine a Solver
// just took. It exists only so callers can instrument the search (for
// example to report nodes-visited/backtrack counts); the search itself
// does not use it.
type StepKind int

const (
	// StepDescend means a column with at least one row was chosen and
	// its first row was pushed onto the solution stack.
	StepDescend StepKind = iota
	// StepDeadEnd means the chosen column had no rows left, so the
	// branch was abandoned and a backtrack was attempted.
	StepDeadEnd
	// StepBacktrack means the search tried the next sibling row at the
	// current depth, or popped a level when no sibling remained.
	StepBacktrack
)

// Options configures a Solver beyond the rows/equality it is built from.
type Options[E any] struct {
	// OnStep, if non-nil, is called once per state-machine transition
	// made while producing a single Next result. It is a plain function
	// call, not a channel or goroutine, so it does not violate the
	// zero-allocation-during-search contract.
	OnStep func(StepKind)
}

// Solver is a resumable iterator over the exact covers of one matrix. It
// owns the matrix and the solution stack exclusively; it is not safe for
// concurrent use, and two Solvers built from the same input are
// independent.
type Solver[E any] struct {
	m     *matrix[E]
	stack []*node[E]
	first bool
	done  bool
	opts  Options[E]
}

// Construct builds the matrix from rows and returns a Solver ready to
// enumerate its exact covers. rows and the elements within each row are
// consumed lazily and in order; equal is used to decide whether two
// elements denote the same universe member.
//
// On any error — failure to iterate rows, failure to iterate a row's
// elements, or a failing equality comparison — no partially-initialized
// Solver escapes and no memory allocated during the attempt is retained.
func Construct[E any](rows RowsSeq[E], equal Equal[E]) (*Solver[E], error) {
	return ConstructWithOptions(rows, equal, Options[E]{})
}

// ConstructWithOptions is Construct with additional instrumentation hooks.
func ConstructWithOptions[E any](rows RowsSeq[E], equal Equal[E], opts Options[E]) (*Solver[E], error) {
	m, err := buildMatrix(rows, equal)
	if err != nil {
		return nil, err
	}
	return &Solver[E]{
		m:     m,
		stack: make([]*node[E], 0, len(m.headers)),
		first: true,
		opts:  opts,
	}, nil
}

// FromSlices is the common-case convenience constructor for element types
// with usable built-in equality.
func FromSlices[E comparable](rows [][]E) (*Solver[E], error) {
	return Construct(SliceRows(rows), NaturalEqual[E]())
}

// FromBoolMatrix builds a Solver from a dense 0/1 matrix plus the label
// for each column, in the style of a textbook exact-cover table: matrix[i]
// is row i, and matrix[i][j] is true iff row i covers column labels[j].
// Every label becomes a column, including a label that no row covers.
func FromBoolMatrix[L comparable](matrix [][]bool, labels []L) (*Solver[L], error) {
	rows := make([][]L, len(matrix))
	for i, row := range matrix {
		var cols []L
		for j, set := range row {
			if set {
				cols = append(cols, labels[j])
			}
		}
		rows[i] = cols
	}
	s, err := FromSlices(rows)
	if err != nil {
		return nil, err
	}
	for _, label := range labels {
		if _, err := findOrCreateColumn(s.m, label, NaturalEqual[L]()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// step runs exactly the state-machine transition described for one
// iteration of next()'s inner loop: it returns a solution if the universe
// is fully covered, descends into the smallest remaining column if one has
// live rows, or reports that the branch is a dead end.
func (s *Solver[E]) step() (sol *Solution[E], deadEnd bool, solved bool) {
	h, ok := s.m.smallestColumn()
	if !ok {
		return s.currentSolution(), false, true
	}
	if h.size == 0 {
		if s.opts.OnStep != nil {
			s.opts.OnStep(StepDeadEnd)
		}
		return nil, true, false
	}

	row := h.down
	s.m.coverRow(row)
	s.stack = append(s.stack, row)
	if s.opts.OnStep != nil {
		s.opts.OnStep(StepDescend)
	}
	return nil, false, false
}

// Next advances the search and returns the next exact cover, if any. ok is
// false once the search space is exhausted; the Solver does not reset, so
// later calls continue to report ok == false.
func (s *Solver[E]) Next() (solution *Solution[E], ok bool, err error) {
	if s.done {
		return nil, false, nil
	}

	if s.first {
		s.first = false
	} else if !s.backtrack() {
		s.done = true
		return nil, false, nil
	}

	for {
		sol, deadEnd, solved := s.step()
		if solved {
			return sol, true, nil
		}
		if deadEnd {
			if !s.backtrack() {
				s.done = true
				return nil, false, nil
			}
		}
	}
}

// backtrack pops the top of the solution stack, uncovering its row, and
// advances to the next sibling row in the same column. If that column is
// exhausted at this depth it pops the stack entry entirely and continues
// unwinding. It returns false once the stack empties without finding an
// alternative.
func (s *Solver[E]) backtrack() bool {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.m.uncoverRow(top)
		if s.opts.OnStep != nil {
			s.opts.OnStep(StepBacktrack)
		}

		next := top.down
		if next == top.column.sentinel() {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}

		s.m.coverRow(next)
		s.stack[len(s.stack)-1] = next
		return true
	}
	return false
}

// currentSolution translates the solution stack into a tuple of row
// identifiers, one per stack entry (every cell in a chosen row carries the
// identical identifier, so no further dedup is needed).
func (s *Solver[E]) currentSolution() *Solution[E] {
	rows := make([]*Row[E], len(s.stack))
	for i, n := range s.stack {
		rows[i] = n.row
	}
	return &Solution[E]{Rows: rows}
}

// Close restores the matrix to its fully-linked state by uncovering every
// row still on the solution stack, in reverse order, and marks the
// iterator exhausted. It is safe to call at any point, including after
// Next has already reported exhaustion, and safe to call more than once.
//
// In Go this is not required for memory safety — the garbage collector
// reclaims the matrix regardless of link state — but it restores the
// documented contract that dropping an iterator mid-enumeration leaves no
// covered state behind, which matters for callers that walk the matrix
// during teardown (and for the invariant checks in this package's tests).
func (s *Solver[E]) Close() {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		s.m.uncoverRow(top)
		s.stack = s.stack[:len(s.stack)-1]
	}
	s.done = true
}

// Columns reports the number of columns the matrix was built with.
func (s *Solver[E]) Columns() int { return len(s.m.headers) }
