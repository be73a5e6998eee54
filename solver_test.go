package exactcover

import (
	"errors"
	"slices"
	"testing"
)

// rowSet collects a Solution into a comparable set of sorted row-element
// strings, so scenarios can assert on the set of solutions regardless of
// enumeration order within a tuple.
func rowSet[E comparable](sol *Solution[E], elemStr func(E) string) []string {
	out := make([]string, 0, sol.Len())
	for _, row := range sol.Rows {
		elems := make([]string, len(row.Elements))
		for i, e := range row.Elements {
			elems[i] = elemStr(e)
		}
		slices.Sort(elems)
		out = append(out, joinElems(elems))
	}
	slices.Sort(out)
	return out
}

func joinElems(elems []string) string {
	out := ""
	for i, e := range elems {
		if i > 0 {
			out += ","
		}
		out += e
	}
	return out
}

func drainAll[E any](t *testing.T, s *Solver[E]) []*Solution[E] {
	t.Helper()
	var sols []*Solution[E]
	for {
		sol, ok, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		sols = append(sols, sol)
		if err := s.m.checkInvariants(); err != nil {
			t.Fatalf("invariants broken after a solution: %v", err)
		}
	}
	return sols
}

// Scenario A: Knuth's original 6x7 textbook example.
// R1={c,e,f}, R2={a,d,g}, R3={b,c,f}, R4={a,d}, R5={b,g}, R6={d,e,g}.
// The unique exact cover is {R1, R4, R5}.
func TestScenarioATextbookExample(t *testing.T) {
	rows := [][]string{
		{"c", "e", "f"}, // R1
		{"a", "d", "g"}, // R2
		{"b", "c", "f"}, // R3
		{"a", "d"},      // R4
		{"b", "g"},      // R5
		{"d", "e", "g"}, // R6
	}
	s, err := FromSlices(rows)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	sols := drainAll(t, s)
	if len(sols) != 1 {
		t.Fatalf("expected exactly 1 solution, got %d", len(sols))
	}
	got := rowSet(sols[0], func(e string) string { return e })
	want := []string{"a,d", "b,g", "c,e,f"}
	if !slices.Equal(got, want) {
		t.Fatalf("got rows %v, want %v", got, want)
	}

	if err := s.m.checkInvariants(); err != nil {
		t.Fatalf("invariants broken after enumeration: %v", err)
	}

	if _, ok, _ := s.Next(); ok {
		t.Fatal("expected exhaustion after the unique solution")
	}
}

// Scenario B: no exact cover exists. Covering "a" forces {a,b} and covering
// "c" forces {b,c}, so "b" would be covered twice.
func TestScenarioBNoSolution(t *testing.T) {
	rows := [][]string{
		{"a", "b"},
		{"b", "c"},
	}
	s, err := FromSlices(rows)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	sols := drainAll(t, s)
	if len(sols) != 0 {
		t.Fatalf("expected 0 solutions, got %d", len(sols))
	}
}

// Scenario C: multiple solutions, {R1,R2} and {R3}.
func TestScenarioCMultipleSolutions(t *testing.T) {
	rows := [][]string{
		{"a"},
		{"b"},
		{"a", "b"},
	}
	s, err := FromSlices(rows)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	sols := drainAll(t, s)
	if len(sols) != 2 {
		t.Fatalf("expected 2 solutions, got %d", len(sols))
	}

	// The two solutions are {R1,R2} (two single-element rows) and {R3}
	// (one two-element row).
	foundSingleRow, foundTwoRow := false, false
	for _, sol := range sols {
		if sol.Len() == 1 {
			foundSingleRow = true
		}
		if sol.Len() == 2 {
			foundTwoRow = true
		}
	}
	if !foundSingleRow || !foundTwoRow {
		t.Fatalf("expected one 1-row and one 2-row solution, got %d solutions", len(sols))
	}
}

// Scenario D: empty input yields exactly one empty solution, then exhausted.
func TestScenarioDEmptyInput(t *testing.T) {
	s, err := FromSlices([][]int{})
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	sol, ok, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !ok {
		t.Fatal("expected one solution for the empty universe")
	}
	if sol.Len() != 0 {
		t.Fatalf("expected the empty tuple, got %d rows", sol.Len())
	}

	if _, ok, _ := s.Next(); ok {
		t.Fatal("expected exhaustion after the empty solution")
	}
	// Scenario F: restartability is not required; further calls keep
	// reporting exhaustion.
	if _, ok, _ := s.Next(); ok {
		t.Fatal("expected exhaustion to persist across further calls")
	}
}

// Scenario E: duplicate identical rows are distinct choices.
func TestScenarioEDuplicateRows(t *testing.T) {
	rows := [][]string{
		{"a"},
		{"a"},
	}
	s, err := FromSlices(rows)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	sols := drainAll(t, s)
	if len(sols) != 2 {
		t.Fatalf("expected 2 solutions, got %d", len(sols))
	}
	for _, sol := range sols {
		if sol.Len() != 1 {
			t.Fatalf("expected single-row solutions, got %d rows", sol.Len())
		}
	}
	// The two yielded rows must be distinct Row handles, even though their
	// elements are equal.
	if sols[0].Rows[0] == sols[1].Rows[0] {
		t.Fatal("expected distinct row identities for duplicate rows")
	}
}

// A universe element present in no row can never be covered: zero
// solutions. Since columns are normally discovered only from elements that
// appear in some row, this needs the explicit-label constructor to set up
// a column no row touches.
func TestColumnWithNoRowsYieldsNoSolutions(t *testing.T) {
	matrix := [][]bool{
		{true, false}, // covers only "a", leaves "b" untouched
	}
	s, err := FromBoolMatrix(matrix, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	sols := drainAll(t, s)
	if len(sols) != 0 {
		t.Fatalf("expected 0 solutions, got %d", len(sols))
	}
}

func TestEqualityComparisonFailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	rows := [][]int{{1, 2}}
	_, err := Construct(SliceRows(rows), func(a, b int) (bool, error) {
		return false, boom
	})
	if err == nil {
		t.Fatal("expected an error from a failing equality function")
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != ComparisonFailure {
		t.Fatalf("expected ComparisonFailure, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected errors.Is to find the wrapped cause, got %v", err)
	}
}

func TestRowIterationFailurePropagates(t *testing.T) {
	boom := errors.New("boom")
	rows := RowsSeq[int](func(yield func(RowSeq[int]) bool) error {
		bad := RowSeq[int](func(yield func(int) bool) error {
			yield(1)
			return boom
		})
		yield(bad)
		return nil
	})
	_, err := Construct(rows, NaturalEqual[int]())
	if err == nil {
		t.Fatal("expected an error from a failing row sequence")
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Kind != InputFailure {
		t.Fatalf("expected InputFailure, got %v", err)
	}
}

func TestDeterminismAcrossRuns(t *testing.T) {
	rows := [][]string{
		{"c", "e", "f"},
		{"a", "d", "g"},
		{"b", "c", "f"},
		{"a", "d"},
		{"b", "g"},
		{"d", "e", "g"},
	}

	run := func() []string {
		s, err := FromSlices(rows)
		if err != nil {
			t.Fatalf("Construct: %v", err)
		}
		var out []string
		for {
			sol, ok, err := s.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if !ok {
				break
			}
			out = append(out, joinElems(rowSet(sol, func(e string) string { return e })))
		}
		return out
	}

	first := run()
	second := run()
	if !slices.Equal(first, second) {
		t.Fatalf("solver is not deterministic: %v != %v", first, second)
	}
}

func TestCloseRestoresMatrix(t *testing.T) {
	rows := [][]string{
		{"c", "e", "f"},
		{"a", "d", "g"},
		{"b", "c", "f"},
		{"a", "d"},
		{"b", "g"},
		{"d", "e", "g"},
	}
	s, err := FromSlices(rows)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	// Advance partway into the search, then close mid-enumeration.
	if _, _, err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	s.Close()
	if len(s.stack) != 0 {
		t.Fatalf("expected Close to unwind the solution stack, got depth %d", len(s.stack))
	}
	if err := s.m.checkInvariants(); err != nil {
		t.Fatalf("invariants broken after Close: %v", err)
	}
	if _, ok, _ := s.Next(); ok {
		t.Fatal("expected Close to leave the solver exhausted")
	}
}

func TestOnStepInstrumentation(t *testing.T) {
	rows := [][]string{
		{"c", "e", "f"},
		{"a", "d", "g"},
		{"b", "c", "f"},
		{"a", "d"},
		{"b", "g"},
		{"d", "e", "g"},
	}
	var descends, backtracks int
	s, err := ConstructWithOptions(SliceRows(rows), NaturalEqual[string](), Options[string]{
		OnStep: func(k StepKind) {
			switch k {
			case StepDescend:
				descends++
			case StepBacktrack:
				backtracks++
			}
		},
	})
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	drainAll(t, s)
	if descends == 0 {
		t.Fatal("expected at least one StepDescend notification")
	}
}
