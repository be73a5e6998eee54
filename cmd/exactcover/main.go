// Command exactcover reads an exact cover problem from standard input and
// prints every exact cover it finds.
//
// Input is one row per line, with space-separated element labels:
//
//	c e f
//	a d g
//	b c f
//	a d
//	b g
//	d e g
//
// This is Knuth's original textbook example; it has a unique exact cover,
// so exactcover prints exactly one solution line for it, followed by the
// count of exact covers found.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kpitt/exactcover"
	"github.com/mattn/go-isatty"
)

func main() {
	maxSolutions := flag.Int("n", 0, "stop after this many solutions (0 means print all)")
	showStats := flag.Bool("stats", false, "print node-visit and backtrack counts to stderr")
	flag.Parse()

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "Enter one row per line, space-separated element labels. Ctrl+D to finish.")
	}

	rows, err := readRows(os.Stdin)
	if err != nil {
		color.HiRed("error reading input: %v", err)
		os.Exit(1)
	}

	var descends, backtracks int
	s, err := exactcover.ConstructWithOptions(
		exactcover.SliceRows(rows),
		exactcover.NaturalEqual[string](),
		exactcover.Options[string]{
			OnStep: func(k exactcover.StepKind) {
				switch k {
				case exactcover.StepDescend:
					descends++
				case exactcover.StepBacktrack:
					backtracks++
				}
			},
		},
	)
	if err != nil {
		color.HiRed("could not build the exact-cover matrix: %v", err)
		os.Exit(1)
	}

	found := 0
	for {
		sol, ok, err := s.Next()
		if err != nil {
			color.HiRed("search error: %v", err)
			os.Exit(1)
		}
		if !ok {
			break
		}
		found++
		printSolution(found, sol)
		if *maxSolutions > 0 && found >= *maxSolutions {
			s.Close()
			break
		}
	}

	if found == 0 {
		color.HiYellow("no exact cover exists")
	} else {
		color.HiGreen("%d exact cover(s) found", found)
	}

	if *showStats {
		fmt.Fprintf(os.Stderr, "columns: %d  descends: %d  backtracks: %d\n",
			s.Columns(), descends, backtracks)
	}
}

func printSolution(n int, sol *exactcover.Solution[string]) {
	rows := make([]string, sol.Len())
	for i, row := range sol.Rows {
		rows[i] = "{" + strings.Join(row.Elements, ",") + "}"
	}
	fmt.Printf("%s %s\n", color.HiCyanString("solution %d:", n), strings.Join(rows, " "))
}

func readRows(f *os.File) ([][]string, error) {
	var rows [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rows = append(rows, strings.Fields(line))
	}
	return rows, scanner.Err()
}
