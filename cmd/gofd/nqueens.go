package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gofdsolver/pkg/solver"
)

func newNQueensCmd() *cobra.Command {
	var (
		n         int
		all       bool
		firstFail bool
	)
	cmd := &cobra.Command{
		Use:   "nqueens",
		Short: "Solve the N-Queens problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, queens := buildNQueens(n)
			s := solver.NewSolver(m)
			if err := applyConfig(s); err != nil {
				return err
			}
			if firstFail {
				s.Search().SetStrategy(solver.FirstFail(queens))
			}
			if all {
				sols, err := s.FindAllSolutions()
				if err != nil {
					return err
				}
				for _, sol := range sols {
					fmt.Println(sol)
				}
				fmt.Printf("%d solutions (%s)\n", len(sols), s.Measures())
				return nil
			}
			sol, err := s.FindSolution()
			if err != nil {
				return err
			}
			if sol == nil {
				fmt.Printf("no solution (%s)\n", s.Measures())
				return nil
			}
			fmt.Println(sol)
			fmt.Printf("(%s)\n", s.Measures())
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "size", "n", 8, "board size")
	cmd.Flags().BoolVar(&all, "all", false, "enumerate every solution")
	cmd.Flags().BoolVar(&firstFail, "first-fail", false, "branch on the smallest domain first")
	return cmd
}

// buildNQueens models one queen per column, the variable holding its row.
func buildNQueens(n int) (*solver.Model, []*solver.IntVar) {
	m := solver.NewModel()
	queens := make([]*solver.IntVar, n)
	for i := range queens {
		queens[i] = m.NewIntVar(fmt.Sprintf("q%d", i+1), 1, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.Post(
				solver.NotEqual(queens[i], queens[j]),
				solver.NotEqualOffset(queens[i], queens[j], j-i),
				solver.NotEqualOffset(queens[i], queens[j], i-j),
			)
		}
	}
	return m, queens
}
