package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/gofdsolver/pkg/solver"
)

func newOptimizeCmd() *cobra.Command {
	var (
		n        int
		maximize bool
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Minimize the sum of n all-different variables",
		Long: "optimize builds n pairwise-different variables over [1, 2n], " +
			"constrains consecutive ones to be increasing, and optimizes their sum. " +
			"A small model whose point is to exercise the objective cut.",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := solver.NewModel()
			vars := make([]*solver.IntVar, n)
			for i := range vars {
				vars[i] = m.NewIntVar(fmt.Sprintf("x%d", i+1), 1, 2*n)
			}
			for i := 0; i+1 < n; i++ {
				m.Post(solver.LessOrEqualOffset(vars[i], vars[i+1], -1))
			}
			total := m.NewIntVar("total", n, 2*n*n)
			m.Post(solver.Sum(vars, total))

			s := solver.NewSolver(m)
			if err := applyConfig(s); err != nil {
				return err
			}
			s.Search().SetStrategy(solver.InputOrderLowerBound(vars))
			sol, err := s.FindOptimalSolution(total, !maximize)
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
	cmd.Flags().IntVarP(&n, "size", "n", 4, "number of variables")
	cmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")
	return cmd
}
