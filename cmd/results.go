package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/dashboard"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect saved interview results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates with saved results",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		ids, err := e.svc.Results.Candidates(ctx)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No saved results.")
			return nil
		}

		fmt.Fprintf(out, "%-14s  %-28s  %4s  %4s  %7s\n", "Candidate", "Domain", "HR", "Tech", "Average")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		for _, id := range ids {
			rep, err := dashboard.Load(ctx, e.svc.Results, id)
			if err != nil {
				fmt.Fprintf(out, "%-14s  %s\n", id, err)
				continue
			}
			s := rep.Summary
			fmt.Fprintf(out, "%-14s  %-28s  %4d  %4d  %7.2f\n",
				id, truncate(rep.Domain, 28), s.HRCount, s.TechCount, s.Average)
		}
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show [candidate-id]",
	Short: "Print the dashboard of one candidate",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		var id string
		if len(args) == 1 {
			id = args[0]
		} else {
			ids, err := e.svc.Results.Candidates(ctx)
			if err != nil {
				return fmt.Errorf("list candidates: %w", err)
			}
			if len(ids) == 0 {
				return dashboard.ErrNoData
			}
			sel := promptui.Select{
				Label: "Choose a candidate",
				Items: ids,
			}
			if _, id, err = sel.Run(); err != nil {
				return err
			}
		}

		rep, err := dashboard.Load(ctx, e.svc.Results, id)
		if err != nil {
			return err
		}

		var adv *dashboard.Advice
		if advice, _ := cmd.Flags().GetBool("advice"); advice {
			if err := requireLLM(e); err != nil {
				return err
			}
			adv = e.svc.Advisor.Advise(ctx, rep)
		}
		dashboard.WriteText(cmd.OutOrStdout(), rep, adv)
		return nil
	},
}

func init() {
	resultsShowCmd.Flags().Bool("advice", false, "Ask the LLM for personalised feedback and job roles")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
}
