package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QuerySessionEvents(cmd.Context(), store.QueryOpts{Limit: limit * 2})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		shown := 0
		for _, e := range events {
			if e.Action == store.ActionStart {
				continue
			}
			if shown == 0 {
				fmt.Fprintf(out, "%-16s  %-12s  %-24s  %-9s  %7s  %7s  %6s\n",
					"Date", "Candidate", "Domain", "Result", "Answers", "Average", "Time")
				fmt.Fprintln(out, strings.Repeat("─", 94))
			}
			fmt.Fprintf(out, "%-16s  %-12s  %-24s  %-9s  %7d  %7.2f  %6s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(e.CandidateID, 12),
				truncate(e.Domain, 24),
				e.Action,
				e.QuestionsAnswered,
				e.AverageScore,
				formatDuration(e.DurationSecs))
			shown++
			if shown == limit {
				break
			}
		}
		if shown == 0 {
			fmt.Fprintln(out, "No finished interviews yet.")
		}
		return nil
	},
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
