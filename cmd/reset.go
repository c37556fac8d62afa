package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/results"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the event log and, with --results, saved interview results",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		withResults, _ := cmd.Flags().GetBool("results")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if !yes {
			label := "Delete the interview history"
			if withResults {
				label += " and all saved results"
			}
			p := promptui.Prompt{Label: label, IsConfirm: true}
			if _, err := p.Run(); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset event log: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Event log cleared.")

		if withResults {
			pair := results.OpenPair(afero.NewOsFs(), cfg.ResultsPath())
			for _, s := range []*results.Store{pair.HR, pair.Tech} {
				if err := os.Remove(s.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("remove %s: %w", s.Path(), err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved results deleted.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().Bool("results", false, "Also delete the saved result files")
}
