package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interview TUI (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("skip-welcome", false, "Start on the home menu")
}

// runApp builds dependencies and launches the TUI. Logs go to a file
// because the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.cfg.Validate(); err != nil {
		e.log.Warn("configuration incomplete", zap.Error(err))
	}

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(app.Options{Services: e.svc, SkipWelcome: skip})
}
