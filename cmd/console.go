package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run an interview in plain line mode",
	Long: `console runs the same interview as the TUI as a line-by-line conversation.
Type /record to answer by voice and press Enter to stop. With --plain, input is
read line by line from stdin, which also works with a pipe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := requireLLM(e); err != nil {
			return err
		}

		m, err := e.svc.NewMachine()
		if err != nil {
			return err
		}
		iv := &console.Interview{
			Machine: m,
			In:      reader(cmd),
			Out:     cmd.OutOrStdout(),
			Advisor: e.svc.Advisor,
			Logger:  e.log.Named("console"),
		}
		return iv.Run(cmd.Context())
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the interview preparation chatbot",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := requireLLM(e); err != nil {
			return err
		}
		return console.Chat(cmd.Context(), e.svc.Chat, reader(cmd), cmd.OutOrStdout())
	},
}

func init() {
	consoleCmd.Flags().Bool("plain", false, "Read plain lines from stdin instead of an interactive prompt")
	chatCmd.Flags().Bool("plain", false, "Read plain lines from stdin instead of an interactive prompt")
}

func reader(cmd *cobra.Command) console.Reader {
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		return console.NewLines(os.Stdin)
	}
	return console.Prompt{}
}
