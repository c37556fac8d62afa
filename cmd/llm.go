package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
	Long: `Every classification, question generation, answer evaluation and chatbot
turn is recorded in the event log with its prompt, completion, token usage
and latency. These commands read that log.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		return withEventLog(cmd, func(repo store.EventRepo) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query LLM events: %w", err)
			}

			t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Latency", "")
			rows := 0
			for _, e := range events {
				if failedOnly && e.Success {
					continue
				}
				status := "ok"
				if !e.Success {
					status = "failed"
				}
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format("01-02 15:04:05"),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					fmt.Sprintf("%dms", e.LatencyMs),
					status,
				)
				rows++
			}
			if rows == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No LLM calls recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and completion of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event ID %q", args[0])
		}
		return withEventLog(cmd, func(repo store.EventRepo) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get LLM event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("no LLM event with ID %d", id)
			}
			writeLLMEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEventLog(cmd, func(repo store.EventRepo) error {
			out := cmd.OutOrStdout()
			byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage by purpose: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(cmd.Context())
			if err != nil {
				return fmt.Errorf("usage by model: %w", err)
			}

			fmt.Fprintln(out, purposeTable(byPurpose))
			fmt.Fprintln(out)
			fmt.Fprintln(out, costTable(byModel))
			return nil
		})
	},
}

func purposeTable(rows []store.PurposeUsage) string {
	t := newTable("Purpose", "Calls", "Input", "Output", "Avg latency")
	var calls, in, out int
	for _, u := range rows {
		t.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
			fmt.Sprintf("%dms", u.AvgLatencyMs))
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
	}
	t.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), "")
	return t.String()
}

// costTable prices each model from the built-in list. Models without a
// price are shown with "?" and listed under the table.
func costTable(rows []store.ModelUsage) string {
	t := newTable("Model", "Calls", "Input", "Output", "Cost (USD)")
	var total float64
	var unpriced []string
	for _, u := range rows {
		cost := "?"
		if price := llm.LookupCost(u.Model); price != nil {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Model)
		}
		t.Row(truncate(u.Model, 36), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	t.Row(label, "", "", "", formatCost(total))

	s := t.String()
	if len(unpriced) > 0 {
		s += "\nNo price known for: " + strings.Join(unpriced, ", ")
	}
	return s
}

func writeLLMEvent(w io.Writer, e *store.LLMRequestEvent) {
	status := "ok"
	if !e.Success {
		status = "failed: " + e.ErrorMessage
	}
	fmt.Fprintf(w, "Event    %d (seq %d)\n", e.ID, e.Sequence)
	fmt.Fprintf(w, "Time     %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Model    %s / %s\n", e.Provider, e.Model)
	fmt.Fprintf(w, "Purpose  %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens   %d in, %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency  %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Status   %s\n", status)

	for _, part := range []struct{ title, body string }{
		{"Request", e.RequestBody},
		{"Response", e.ResponseBody},
	} {
		fmt.Fprintf(w, "\n── %s %s\n", part.title, strings.Repeat("─", 50-len(part.title)))
		fmt.Fprintln(w, prettyBody(part.body))
	}
}

// prettyBody indents JSON bodies and leaves anything else as is.
func prettyBody(s string) string {
	if s == "" {
		return "(not captured)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
}

// withEventLog opens the configured event log for the duration of fn.
func withEventLog(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.EventRepo())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (domain-classify, hr-evaluate, tech-evaluate, chatbot, ...)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
