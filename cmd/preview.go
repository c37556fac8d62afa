package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockinterview/internal/evaluate"
	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/questions"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions and scoring for one round (no database)",
	Long: `Generate the questions of one round and answer them by typing.

This is a stateless developer tool: no event log, no saved results. Useful for
checking question quality and how answers are scored.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("round", "technical", "Round: hr or technical")
	previewCmd.Flags().String("domain", "", "Job domain for the technical round, e.g. \"Backend Developer\"")
	previewCmd.Flags().Int("count", 3, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	round, _ := cmd.Flags().GetString("round")
	domain, _ := cmd.Flags().GetString("domain")
	count, _ := cmd.Flags().GetInt("count")

	round = strings.ToLower(round)
	if round != "hr" && round != "technical" {
		return fmt.Errorf("invalid round %q: must be hr or technical", round)
	}
	if round == "technical" && domain == "" {
		return fmt.Errorf("--domain is required for the technical round")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.LLM.Validate(); err != nil {
		return err
	}

	// No EventRepo: request logging is skipped.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	qcfg := questions.DefaultConfig()
	qcfg.HRCount = count
	qcfg.TechCount = count
	gen := questions.New(provider, qcfg)
	ev := evaluate.New(provider, evaluate.DefaultConfig())

	fmt.Printf("Generating %d %s questions...\n\n", count, round)
	var list []string
	if round == "hr" {
		list, err = gen.HR(ctx)
	} else {
		list, err = gen.Technical(ctx, domain)
	}
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var total, answered int
	for i, q := range list {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(list))
		fmt.Println(q)

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}

		var res evaluate.Evaluation
		if round == "hr" {
			res = ev.HR(ctx, q, answer)
		} else {
			res = ev.Technical(ctx, domain, q, answer)
		}
		answered++
		total += res.Score

		fmt.Printf("Score: %d/10", res.Score)
		if res.Confidence != "" {
			fmt.Printf("  Confidence: %s", res.Confidence)
		}
		fmt.Printf("\nFeedback: %s\n\n", res.Feedback)
	}

	if answered > 0 {
		fmt.Printf("── Summary: %d answered, average %.1f/10 ──\n", answered, float64(total)/float64(answered))
	} else {
		fmt.Println("── Summary: no answers ──")
	}
	return nil
}
