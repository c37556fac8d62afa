package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/mockinterview/internal/store"
)

func TestCostTable(t *testing.T) {
	out := costTable([]store.ModelUsage{
		{Model: "gpt-4o-mini", Calls: 3, InputTokens: 1_000_000, OutputTokens: 0},
		{Model: "local/unknown", Calls: 1, InputTokens: 10, OutputTokens: 10},
	})
	assert.Contains(t, out, "$0.15")
	assert.Contains(t, out, "total (partial)")
	assert.Contains(t, out, "No price known for: local/unknown")
}

func TestPurposeTableTotals(t *testing.T) {
	out := purposeTable([]store.PurposeUsage{
		{Purpose: "hr-evaluate", Calls: 5, InputTokens: 100, OutputTokens: 50},
		{Purpose: "tech-evaluate", Calls: 10, InputTokens: 300, OutputTokens: 70},
	})
	var total string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "total") {
			total = line
		}
	}
	assert.Regexp(t, `total\s+15\s+400\s+120`, total)
}

func TestPrettyBody(t *testing.T) {
	assert.Equal(t, "(not captured)", prettyBody(""))
	assert.Equal(t, "{\n  \"score\": 7\n}", prettyBody(`{"score":7}`))
	assert.Equal(t, "Score: 7/10", prettyBody("Score: 7/10"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 8))
	assert.Equal(t, "meta-ll…", truncate("meta-llama/llama-3", 8))
}
