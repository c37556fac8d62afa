// Package dashboard builds the post-interview report: score summary, answer
// tables, AI feedback and course and job links.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/mockinterview/internal/results"
)

// Baseline is the score the overall average is compared against.
const Baseline = 5.0

var (
	ErrNoCandidate = errors.New("Candidate ID is missing.")
	ErrNoData      = errors.New("No interview data found.")
)

// Summary aggregates the scores of both rounds.
type Summary struct {
	HRCount   int
	TechCount int
	HRTotal   int
	TechTotal int

	// Average is the mean of all scores rounded to two decimals.
	Average     float64
	HRAverage   float64
	TechAverage float64
}

// HRMax is the best achievable HR total.
func (s Summary) HRMax() int { return s.HRCount * 10 }

// TechMax is the best achievable technical total.
func (s Summary) TechMax() int { return s.TechCount * 10 }

// Questions is the number of answered questions.
func (s Summary) Questions() int { return s.HRCount + s.TechCount }

// Delta is the difference between Average and Baseline.
func (s Summary) Delta() float64 { return s.Average - Baseline }

// DeltaLabel renders Delta the way the dashboard shows it, or "" when
// there is no average.
func (s Summary) DeltaLabel() string {
	if s.Average == 0 {
		return ""
	}
	return fmt.Sprintf("%+.1f vs baseline", s.Delta())
}

// BuildSummary totals and averages the entries of both rounds.
func BuildSummary(hr, tech []results.Entry) Summary {
	s := Summary{
		HRCount:   len(hr),
		TechCount: len(tech),
		HRTotal:   total(hr),
		TechTotal: total(tech),
	}
	if s.HRCount > 0 {
		s.HRAverage = float64(s.HRTotal) / float64(s.HRCount)
	}
	if s.TechCount > 0 {
		s.TechAverage = float64(s.TechTotal) / float64(s.TechCount)
	}
	if n := s.Questions(); n > 0 {
		s.Average = round2(float64(s.HRTotal+s.TechTotal) / float64(n))
	}
	return s
}

func total(entries []results.Entry) int {
	t := 0
	for _, e := range entries {
		t += e.Score
	}
	return t
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Loader reads the stored rounds of a candidate.
type Loader interface {
	Load(ctx context.Context, candidateID string) (hr, tech []results.Entry, err error)
}

// Report is everything the dashboard shows for one candidate.
type Report struct {
	CandidateID string
	Domain      string
	HR          []results.Entry
	Tech        []results.Entry
	Summary     Summary
}

// Load reads the results of candidateID and summarizes them.
func Load(ctx context.Context, store Loader, candidateID string) (*Report, error) {
	candidateID = strings.TrimSpace(candidateID)
	if candidateID == "" {
		return nil, ErrNoCandidate
	}

	hr, tech, err := store.Load(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("load results for %s: %w", candidateID, err)
	}
	if len(hr) == 0 && len(tech) == 0 {
		return nil, ErrNoData
	}

	return &Report{
		CandidateID: candidateID,
		Domain:      domainOf(hr, tech),
		HR:          hr,
		Tech:        tech,
		Summary:     BuildSummary(hr, tech),
	}, nil
}

// NewReport summarizes entries that are already in memory.
func NewReport(candidateID, domain string, hr, tech []results.Entry) *Report {
	if domain == "" {
		domain = domainOf(hr, tech)
	}
	return &Report{
		CandidateID: candidateID,
		Domain:      domain,
		HR:          hr,
		Tech:        tech,
		Summary:     BuildSummary(hr, tech),
	}
}

// domainOf returns the domain of the most recent entry that has one.
// Technical entries win since the HR round is domain independent.
func domainOf(hr, tech []results.Entry) string {
	for _, list := range [][]results.Entry{tech, hr} {
		for i := len(list) - 1; i >= 0; i-- {
			if list[i].Domain != "" {
				return list[i].Domain
			}
		}
	}
	return ""
}
