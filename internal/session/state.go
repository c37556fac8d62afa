package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/mockinterview/internal/evaluate"
)

// Stage is a step of the interview wizard.
type Stage string

const (
	StageStart         Stage = "start"
	StageConfirmDomain Stage = "confirm_domain"
	StageStartHR       Stage = "start_hr_prompt"
	StageHRRound       Stage = "hr_round"
	StageTechPrompt    Stage = "tech_prompt"
	StageTechRound     Stage = "tech_round"
	StageResultWait    Stage = "result_wait"
	StageDashboard     Stage = "show_dashboard"
)

var stageOrder = map[Stage]int{
	StageStart:         0,
	StageConfirmDomain: 1,
	StageStartHR:       2,
	StageHRRound:       3,
	StageTechPrompt:    4,
	StageTechRound:     5,
	StageResultWait:    6,
	StageDashboard:     7,
}

// Order returns the wizard position of s, or -1 for unknown stages.
func (s Stage) Order() int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return -1
}

// Round returns the round answered in s.
func (s Stage) Round() (Round, bool) {
	switch s {
	case StageHRRound:
		return RoundHR, true
	case StageTechRound:
		return RoundTechnical, true
	}
	return "", false
}

// Label is a short display name.
func (s Stage) Label() string {
	switch s {
	case StageStart:
		return "Job description"
	case StageConfirmDomain:
		return "Confirm domain"
	case StageStartHR, StageHRRound:
		return "HR round"
	case StageTechPrompt, StageTechRound:
		return "Technical round"
	case StageResultWait:
		return "Results"
	case StageDashboard:
		return "Dashboard"
	}
	return string(s)
}

// Round identifies a question sequence.
type Round string

const (
	RoundHR        Round = "hr"
	RoundTechnical Round = "technical"
)

// Answer is one scored response.
type Answer struct {
	Question   string
	Transcript string
	Language   string
	Score      int
	Feedback   string
	Confidence string
	Outcome    evaluate.Outcome
	At         time.Time
	Recorded   time.Duration
}

// Session is the mutable state of one interview attempt. Only Machine
// transitions modify it.
type Session struct {
	SessionID   string
	CandidateID string
	Stage       Stage

	JobDescription string
	Domain         string

	HRQuestions   []string
	TechQuestions []string
	HRIndex       int
	TechIndex     int
	HRAnswers     []Answer
	TechAnswers   []Answer

	RecordingActive bool
	IDVerified      bool
	IDPromptShown   bool
	ResultsRevealed bool

	StartedAt time.Time
}

// NewSession creates a session at the start stage.
func NewSession(sessionID, candidateID string, now time.Time) *Session {
	return &Session{
		SessionID:   sessionID,
		CandidateID: candidateID,
		Stage:       StageStart,
		StartedAt:   now,
	}
}

// CurrentQuestion returns the pending question of the active round.
func (s *Session) CurrentQuestion() (string, bool) {
	switch s.Stage {
	case StageHRRound:
		if s.HRIndex < len(s.HRQuestions) {
			return s.HRQuestions[s.HRIndex], true
		}
	case StageTechRound:
		if s.TechIndex < len(s.TechQuestions) {
			return s.TechQuestions[s.TechIndex], true
		}
	}
	return "", false
}

// Answered returns the number of answered questions across both rounds.
func (s *Session) Answered() int {
	return len(s.HRAnswers) + len(s.TechAnswers)
}

// AverageScore returns the mean score over all answers, or 0.
func (s *Session) AverageScore() float64 {
	n := s.Answered()
	if n == 0 {
		return 0
	}
	total := 0
	for _, a := range s.HRAnswers {
		total += a.Score
	}
	for _, a := range s.TechAnswers {
		total += a.Score
	}
	return float64(total) / float64(n)
}

// Check reports every broken invariant, or nil.
func (s *Session) Check() error {
	var errs []error
	if s.Stage.Order() < 0 {
		errs = append(errs, fmt.Errorf("unknown stage %q", s.Stage))
	}
	if s.HRIndex < 0 || s.HRIndex > len(s.HRQuestions) {
		errs = append(errs, fmt.Errorf("hr index %d out of range [0,%d]", s.HRIndex, len(s.HRQuestions)))
	}
	if s.TechIndex < 0 || s.TechIndex > len(s.TechQuestions) {
		errs = append(errs, fmt.Errorf("tech index %d out of range [0,%d]", s.TechIndex, len(s.TechQuestions)))
	}
	if len(s.HRAnswers) != s.HRIndex {
		errs = append(errs, fmt.Errorf("hr answers %d != hr index %d", len(s.HRAnswers), s.HRIndex))
	}
	if len(s.TechAnswers) != s.TechIndex {
		errs = append(errs, fmt.Errorf("tech answers %d != tech index %d", len(s.TechAnswers), s.TechIndex))
	}
	if s.RecordingActive {
		if _, ok := s.Stage.Round(); !ok {
			errs = append(errs, fmt.Errorf("recording active outside a round (stage %s)", s.Stage))
		}
	}
	if s.ResultsRevealed && !s.IDVerified {
		errs = append(errs, errors.New("results revealed without a verified candidate id"))
	}
	for _, a := range s.HRAnswers {
		if a.Score < 0 || a.Score > 10 {
			errs = append(errs, fmt.Errorf("hr score %d out of range", a.Score))
		}
	}
	for _, a := range s.TechAnswers {
		if a.Score < 0 || a.Score > 10 {
			errs = append(errs, fmt.Errorf("tech score %d out of range", a.Score))
		}
	}
	return errors.Join(errs...)
}

// clone returns a deep copy safe to hand to renderers.
func (s *Session) clone() Session {
	c := *s
	c.HRQuestions = append([]string(nil), s.HRQuestions...)
	c.TechQuestions = append([]string(nil), s.TechQuestions...)
	c.HRAnswers = append([]Answer(nil), s.HRAnswers...)
	c.TechAnswers = append([]Answer(nil), s.TechAnswers...)
	return c
}
