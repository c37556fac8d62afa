package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/classify"
	"github.com/abhisek/mockinterview/internal/store"
)

func (m *Machine) onJobDescription(ctx context.Context, text string) Reply {
	jd := strings.TrimSpace(text)
	if jd == "" {
		return Reply{Messages: []string{msgPasteJD}}
	}
	if jd == m.sess.JobDescription {
		return Reply{Messages: []string{msgNewJD}}
	}

	m.sess.JobDescription = jd
	label := m.deps.Classifier.Classify(ctx, jd)
	if classify.IsInvalid(label) {
		// Clearing lets the candidate retry the same text after a failure.
		m.sess.JobDescription = ""
		m.logger().Warn("domain classification rejected", zap.String("result", label))
		return Reply{Messages: []string{label}}
	}

	m.sess.Domain = label
	m.sess.Stage = StageConfirmDomain
	m.logger().Info("domain predicted", zap.String("domain", label))
	return Reply{Messages: []string{
		fmt.Sprintf("Predicted domain: %s. Is this correct? (yes/recheck)", label),
	}}
}

func (m *Machine) onConfirmDomain(ctx context.Context, text string) Reply {
	switch normalize(text) {
	case "yes":
		m.sess.Stage = StageStartHR
		m.logger().Info("domain confirmed", zap.String("domain", m.sess.Domain))
		m.recordSession(ctx, m.sess, store.ActionStart)
		return Reply{Messages: []string{
			fmt.Sprintf("Domain confirmed: %s.", m.sess.Domain),
			msgReadyHR,
		}}

	case "recheck":
		label := m.deps.Classifier.Classify(ctx, m.sess.JobDescription)
		if classify.IsInvalid(label) {
			m.logger().Warn("domain recheck rejected", zap.String("result", label))
			return Reply{Messages: []string{label}}
		}
		m.sess.Domain = label
		return Reply{Messages: []string{
			fmt.Sprintf("Rechecked domain: %s. Is this correct? (yes/recheck)", label),
		}}
	}

	return Reply{Messages: []string{msgConfirmOrRe}}
}

func (m *Machine) onStartHR(ctx context.Context, text string) Reply {
	if normalize(text) != "yes" {
		return Reply{Messages: []string{msgTypeYesHR}}
	}

	qs, err := m.deps.Questions.HR(ctx)
	if err != nil || len(qs) == 0 {
		m.logger().Warn("hr question generation failed", zap.Error(err))
		return Reply{Messages: []string{msgNoHR}, Err: err}
	}

	m.sess.HRQuestions = qs
	m.sess.HRIndex = 0
	m.sess.HRAnswers = nil
	m.sess.Stage = StageHRRound
	m.logger().Info("hr round started", zap.Int("questions", len(qs)))
	return Reply{Messages: []string{questionMessage(RoundHR, 0, qs[0])}}
}

func (m *Machine) onStartTech(ctx context.Context, text string) Reply {
	if normalize(text) != "yes" {
		return Reply{Messages: []string{msgTypeYesTech}}
	}

	qs, err := m.deps.Questions.Technical(ctx, m.sess.Domain)
	if err != nil || len(qs) == 0 {
		m.logger().Warn("technical question generation failed", zap.Error(err))
		return Reply{Messages: []string{msgNoTech}, Err: err}
	}

	m.sess.TechQuestions = qs
	m.sess.TechIndex = 0
	m.sess.TechAnswers = nil
	m.sess.Stage = StageTechRound
	m.logger().Info("technical round started", zap.Int("questions", len(qs)))
	return Reply{Messages: []string{questionMessage(RoundTechnical, 0, qs[0])}}
}

func (m *Machine) onResultWait(ctx context.Context, text string) Reply {
	if !m.sess.IDVerified {
		// Identifiers are opaque tokens: no case folding.
		if strings.TrimSpace(text) == m.sess.CandidateID {
			m.sess.IDVerified = true
			return Reply{Messages: []string{msgIDVerified}}
		}
		m.logger().Info("candidate id mismatch")
		return Reply{Messages: []string{msgIDWrong}}
	}

	if normalize(text) != "show result" {
		return Reply{Messages: []string{msgShowResult}}
	}

	var r Reply
	hr, tech := m.entries()
	if m.deps.Results != nil {
		if err := m.deps.Results.Save(ctx, m.sess.CandidateID, hr, tech); err != nil {
			m.logger().Error("failed to save interview results",
				zap.Int("hr_entries", len(hr)),
				zap.Int("tech_entries", len(tech)),
				zap.Error(err))
			r.Messages = append(r.Messages, fmt.Sprintf("Warning: your results could not be saved: %v", err))
			r.Err = err
		}
	}

	m.sess.ResultsRevealed = true
	m.sess.Stage = StageDashboard
	m.recordSession(ctx, m.sess, store.ActionComplete)
	return r
}

func questionMessage(round Round, index int, q string) string {
	if round == RoundHR {
		return fmt.Sprintf("HR Question %d: %s", index+1, q)
	}
	return fmt.Sprintf("Technical Question %d: %s", index+1, q)
}
