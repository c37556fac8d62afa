package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/evaluate"
	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/store"
)

// StartRecording begins capturing an answer. Only valid inside a round.
func (m *Machine) StartRecording(ctx context.Context) Reply {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.sess.Stage
	if _, ok := before.Round(); !ok {
		return m.finish(before, Reply{Messages: []string{msgNotInRound}})
	}
	if m.sess.RecordingActive {
		return m.finish(before, Reply{Messages: []string{msgAlreadyRec}})
	}
	if m.deps.Capture == nil || !m.deps.Capture.Start(ctx) {
		m.logger().Warn("recording start failed")
		return m.finish(before, Reply{Messages: []string{msgStartFailed}})
	}

	m.sess.RecordingActive = true
	return m.finish(before, Reply{Messages: []string{msgRecording}})
}

// StopRecording stops the capture, transcribes and scores the answer, and
// moves to the next question. Failures leave the question index unchanged.
func (m *Machine) StopRecording(ctx context.Context) Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx = llm.WithCandidate(ctx, m.sess.CandidateID)

	before := m.sess.Stage
	round, ok := before.Round()
	if !ok {
		return m.finish(before, Reply{Messages: []string{msgNotInRound}})
	}
	if !m.sess.RecordingActive {
		return m.finish(before, Reply{Messages: []string{msgNotRecording}})
	}

	rec, ok := m.deps.Capture.Stop()
	m.sess.RecordingActive = false
	if !ok || rec.Empty() {
		return m.finish(before, Reply{Messages: []string{msgNoAudio}})
	}

	if m.deps.Transcriber == nil {
		return m.finish(before, Reply{Messages: []string{msgNoTranscriber}})
	}
	res, err := m.deps.Transcriber.Transcribe(ctx, rec)
	if err != nil {
		m.logger().Warn("transcription failed", zap.Error(err))
		return m.finish(before, Reply{
			Messages: []string{fmt.Sprintf("Transcription failed: %v. Please try again.", err)},
			Err:      err,
		})
	}
	if res == nil || res.Text == "" {
		return m.finish(before, Reply{Messages: []string{msgNoTranscript}})
	}

	question, _ := m.sess.CurrentQuestion()
	var ev evaluate.Evaluation
	if round == RoundHR {
		ev = m.deps.Evaluator.HR(ctx, question, res.Text)
	} else {
		ev = m.deps.Evaluator.Technical(ctx, m.sess.Domain, question, res.Text)
	}

	ans := Answer{
		Question:   question,
		Transcript: res.Text,
		Language:   res.Language,
		Score:      ev.Score,
		Feedback:   ev.Feedback,
		Confidence: ev.Confidence,
		Outcome:    ev.Outcome,
		At:         m.deps.Now(),
		Recorded:   rec.Duration(),
	}

	r := Reply{Messages: []string{
		"You said: " + res.Text,
		fmt.Sprintf("Score: %d/10", ev.Score),
		"Feedback: " + ev.Feedback,
	}}
	if round == RoundHR {
		r.Messages = append(r.Messages, "Confidence: "+ev.Confidence)
	}

	index := m.appendAnswer(round, ans)
	m.recordAnswer(ctx, round, index, ans)
	m.logger().Info("answer scored",
		zap.String("round", string(round)),
		zap.Int("index", index),
		zap.Int("score", ev.Score),
		zap.String("outcome", string(ev.Outcome)))

	r.Messages = append(r.Messages, m.advance(round)...)
	return m.finish(before, r)
}

// appendAnswer stores ans and moves the cursor, keeping answers and index
// in step. It returns the index of the answered question.
func (m *Machine) appendAnswer(round Round, ans Answer) int {
	if round == RoundHR {
		m.sess.HRAnswers = append(m.sess.HRAnswers, ans)
		m.sess.HRIndex++
		return m.sess.HRIndex - 1
	}
	m.sess.TechAnswers = append(m.sess.TechAnswers, ans)
	m.sess.TechIndex++
	return m.sess.TechIndex - 1
}

func (m *Machine) advance(round Round) []string {
	if round == RoundHR {
		if m.sess.HRIndex < len(m.sess.HRQuestions) {
			return []string{questionMessage(RoundHR, m.sess.HRIndex, m.sess.HRQuestions[m.sess.HRIndex])}
		}
		m.sess.Stage = StageTechPrompt
		return []string{msgHRDone}
	}

	if m.sess.TechIndex < len(m.sess.TechQuestions) {
		return []string{questionMessage(RoundTechnical, m.sess.TechIndex, m.sess.TechQuestions[m.sess.TechIndex])}
	}
	m.sess.Stage = StageResultWait
	m.sess.IDPromptShown = true
	return []string{msgComplete, msgEnterID}
}

func (m *Machine) recordAnswer(ctx context.Context, round Round, index int, ans Answer) {
	if m.deps.Events == nil {
		return
	}
	err := m.deps.Events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:     m.sess.SessionID,
		CandidateID:   m.sess.CandidateID,
		Round:         string(round),
		QuestionIndex: index,
		Question:      ans.Question,
		Transcript:    ans.Transcript,
		Language:      ans.Language,
		Score:         ans.Score,
		Outcome:       string(ans.Outcome),
		RecordMs:      ans.Recorded.Milliseconds(),
	})
	if err != nil {
		m.logger().Warn("failed to record answer event", zap.Error(err))
	}
}

func (m *Machine) recordSession(ctx context.Context, s *Session, action string) {
	if m.deps.Events == nil {
		return
	}
	err := m.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         s.SessionID,
		CandidateID:       s.CandidateID,
		Action:            action,
		Stage:             string(s.Stage),
		Domain:            s.Domain,
		QuestionsAnswered: s.Answered(),
		AverageScore:      s.AverageScore(),
		DurationSecs:      int(m.deps.Now().Sub(s.StartedAt).Seconds()),
	})
	if err != nil {
		m.logger().Warn("failed to record session event", zap.String("action", action), zap.Error(err))
	}
}
