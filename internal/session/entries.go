package session

import "github.com/abhisek/mockinterview/internal/results"

// Entries materializes the answers of both rounds as result entries.
func (m *Machine) Entries() (hr, tech []results.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries()
}

func (m *Machine) entries() (hr, tech []results.Entry) {
	return toEntries(m.sess, RoundHR, m.sess.HRAnswers), toEntries(m.sess, RoundTechnical, m.sess.TechAnswers)
}

func toEntries(s *Session, round Round, answers []Answer) []results.Entry {
	out := make([]results.Entry, 0, len(answers))
	name := results.RoundHR
	if round == RoundTechnical {
		name = results.RoundTechnical
	}
	for _, a := range answers {
		out = append(out, results.Entry{
			Timestamp:   results.At(a.At),
			CandidateID: s.CandidateID,
			Domain:      s.Domain,
			Question:    a.Question,
			Answer:      a.Transcript,
			Score:       a.Score,
			Feedback:    a.Feedback,
			Confidence:  a.Confidence,
			Round:       name,
		})
	}
	return out
}
