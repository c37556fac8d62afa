package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mockinterview/internal/results"
)

// WriteText renders the report as plain text for line-mode commands. adv
// may be nil when advice was not requested.
func WriteText(w io.Writer, r *Report, adv *Advice) {
	s := r.Summary
	fmt.Fprintf(w, "Interview Performance Dashboard\n")
	fmt.Fprintf(w, "Candidate ID: %s | Domain: %s\n\n", r.CandidateID, r.Domain)

	fmt.Fprintf(w, "HR Score:        %d/%d\n", s.HRTotal, s.HRMax())
	fmt.Fprintf(w, "Tech Score:      %d/%d\n", s.TechTotal, s.TechMax())
	fmt.Fprintf(w, "Overall Average: %.2f/10", s.Average)
	if d := s.DeltaLabel(); d != "" {
		fmt.Fprintf(w, "  (%s)", d)
	}
	fmt.Fprintf(w, "\nQuestions:       %d HR, %d technical\n", s.HRCount, s.TechCount)
	fmt.Fprintf(w, "Average Scores:  HR %.1f, Technical %.1f\n", s.HRAverage, s.TechAverage)

	writeTable(w, "HR Round", r.HR)
	writeTable(w, "Technical Round", r.Tech)

	if adv != nil {
		fmt.Fprintf(w, "\nPersonalized Feedback\n")
		if adv.FeedbackErr != nil {
			fmt.Fprintf(w, "  unavailable: %v\n", adv.FeedbackErr)
		} else if adv.Feedback != nil {
			writeBullets(w, "Focus topics", adv.Feedback.TechnicalTopics)
			writeBullets(w, "Soft skills", adv.Feedback.SoftSkills)
			writeBullets(w, "Career advice", adv.Feedback.CareerAdvice)
		}
	}

	fmt.Fprintf(w, "\nFree Course Search Links\n")
	writeLinks(w, CourseLinks(r.Domain))

	fmt.Fprintf(w, "\nJob Recommendations (%s)\n", DefaultLocation)
	if adv != nil {
		if adv.RolesErr != nil {
			fmt.Fprintf(w, "  roles unavailable: %v\n", adv.RolesErr)
		} else if len(adv.Roles) > 0 {
			fmt.Fprintf(w, "  %s\n", strings.Join(adv.Roles, ", "))
		}
	}
	writeLinks(w, JobLinks(r.Domain, ""))

	fmt.Fprintf(w, "\n%s\n", Footer)
}

func writeTable(w io.Writer, label string, entries []results.Entry) {
	fmt.Fprintf(w, "\n%s Feedback\n", label)
	if len(entries) == 0 {
		fmt.Fprintf(w, "  No %s data found.\n", label)
		return
	}
	best := 0
	for _, e := range entries {
		best = max(best, e.Score)
	}
	fmt.Fprintf(w, "  %-3s  %-50s  %-40s  %5s  %s\n", "#", "Question", "Answer", "Score", "Feedback")
	for i, e := range entries {
		mark := " "
		if e.Score == best {
			mark = "*"
		}
		fmt.Fprintf(w, "  %-3d  %-50s  %-40s  %4d%s  %s\n",
			i+1,
			clip(e.Question, 50),
			clip(e.Answer, 40),
			e.Score, mark,
			e.Feedback)
	}
}

func writeBullets(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "    - %s\n", it)
	}
}

func writeLinks(w io.Writer, links []Link) {
	for _, l := range links {
		fmt.Fprintf(w, "  - %-12s %s\n", l.Name, l.URL)
	}
}

func clip(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
