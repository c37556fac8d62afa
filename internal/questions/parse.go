package questions

import (
	"regexp"
	"strings"
)

var (
	hrPrefix   = regexp.MustCompile(`^\d+[.)]\s*`)
	techPrefix = regexp.MustCompile(`^\d+\.`)
)

// ParseHR reads one question per line, stripping "1." or "1)" prefixes.
// It keeps at most n questions; n <= 0 keeps all.
func ParseHR(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if q := strings.TrimSpace(hrPrefix.ReplaceAllString(line, "")); q != "" {
			out = append(out, q)
		}
	}
	return limit(out, n)
}

// ParseTechnical keeps only numbered lines ("1. ...") and drops the number,
// so any preamble the model adds is ignored.
func ParseTechnical(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !techPrefix.MatchString(line) {
			continue
		}
		q := line
		if _, rest, ok := strings.Cut(line, ". "); ok {
			q = rest
		}
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return limit(out, n)
}

func limit(qs []string, n int) []string {
	if n > 0 && len(qs) > n {
		return qs[:n]
	}
	return qs
}
