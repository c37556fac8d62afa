package questions

import (
	"reflect"
	"testing"
)

func TestParseHR(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{"numbered dot", "1. A?\n2. B?", 5, []string{"A?", "B?"}},
		{"numbered paren", "1) A?\n2)B?", 5, []string{"A?", "B?"}},
		{"plain lines", "A?\n\nB?\n", 5, []string{"A?", "B?"}},
		{"truncate", "A\nB\nC", 2, []string{"A", "B"}},
		{"no limit", "A\nB\nC", 0, []string{"A", "B", "C"}},
		{"number only line", "1.\nA?", 5, []string{"A?"}},
		{"empty", "", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHR(tt.text, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseHR() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseTechnical(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{"numbered", "1. What is REST?\n2. What is gRPC?", 10, []string{"What is REST?", "What is gRPC?"}},
		{"skips preamble", "Sure! Here you go:\n1. What is REST?", 10, []string{"What is REST?"}},
		{"ignores paren style", "1) What is REST?", 10, nil},
		{"keeps inner dots", "3. What is e.g. a mutex?", 10, []string{"What is e.g. a mutex?"}},
		{"indented", "   4. What is TCP?", 10, []string{"What is TCP?"}},
		{"truncate", "1. A\n2. B\n3. C", 2, []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTechnical(tt.text, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTechnical() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
