// ABOUTME: Tests for CLI argument parsing helpers
// ABOUTME: Covers date parsing, tag splitting, and watch interval validation
package cli

import (
	"testing"
	"time"
)

func TestParseDueDateRFC3339(t *testing.T) {
	parsed, err := parseDueDate("2025-03-15T10:30:00Z")
	if err != nil {
		t.Fatalf("parseDueDate failed: %v", err)
	}
	want := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("Expected %v, got %v", want, parsed)
	}
}

func TestParseDueDateDateOnly(t *testing.T) {
	parsed, err := parseDueDate("2025-03-15")
	if err != nil {
		t.Fatalf("parseDueDate failed: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.March || parsed.Day() != 15 {
		t.Errorf("Unexpected date: %v", parsed)
	}
	if parsed.Location() != time.Local {
		t.Errorf("Date-only input should parse in local time, got %v", parsed.Location())
	}
}

func TestParseDueDateInvalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "15/03/2025", "2025-13-45"} {
		if _, err := parseDueDate(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"startup", []string{"startup"}},
		{"startup,tech", []string{"startup", "tech"}},
		{" startup , tech ,", []string{"startup", "tech"}},
		{",,", nil},
	}

	for _, tc := range cases {
		got := splitTags(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("splitTags(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitTags(%q) = %v, want %v", tc.input, got, tc.want)
				break
			}
		}
	}
}

func TestValidateInterval(t *testing.T) {
	if err := validateInterval(time.Hour); err != nil {
		t.Errorf("Expected 1h to be valid: %v", err)
	}
	if err := validateInterval(minWatchInterval); err != nil {
		t.Errorf("Expected the minimum itself to be valid: %v", err)
	}
	if err := validateInterval(time.Second); err == nil {
		t.Error("Expected error below the minimum interval")
	}
	if err := validateInterval(0); err == nil {
		t.Error("Expected error for zero interval")
	}
}
