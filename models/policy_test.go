// ABOUTME: Tests for the stage policy table
// ABOUTME: Covers lookups, terminal detection, and table validation
package models

import (
	"testing"
)

func TestMaxDays(t *testing.T) {
	cases := []struct {
		stage string
		days  int
	}{
		{StageProspect, 30},
		{StageEngaged, 14},
		{StageMeeting, 7},
		{StageProposal, 21},
		{StageWon, 0},
		{StageLost, 0},
	}

	for _, tc := range cases {
		days, err := MaxDays(tc.stage)
		if err != nil {
			t.Fatalf("MaxDays(%s) failed: %v", tc.stage, err)
		}
		if days != tc.days {
			t.Errorf("MaxDays(%s) = %d, want %d", tc.stage, days, tc.days)
		}
	}
}

func TestMaxDaysUnknownStage(t *testing.T) {
	// An unknown stage must be an error, never a silent default.
	if _, err := MaxDays("negotiation"); err == nil {
		t.Error("Expected error for unknown stage, got nil")
	}
	if _, err := MaxDays(""); err == nil {
		t.Error("Expected error for empty stage, got nil")
	}
}

func TestIsTerminalStage(t *testing.T) {
	for _, stage := range []string{StageWon, StageLost} {
		if !IsTerminalStage(stage) {
			t.Errorf("Expected %s to be terminal", stage)
		}
	}
	for _, stage := range []string{StageProspect, StageEngaged, StageMeeting, StageProposal} {
		if IsTerminalStage(stage) {
			t.Errorf("Expected %s to not be terminal", stage)
		}
	}
	if IsTerminalStage("unknown") {
		t.Error("Unknown stage must not be terminal")
	}
}

func TestValidatePolicyTable(t *testing.T) {
	if err := ValidatePolicyTable(); err != nil {
		t.Errorf("ValidatePolicyTable failed: %v", err)
	}
}

func TestPolicyCoversAllStages(t *testing.T) {
	for _, stage := range Stages {
		if _, ok := StagePolicy[stage]; !ok {
			t.Errorf("Stage %s has no policy entry", stage)
		}
	}
	if len(StagePolicy) != len(Stages) {
		t.Errorf("Policy table has %d entries, want %d", len(StagePolicy), len(Stages))
	}
}
