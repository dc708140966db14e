// ABOUTME: Stage policy table mapping deal stages to SLA durations
// ABOUTME: Terminal stages carry zero days and are never expired
package models

import "fmt"

// StagePolicy maps each deal stage to the maximum number of days a deal may
// sit in that stage before it expires. A zero entry marks a terminal stage:
// no deadline is enforced and the deal is never flagged as expired.
var StagePolicy = map[string]int{
	StageProspect: 30,
	StageEngaged:  14,
	StageMeeting:  7,
	StageProposal: 21,
	StageWon:      0,
	StageLost:     0,
}

// MaxDays returns the SLA for a stage. An unknown stage is a configuration
// error, not a silent default.
func MaxDays(stage string) (int, error) {
	days, ok := StagePolicy[stage]
	if !ok {
		return 0, fmt.Errorf("no stage policy entry for %q", stage)
	}
	return days, nil
}

// IsTerminalStage reports whether a stage has no SLA (won/lost).
func IsTerminalStage(stage string) bool {
	days, ok := StagePolicy[stage]
	return ok && days == 0
}

// ValidatePolicyTable checks that every known stage has a policy entry and
// that the table carries no entries for unknown stages.
func ValidatePolicyTable() error {
	for _, stage := range Stages {
		if _, ok := StagePolicy[stage]; !ok {
			return fmt.Errorf("stage %q has no policy entry", stage)
		}
	}
	if len(StagePolicy) != len(Stages) {
		return fmt.Errorf("stage policy has %d entries for %d stages", len(StagePolicy), len(Stages))
	}
	return nil
}
