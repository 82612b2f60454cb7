// Package workflow is the single source of truth for the interconnection
// application stage order, labels, timestamp fields and default guidance
// notes. Everything here is pure; the ordered Stages slice is the only
// authority for "next stage" and "is complete" decisions.
package workflow

import "fmt"

// Status is a stage key stored in the application row.
type Status string

const (
	StatusSiteSelection     Status = "site_selection"
	StatusSubmitted         Status = "submitted"
	StatusAgreementApproved Status = "agreement_approved"
	StatusConstruction      Status = "construction"
	StatusComplete          Status = "complete"

	// StatusWithdrawn is a terminal sentinel outside the normal order.
	StatusWithdrawn Status = "withdrawn"
)

// Stage describes one ordered step of the fixed workflow.
type Stage struct {
	Key            Status `json:"key"`
	Label          string `json:"label"`
	TimestampField string `json:"timestamp_field"`
	DefaultNote    string `json:"default_note"`
}

// Stages is the fixed, ordered workflow. Position in this slice is the only
// notion of stage priority.
var Stages = []Stage{
	{
		Key:            StatusSiteSelection,
		Label:          "Site Selection",
		TimestampField: "created_at",
		DefaultNote:    "Customer site survey scheduled with engineering team.",
	},
	{
		Key:            StatusSubmitted,
		Label:          "Application Submitted",
		TimestampField: "submitted_at",
		DefaultNote:    "Application has been submitted and is pending utility review.",
	},
	{
		Key:            StatusAgreementApproved,
		Label:          "Agreement Approved",
		TimestampField: "agreement_approved_at",
		DefaultNote:    "Interconnection agreement approved — awaiting construction scheduling.",
	},
	{
		Key:            StatusConstruction,
		Label:          "Construction & Installation",
		TimestampField: "construction_started_at",
		DefaultNote:    "Field technicians scheduled for witness test.",
	},
	{
		Key:            StatusComplete,
		Label:          "Complete",
		TimestampField: "completed_at",
		DefaultNote:    "System successfully interconnected to the grid.",
	},
}

// StageIndex returns the position of key in the ordered stage list. Unknown
// keys (including withdrawn) clamp to 0 so that callers rendering a timeline
// never index out of range; stored data drift is not a runtime fault here.
func StageIndex(key Status) int {
	for i, s := range Stages {
		if s.Key == key {
			return i
		}
	}
	return 0
}

// StageFor returns the stage for key, or ok=false for unknown keys.
func StageFor(key Status) (Stage, bool) {
	for _, s := range Stages {
		if s.Key == key {
			return s, true
		}
	}
	return Stage{}, false
}

// NextStage returns the stage immediately following key in order. ok is
// false when key is the last stage, withdrawn, or not a known stage key.
func NextStage(key Status) (Stage, bool) {
	for i, s := range Stages {
		if s.Key == key {
			if i+1 < len(Stages) {
				return Stages[i+1], true
			}
			return Stage{}, false
		}
	}
	return Stage{}, false
}

// TimestampField returns the application column an advance or date
// correction for key must write. Empty for unknown keys.
func TimestampField(key Status) string {
	if s, ok := StageFor(key); ok {
		return s.TimestampField
	}
	return ""
}

// DefaultNote returns the canned guidance text for key, empty when the key
// has none.
func DefaultNote(key Status) string {
	if s, ok := StageFor(key); ok {
		return s.DefaultNote
	}
	return ""
}

// DisplayLabel renders a stage the way every surface shows it, including
// history rows: a 1-based position plus the human label. History entries
// store only status keys and re-derive labels through this.
func DisplayLabel(key Status) string {
	s, ok := StageFor(key)
	if !ok {
		return string(key)
	}
	return fmt.Sprintf("Step %d: %s", StageIndex(key)+1, s.Label)
}

// IsTerminal reports whether no further advance is possible from key.
func IsTerminal(key Status) bool {
	return key == StatusComplete || key == StatusWithdrawn
}

// Known reports whether key is a stage key or the withdrawn sentinel.
func Known(key Status) bool {
	if key == StatusWithdrawn {
		return true
	}
	_, ok := StageFor(key)
	return ok
}
