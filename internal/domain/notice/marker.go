// internal/domain/notice/marker.go
package notice

import (
	"fmt"
	"time"

	"expiry_reminder_bot/internal/domain/expiry"
)

// MarkerState is the per-run view of a stored marker.
type MarkerState int

const (
	// MarkerUnset means the stored text is empty.
	MarkerUnset MarkerState = iota
	// MarkerArmed means the marker is non-empty but belongs to an earlier expiry
	// cycle and is cleared by the re-arm rule.
	MarkerArmed
	// MarkerFired means the notice was already delivered for the current cycle.
	MarkerFired
)

// ReArmThreshold is the days-left value at and above which stale markers are cleared.
const ReArmThreshold = 6

// SentLabel prefixes every marker written after a notice is delivered.
const SentLabel = "Đã gửi"

// ClassifyMarker derives the marker state from its stored text and days left.
// Only emptiness of text is significant.
func ClassifyMarker(text string, daysLeft int) MarkerState {
	switch {
	case text == "":
		return MarkerUnset
	case daysLeft >= ReArmThreshold:
		return MarkerArmed
	default:
		return MarkerFired
	}
}

// Eligible reports whether a notice may be sent for a marker in this state.
func (s MarkerState) Eligible() bool {
	return s != MarkerFired
}

func (s MarkerState) String() string {
	switch s {
	case MarkerUnset:
		return "unset"
	case MarkerArmed:
		return "armed"
	case MarkerFired:
		return "fired"
	default:
		return fmt.Sprintf("MarkerState(%d)", int(s))
	}
}

// SentMarker is the text written back once a notice is delivered, e.g.
// "Đã gửi@20/05/2025 (2025-05-15T01:00:00Z)". It is never empty.
func SentMarker(exp expiry.CivilDate, sentAt time.Time) string {
	return fmt.Sprintf("%s@%s (%s)", SentLabel, exp.Format(), sentAt.UTC().Format(time.RFC3339))
}
