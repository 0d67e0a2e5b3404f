// internal/domain/notice/state_machine.go
package notice

// Decision is the outcome of evaluating one record.
type Decision struct {
	// Reset clears both markers before anything else happens.
	Reset bool
	// Notice is the notice to send, or KindNone.
	Notice Kind
	// Marker5 and Marker1 are the marker states after the reset was applied.
	Marker5 MarkerState
	Marker1 MarkerState
}

// Evaluate applies the reminder rules to one record:
//
//  1. daysLeft >= 6 with any marker set: clear both markers.
//  2. A non-empty marker with daysLeft < 6 is fired; otherwise it is eligible.
//  3. daysLeft == 5 with an eligible 5-day marker: send the 5-day notice.
//  4. daysLeft == 1 with an eligible 1-day marker: send the 1-day notice.
//
// Any other daysLeft, including negative values, sends nothing.
func Evaluate(daysLeft int, marker5, marker1 string) Decision {
	d := Decision{
		Marker5: ClassifyMarker(marker5, daysLeft),
		Marker1: ClassifyMarker(marker1, daysLeft),
	}

	if daysLeft >= ReArmThreshold && (marker5 != "" || marker1 != "") {
		d.Reset = true
		d.Marker5 = MarkerUnset
		d.Marker1 = MarkerUnset
	}

	switch {
	case daysLeft == KindFiveDay.DaysBefore() && d.Marker5.Eligible():
		d.Notice = KindFiveDay
	case daysLeft == KindOneDay.DaysBefore() && d.Marker1.Eligible():
		d.Notice = KindOneDay
	}
	return d
}

// Marker returns the post-reset state of the marker for k.
func (d Decision) Marker(k Kind) MarkerState {
	if k == KindOneDay {
		return d.Marker1
	}
	return d.Marker5
}
