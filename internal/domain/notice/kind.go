// internal/domain/notice/kind.go
package notice

import "expiry_reminder_bot/internal/domain/registry"

// Kind identifies which reminder threshold a notice belongs to.
type Kind string

const (
	KindNone    Kind = ""
	KindFiveDay Kind = "5D"
	KindOneDay  Kind = "1D"
)

// Kinds lists the notice kinds in evaluation order.
var Kinds = []Kind{KindFiveDay, KindOneDay}

// DaysBefore is the exact days-left value on which the notice fires.
func (k Kind) DaysBefore() int {
	switch k {
	case KindFiveDay:
		return 5
	case KindOneDay:
		return 1
	default:
		return -1
	}
}

// MarkerField is the registry column recording that this notice was sent.
func (k Kind) MarkerField() registry.Field {
	if k == KindOneDay {
		return registry.FieldMarker1
	}
	return registry.FieldMarker5
}
