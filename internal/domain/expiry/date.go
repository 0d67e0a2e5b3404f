// internal/domain/expiry/date.go
package expiry

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidFormat is returned when an expiry cell is not a D/M/YYYY date.
var ErrInvalidFormat = errors.New("expiry date is not in DD/MM/YYYY format")

// Zone is the civil timezone all dates are anchored to (UTC+7, no daylight saving).
var Zone = time.FixedZone("UTC+7", 7*60*60)

var expiryRe = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*$`)

// CivilDate is a calendar date with no time of day.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseExpiry parses D/M/YYYY or DD/MM/YYYY. Dates that do not exist on the
// calendar (31/2/2025) are rejected.
func ParseExpiry(text string) (CivilDate, error) {
	m := expiryRe.FindStringSubmatch(text)
	if m == nil {
		return CivilDate{}, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	d := CivilDate{Year: year, Month: time.Month(month), Day: day}
	t := d.midnight()
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return CivilDate{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidFormat, text)
	}
	return d, nil
}

// Today returns the civil date of now in Zone, regardless of the process timezone.
func Today(now time.Time) CivilDate {
	return DateOf(now.In(Zone))
}

// DateOf takes the calendar fields of t in its own location.
func DateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// DaysBetween counts whole calendar days from from to to. It is negative when
// to precedes from.
func DaysBetween(from, to CivilDate) int {
	return int(to.midnight().Sub(from.midnight()) / (24 * time.Hour))
}

// AddDays returns the date n calendar days after d.
func (d CivilDate) AddDays(n int) CivilDate {
	return DateOf(d.midnight().AddDate(0, 0, n))
}

// Format renders DD/MM/YYYY, zero-padded.
func (d CivilDate) Format() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

func (d CivilDate) String() string {
	return d.Format()
}

// midnight is computed in UTC so the subtraction never crosses a DST change.
func (d CivilDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
