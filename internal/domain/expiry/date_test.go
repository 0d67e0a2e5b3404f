package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry_Accepted(t *testing.T) {
	tests := []struct {
		in   string
		want CivilDate
	}{
		{"5/3/2025", CivilDate{2025, time.March, 5}},
		{"05/03/2025", CivilDate{2025, time.March, 5}},
		{"  20/5/2025 ", CivilDate{2025, time.May, 20}},
		{"29/2/2024", CivilDate{2024, time.February, 29}},
		{"31/12/2025", CivilDate{2025, time.December, 31}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExpiry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpiry_Rejected(t *testing.T) {
	for _, in := range []string{
		"31-12-2025",
		"2025/05/20",
		"20/5/25",
		"20.5.2025",
		"",
		"abc",
		"20/5/2025 10:00",
		"123/5/2025",
		"31/2/2025",
		"29/2/2025",
		"0/5/2025",
		"5/13/2025",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseExpiry(in)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	tests := map[string]string{
		"5/3/2025":   "05/03/2025",
		"05/03/2025": "05/03/2025",
		"1/1/2030":   "01/01/2030",
		"20/11/2025": "20/11/2025",
	}
	for in, want := range tests {
		d, err := ParseExpiry(in)
		require.NoError(t, err)
		assert.Equal(t, want, d.Format())

		again, err := ParseExpiry(d.Format())
		require.NoError(t, err)
		assert.Equal(t, d, again)
	}
}

func TestToday_UsesUTCPlus7(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want CivilDate
	}{
		{"utc evening is next day", time.Date(2025, 5, 14, 17, 0, 0, 0, time.UTC), CivilDate{2025, time.May, 15}},
		{"utc just before rollover", time.Date(2025, 5, 14, 16, 59, 59, 0, time.UTC), CivilDate{2025, time.May, 14}},
		{"host zone ignored", time.Date(2025, 5, 15, 1, 0, 0, 0, time.FixedZone("X", -10*3600)), CivilDate{2025, time.May, 15}},
		{"year boundary", time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC), CivilDate{2026, time.January, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Today(tt.now))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to CivilDate
		want     int
	}{
		{"same day", CivilDate{2025, time.May, 15}, CivilDate{2025, time.May, 15}, 0},
		{"five days", CivilDate{2025, time.May, 15}, CivilDate{2025, time.May, 20}, 5},
		{"across month", CivilDate{2025, time.May, 30}, CivilDate{2025, time.June, 1}, 2},
		{"across leap day", CivilDate{2024, time.February, 28}, CivilDate{2024, time.March, 1}, 2},
		{"across year", CivilDate{2025, time.December, 31}, CivilDate{2026, time.January, 1}, 1},
		{"expired", CivilDate{2025, time.May, 20}, CivilDate{2025, time.May, 15}, -5},
		{"yesterday", CivilDate{2025, time.May, 20}, CivilDate{2025, time.May, 19}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestAddDays(t *testing.T) {
	d := CivilDate{2025, time.May, 30}
	assert.Equal(t, CivilDate{2025, time.June, 4}, d.AddDays(5))
	assert.Equal(t, CivilDate{2025, time.May, 29}, d.AddDays(-1))
	assert.Equal(t, 5, DaysBetween(d, d.AddDays(5)))
}
