package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptsKnownLayouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"display form", "15 October 2024"},
		{"date input form", "2024-10-15"},
		{"rfc3339", "2024-10-15T09:30:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.value)
			require.NoError(t, err)
			assert.Equal(t, 2024, got.Year())
			assert.Equal(t, time.October, got.Month())
			assert.Equal(t, 15, got.Day())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not a date")
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	d := time.Date(2024, time.October, 15, 14, 30, 0, 0, time.Local)
	assert.Equal(t, "15 October 2024", Display(d))
}

func TestSameCalendarDayBucketing(t *testing.T) {
	now := time.Date(2024, time.October, 15, 16, 45, 0, 0, time.Local)

	assert.True(t, SameCalendarDay("15 October 2024", now))
	assert.True(t, SameCalendarDay("2024-10-15", now))
	assert.False(t, SameCalendarDay("16 October 2024", now))
	assert.False(t, SameCalendarDay("14 October 2024", now))
	assert.False(t, SameCalendarDay("garbage", now))

	tomorrow := Tomorrow(now)
	assert.True(t, SameCalendarDay("16 October 2024", tomorrow))
	assert.False(t, SameCalendarDay("15 October 2024", tomorrow))
}

func TestIsUpcomingUsesMidnightCutoff(t *testing.T) {
	now := time.Date(2024, time.October, 15, 23, 59, 0, 0, time.Local)

	assert.True(t, IsUpcoming("15 October 2024", now), "today stays upcoming even late in the day")
	assert.True(t, IsUpcoming("2024-10-16", now))
	assert.False(t, IsUpcoming("14 October 2024", now))
	assert.False(t, IsUpcoming("garbage", now))
}

func TestUntilMidnight(t *testing.T) {
	now := time.Date(2024, time.October, 15, 23, 0, 0, 0, time.Local)
	assert.Equal(t, time.Hour, UntilMidnight(now))

	startOfDay := time.Date(2024, time.October, 15, 0, 0, 0, 0, time.Local)
	assert.Equal(t, 24*time.Hour, UntilMidnight(startOfDay))
}
