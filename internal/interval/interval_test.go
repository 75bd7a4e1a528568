package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"touching boundary", "09:00", "10:00", "10:00", "11:00", false},
		{"touching boundary reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("09:00", "12:00", "10:00", "11:00"))
	assert.True(t, Contains("09:00", "12:00", "09:00", "12:00"))
	// Start inside the window but end past it.
	assert.False(t, Contains("09:00", "12:00", "11:30", "12:30"))
	assert.False(t, Contains("09:00", "12:00", "08:30", "10:00"))
}

func TestOverlapsAt(t *testing.T) {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	hour := time.Hour

	assert.True(t, OverlapsAt(base, base.Add(hour), base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.False(t, OverlapsAt(base, base.Add(hour), base.Add(hour), base.Add(2*hour)))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "09:05", Clock(time.Date(2025, 6, 1, 9, 5, 0, 0, time.UTC)))
}

func TestParseClock(t *testing.T) {
	assert.NoError(t, ParseClock("00:00"))
	assert.NoError(t, ParseClock("23:59"))
	assert.Error(t, ParseClock("9:00"))
	assert.Error(t, ParseClock("24:00"))
	assert.Error(t, ParseClock("09:60"))
	assert.Error(t, ParseClock("0900"))
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("MONDAY")
	assert.NoError(t, err)
	assert.Equal(t, Monday, day)

	day, err = ParseWeekday("SUNDAY")
	assert.NoError(t, err)
	assert.Equal(t, Sunday, day)

	_, err = ParseWeekday("monday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	_, err = ParseWeekday("FUNDAY")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-02 is a Monday, 2025-06-01 a Sunday.
	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)))
}
