package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 30, 45, 123, time.UTC)

	start := DayStart(at)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), start)

	end := DayEnd(at)
	assert.True(t, end.After(at))
	assert.Equal(t, "2026-03-15", DayKey(end))
}

func TestDayKeyGroupsSameCalendarDay(t *testing.T) {
	morning := time.Date(2026, 3, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, DayKey(morning), DayKey(night))
	assert.NotEqual(t, DayKey(morning), DayKey(night.Add(time.Second)))
}
