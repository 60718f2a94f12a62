package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	night := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, night))
	assert.False(t, SameCalendarDay(night, nextDay))

	// different zones, same UTC day
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*3600)
	localEvening := time.Date(2026, 3, 15, 20, 0, 0, 0, saoPaulo) // 23:00 UTC
	assert.True(t, SameCalendarDay(localEvening, morning))

	// local day differs from UTC day
	localLate := time.Date(2026, 3, 15, 22, 0, 0, 0, saoPaulo) // 01:00 UTC next day
	assert.False(t, SameCalendarDay(localLate, morning))
}

func TestTruncateToDay(t *testing.T) {
	ts := time.Date(2026, 3, 15, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), TruncateToDay(ts))
}
