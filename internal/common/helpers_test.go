package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPluralizeMinutes(t *testing.T) {
	assert.Equal(t, "минута", PluralizeMinutes(1))
	assert.Equal(t, "минуты", PluralizeMinutes(3))
	assert.Equal(t, "минут", PluralizeMinutes(5))
	assert.Equal(t, "минут", PluralizeMinutes(11))
	assert.Equal(t, "минута", PluralizeMinutes(21))
	assert.Equal(t, "минут", PluralizeMinutes(114))
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "только что", FormatRelativeTime(now.Add(-30*time.Second), now))
	assert.Equal(t, "5 мин назад", FormatRelativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3 ч назад", FormatRelativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "вчера", FormatRelativeTime(now.Add(-30*time.Hour), now))
	assert.Equal(t, "01.06.2025", FormatRelativeTime(now.AddDate(0, 0, -9), now))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:59", FormatClock(59*time.Minute))
	assert.Equal(t, "02:05", FormatClock(2*time.Hour+5*time.Minute))
	// Отрицательная длительность не должна ломать формат
	assert.Equal(t, "00:00", FormatClock(-time.Minute))
}
