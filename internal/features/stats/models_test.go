package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIDs(t *testing.T) {
	assert.Equal(t, "CH-007", FormatChatID(7))
	assert.Equal(t, "CH-1234", FormatChatID(1234))
	assert.Equal(t, "R-042", FormatComplaintID(42))
}

func TestGenderLabel(t *testing.T) {
	assert.Equal(t, "M ↔ F", GenderLabel("male", "female"))
	assert.Equal(t, "F ↔ F", GenderLabel("female", "female"))
	assert.Equal(t, "? ↔ M", GenderLabel("", "male"))
}

func TestChatView(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	started := now.Add(-(2*time.Hour + 5*time.Minute))

	v := chatView(3, started, now, "male", "female", 17)
	assert.Equal(t, "CH-003", v.ID)
	assert.Equal(t, "02:05", v.Duration)
	assert.Equal(t, "M ↔ F", v.Gender)
	assert.Equal(t, 17, v.Messages)
	assert.Equal(t, "active", v.Status)
}
