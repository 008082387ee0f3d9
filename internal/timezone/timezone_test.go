package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))

	loc := Location("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", loc.String())
	assert.True(t, IsValid("Europe/Lisbon"))
	assert.False(t, IsValid("nope"))
}

func TestLocationFixedOffset(t *testing.T) {
	cases := map[string]int{
		"+02:00": 2 * 3600,
		"-03:00": -3 * 3600,
		"+0530":  5*3600 + 30*60,
	}
	for tz, want := range cases {
		_, offset := time.Date(2026, 3, 9, 10, 0, 0, 0, Location(tz)).Zone()
		assert.Equal(t, want, offset, tz)
		assert.True(t, IsValid(tz), tz)
	}

	assert.False(t, IsValid("+25:00"))
	assert.Equal(t, time.UTC, Location("+2"))
}
