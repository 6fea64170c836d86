package missionday

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestOfRollsOverAtMidnightUTCPlus7(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want civil.Date
	}{
		{"just before local midnight", time.Date(2024, 3, 10, 16, 59, 59, 0, time.UTC), civil.Date{Year: 2024, Month: 3, Day: 10}},
		{"local midnight", time.Date(2024, 3, 10, 17, 0, 0, 0, time.UTC), civil.Date{Year: 2024, Month: 3, Day: 11}},
		{"utc morning", time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC), civil.Date{Year: 2024, Month: 3, Day: 10}},
		{"other zone", time.Date(2024, 3, 10, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)), civil.Date{Year: 2024, Month: 3, Day: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(tt.at))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "05 Jan 2024", Label(civil.Date{Year: 2024, Month: 1, Day: 5}))
}

func TestNextAt(t *testing.T) {
	now := time.Date(2024, 3, 10, 16, 0, 0, 0, time.UTC) // 23:00 local
	next := NextAt(now, 0, 5)
	assert.True(t, next.Equal(time.Date(2024, 3, 10, 17, 5, 0, 0, time.UTC)))

	now = time.Date(2024, 3, 10, 17, 5, 0, 0, time.UTC) // exactly 00:05 local
	next = NextAt(now, 0, 5)
	assert.True(t, next.Equal(time.Date(2024, 3, 11, 17, 5, 0, 0, time.UTC)))
}
