package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestMinutesOfDay(t *testing.T) {
	assert.Equal(t, 0, MinutesOfDay(at(0, 0)))
	assert.Equal(t, 9*60+30, MinutesOfDay(at(9, 30)))
	assert.Equal(t, 23*60+59, MinutesOfDay(at(23, 59)))
}

func TestClosest(t *testing.T) {
	catalog := []Shift{
		{ID: "morning", StartTime: at(9, 0)},
		{ID: "evening", StartTime: at(14, 0)},
		{ID: "night", StartTime: at(22, 0)},
	}

	tests := []struct {
		name   string
		checkIn time.Time
		want   string
	}{
		{"early morning", at(8, 45), "morning"},
		{"just past noon", at(12, 0), "morning"},
		{"afternoon", at(13, 0), "evening"},
		{"late night", at(23, 30), "night"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(catalog, tt.checkIn)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestClosest_TieKeepsEarlierEntry(t *testing.T) {
	catalog := []Shift{
		{ID: "a", StartTime: at(10, 0)},
		{ID: "b", StartTime: at(14, 0)},
	}

	// 12:00 is equidistant from both starts.
	got, ok := Closest(catalog, at(12, 0))
	assert.True(t, ok)
	assert.Equal(t, "a", got.ID)
}

func TestClosest_EmptyCatalog(t *testing.T) {
	_, ok := Closest(nil, at(9, 0))
	assert.False(t, ok)
}
