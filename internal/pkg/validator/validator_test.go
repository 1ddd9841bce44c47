package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"v4 lowercase", "11111111-1111-4111-8111-111111111111", true},
		{"v4 uppercase", "AAAAAAAA-AAAA-4AAA-8AAA-AAAAAAAAAAAA", true},
		{"v7", "01912d68-783e-7a03-8467-5661c1b0a223", true},
		{"missing dashes", "111111111111411181111111111111111111", false},
		{"too short", "1111-1111", false},
		{"bad variant", "11111111-1111-4111-c111-111111111111", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidUUID(tt.input))
		})
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)
	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2025-03-10T09:00:00Z")
	assert.True(t, ok)

	ts, ok := IsValidDateTime("2025-03-10T09:00:00+07:00")
	assert.True(t, ok)
	assert.Equal(t, 2, ts.UTC().Hour())

	_, ok = IsValidDateTime("2025-03-10 09:00:00")
	assert.False(t, ok)
	_, ok = IsValidDateTime("2025-03-10")
	assert.False(t, ok)
}

func TestIsValidTimeOfDay(t *testing.T) {
	ts, ok := IsValidTimeOfDay("09:30")
	assert.True(t, ok)
	assert.Equal(t, 9, ts.Hour())
	assert.Equal(t, 30, ts.Minute())

	_, ok = IsValidTimeOfDay("17:30:00")
	assert.True(t, ok)

	_, ok = IsValidTimeOfDay("25:00")
	assert.False(t, ok)
	_, ok = IsValidTimeOfDay("9am")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	assert.True(t, IsInSlice("b", []string{"a", "b"}))
	assert.False(t, IsInSlice("c", []string{"a", "b"}))
	assert.False(t, IsInSlice("a", nil))
}
