package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateWeekdayMondayFirst(t *testing.T) {
	tests := []struct {
		date string
		want Weekday
	}{
		{"2024-01-01", Monday},
		{"2024-01-04", Thursday},
		{"2024-01-06", Saturday},
		{"2024-01-07", Sunday},
	}

	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.Weekday(), tt.date)
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2024, time.January, 31)
	assert.Equal(t, NewDate(2024, time.February, 1), d.AddDays(1))
	assert.Equal(t, NewDate(2024, time.January, 30), d.AddDays(-1))

	// leap day
	assert.Equal(t, NewDate(2024, time.February, 29), NewDate(2024, time.February, 28).AddDays(1))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "01-01-2024", "2024/01/01", "2024-13-01", "today"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}
