package rota

import (
	"testing"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "day shift", start: "09:00", end: "17:00"},
		{name: "night shift crossing midnight", start: "22:00", end: "06:00"},
		{name: "malformed start", start: "9am", end: "17:00", wantErr: domain.ErrInvalidTimeFormat},
		{name: "hour out of range", start: "24:00", end: "17:00", wantErr: domain.ErrInvalidTimeFormat},
		{name: "minute out of range", start: "09:60", end: "17:00", wantErr: domain.ErrInvalidTimeFormat},
		{name: "missing separator", start: "0900", end: "17:00", wantErr: domain.ErrInvalidTimeFormat},
		{name: "equal start and end", start: "09:00", end: "09:00", wantErr: ErrZeroDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeInterval(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "standard day shift", start: "09:00", end: "17:00", want: 8},
		{name: "half hour granularity", start: "09:30", end: "13:00", want: 3.5},
		{name: "night shift wraps past midnight", start: "22:00", end: "06:00", want: 8},
		{name: "late evening into early morning", start: "23:30", end: "00:30", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := NewTimeInterval(tt.start, tt.end)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, iv.DurationHours(), 1e-9)
		})
	}
}

func TestPaidHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "short shift has no deduction", start: "09:00", end: "13:00", want: 4},
		{name: "eight hour shift loses half an hour", start: "09:00", end: "17:00", want: 7.5},
		{name: "twelve hour long day loses an hour", start: "08:00", end: "20:00", want: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := NewTimeInterval(tt.start, tt.end)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, iv.PaidHours(), 1e-9)
		})
	}
}

func TestIntervalOf(t *testing.T) {
	shift := &domain.Shift{
		Date:      domain.NewDate(2024, 1, 1),
		StartTime: mustTime(t, "22:00"),
		EndTime:   mustTime(t, "06:00"),
	}

	iv := IntervalOf(shift)
	assert.Equal(t, domain.NewDate(2024, 1, 1), iv.Date)
	assert.True(t, iv.CrossesMidnight())
	assert.InDelta(t, 8.0, iv.DurationHours(), 1e-9)
}

func mustTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	tod, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}
