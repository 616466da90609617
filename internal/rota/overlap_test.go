package rota

import (
	"testing"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func interval(t *testing.T, date domain.Date, start, end string) ShiftInterval {
	t.Helper()
	return ShiftInterval{
		Date:         date,
		TimeInterval: TimeInterval{Start: mustTime(t, start), End: mustTime(t, end)},
	}
}

func TestOverlaps(t *testing.T) {
	jan1 := domain.NewDate(2024, 1, 1)
	jan2 := domain.NewDate(2024, 1, 2)

	tests := []struct {
		name string
		a    ShiftInterval
		b    ShiftInterval
		want bool
	}{
		{
			name: "same date plain overlap",
			a:    interval(t, jan1, "09:00", "17:00"),
			b:    interval(t, jan1, "14:00", "22:00"),
			want: true,
		},
		{
			name: "same date adjacent shifts do not overlap",
			a:    interval(t, jan1, "09:00", "17:00"),
			b:    interval(t, jan1, "17:00", "23:00"),
			want: false,
		},
		{
			name: "same date one contains the other",
			a:    interval(t, jan1, "08:00", "20:00"),
			b:    interval(t, jan1, "10:00", "12:00"),
			want: true,
		},
		{
			name: "night shift spillover hits next-day shift",
			a:    interval(t, jan1, "22:00", "02:00"),
			b:    interval(t, jan2, "01:00", "05:00"),
			want: true,
		},
		{
			name: "night shift spillover ends before next-day shift",
			a:    interval(t, jan1, "22:00", "02:00"),
			b:    interval(t, jan2, "02:00", "06:00"),
			want: false,
		},
		{
			name: "previous-day shift without wraparound never reaches next day",
			a:    interval(t, jan1, "09:00", "17:00"),
			b:    interval(t, jan2, "09:00", "17:00"),
			want: false,
		},
		{
			name: "two consecutive night shifts on adjacent dates",
			a:    interval(t, jan1, "22:00", "06:00"),
			b:    interval(t, jan2, "22:00", "06:00"),
			want: false,
		},
		{
			name: "night shift meets early start on adjacent date",
			a:    interval(t, jan1, "22:00", "06:00"),
			b:    interval(t, jan2, "05:00", "13:00"),
			want: true,
		},
		{
			name: "evening shift and next-day midnight-crossing shift are unrelated",
			a:    interval(t, jan1, "20:00", "23:00"),
			b:    interval(t, jan2, "22:00", "06:00"),
			want: false,
		},
		{
			name: "both cross midnight on the same date",
			a:    interval(t, jan1, "22:00", "06:00"),
			b:    interval(t, jan1, "23:00", "03:00"),
			want: true,
		},
		{
			name: "dates two apart never overlap",
			a:    interval(t, jan1, "22:00", "06:00"),
			b:    interval(t, domain.NewDate(2024, 1, 3), "01:00", "09:00"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// the predicate must be symmetric
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestOverlapping(t *testing.T) {
	jan1 := domain.NewDate(2024, 1, 1)
	jan2 := domain.NewDate(2024, 1, 2)

	candidate := interval(t, jan1, "22:00", "02:00")
	existing := []ShiftInterval{
		interval(t, jan1, "09:00", "17:00"),
		interval(t, jan1, "21:00", "23:00"),
		interval(t, jan2, "01:00", "05:00"),
		interval(t, jan2, "03:00", "07:00"),
	}

	hits := Overlapping(candidate, existing)
	assert.Len(t, hits, 2)
	assert.Equal(t, existing[1], hits[0])
	assert.Equal(t, existing[2], hits[1])
}

func TestFirstOverlappingShift(t *testing.T) {
	jan1 := domain.NewDate(2024, 1, 1)

	shifts := []*domain.Shift{
		{ID: 1, Date: jan1, StartTime: mustTime(t, "07:00"), EndTime: mustTime(t, "14:00"), IsActive: true},
		{ID: 2, Date: jan1, StartTime: mustTime(t, "14:00"), EndTime: mustTime(t, "22:00"), IsActive: true},
	}

	// clear of shift 1, collides with shift 2 only
	candidate := interval(t, jan1, "15:00", "20:00")

	t.Run("finds the colliding shift", func(t *testing.T) {
		hit := FirstOverlappingShift(candidate, shifts, 0)
		assert.NotNil(t, hit)
		assert.Equal(t, int64(2), hit.ID)
	})

	t.Run("a shift is never compared with itself", func(t *testing.T) {
		self := interval(t, jan1, "14:00", "22:00")
		hit := FirstOverlappingShift(self, shifts, 2)
		assert.Nil(t, hit)
	})

	t.Run("inactive shifts are ignored", func(t *testing.T) {
		shifts[1].IsActive = false
		defer func() { shifts[1].IsActive = true }()
		hit := FirstOverlappingShift(candidate, shifts, 0)
		assert.Nil(t, hit)
	})
}
