package rota

import (
	"testing"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(t *testing.T) *domain.WeeklyScheduleTemplate {
	t.Helper()

	tpl := domain.NewDefaultWeeklyScheduleTemplate(7)
	earlyShift := domain.ShiftPattern{
		ServiceID:          3,
		StartTime:          mustTime(t, "07:00"),
		EndTime:            mustTime(t, "15:00"),
		RequiredStaffCount: 2,
		ShiftType:          domain.ShiftTypeMorning,
	}
	nightShift := domain.ShiftPattern{
		ServiceID:          3,
		StartTime:          mustTime(t, "20:00"),
		EndTime:            mustTime(t, "08:00"),
		RequiredStaffCount: 1,
		ShiftType:          domain.ShiftTypeNight,
	}

	for day := range tpl.Schedule {
		tpl.Schedule[day].Shifts = []domain.ShiftPattern{earlyShift, nightShift}
	}
	// home closed at weekends
	tpl.Schedule[domain.Saturday].IsActive = false
	tpl.Schedule[domain.Sunday].IsActive = false

	return tpl
}

func TestMaterialize(t *testing.T) {
	tpl := testTemplate(t)
	weekStart := domain.NewDate(2024, 1, 1) // a Monday

	shifts := Materialize(tpl, weekStart)

	// 5 active days x 2 patterns
	require.Len(t, shifts, 10)

	for _, s := range shifts {
		assert.Equal(t, int64(7), s.HomeID)
		assert.Equal(t, int64(3), s.ServiceID)
		assert.Empty(t, s.AssignedStaff)
		assert.True(t, s.IsActive)
		assert.NotEqual(t, domain.Saturday, s.Date.Weekday())
		assert.NotEqual(t, domain.Sunday, s.Date.Weekday())
	}

	assert.Equal(t, weekStart, shifts[0].Date)
	assert.Equal(t, weekStart.AddDays(4), shifts[len(shifts)-1].Date)
}

func TestMaterializeWeekStartingMidweek(t *testing.T) {
	tpl := testTemplate(t)
	weekStart := domain.NewDate(2024, 1, 4) // a Thursday

	shifts := Materialize(tpl, weekStart)

	// Thu, Fri, Mon, Tue, Wed active; Sat and Sun skipped
	require.Len(t, shifts, 10)
	assert.Equal(t, domain.Thursday, shifts[0].Date.Weekday())
}

func TestMaterializeEmptyTemplate(t *testing.T) {
	tpl := domain.NewDefaultWeeklyScheduleTemplate(7)
	shifts := Materialize(tpl, domain.NewDate(2024, 1, 1))
	assert.Empty(t, shifts)
}

func TestWithoutExistingMakesMaterializeIdempotent(t *testing.T) {
	tpl := testTemplate(t)
	weekStart := domain.NewDate(2024, 1, 1)

	first := Materialize(tpl, weekStart)
	require.Len(t, WithoutExisting(first, nil), len(first))

	// a second run against what was "persisted" yields nothing new
	second := Materialize(tpl, weekStart)
	assert.Empty(t, WithoutExisting(second, first))
}

func TestWithoutExistingFillsGapsOnly(t *testing.T) {
	tpl := testTemplate(t)
	weekStart := domain.NewDate(2024, 1, 1)

	candidates := Materialize(tpl, weekStart)
	// pretend persistence failed for two shifts on the first run
	persisted := candidates[:len(candidates)-2]

	missing := WithoutExisting(Materialize(tpl, weekStart), persisted)
	require.Len(t, missing, 2)
	assert.Equal(t, candidates[len(candidates)-2].Date, missing[0].Date)
	assert.Equal(t, candidates[len(candidates)-1].StartTime, missing[1].StartTime)
}
