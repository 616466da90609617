package rota

import (
	"testing"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestVisibleShifts(t *testing.T) {
	jan5 := domain.NewDate(2024, 1, 5)

	shiftS := testShift(t, 1, jan5, "09:00", "17:00", 42)
	shiftS.HomeID = 1
	shiftT := testShift(t, 2, jan5, "14:00", "22:00", 99)
	shiftT.HomeID = 2
	shifts := []*domain.Shift{shiftS, shiftT}

	tests := []struct {
		name    string
		caller  Caller
		wantIDs []int64
	}{
		{
			name:    "admin sees everything",
			caller:  Caller{UserID: 7, Role: domain.RoleAdmin},
			wantIDs: []int64{1, 2},
		},
		{
			name:    "home manager sees everything",
			caller:  Caller{UserID: 7, Role: domain.RoleHomeManager},
			wantIDs: []int64{1, 2},
		},
		{
			name:    "senior staff sees only their homes",
			caller:  Caller{UserID: 7, Role: domain.RoleSeniorStaff, HomeIDs: []int64{2}},
			wantIDs: []int64{2},
		},
		{
			name:    "senior staff across both homes",
			caller:  Caller{UserID: 7, Role: domain.RoleSeniorStaff, HomeIDs: []int64{1, 2}},
			wantIDs: []int64{1, 2},
		},
		{
			name:    "support worker sees only self-assigned shifts",
			caller:  Caller{UserID: 42, Role: domain.RoleSupportWorker, HomeIDs: []int64{1, 2}},
			wantIDs: []int64{1},
		},
		{
			name:    "support worker with no assignments sees nothing",
			caller:  Caller{UserID: 7, Role: domain.RoleSupportWorker, HomeIDs: []int64{1}},
			wantIDs: []int64{},
		},
		{
			name:    "unknown role sees nothing",
			caller:  Caller{UserID: 7, Role: domain.Role("auditor")},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := VisibleShifts(shifts, tt.caller)
			gotIDs := make([]int64, 0, len(visible))
			for _, s := range visible {
				gotIDs = append(gotIDs, s.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}
