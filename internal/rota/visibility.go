package rota

import "github.com/carebridge-dev/rota-manager/backend/internal/domain"

// Caller identifies who is asking to see a set of shifts.
type Caller struct {
	UserID  int64
	Role    domain.Role
	HomeIDs []int64
}

func (c Caller) worksAt(homeID int64) bool {
	for _, id := range c.HomeIDs {
		if id == homeID {
			return true
		}
	}
	return false
}

type visibilityPredicate func(Caller, *domain.Shift) bool

// visibilityByRole is a closed dispatch table: admins and home managers see
// everything, senior staff see the rotas of their own homes, support workers
// see only shifts they are assigned to. A role missing from the table sees
// nothing.
var visibilityByRole = map[domain.Role]visibilityPredicate{
	domain.RoleAdmin:       func(Caller, *domain.Shift) bool { return true },
	domain.RoleHomeManager: func(Caller, *domain.Shift) bool { return true },
	domain.RoleSeniorStaff: func(c Caller, s *domain.Shift) bool { return c.worksAt(s.HomeID) },
	domain.RoleSupportWorker: func(c Caller, s *domain.Shift) bool {
		return s.IsAssigned(c.UserID)
	},
}

// VisibleShifts narrows shifts to those the caller is authorized to see.
// Pure and total: unknown roles yield an empty result, never an error.
func VisibleShifts(shifts []*domain.Shift, caller Caller) []*domain.Shift {
	visible := make([]*domain.Shift, 0, len(shifts))

	predicate, ok := visibilityByRole[caller.Role]
	if !ok {
		return visible
	}

	for _, s := range shifts {
		if predicate(caller, s) {
			visible = append(visible, s)
		}
	}
	return visible
}
