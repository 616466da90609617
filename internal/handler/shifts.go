package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/carebridge-dev/rota-manager/backend/internal/rota"
)

// parseDateRange reads the from/to query parameters, both required.
func parseDateRange(r *http.Request) (domain.Date, domain.Date, error) {
	from, err := domain.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	to, err := domain.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	if to.Before(from) {
		return domain.Date{}, domain.Date{}, errors.New("to must not be before from")
	}
	return from, to, nil
}

// GetHomeShifts returns a home's shifts in a date range, narrowed by the
// caller's role before anything leaves the server.
func (h *Handler) GetHomeShifts(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	userID, role, err := h.caller(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user, err := h.repository.GetUserByID(userID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsByHomeAndDateRange(home.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	visible := rota.VisibleShifts(shifts, rota.Caller{
		UserID:  userID,
		Role:    role,
		HomeIDs: user.HomeIDs,
	})

	h.successResponse(w, r, "shifts fetched", visible)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomeID             int64  `json:"homeID" validate:"required"`
		ServiceID          int64  `json:"serviceID" validate:"required"`
		Date               string `json:"date" validate:"required"`
		StartTime          string `json:"startTime" validate:"required"`
		EndTime            string `json:"endTime" validate:"required"`
		RequiredStaffCount int32  `json:"requiredStaffCount" validate:"required,gte=1"`
		ShiftType          string `json:"shiftType" validate:"required"`
		Notes              string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	interval, err := rota.NewTimeInterval(req.StartTime, req.EndTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		HomeID:             req.HomeID,
		ServiceID:          req.ServiceID,
		Date:               date,
		StartTime:          interval.Start,
		EndTime:            interval.End,
		RequiredStaffCount: req.RequiredStaffCount,
		ShiftType:          domain.ShiftType(req.ShiftType),
		Notes:              req.Notes,
		AssignedStaff:      []domain.StaffAssignment{},
		IsActive:           true,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_home_id_fkey":
				h.errorResponse(w, r, "home does not exist")
			case "shifts_service_id_fkey":
				h.errorResponse(w, r, "service does not exist")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift created", shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, "shift fetched", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		ServiceID          *int64  `json:"serviceID"`
		Date               *string `json:"date"`
		StartTime          *string `json:"startTime"`
		EndTime            *string `json:"endTime"`
		RequiredStaffCount *int32  `json:"requiredStaffCount" validate:"omitempty,gte=1"`
		ShiftType          *string `json:"shiftType"`
		Notes              *string `json:"notes"`
		IsActive           *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.ServiceID != nil {
		shift.ServiceID = *req.ServiceID
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.Date = date
	}
	if req.StartTime != nil {
		start, err := domain.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.StartTime = start
	}
	if req.EndTime != nil {
		end, err := domain.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.EndTime = end
	}
	if shift.StartTime == shift.EndTime {
		h.badRequest(w, r, rota.ErrZeroDuration)
		return
	}
	if req.RequiredStaffCount != nil {
		shift.RequiredStaffCount = *req.RequiredStaffCount
	}
	if req.ShiftType != nil {
		shift.ShiftType = domain.ShiftType(*req.ShiftType)
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}
	if req.IsActive != nil {
		shift.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "shift updated", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift deleted", nil)
}

// AssignStaff runs the evaluate-then-commit sequence under a redis lock keyed
// by (home, date, user), so two near-simultaneous assignments cannot both pass
// evaluation against stale state.
func (h *Handler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		UserID int64 `json:"userID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.repository.GetUserByID(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !user.IsActive {
		h.errorResponse(w, r, "staff member has left and cannot be assigned")
		return
	}

	lockKey := fmt.Sprintf("assign_lock_%d_%s_%d", shift.HomeID, shift.Date, user.ID)
	lockTTL := time.Duration(h.config.Rota.AssignLockTTL) * time.Second

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	locked, err := h.redisClient.SetNX(ctx, lockKey, "1", lockTTL).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "another assignment for this staff member is in progress, please retry")
		return
	}
	defer func() {
		_ = h.redisClient.Del(context.Background(), lockKey).Err()
	}()

	// re-fetch under the lock so evaluation never runs on stale state
	current, err := h.repository.GetShiftByID(shift.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !current.IsActive {
		h.errorResponse(w, r, "shift is no longer active")
		return
	}
	if current.IsAssigned(user.ID) {
		h.errorResponse(w, r, "staff member is already assigned to this shift")
		return
	}

	result, err := h.evaluateAssignment(current, user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if result.HasConflict() {
		h.conflictResponse(w, r, result)
		return
	}

	assignment, err := h.repository.AssignStaff(current.ID, user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shift_assignments_pkey":
				h.errorResponse(w, r, "staff member is already assigned to this shift")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	current.AssignedStaff = append(current.AssignedStaff, *assignment)

	home, err := h.repository.GetHomeByID(current.HomeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "shift_assigned",
		To:   user.Email,
		Data: domain.AssignmentMailData{
			FullName:  user.FullName,
			HomeName:  home.Name,
			Date:      current.Date.String(),
			StartTime: current.StartTime.String(),
			EndTime:   current.EndTime.String(),
			ShiftType: string(current.ShiftType),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff assigned", current)
}

// evaluateAssignment fetches the evaluation context and runs the shared
// conflict check. The background conflict scan uses the same path.
func (h *Handler) evaluateAssignment(shift *domain.Shift, userID int64) (domain.ConflictResult, error) {
	timeOff, err := h.repository.GetApprovedTimeOff(userID, shift.Date, shift.Date)
	if err != nil {
		return domain.ConflictResult{}, err
	}

	userShifts, err := h.repository.GetShiftsForUser(userID, shift.Date.AddDays(-1), shift.Date.AddDays(1))
	if err != nil {
		return domain.ConflictResult{}, err
	}

	return rota.EvaluateAssignment(shift, userID, rota.EvaluationContext{
		ApprovedTimeOff: timeOff,
		UserShifts:      userShifts,
		DailyHourLimit:  h.config.Rota.DailyHourLimit,
	}), nil
}

func (h *Handler) UnassignStaff(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	userIDParam := chi.URLParam(r, "userID")
	userID, err := strconv.ParseInt(userIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid user ID")
		return
	}

	if err := h.repository.UnassignStaff(shift.ID, userID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "staff member is not assigned to this shift")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "staff unassigned", nil)
}

// MaterializeWeek expands the home's weekly template for the requested week
// and persists the shifts that do not exist yet. Safe to call repeatedly: it
// only ever fills gaps.
func (h *Handler) MaterializeWeek(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	var req struct {
		WeekStart string `json:"weekStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStart, err := domain.ParseDate(req.WeekStart)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// a home without a template gets the empty default, same as first access
	// to the schedule page; materializing it creates no shifts
	tpl, err := h.repository.GetWeeklyScheduleTemplateByHome(home.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			tpl = domain.NewDefaultWeeklyScheduleTemplate(home.ID)
			if err := h.repository.CreateWeeklyScheduleTemplate(tpl); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.ConstraintName == "weekly_schedule_templates_home_id_key" {
					tpl, err = h.repository.GetWeeklyScheduleTemplateByHome(home.ID)
					if err != nil {
						h.internalServerError(w, r, err)
						return
					}
				} else {
					h.internalServerError(w, r, err)
					return
				}
			}
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	existing, err := h.repository.GetShiftsByHomeAndDateRange(home.ID, weekStart, weekStart.AddDays(6))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	candidates := rota.Materialize(tpl, weekStart)
	missing := rota.WithoutExisting(candidates, existing)
	results := h.repository.PersistShifts(missing)

	created := make([]*domain.Shift, 0, len(results))
	failures := make([]string, 0)
	for _, res := range results {
		if res.Err != nil {
			h.logInternalServerError(r, res.Err)
			failures = append(failures, fmt.Sprintf("shift on %s %s-%s: %v", res.Shift.Date, res.Shift.StartTime, res.Shift.EndTime, res.Err))
			continue
		}
		created = append(created, res.Shift)
	}

	h.successResponse(w, r, fmt.Sprintf("created %d of %d missing shifts (%d already existed)", len(created), len(missing), len(candidates)-len(missing)), map[string]any{
		"created":  created,
		"failures": failures,
		"skipped":  len(candidates) - len(missing),
	})
}

// ShiftConflict is one entry of the background conflict report.
type ShiftConflict struct {
	ShiftID  int64                 `json:"shiftID"`
	UserID   int64                 `json:"userID"`
	Conflict domain.ConflictResult `json:"conflict"`
}

// GetHomeConflicts scans every assignment in the range with the same
// evaluation the assignment path uses. Read-only, safe to poll.
func (h *Handler) GetHomeConflicts(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsByHomeAndDateRange(home.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	conflicts := make([]ShiftConflict, 0)
	for _, shift := range shifts {
		if !shift.IsActive {
			continue
		}
		for _, assignment := range shift.AssignedStaff {
			result, err := h.evaluateAssignment(shift, assignment.UserID)
			if err != nil {
				h.internalServerError(w, r, err)
				return
			}
			if result.HasConflict() {
				conflicts = append(conflicts, ShiftConflict{
					ShiftID:  shift.ID,
					UserID:   assignment.UserID,
					Conflict: result,
				})
			}
		}
	}

	h.successResponse(w, r, "conflict scan finished", conflicts)
}

// CheckOverlap answers whether a candidate interval would collide with any
// existing shift of the home around the given date.
func (h *Handler) CheckOverlap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomeID         int64  `json:"homeID" validate:"required"`
		Date           string `json:"date" validate:"required"`
		StartTime      string `json:"startTime" validate:"required"`
		EndTime        string `json:"endTime" validate:"required"`
		ExcludeShiftID int64  `json:"excludeShiftID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	interval, err := rota.NewTimeInterval(req.StartTime, req.EndTime)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// a day either side catches midnight-crossing neighbours
	shifts, err := h.repository.GetShiftsByHomeAndDateRange(req.HomeID, date.AddDays(-1), date.AddDays(1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	candidate := rota.ShiftInterval{Date: date, TimeInterval: interval}
	conflicting := rota.FirstOverlappingShift(candidate, shifts, req.ExcludeShiftID)

	h.successResponse(w, r, "overlap check finished", map[string]any{
		"overlaps":         conflicting != nil,
		"conflictingShift": conflicting,
	})
}
