package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/carebridge-dev/rota-manager/backend/internal/utils"
)

// GetHomeScheduleTemplate returns the home's weekly template, creating the
// default one (all days active, no patterns) on first access.
func (h *Handler) GetHomeScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	tpl, err := h.repository.GetWeeklyScheduleTemplateByHome(home.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			tpl = domain.NewDefaultWeeklyScheduleTemplate(home.ID)
			if err := h.repository.CreateWeeklyScheduleTemplate(tpl); err != nil {
				var pgErr *pgconn.PgError
				// a concurrent first access may have created it already
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

	h.successResponse(w, r, "schedule template fetched", tpl)
}

func (h *Handler) UpdateHomeScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	var req struct {
		Schedule [7]struct {
			IsActive bool `json:"isActive"`
			Shifts   []struct {
				ServiceID          int64  `json:"serviceID" validate:"required"`
				StartTime          string `json:"startTime" validate:"required"`
				EndTime            string `json:"endTime" validate:"required"`
				RequiredStaffCount int32  `json:"requiredStaffCount" validate:"required,gte=1"`
				ShiftType          string `json:"shiftType" validate:"required"`
				Notes              string `json:"notes"`
			} `json:"shifts" validate:"dive"`
		} `json:"schedule"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	tpl, err := h.repository.GetWeeklyScheduleTemplateByHome(home.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "schedule template not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	for day := range req.Schedule {
		schedule := domain.DaySchedule{
			IsActive: req.Schedule[day].IsActive,
			Shifts:   make([]domain.ShiftPattern, 0, len(req.Schedule[day].Shifts)),
		}

		for _, p := range req.Schedule[day].Shifts {
			start, err := domain.ParseTimeOfDay(p.StartTime)
			if err != nil {
				h.badRequest(w, r, err)
				return
			}
			end, err := domain.ParseTimeOfDay(p.EndTime)
			if err != nil {
				h.badRequest(w, r, err)
				return
			}

			schedule.Shifts = append(schedule.Shifts, domain.ShiftPattern{
				ServiceID:          p.ServiceID,
				StartTime:          start,
				EndTime:            end,
				RequiredStaffCount: p.RequiredStaffCount,
				ShiftType:          domain.ShiftType(p.ShiftType),
				Notes:              p.Notes,
			})
		}

		tpl.Schedule[day] = schedule
	}

	if err := utils.ValidateWeeklySchedule(tpl); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateWeeklyScheduleTemplate(tpl); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "schedule template updated", tpl)
}
