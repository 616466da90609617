package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/carebridge-dev/rota-manager/backend/internal/rota"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "profile fetched", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errorResponse(w, r, "wrong current password")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(myInfo); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "could not update password, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "password updated", nil)
}

// MyShift augments a shift with its worked and paid hours. Paid hours carry
// the unpaid-break deduction for long shifts.
type MyShift struct {
	*domain.Shift
	DurationHours float64 `json:"durationHours"`
	PaidHours     float64 `json:"paidHours"`
}

// GetMyShifts returns the caller's assigned shifts for a date range.
func (h *Handler) GetMyShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	from, to, err := parseDateRange(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shifts, err := h.repository.GetShiftsForUser(myInfo.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myShifts := make([]MyShift, 0, len(shifts))
	for _, s := range shifts {
		interval := rota.IntervalOf(s)
		myShifts = append(myShifts, MyShift{
			Shift:         s,
			DurationHours: interval.DurationHours(),
			PaidHours:     interval.PaidHours(),
		})
	}

	h.successResponse(w, r, "shifts fetched", myShifts)
}

func (h *Handler) GetMyTimeOff(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	requests, err := h.repository.GetTimeOffForUser(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "time-off requests fetched", requests)
}

func (h *Handler) CreateTimeOffRequest(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Reason    string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := domain.ParseDate(req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	endDate, err := domain.ParseDate(req.EndDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	if endDate.Before(startDate) {
		h.errorResponse(w, r, "end date must not be before start date")
		return
	}

	request := &domain.TimeOffRequest{
		UserID:    myInfo.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    domain.TimeOffPending,
		Reason:    req.Reason,
	}

	if err := h.repository.CreateTimeOffRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "time-off request submitted", request)
}
