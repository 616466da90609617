package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

func (h *Handler) GetPendingTimeOff(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repository.GetTimeOffByStatus(domain.TimeOffPending)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pending time-off requests fetched", requests)
}

// DecideTimeOff approves or rejects a pending request and notifies the
// requester by email.
func (h *Handler) DecideTimeOff(w http.ResponseWriter, r *http.Request) {
	request := r.Context().Value(TimeOffCtx).(*domain.TimeOffRequest)

	var req struct {
		Status string `json:"status" validate:"required,oneof=approved rejected"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if request.Status != domain.TimeOffPending {
		h.errorResponse(w, r, "time-off request has already been decided")
		return
	}

	request.Status = domain.TimeOffStatus(req.Status)

	if err := h.repository.UpdateTimeOffStatus(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	user, err := h.repository.GetUserByID(request.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "time_off_decision",
		To:   user.Email,
		Data: domain.TimeOffDecisionMailData{
			FullName:  user.FullName,
			StartDate: request.StartDate.String(),
			EndDate:   request.EndDate.String(),
			Status:    string(request.Status),
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "time-off request decided", request)
}
