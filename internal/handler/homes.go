package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

func (h *Handler) GetAllHomes(w http.ResponseWriter, r *http.Request) {
	homes, err := h.repository.GetAllHomes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "homes fetched", homes)
}

func (h *Handler) CreateHome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	home := &domain.Home{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.repository.CreateHome(home); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "homes_name_key":
				h.errorResponse(w, r, "home name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "home created", home)
}

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)
	h.successResponse(w, r, "home fetched", home)
}

func (h *Handler) UpdateHome(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
		Phone   *string `json:"phone"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		home.Name = *req.Name
	}
	if req.Address != nil {
		home.Address = *req.Address
	}
	if req.Phone != nil {
		home.Phone = *req.Phone
	}

	if err := h.repository.UpdateHome(home); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "homes_name_key":
				h.errorResponse(w, r, "home name already exists")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "home updated", home)
}

func (h *Handler) DeleteHome(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	if err := h.repository.DeleteHome(home.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "home deleted", nil)
}

func (h *Handler) GetHomeServices(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	services, err := h.repository.GetServicesByHome(home.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "services fetched", services)
}

func (h *Handler) CreateHomeService(w http.ResponseWriter, r *http.Request) {
	home := r.Context().Value(HomeCtx).(*domain.Home)

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.Service{
		HomeID: home.ID,
		Name:   req.Name,
	}

	if err := h.repository.CreateService(service); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service created", service)
}

func (h *Handler) DeleteHomeService(w http.ResponseWriter, r *http.Request) {
	serviceIDParam := chi.URLParam(r, "serviceID")
	serviceID, err := strconv.ParseInt(serviceIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid service ID")
		return
	}

	if err := h.repository.DeleteService(serviceID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_service_id_fkey":
				h.errorResponse(w, r, "service has shifts and cannot be deleted")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "service deleted", nil)
}
