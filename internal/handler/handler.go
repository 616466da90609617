package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/carebridge-dev/rota-manager/backend/internal/config"
	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/carebridge-dev/rota-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

var managerRoles = []domain.Role{domain.RoleAdmin, domain.RoleHomeManager}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Get("/shifts", h.GetMyShifts)
			r.Get("/time-off", h.GetMyTimeOff)
			r.Post("/time-off", h.CreateTimeOffRequest)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/homes", func(r chi.Router) {
			r.Get("/", h.GetAllHomes)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateHome)
			r.Route("/{homeID}", func(r chi.Router) {
				r.Use(h.homeInfo)
				r.Get("/", h.GetHome)
				r.With(h.RequiredRole(managerRoles)).Patch("/", h.UpdateHome)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteHome)

				r.Route("/services", func(r chi.Router) {
					r.Get("/", h.GetHomeServices)
					r.With(h.RequiredRole(managerRoles)).Post("/", h.CreateHomeService)
					r.With(h.RequiredRole(managerRoles)).Delete("/{serviceID}", h.DeleteHomeService)
				})

				r.Route("/schedule-template", func(r chi.Router) {
					r.Get("/", h.GetHomeScheduleTemplate)
					r.With(h.RequiredRole(managerRoles)).Put("/", h.UpdateHomeScheduleTemplate)
				})

				r.Route("/rota", func(r chi.Router) {
					r.Get("/shifts", h.GetHomeShifts)
					r.With(h.RequiredRole(managerRoles)).Post("/materialize", h.MaterializeWeek)
					r.With(h.RequiredRole(managerRoles)).Get("/conflicts", h.GetHomeConflicts)
				})
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.With(h.RequiredRole(managerRoles)).Post("/", h.CreateShift)
			r.Route("/{shiftID}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.Get("/", h.GetShift)
				r.With(h.RequiredRole(managerRoles)).Patch("/", h.UpdateShift)
				r.With(h.RequiredRole(managerRoles)).Delete("/", h.DeleteShift)
				r.Route("/assignments", func(r chi.Router) {
					r.Use(h.RequiredRole(managerRoles))
					r.Post("/", h.AssignStaff)
					r.Delete("/{userID}", h.UnassignStaff)
				})
			})
		})

		r.Route("/rota", func(r chi.Router) {
			r.Post("/check-overlap", h.CheckOverlap)
		})

		r.Route("/time-off", func(r chi.Router) {
			r.Use(h.RequiredRole(managerRoles))
			r.Get("/pending", h.GetPendingTimeOff)
			r.With(h.timeOffInfo).Patch("/{requestID}", h.DecideTimeOff)
		})
	})
}
