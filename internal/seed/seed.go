package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/config"
	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/carebridge-dev/rota-manager/backend/internal/repository"
	"github.com/carebridge-dev/rota-manager/backend/internal/utils"
)

const (
	demoHomes         = 2
	demoServicesEach  = 2
	demoStaffEachHome = 6
)

// SeedDemoData fills an empty database with a small but realistic estate: a
// couple of homes with services, weekly templates, staff spread across roles,
// and a few pending time-off requests. Meant for development environments.
func SeedDemoData(r *repository.Repository, cfg *config.Config) {
	weekStart := nextMonday(time.Now())

	for i := 0; i < demoHomes; i++ {
		home := utils.GenerateRandomHome()
		if err := r.CreateHome(home); err != nil {
			slog.Error("could not insert home", "error", err)
			continue
		}

		serviceIDs := make([]int64, 0, demoServicesEach)
		for j := 0; j < demoServicesEach; j++ {
			service := utils.GenerateRandomService(home.ID)
			if err := r.CreateService(service); err != nil {
				slog.Error("could not insert service", "home", home.Name, "error", err)
				continue
			}
			serviceIDs = append(serviceIDs, service.ID)
		}
		if len(serviceIDs) == 0 {
			slog.Error("home has no services, skipping template", "home", home.Name)
			continue
		}

		tpl := utils.GenerateRandomWeeklyScheduleTemplate(home.ID, serviceIDs)
		if err := r.CreateWeeklyScheduleTemplate(tpl); err != nil {
			slog.Error("could not insert schedule template", "home", home.Name, "error", err)
		}

		staffInserted := 0
		for j := 0; j < demoStaffEachHome; j++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("could not generate user", "error", err)
				continue
			}
			user.HomeIDs = []int64{home.ID}

			if err := r.CreateUser(user); err != nil {
				slog.Error("could not insert user", "error", err)
				continue
			}
			staffInserted++

			// roughly one in three staff members asks for leave next week
			if rand.Intn(3) == 0 {
				request := utils.GenerateRandomTimeOffRequest(user.ID, domain.DateOf(weekStart))
				if err := r.CreateTimeOffRequest(request); err != nil {
					slog.Error("could not insert time-off request", "error", err)
				}
			}
		}

		slog.Info("seeded home", "home", home.Name, "services", len(serviceIDs), "staff", staffInserted)
	}
}

func nextMonday(t time.Time) time.Time {
	daysAhead := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	return t.AddDate(0, 0, daysAhead)
}
