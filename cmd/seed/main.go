package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/config"
	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/carebridge-dev/rota-manager/backend/internal/repository"
	"github.com/carebridge-dev/rota-manager/backend/internal/seed"
	"github.com/carebridge-dev/rota-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var homeID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random users, 2: insert random homes, 3: insert random schedule template, 4: insert random time-off requests, 5: seed full demo data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&homeID, "home-id", 0, "home to attach the schedule template or time-off requests to")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("could not create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, ping to check the connection
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("could not connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("number of users must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("could not generate user", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("could not insert user", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("inserted users", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("number of homes must be positive")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			home := utils.GenerateRandomHome()
			if err := repo.CreateHome(home); err != nil {
				slog.Error("could not insert home", slog.String("error", err.Error()))
				continue
			}

			service := utils.GenerateRandomService(home.ID)
			if err := repo.CreateService(service); err != nil {
				slog.Error("could not insert service", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("inserted homes", slog.Int("count", cnt))
	case 3:
		if homeID <= 0 {
			slog.Error("a valid -home-id is required")
			return
		}

		services, err := repo.GetServicesByHome(homeID)
		if err != nil {
			slog.Error("could not fetch home services", slog.String("error", err.Error()))
			return
		}
		if len(services) == 0 {
			slog.Error("home has no services, insert one first", slog.Int64("home_id", homeID))
			return
		}

		serviceIDs := make([]int64, len(services))
		for i, s := range services {
			serviceIDs[i] = s.ID
		}

		tpl := utils.GenerateRandomWeeklyScheduleTemplate(homeID, serviceIDs)
		if err := repo.CreateWeeklyScheduleTemplate(tpl); err != nil {
			slog.Error("could not insert schedule template", slog.String("error", err.Error()))
			return
		}

		slog.Info("inserted schedule template", slog.Int64("home_id", homeID))
	case 4:
		if n <= 0 {
			slog.Error("number of requests must be positive")
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("no users to request time off for")
			default:
				slog.Error("could not fetch users", slog.String("error", err.Error()))
			}
			return
		}
		if len(users) == 0 {
			slog.Error("no users to request time off for")
			return
		}

		weekStart := domain.DateOf(time.Now().AddDate(0, 0, 7))

		cnt := 0
		for i := 0; i < n; i++ {
			user := users[rand.Intn(len(users))]
			request := utils.GenerateRandomTimeOffRequest(user.ID, weekStart)
			if err := repo.CreateTimeOffRequest(request); err != nil {
				slog.Error("could not insert time-off request", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("inserted time-off requests", slog.Int("count", cnt))
	case 5:
		seed.SeedDemoData(repo, cfg)
	default:
		slog.Error("unknown operation")
	}
}
