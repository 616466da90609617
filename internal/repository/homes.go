package repository

import (
	"context"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

func (r *Repository) GetAllHomes() ([]*domain.Home, error) {
	query := `
		SELECT id, name, address, phone, created_at, version FROM homes ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	homes := []*domain.Home{}
	for rows.Next() {
		var home domain.Home
		dst := []any{&home.ID, &home.Name, &home.Address, &home.Phone, &home.CreatedAt, &home.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		homes = append(homes, &home)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return homes, nil
}

func (r *Repository) GetHomeByID(id int64) (*domain.Home, error) {
	query := `
		SELECT name, address, phone, created_at, version FROM homes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	home := &domain.Home{
		ID: id,
	}

	dst := []any{&home.Name, &home.Address, &home.Phone, &home.CreatedAt, &home.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return home, nil
}

func (r *Repository) CreateHome(home *domain.Home) error {
	query := `
		INSERT INTO homes (name, address, phone)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{home.Name, home.Address, home.Phone}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&home.ID, &home.CreatedAt, &home.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateHome(home *domain.Home) error {
	query := `
		UPDATE homes
		SET
			name = $1,
			address = $2,
			phone = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{home.Name, home.Address, home.Phone, home.ID, home.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&home.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteHome(id int64) error {
	query := `
		DELETE FROM homes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetServicesByHome(homeID int64) ([]*domain.Service, error) {
	query := `
		SELECT id, name, created_at, version FROM services WHERE home_id = $1 ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []*domain.Service{}
	for rows.Next() {
		service := &domain.Service{HomeID: homeID}
		dst := []any{&service.ID, &service.Name, &service.CreatedAt, &service.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) CreateService(service *domain.Service) error {
	query := `
		INSERT INTO services (home_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, service.HomeID, service.Name).Scan(&service.ID, &service.CreatedAt, &service.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteService(id int64) error {
	query := `
		DELETE FROM services WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
