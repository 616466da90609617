package repository

import (
	"context"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, is_active, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadUserHomes(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, is_active, created_at, version
		FROM users WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.FullName, &user.Email, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadUserHomes(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) loadUserHomes(ctx context.Context, user *domain.User) error {
	query := `
		SELECT home_id FROM user_homes WHERE user_id = $1 ORDER BY home_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	user.HomeIDs = make([]int64, 0)
	for rows.Next() {
		var homeID int64
		if err := rows.Scan(&homeID); err != nil {
			return err
		}
		user.HomeIDs = append(user.HomeIDs, homeID)
	}

	return rows.Err()
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.full_name, u.email, u.role, u.is_active, u.created_at, u.version, uh.home_id
		FROM users u
		LEFT JOIN user_homes uh ON u.id = uh.user_id
		ORDER BY u.id, uh.home_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	usersMap := make(map[int64]*domain.User)

	for rows.Next() {
		var row struct {
			ID           int64
			Username     string
			PasswordHash string
			FullName     string
			Email        string
			Role         domain.Role
			IsActive     bool
			CreatedAt    time.Time
			Version      int32

			HomeID *int64
		}

		dst := []any{&row.ID, &row.Username, &row.PasswordHash, &row.FullName, &row.Email, &row.Role, &row.IsActive, &row.CreatedAt, &row.Version, &row.HomeID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		user, exists := usersMap[row.ID]
		if !exists {
			user = &domain.User{
				ID:           row.ID,
				Username:     row.Username,
				PasswordHash: row.PasswordHash,
				FullName:     row.FullName,
				Email:        row.Email,
				Role:         row.Role,
				IsActive:     row.IsActive,
				CreatedAt:    row.CreatedAt,
				Version:      row.Version,
				HomeIDs:      make([]int64, 0),
			}
			usersMap[row.ID] = user
			users = append(users, user)
		}

		if row.HomeID != nil {
			user.HomeIDs = append(user.HomeIDs, *row.HomeID)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO users (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	args := []any{user.Username, user.PasswordHash, user.FullName, user.Email, user.Role}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	for _, homeID := range user.HomeIDs {
		query = `
			INSERT INTO user_homes (user_id, home_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, user.ID, homeID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING username, full_name, created_at, version
	`

	args := []any{user.PasswordHash, user.Email, user.Role, user.IsActive, user.ID, user.Version}
	dst := []any{&user.Username, &user.FullName, &user.CreatedAt, &user.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	// home memberships are replaced wholesale
	query = `DELETE FROM user_homes WHERE user_id = $1`
	if _, err := tx.ExecContext(ctx, query, user.ID); err != nil {
		return err
	}

	for _, homeID := range user.HomeIDs {
		query = `
			INSERT INTO user_homes (user_id, home_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, user.ID, homeID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
