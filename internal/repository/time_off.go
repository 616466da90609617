package repository

import (
	"context"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

const selectTimeOffColumns = `
	id, user_id, start_date, end_date, status, reason, created_at, version
`

func (r *Repository) scanTimeOffRows(ctx context.Context, query string, args ...any) ([]*domain.TimeOffRequest, error) {
	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []*domain.TimeOffRequest{}
	for rows.Next() {
		var req domain.TimeOffRequest
		var startDate, endDate time.Time

		dst := []any{&req.ID, &req.UserID, &startDate, &endDate, &req.Status, &req.Reason, &req.CreatedAt, &req.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		req.StartDate = domain.DateOf(startDate)
		req.EndDate = domain.DateOf(endDate)
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// GetApprovedTimeOff returns the approved requests for a user that intersect
// the date range. Only approved requests ever take part in conflict checks.
func (r *Repository) GetApprovedTimeOff(userID int64, from, to domain.Date) ([]*domain.TimeOffRequest, error) {
	query := `
		SELECT ` + selectTimeOffColumns + `
		FROM time_off_requests
		WHERE user_id = $1 AND status = 'approved' AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanTimeOffRows(ctx, query, userID, from.String(), to.String())
}

func (r *Repository) GetTimeOffForUser(userID int64) ([]*domain.TimeOffRequest, error) {
	query := `
		SELECT ` + selectTimeOffColumns + `
		FROM time_off_requests
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanTimeOffRows(ctx, query, userID)
}

func (r *Repository) GetTimeOffByStatus(status domain.TimeOffStatus) ([]*domain.TimeOffRequest, error) {
	query := `
		SELECT ` + selectTimeOffColumns + `
		FROM time_off_requests
		WHERE status = $1
		ORDER BY created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	return r.scanTimeOffRows(ctx, query, status)
}

func (r *Repository) GetTimeOffRequestByID(id int64) (*domain.TimeOffRequest, error) {
	query := `
		SELECT user_id, start_date, end_date, status, reason, created_at, version
		FROM time_off_requests WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.TimeOffRequest{
		ID: id,
	}
	var startDate, endDate time.Time

	dst := []any{&req.UserID, &startDate, &endDate, &req.Status, &req.Reason, &req.CreatedAt, &req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	req.StartDate = domain.DateOf(startDate)
	req.EndDate = domain.DateOf(endDate)

	return req, nil
}

func (r *Repository) CreateTimeOffRequest(req *domain.TimeOffRequest) error {
	query := `
		INSERT INTO time_off_requests (user_id, start_date, end_date, status, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.UserID, req.StartDate.String(), req.EndDate.String(), req.Status, req.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateTimeOffStatus(req *domain.TimeOffRequest) error {
	query := `
		UPDATE time_off_requests
		SET
			status = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, req.Status, req.ID, req.Version).Scan(&req.Version); err != nil {
		return err
	}

	return nil
}
