package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

const selectShiftColumns = `
	s.id,
	s.home_id,
	s.service_id,
	s.shift_date,
	s.start_minutes,
	s.end_minutes,
	s.required_staff_count,
	s.shift_type,
	s.notes,
	s.is_active,
	s.created_at,
	s.version,
	sa.user_id,
	sa.assigned_at
`

type shiftRow struct {
	ID                 int64
	HomeID             int64
	ServiceID          int64
	ShiftDate          time.Time
	StartMinutes       int
	EndMinutes         int
	RequiredStaffCount int32
	ShiftType          domain.ShiftType
	Notes              string
	IsActive           bool
	CreatedAt          time.Time
	Version            int32

	AssignedUserID sql.NullInt64
	AssignedAt     sql.NullTime
}

func (row *shiftRow) dst() []any {
	return []any{
		&row.ID,
		&row.HomeID,
		&row.ServiceID,
		&row.ShiftDate,
		&row.StartMinutes,
		&row.EndMinutes,
		&row.RequiredStaffCount,
		&row.ShiftType,
		&row.Notes,
		&row.IsActive,
		&row.CreatedAt,
		&row.Version,
		&row.AssignedUserID,
		&row.AssignedAt,
	}
}

// scanShifts reassembles shifts from a shift LEFT JOIN shift_assignments
// result set ordered by shift id.
func scanShifts(rows *sql.Rows) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	shiftsMap := make(map[int64]*domain.Shift)

	for rows.Next() {
		var row shiftRow
		if err := rows.Scan(row.dst()...); err != nil {
			return nil, err
		}

		shift, exists := shiftsMap[row.ID]
		if !exists {
			shift = &domain.Shift{
				ID:                 row.ID,
				HomeID:             row.HomeID,
				ServiceID:          row.ServiceID,
				Date:               domain.DateOf(row.ShiftDate),
				StartTime:          domain.TimeOfDay(row.StartMinutes),
				EndTime:            domain.TimeOfDay(row.EndMinutes),
				RequiredStaffCount: row.RequiredStaffCount,
				ShiftType:          row.ShiftType,
				Notes:              row.Notes,
				IsActive:           row.IsActive,
				CreatedAt:          row.CreatedAt,
				Version:            row.Version,
				AssignedStaff:      make([]domain.StaffAssignment, 0),
			}
			shiftsMap[row.ID] = shift
			shifts = append(shifts, shift)
		}

		// no assignment row means the shift is unassigned
		if !row.AssignedUserID.Valid {
			continue
		}

		shift.AssignedStaff = append(shift.AssignedStaff, domain.StaffAssignment{
			UserID:     row.AssignedUserID.Int64,
			AssignedAt: row.AssignedAt.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftsByHomeAndDateRange(homeID int64, from, to domain.Date) ([]*domain.Shift, error) {
	query := `
		SELECT ` + selectShiftColumns + `
		FROM shifts s
		LEFT JOIN shift_assignments sa ON s.id = sa.shift_id
		WHERE s.home_id = $1 AND s.shift_date BETWEEN $2 AND $3
		ORDER BY s.id, sa.user_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, homeID, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

// GetShiftsForUser returns the shifts a user is assigned to within the date
// range, inclusive on both ends.
func (r *Repository) GetShiftsForUser(userID int64, from, to domain.Date) ([]*domain.Shift, error) {
	query := `
		SELECT ` + selectShiftColumns + `
		FROM shifts s
		LEFT JOIN shift_assignments sa ON s.id = sa.shift_id
		WHERE s.shift_date BETWEEN $2 AND $3
			AND s.id IN (SELECT shift_id FROM shift_assignments WHERE user_id = $1)
		ORDER BY s.id, sa.user_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT ` + selectShiftColumns + `
		FROM shifts s
		LEFT JOIN shift_assignments sa ON s.id = sa.shift_id
		WHERE s.id = $1
		ORDER BY sa.user_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts, err := scanShifts(rows)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, sql.ErrNoRows
	}

	return shifts[0], nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (home_id, service_id, shift_date, start_minutes, end_minutes, required_staff_count, shift_type, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.HomeID,
		shift.ServiceID,
		shift.Date.String(),
		shift.StartTime.Minutes(),
		shift.EndTime.Minutes(),
		shift.RequiredStaffCount,
		shift.ShiftType,
		shift.Notes,
		shift.IsActive,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

// ShiftPersistResult records the outcome of persisting one materialized shift.
type ShiftPersistResult struct {
	Shift *domain.Shift
	Err   error
}

// PersistShifts inserts each shift independently: one failing insert does not
// abort the rest, it is reported in that shift's result.
func (r *Repository) PersistShifts(shifts []*domain.Shift) []ShiftPersistResult {
	results := make([]ShiftPersistResult, 0, len(shifts))
	for _, shift := range shifts {
		results = append(results, ShiftPersistResult{
			Shift: shift,
			Err:   r.CreateShift(shift),
		})
	}
	return results
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			service_id = $1,
			shift_date = $2,
			start_minutes = $3,
			end_minutes = $4,
			required_staff_count = $5,
			shift_type = $6,
			notes = $7,
			is_active = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.ServiceID,
		shift.Date.String(),
		shift.StartTime.Minutes(),
		shift.EndTime.Minutes(),
		shift.RequiredStaffCount,
		shift.ShiftType,
		shift.Notes,
		shift.IsActive,
		shift.ID,
		shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) AssignStaff(shiftID, userID int64) (*domain.StaffAssignment, error) {
	query := `
		INSERT INTO shift_assignments (shift_id, user_id)
		VALUES ($1, $2)
		RETURNING assigned_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.StaffAssignment{UserID: userID}
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID, userID).Scan(&assignment.AssignedAt); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) UnassignStaff(shiftID, userID int64) error {
	query := `
		DELETE FROM shift_assignments WHERE shift_id = $1 AND user_id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, shiftID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
