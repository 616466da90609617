package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

// GetWeeklyScheduleTemplateByHome loads a home's template together with its
// seven day schedules and their patterns. sql.ErrNoRows means the home has no
// template yet; the handler creates the default one on first access.
func (r *Repository) GetWeeklyScheduleTemplateByHome(homeID int64) (*domain.WeeklyScheduleTemplate, error) {
	query := `
		SELECT
			t.id,
			t.created_at,
			t.version,
			d.weekday,
			d.is_active,
			p.id,
			p.service_id,
			p.start_minutes,
			p.end_minutes,
			p.required_staff_count,
			p.shift_type,
			p.notes
		FROM weekly_schedule_templates t
		LEFT JOIN template_day_schedules d ON t.id = d.template_id
		LEFT JOIN template_shift_patterns p ON t.id = p.template_id AND d.weekday = p.weekday
		WHERE t.home_id = $1
		ORDER BY d.weekday, p.ordinal
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tpl *domain.WeeklyScheduleTemplate

	for rows.Next() {
		var row struct {
			ID        int64
			CreatedAt time.Time
			Version   int32

			Weekday  sql.NullInt32
			IsActive sql.NullBool

			PatternID          sql.NullInt64
			ServiceID          sql.NullInt64
			StartMinutes       sql.NullInt32
			EndMinutes         sql.NullInt32
			RequiredStaffCount sql.NullInt32
			ShiftType          sql.NullString
			Notes              sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.CreatedAt,
			&row.Version,
			&row.Weekday,
			&row.IsActive,
			&row.PatternID,
			&row.ServiceID,
			&row.StartMinutes,
			&row.EndMinutes,
			&row.RequiredStaffCount,
			&row.ShiftType,
			&row.Notes,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if tpl == nil {
			tpl = &domain.WeeklyScheduleTemplate{
				ID:        row.ID,
				HomeID:    homeID,
				CreatedAt: row.CreatedAt,
				Version:   row.Version,
			}
			for day := range tpl.Schedule {
				tpl.Schedule[day] = domain.DaySchedule{Shifts: []domain.ShiftPattern{}}
			}
		}

		// a template with no day rows has nothing else to parse
		if !row.Weekday.Valid {
			continue
		}

		day := domain.Weekday(row.Weekday.Int32)
		tpl.Schedule[day].IsActive = row.IsActive.Bool

		if !row.PatternID.Valid {
			continue
		}

		tpl.Schedule[day].Shifts = append(tpl.Schedule[day].Shifts, domain.ShiftPattern{
			ID:                 row.PatternID.Int64,
			ServiceID:          row.ServiceID.Int64,
			StartTime:          domain.TimeOfDay(row.StartMinutes.Int32),
			EndTime:            domain.TimeOfDay(row.EndMinutes.Int32),
			RequiredStaffCount: row.RequiredStaffCount.Int32,
			ShiftType:          domain.ShiftType(row.ShiftType.String),
			Notes:              row.Notes.String,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if tpl == nil {
		return nil, sql.ErrNoRows
	}

	return tpl, nil
}

func (r *Repository) CreateWeeklyScheduleTemplate(tpl *domain.WeeklyScheduleTemplate) error {
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
		INSERT INTO weekly_schedule_templates (home_id)
		VALUES ($1)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, tpl.HomeID).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.Version); err != nil {
		return err
	}

	if err := r.insertTemplateSchedule(ctx, tx, tpl); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateWeeklyScheduleTemplate replaces the whole schedule: day rows and
// patterns are rewritten under one transaction, guarded by the version column.
func (r *Repository) UpdateWeeklyScheduleTemplate(tpl *domain.WeeklyScheduleTemplate) error {
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
		UPDATE weekly_schedule_templates
		SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, tpl.ID, tpl.Version).Scan(&tpl.Version); err != nil {
		return err
	}

	query = `DELETE FROM template_day_schedules WHERE template_id = $1`
	if _, err := tx.ExecContext(ctx, query, tpl.ID); err != nil {
		return err
	}
	query = `DELETE FROM template_shift_patterns WHERE template_id = $1`
	if _, err := tx.ExecContext(ctx, query, tpl.ID); err != nil {
		return err
	}

	if err := r.insertTemplateSchedule(ctx, tx, tpl); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) insertTemplateSchedule(ctx context.Context, tx *sql.Tx, tpl *domain.WeeklyScheduleTemplate) error {
	for day := range tpl.Schedule {
		query := `
			INSERT INTO template_day_schedules (template_id, weekday, is_active)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, tpl.ID, day, tpl.Schedule[day].IsActive); err != nil {
			return err
		}

		for ordinal := range tpl.Schedule[day].Shifts {
			p := &tpl.Schedule[day].Shifts[ordinal]
			query = `
				INSERT INTO template_shift_patterns (template_id, weekday, ordinal, service_id, start_minutes, end_minutes, required_staff_count, shift_type, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING id
			`
			args := []any{
				tpl.ID,
				day,
				ordinal,
				p.ServiceID,
				p.StartTime.Minutes(),
				p.EndTime.Minutes(),
				p.RequiredStaffCount,
				p.ShiftType,
				p.Notes,
			}
			if err := tx.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Repository) DeleteWeeklyScheduleTemplate(id int64) error {
	query := `
		DELETE FROM weekly_schedule_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
