package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/utils"
)

func (r *Repository) GetAllWorkingWeeks() ([]*domain.WorkingWeek, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			ww.id,
			ww.name,
			ww.slug,
			ww.description,
			ww.created_at,
			ww.version,
			wws.id,
			wws.weekday,
			wws.start_time,
			wws.end_time
		FROM working_weeks ww
		LEFT JOIN working_week_shifts wws ON ww.id = wws.working_week_id
		ORDER BY ww.id, wws.weekday, wws.start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weeks := make([]*domain.WorkingWeek, 0)
	weeksMap := make(map[int64]*domain.WorkingWeek)

	for rows.Next() {
		var row struct {
			ID          int64
			Name        string
			Slug        string
			Description string
			CreatedAt   time.Time
			Version     int32

			ShiftID   sql.NullInt64
			Weekday   sql.NullInt32
			StartTime sql.NullString
			EndTime   sql.NullString
		}

		dst := []any{
			&row.ID,
			&row.Name,
			&row.Slug,
			&row.Description,
			&row.CreatedAt,
			&row.Version,
			&row.ShiftID,
			&row.Weekday,
			&row.StartTime,
			&row.EndTime,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		ww, exists := weeksMap[row.ID]
		if !exists {
			// 说明此时是第一次查到这个工作周
			ww = &domain.WorkingWeek{
				ID:          row.ID,
				Name:        row.Name,
				Slug:        row.Slug,
				Description: row.Description,
				Shifts:      make([]domain.WorkingWeekShift, 0),
				CreatedAt:   row.CreatedAt,
				Version:     row.Version,
			}
			weeksMap[row.ID] = ww
			weeks = append(weeks, ww)
		}

		// 如果 shiftID 为空，则表示这个工作周还没有任何班次
		if !row.ShiftID.Valid {
			continue
		}

		shift := domain.WorkingWeekShift{
			ID:        row.ShiftID.Int64,
			Weekday:   row.Weekday.Int32,
			StartTime: row.StartTime.String,
			EndTime:   row.EndTime.String,
		}
		if err := utils.NormalizeWorkingWeekShift(&shift); err != nil {
			return nil, fmt.Errorf("班次 %d: %w", shift.ID, err)
		}
		ww.Shifts = append(ww.Shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return weeks, nil
}

func (r *Repository) GetWorkingWeek(id int64) (*domain.WorkingWeek, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, slug, description, created_at, version
		FROM working_weeks WHERE id = $1
	`

	ww := &domain.WorkingWeek{
		ID:     id,
		Shifts: make([]domain.WorkingWeekShift, 0),
	}

	dst := []any{&ww.Name, &ww.Slug, &ww.Description, &ww.CreatedAt, &ww.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	query = `
		SELECT id, weekday, start_time, end_time
		FROM working_week_shifts
		WHERE working_week_id = $1
		ORDER BY weekday, start_time
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var shift domain.WorkingWeekShift
		if err := rows.Scan(&shift.ID, &shift.Weekday, &shift.StartTime, &shift.EndTime); err != nil {
			return nil, err
		}
		// TIME 列读出来是 "09:30:00.000000"，统一成 "09:30:00"
		if err := utils.NormalizeWorkingWeekShift(&shift); err != nil {
			return nil, fmt.Errorf("班次 %d: %w", shift.ID, err)
		}
		ww.Shifts = append(ww.Shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ww, nil
}

func (r *Repository) CreateWorkingWeek(ww *domain.WorkingWeek) error {
	return r.withTx(func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO working_weeks (name, slug, description)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, version
		`
		if err := tx.QueryRowContext(ctx, query, ww.Name, ww.Slug, ww.Description).Scan(&ww.ID, &ww.CreatedAt, &ww.Version); err != nil {
			return err
		}

		for i := range ww.Shifts {
			if err := insertShift(ctx, tx, ww.ID, &ww.Shifts[i]); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *Repository) UpdateWorkingWeek(ww *domain.WorkingWeek) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE working_weeks
		SET
			name = $1,
			slug = $2,
			description = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{ww.Name, ww.Slug, ww.Description, ww.ID, ww.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&ww.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkingWeek(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM working_weeks WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// InsertWorkingWeekShift 插入班次并将工作周的版本号加一，ww.Version 用于乐观锁
func (r *Repository) InsertWorkingWeekShift(ww *domain.WorkingWeek, shift *domain.WorkingWeekShift) error {
	return r.withTx(func(ctx context.Context, tx *sql.Tx) error {
		if err := bumpWorkingWeekVersion(ctx, tx, ww); err != nil {
			return err
		}
		return insertShift(ctx, tx, ww.ID, shift)
	})
}

// DeleteWorkingWeekShift 删除班次，班次不存在时返回 sql.ErrNoRows
func (r *Repository) DeleteWorkingWeekShift(ww *domain.WorkingWeek, shiftID int64) error {
	return r.withTx(func(ctx context.Context, tx *sql.Tx) error {
		if err := bumpWorkingWeekVersion(ctx, tx, ww); err != nil {
			return err
		}

		query := `
			DELETE FROM working_week_shifts WHERE id = $1 AND working_week_id = $2
		`
		result, err := tx.ExecContext(ctx, query, shiftID, ww.ID)
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
	})
}

func insertShift(ctx context.Context, tx *sql.Tx, workingWeekID int64, shift *domain.WorkingWeekShift) error {
	query := `
		INSERT INTO working_week_shifts (working_week_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	params := []any{workingWeekID, shift.Weekday, shift.StartTime, shift.EndTime}
	return tx.QueryRowContext(ctx, query, params...).Scan(&shift.ID)
}

func bumpWorkingWeekVersion(ctx context.Context, tx *sql.Tx, ww *domain.WorkingWeek) error {
	query := `
		UPDATE working_weeks
		SET version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	return tx.QueryRowContext(ctx, query, ww.ID, ww.Version).Scan(&ww.Version)
}
