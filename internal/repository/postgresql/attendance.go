package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	ar.id, ar.user_id, ar.date,
	ar.clock_in_at, ar.clock_in_lat, ar.clock_in_lng, ar.clock_in_addr, ar.clock_in_mode,
	ar.clock_out_at, ar.clock_out_lat, ar.clock_out_lng, ar.clock_out_addr, ar.clock_out_mode,
	ar.sick_description, ar.sick_start_date, ar.sick_end_date, ar.sick_certificate,
	ar.created_at, ar.updated_at, u.full_name, p.name
`

const attendanceJoins = `
	FROM attendance_records ar
	JOIN users u ON u.id = ar.user_id
	LEFT JOIN positions p ON p.id = u.position_id
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.ClockInAt,
		&rec.ClockInLat,
		&rec.ClockInLng,
		&rec.ClockInAddr,
		&rec.ClockInMode,
		&rec.ClockOutAt,
		&rec.ClockOutLat,
		&rec.ClockOutLng,
		&rec.ClockOutAddr,
		&rec.ClockOutMode,
		&rec.SickDescription,
		&rec.SickStartDate,
		&rec.SickEndDate,
		&rec.SickCertificate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.UserName,
		&rec.PositionName,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, user_id, date,
			clock_in_at, clock_in_lat, clock_in_lng, clock_in_addr, clock_in_mode,
			sick_description, sick_start_date, sick_end_date, sick_certificate,
			created_at, updated_at
		)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.UserID, rec.Date,
		rec.ClockInAt, rec.ClockInLat, rec.ClockInLng, rec.ClockInAddr, rec.ClockInMode,
		rec.SickDescription, rec.SickStartDate, rec.SickEndDate, rec.SickCertificate,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByUserDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByUserDate(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ar.user_id = $1 AND ar.date = $2
	`, attendanceColumns, attendanceJoins)

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// SetClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetClockOut(ctx context.Context, id string, at time.Time, lat, lng float64, addr string, mode attendance.WorkMode) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET clock_out_at = $1, clock_out_lat = $2, clock_out_lng = $3,
			clock_out_addr = $4, clock_out_mode = $5, updated_at = NOW()
		WHERE id = $6 AND clock_out_at IS NULL
	`

	tag, err := q.Exec(ctx, query, at, lat, lng, addr, mode, id)
	if err != nil {
		return fmt.Errorf("failed to set clock out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedOut
	}

	return nil
}

// ListByUserMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUserMonth(ctx context.Context, userID string, year int, month time.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s %s
		WHERE ar.user_id = $1
			AND EXTRACT(YEAR FROM ar.date) = $2
			AND EXTRACT(MONTH FROM ar.date) = $3
		ORDER BY ar.date ASC
	`, attendanceColumns, attendanceJoins)

	rows, err := q.Query(ctx, query, userID, year, int(month))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != nil && *filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND ar.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		whereClause += fmt.Sprintf(" AND ar.date >= $%d", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		whereClause += fmt.Sprintf(" AND ar.date <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND u.full_name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s %s`, attendanceJoins, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY ar.date DESC, u.full_name ASC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, attendanceJoins, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}

// HasSickOn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasSickOn(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendance_records
			WHERE user_id = $1
				AND sick_start_date IS NOT NULL
				AND sick_start_date <= $2
				AND sick_end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check sick leave: %w", err)
	}

	return exists, nil
}

// ListSickRanges implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListSickRanges(ctx context.Context, userID string, from, to time.Time) ([]attendance.SickRange, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sick_start_date, sick_end_date
		FROM attendance_records
		WHERE user_id = $1
			AND sick_start_date IS NOT NULL
			AND sick_start_date <= $2
			AND sick_end_date >= $3
		ORDER BY sick_start_date ASC
	`

	rows, err := q.Query(ctx, query, userID, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list sick ranges: %w", err)
	}
	defer rows.Close()

	var ranges []attendance.SickRange
	for rows.Next() {
		var sr attendance.SickRange
		if err := rows.Scan(&sr.Start, &sr.End); err != nil {
			return nil, fmt.Errorf("failed to scan sick range: %w", err)
		}
		ranges = append(ranges, sr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ranges, nil
}
