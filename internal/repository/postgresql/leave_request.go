package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/leave"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.user_id, lr.start_date, lr.end_date, lr.total_days, lr.reason,
	lr.status, lr.decided_by, lr.decided_at, lr.manager_notes,
	lr.submitted_at, lr.created_at, lr.updated_at,
	u.full_name, d.full_name, p.name
`

const leaveRequestJoins = `
	FROM leave_requests lr
	JOIN users u ON u.id = lr.user_id
	LEFT JOIN users d ON d.id = lr.decided_by
	LEFT JOIN positions p ON p.id = u.position_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.TotalDays,
		&lr.Reason,
		&lr.Status,
		&lr.DecidedBy,
		&lr.DecidedAt,
		&lr.ManagerNotes,
		&lr.SubmittedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.UserName,
		&lr.DeciderName,
		&lr.PositionName,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, total_days, reason, status, submitted_at, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW(), NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lr.UserID, lr.StartDate, lr.EndDate, lr.TotalDays, lr.Reason, lr.Status,
	).Scan(&lr.ID, &lr.SubmittedAt, &lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s %s WHERE lr.id = $1`, leaveRequestColumns, leaveRequestJoins)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListLeaveRequestsFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != nil && *filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND lr.user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}
	if filter.Year != nil {
		whereClause += fmt.Sprintf(" AND EXTRACT(YEAR FROM lr.start_date) = $%d", argIndex)
		args = append(args, *filter.Year)
		argIndex++
	}
	if filter.Status != nil && *filter.Status != "" {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (u.full_name ILIKE $%d OR lr.reason ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) %s %s`, leaveRequestJoins, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s %s %s
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, leaveRequestJoins, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

// ListAll implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s %s
		ORDER BY lr.submitted_at DESC
	`, leaveRequestColumns, leaveRequestJoins)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list all leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

// UpdateFields implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateFields(ctx context.Context, req leave.UpdateLeaveRequest, totalDays int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET start_date = $1, end_date = $2, total_days = $3, reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, req.StartDate, req.EndDate, totalDays, req.Reason, req.ID, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotEditable
	}

	return nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status, deciderID *string, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
			decided_by = COALESCE($2, decided_by),
			decided_at = CASE WHEN $2 IS NULL THEN decided_at ELSE NOW() END,
			manager_notes = COALESCE($3, manager_notes),
			updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, status, deciderID, notes, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

// CountOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE user_id = $1
			AND status IN ($2, $3)
			AND start_date <= $4
			AND end_date >= $5
			AND ($6::uuid IS NULL OR id <> $6)
	`

	var count int64
	err := q.QueryRow(ctx, query, userID, leave.StatusPending, leave.StatusApproved, end, start, excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping requests: %w", err)
	}

	return count, nil
}

// SumDaysByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumDaysByStatus(ctx context.Context, userID string, year int, status leave.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_days), 0)
		FROM leave_requests
		WHERE user_id = $1
			AND EXTRACT(YEAR FROM start_date) = $2
			AND status = $3
	`

	var total int
	err := q.QueryRow(ctx, query, userID, year, status).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum leave days: %w", err)
	}

	return total, nil
}
