package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/leave"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
)

type allocationRepositoryImpl struct {
	db *database.DB
}

func NewAllocationRepository(db *database.DB) leave.AllocationRepository {
	return &allocationRepositoryImpl{db: db}
}

// Upsert implements leave.AllocationRepository.
func (r *allocationRepositoryImpl) Upsert(ctx context.Context, a leave.Allocation) (leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allocations (id, user_id, year, total_days, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, year)
		DO UPDATE SET total_days = EXCLUDED.total_days, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, a.UserID, a.Year, a.TotalDays).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return leave.Allocation{}, fmt.Errorf("failed to upsert leave allocation: %w", err)
	}

	return a, nil
}

// GetByUserYear implements leave.AllocationRepository.
func (r *allocationRepositoryImpl) GetByUserYear(ctx context.Context, userID string, year int) (leave.Allocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, year, total_days, created_at, updated_at
		FROM leave_allocations
		WHERE user_id = $1 AND year = $2
	`

	var a leave.Allocation
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&a.ID, &a.UserID, &a.Year, &a.TotalDays, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Allocation{}, leave.ErrAllocationNotFound
		}
		return leave.Allocation{}, fmt.Errorf("failed to get leave allocation: %w", err)
	}

	return a, nil
}
