package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/position"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
)

type positionRepositoryImpl struct {
	db *database.DB
}

func NewPositionRepository(db *database.DB) position.PositionRepository {
	return &positionRepositoryImpl{db: db}
}

// Create implements position.PositionRepository.
func (r *positionRepositoryImpl) Create(ctx context.Context, p position.Position) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO positions (id, name, description, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, 'active', NOW(), NOW())
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, p.Name, p.Description).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return position.Position{}, position.ErrPositionNameUsed
		}
		return position.Position{}, fmt.Errorf("failed to create position: %w", err)
	}

	return p, nil
}

// GetByID implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByID(ctx context.Context, id string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, p.description, p.status, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM users u WHERE u.position_id = p.id)
		FROM positions p
		WHERE p.id = $1
	`

	var p position.Position
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.MemberCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position: %w", err)
	}

	return p, nil
}

// GetByName implements position.PositionRepository.
func (r *positionRepositoryImpl) GetByName(ctx context.Context, name string) (position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, p.description, p.status, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM users u WHERE u.position_id = p.id)
		FROM positions p
		WHERE LOWER(p.name) = LOWER($1)
	`

	var p position.Position
	err := q.QueryRow(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.MemberCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, fmt.Errorf("failed to get position by name: %w", err)
	}

	return p, nil
}

// List implements position.PositionRepository.
func (r *positionRepositoryImpl) List(ctx context.Context) ([]position.Position, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, p.description, p.status, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM users u WHERE u.position_id = p.id)
		FROM positions p
		ORDER BY p.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []position.Position
	for rows.Next() {
		var p position.Position
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.MemberCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return positions, nil
}

// Update implements position.PositionRepository.
func (r *positionRepositoryImpl) Update(ctx context.Context, req position.UpdatePositionRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE positions
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, req.Name, req.Description, req.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return position.ErrPositionNameUsed
		}
		return fmt.Errorf("failed to update position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// SetStatus implements position.PositionRepository.
func (r *positionRepositoryImpl) SetStatus(ctx context.Context, id string, status position.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE positions SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set position status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}

// Delete implements position.PositionRepository.
func (r *positionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var memberCount int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE position_id = $1`, id).Scan(&memberCount)
	if err != nil {
		return fmt.Errorf("failed to count position members: %w", err)
	}
	if memberCount > 0 {
		return position.ErrPositionInUse
	}

	tag, err := q.Exec(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return position.ErrPositionNotFound
	}

	return nil
}
