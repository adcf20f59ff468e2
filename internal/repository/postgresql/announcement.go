package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/announcement"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
)

type announcementRepositoryImpl struct {
	db *database.DB
}

func NewAnnouncementRepository(db *database.DB) announcement.AnnouncementRepository {
	return &announcementRepositoryImpl{db: db}
}

// Create implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO announcements (id, title, body, published_at, created_by, status, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, NOW(), $3, 'active', NOW(), NOW())
		RETURNING id, published_at, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, a.Title, a.Body, a.CreatedBy).Scan(
		&a.ID, &a.PublishedAt, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return announcement.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
	}

	return a, nil
}

// GetByID implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) GetByID(ctx context.Context, id string) (announcement.Announcement, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.title, a.body, a.published_at, a.created_by, a.status, a.created_at, a.updated_at, u.full_name
		FROM announcements a
		LEFT JOIN users u ON u.id = a.created_by
		WHERE a.id = $1
	`

	var a announcement.Announcement
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Body, &a.PublishedAt, &a.CreatedBy, &a.Status, &a.CreatedAt, &a.UpdatedAt, &a.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return announcement.Announcement{}, announcement.ErrAnnouncementNotFound
		}
		return announcement.Announcement{}, fmt.Errorf("failed to get announcement: %w", err)
	}

	return a, nil
}

// List implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) List(ctx context.Context, filter announcement.ListAnnouncementsFilter) ([]announcement.Announcement, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Search != nil && *filter.Search != "" {
		whereClause += fmt.Sprintf(" AND (a.title ILIKE $%d OR a.body ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM announcements a %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.title, a.body, a.published_at, a.created_by, a.status, a.created_at, a.updated_at, u.full_name
		FROM announcements a
		LEFT JOIN users u ON u.id = a.created_by
		%s
		ORDER BY a.published_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []announcement.Announcement
	for rows.Next() {
		var a announcement.Announcement
		err := rows.Scan(
			&a.ID, &a.Title, &a.Body, &a.PublishedAt, &a.CreatedBy, &a.Status, &a.CreatedAt, &a.UpdatedAt, &a.AuthorName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return announcements, total, nil
}

// Update implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Update(ctx context.Context, req announcement.UpdateAnnouncementRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE announcements
		SET title = $1, body = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, req.Title, req.Body, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}

// SetStatus implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) SetStatus(ctx context.Context, id string, status announcement.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE announcements SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set announcement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}

// Delete implements announcement.AnnouncementRepository.
func (r *announcementRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return announcement.ErrAnnouncementNotFound
	}

	return nil
}
