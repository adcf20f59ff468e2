package postgresql

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/auth"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
)

type refreshTokenRepositoryImpl struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepositoryImpl{db: db}
}

// hashToken hashes the raw token with SHA256, base64 encoded.
func (r *refreshTokenRepositoryImpl) hashToken(input string) string {
	hash := sha256.Sum256([]byte(input))
	return base64.StdEncoding.EncodeToString(hash[:])
}

func (r *refreshTokenRepositoryImpl) Store(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
	`

	_, err := q.Exec(ctx, query, userID, r.hashToken(token), expiresAt.UTC())
	return err
}

func (r *refreshTokenRepositoryImpl) IsRevoked(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT revoked_at, expires_at
		FROM refresh_tokens
		WHERE token_hash = $1
		ORDER BY expires_at DESC
		LIMIT 1
	`

	var revokedAt *time.Time
	var expiresAt time.Time

	err := q.QueryRow(ctx, query, r.hashToken(token)).Scan(&revokedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown tokens are treated as revoked
			return true, nil
		}
		return false, err
	}

	if revokedAt != nil || !expiresAt.After(time.Now()) {
		return true, nil
	}
	return false, nil
}

func (r *refreshTokenRepositoryImpl) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`

	_, err := q.Exec(ctx, query, r.hashToken(token))
	return err
}

func (r *refreshTokenRepositoryImpl) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	_, err := q.Exec(ctx, query, userID)
	return err
}

func (r *refreshTokenRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM refresh_tokens
		WHERE expires_at < NOW() - INTERVAL '30 days'
	`

	tag, err := q.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
