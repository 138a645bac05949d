package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sharesarthi/share_recovery_crm/internal/apperrors"
	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	portsrepo "github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	"github.com/sharesarthi/share_recovery_crm/internal/utils"
)

// PgxAPITokenRepository stores API tokens for collaborator processes. Rows are
// soft deleted so revocations leave an audit trail.
type PgxAPITokenRepository struct {
	db *pgxpool.Pool
}

func newPgxAPITokenRepository(db *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{db: db}
}

var _ portsrepo.APITokenRepository = (*PgxAPITokenRepository)(nil)

const selectAPITokenFields = `
	api_token_id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at, deleted_at
`

func scanAPIToken(row pgx.Row) (*domain.APIToken, error) {
	var t domain.APIToken
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.TokenHash,
		&t.LastUsedAt,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	query := `
		INSERT INTO api_tokens (api_token_id, user_id, name, token_hash, last_used_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Name,
		token.TokenHash,
		token.LastUsedAt,
		token.ExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create API token: %w", err)
	}
	return nil
}

func (r *PgxAPITokenRepository) FindByID(ctx context.Context, id string) (*domain.APIToken, error) {
	query := `SELECT ` + selectAPITokenFields + ` FROM api_tokens WHERE api_token_id = $1 AND deleted_at IS NULL;`
	t, err := scanAPIToken(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find API token by ID: %w", err)
	}
	return t, nil
}

func (r *PgxAPITokenRepository) FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	query := `SELECT ` + selectAPITokenFields + ` FROM api_tokens WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query API tokens: %w", err)
	}
	defer rows.Close()

	tokens := []domain.APIToken{}
	for rows.Next() {
		t, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan API token row: %w", err)
		}
		tokens = append(tokens, *t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating API token rows: %w", rows.Err())
	}

	return tokens, nil
}

// FindByToken hashes the presented token and matches on the stored hash.
func (r *PgxAPITokenRepository) FindByToken(ctx context.Context, tokenString string) (*domain.APIToken, error) {
	query := `SELECT ` + selectAPITokenFields + ` FROM api_tokens WHERE token_hash = $1 AND deleted_at IS NULL;`
	t, err := scanAPIToken(r.db.QueryRow(ctx, query, utils.HashAPIToken(tokenString)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find API token: %w", err)
	}
	return t, nil
}

func (r *PgxAPITokenRepository) Update(ctx context.Context, token *domain.APIToken) error {
	query := `
		UPDATE api_tokens
		SET name = $1, last_used_at = $2, expires_at = $3, updated_at = NOW()
		WHERE api_token_id = $4 AND deleted_at IS NULL;
	`
	cmdTag, err := r.db.Exec(ctx, query, token.Name, token.LastUsedAt, token.ExpiresAt, token.ID)
	if err != nil {
		return fmt.Errorf("failed to update API token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAPITokenRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE api_tokens SET deleted_at = NOW(), updated_at = NOW() WHERE api_token_id = $1 AND deleted_at IS NULL;`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete API token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAPITokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE api_tokens SET deleted_at = NOW(), updated_at = NOW() WHERE expires_at IS NOT NULL AND expires_at < $1 AND deleted_at IS NULL;`
	cmdTag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired API tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
