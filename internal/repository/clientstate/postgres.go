package clientstate

import (
	"context"
	"errors"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	scope  string
	logger *logger.Logger
}

// NewPostgres returns a Repository backed by the client_state table.
func NewPostgres(pool *pgxpool.Pool, scope string, log *logger.Logger) Repository {
	return &postgresRepo{pool: pool, scope: scopeOrDefault(scope), logger: logger.OrNop(log)}
}

func (r *postgresRepo) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `
SELECT payload::text
FROM client_state
WHERE scope = $1 AND key = $2
`
	var payload string
	if err := r.pool.QueryRow(ctx, q, r.scope, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (r *postgresRepo) Save(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO client_state (scope, key, payload, updated_at)
VALUES ($1, $2, $3::jsonb, now())
ON CONFLICT (scope, key) DO UPDATE
SET payload = EXCLUDED.payload,
    updated_at = EXCLUDED.updated_at
`
	_, err := r.pool.Exec(ctx, q, r.scope, key, string(value))
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, key string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM client_state WHERE scope = $1 AND key = $2`, r.scope, key)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		r.logger.Base().Debug().Str("scope", r.scope).Str("key", key).Msg("client state already absent")
	}
	return nil
}
