// Package pgkv is a PostgreSQL implementation of the general storage tier,
// for deployments where several kiosks share one database.
package pgkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/vigilkeeper/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

var _ kv.Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_general WHERE key = $1`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, key string, value []byte) error {
	query :=
		`INSERT INTO kv_general (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("db error: set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_general WHERE key = $1`, key); err != nil {
		return fmt.Errorf("db error: delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_general`); err != nil {
		return fmt.Errorf("db error: clear kv: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM kv_general`)
	if err != nil {
		return nil, fmt.Errorf("db error: list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("db error: scan kv: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: iterate kv: %w", err)
	}
	return result, nil
}
