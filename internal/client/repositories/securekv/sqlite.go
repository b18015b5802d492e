package securekv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/vigilkeeper/internal/common"
	"github.com/dmitrijs2005/vigilkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vigilkeeper/internal/dbx"
)

// ErrForeignKeyring is returned for rows sealed under a different keyring,
// e.g. after the keyring was reset.
var ErrForeignKeyring = errors.New("value sealed under another keyring")

type SQLiteRepository struct {
	db dbx.DBTX

	mu    sync.RWMutex
	key   []byte
	keyID string
}

var _ kv.Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a locked repository.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Unlock makes the repository usable with key, identified by keyID.
// The key is copied; the caller may wipe its own slice afterwards.
func (r *SQLiteRepository) Unlock(key []byte, keyID string) error {
	if len(key) != cryptox.KeySize {
		return cryptox.ErrInvalidKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	common.WipeByteArray(r.key)
	r.key = append([]byte(nil), key...)
	r.keyID = keyID
	return nil
}

// Lock wipes the in-memory key.
func (r *SQLiteRepository) Lock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	common.WipeByteArray(r.key)
	r.key = nil
	r.keyID = ""
}

func (r *SQLiteRepository) Unlocked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.key != nil
}

func (r *SQLiteRepository) material() ([]byte, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.key == nil {
		return nil, "", false
	}
	return append([]byte(nil), r.key...), r.keyID, true
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	secret, keyID, ok := r.material()
	if !ok {
		return nil, fmt.Errorf("secure kv[%s]: %w", key, kv.ErrUnavailable)
	}
	defer common.WipeByteArray(secret)

	var (
		rowKeyID          string
		nonce, ciphertext []byte
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT key_id, nonce, ciphertext FROM kv_secure WHERE key = ?`, key,
	).Scan(&rowKeyID, &nonce, &ciphertext)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get secure kv[%s]: %w", key, err)
	}

	return open(secret, keyID, key, rowKeyID, nonce, ciphertext)
}

func open(secret []byte, keyID, key, rowKeyID string, nonce, ciphertext []byte) ([]byte, error) {
	if rowKeyID != keyID {
		return nil, fmt.Errorf("secure kv[%s]: %w", key, ErrForeignKeyring)
	}
	plain, err := cryptox.Open(secret, ciphertext, nonce, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt secure kv[%s]: %w", key, err)
	}
	return plain, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	secret, keyID, ok := r.material()
	if !ok {
		return fmt.Errorf("secure kv[%s]: %w", key, kv.ErrUnavailable)
	}
	defer common.WipeByteArray(secret)

	ciphertext, nonce, err := cryptox.Seal(secret, value, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to encrypt secure kv[%s]: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO kv_secure (key, key_id, nonce, ciphertext, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			key_id = excluded.key_id,
			nonce = excluded.nonce,
			ciphertext = excluded.ciphertext,
			updated_at = excluded.updated_at
	`, key, keyID, nonce, ciphertext)
	if err != nil {
		return fmt.Errorf("failed to set secure kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_secure WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete secure kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv_secure`)
	if err != nil {
		return fmt.Errorf("failed to clear secure kv: %w", err)
	}
	return nil
}

// List decrypts every row. Rows that fail to open make the whole call fail.
func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	secret, keyID, ok := r.material()
	if !ok {
		return nil, fmt.Errorf("secure kv: %w", kv.ErrUnavailable)
	}
	defer common.WipeByteArray(secret)

	rows, err := r.db.QueryContext(ctx, `SELECT key, key_id, nonce, ciphertext FROM kv_secure`)
	if err != nil {
		return nil, fmt.Errorf("failed to list secure kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var (
			key, rowKeyID     string
			nonce, ciphertext []byte
		)
		if err := rows.Scan(&key, &rowKeyID, &nonce, &ciphertext); err != nil {
			return nil, fmt.Errorf("failed to scan secure kv row: %w", err)
		}
		plain, err := open(secret, keyID, key, rowKeyID, nonce, ciphertext)
		if err != nil {
			return nil, err
		}
		result[key] = plain
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate secure kv rows: %w", err)
	}
	return result, nil
}
