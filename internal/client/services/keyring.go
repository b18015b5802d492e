package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/securekv"
	"github.com/dmitrijs2005/vigilkeeper/internal/common"
	"github.com/dmitrijs2005/vigilkeeper/internal/cryptox"
	"github.com/dmitrijs2005/vigilkeeper/internal/dbx"
	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
)

// Keyring metadata keys, stored in plaintext in the local database.
const (
	KeyringSaltKey     = "vigil.keyring.salt"
	KeyringVerifierKey = "vigil.keyring.verifier"
	KeyringIDKey       = "vigil.keyring.id"
)

// SecureTier is the lock/unlock surface of the secure repository.
type SecureTier interface {
	Unlock(key []byte, keyID string) error
	Lock()
	Unlocked() bool
}

// Keyring turns a passphrase into the key of the secure tier.
//
// Contract:
//   - The first Unlock creates the keyring (salt, verifier, id) atomically.
//   - Later Unlock calls succeed only with the same passphrase; otherwise
//     common.ErrUnauthorized is returned and the tier stays locked.
//   - Reset drops every secure value and the keyring itself, for a
//     forgotten passphrase.
type Keyring interface {
	Unlock(ctx context.Context, passphrase []byte) error
	Lock()
	Unlocked() bool
	Reset(ctx context.Context) error
}

type keyring struct {
	db     *sql.DB
	secure SecureTier
	log    logging.Logger
}

// NewKeyring binds a keyring to the local database that holds both its
// metadata and the secure table.
func NewKeyring(db *sql.DB, secure SecureTier, log logging.Logger) Keyring {
	return &keyring{db: db, secure: secure, log: log}
}

func (k *keyring) metaRepo(db dbx.DBTX) kv.Repository {
	return kv.NewSQLiteRepository(db)
}

func (k *keyring) Unlock(ctx context.Context, passphrase []byte) error {
	meta := k.metaRepo(k.db)

	salt, err := meta.Get(ctx, KeyringSaltKey)
	if err != nil {
		return fmt.Errorf("read keyring: %w", err)
	}
	if salt == nil {
		return k.create(ctx, passphrase)
	}

	verifier, err := meta.Get(ctx, KeyringVerifierKey)
	if err != nil {
		return fmt.Errorf("read keyring: %w", err)
	}
	id, err := meta.Get(ctx, KeyringIDKey)
	if err != nil {
		return fmt.Errorf("read keyring: %w", err)
	}

	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	if subtle.ConstantTimeCompare(verifier, cryptox.MakeVerifier(key)) == 0 {
		return common.ErrUnauthorized
	}

	if err := k.secure.Unlock(key, string(id)); err != nil {
		return fmt.Errorf("unlock secure tier: %w", err)
	}
	k.log.Info(ctx, "secure storage unlocked", "keyring", string(id))
	return nil
}

func (k *keyring) create(ctx context.Context, passphrase []byte) error {
	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveKey(passphrase, salt)
	defer common.WipeByteArray(key)
	id := uuid.NewString()

	err := dbx.WithTx(ctx, k.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := k.metaRepo(tx)
		if err := meta.Set(ctx, KeyringSaltKey, salt); err != nil {
			return err
		}
		if err := meta.Set(ctx, KeyringVerifierKey, cryptox.MakeVerifier(key)); err != nil {
			return err
		}
		return meta.Set(ctx, KeyringIDKey, []byte(id))
	})
	if err != nil {
		return fmt.Errorf("create keyring: %w", err)
	}

	if err := k.secure.Unlock(key, id); err != nil {
		return fmt.Errorf("unlock secure tier: %w", err)
	}
	k.log.Info(ctx, "keyring created", "keyring", id)
	return nil
}

func (k *keyring) Lock() {
	k.secure.Lock()
}

func (k *keyring) Unlocked() bool {
	return k.secure.Unlocked()
}

func (k *keyring) Reset(ctx context.Context) error {
	k.secure.Lock()

	err := dbx.WithTx(ctx, k.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := securekv.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		meta := k.metaRepo(tx)
		for _, key := range []string{KeyringSaltKey, KeyringVerifierKey, KeyringIDKey} {
			if err := meta.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset keyring: %w", err)
	}
	k.log.Warn(ctx, "keyring reset, secure values dropped")
	return nil
}
