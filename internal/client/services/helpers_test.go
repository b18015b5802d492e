package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/database"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/storage"
	"github.com/dmitrijs2005/vigilkeeper/internal/cryptox"
)

// setupStores opens a fresh on-disk client database with the SQLite general
// tier.
func setupStores(t *testing.T) *database.Stores {
	t.Helper()
	s, err := database.Open(context.Background(), database.Options{
		DataDir: t.TempDir(),
		Backend: database.BackendSQLite,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func unlockSecure(t *testing.T, s *database.Stores) {
	t.Helper()
	key := make([]byte, cryptox.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	require.NoError(t, s.Secure.Unlock(key, "test-keyring"))
}

func tiered(s *database.Stores) *storage.Store {
	return storage.New(s.Secure, s.General)
}
