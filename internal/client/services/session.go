package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
)

var ErrInvalidSession = errors.New("session has no user id")

// TieredStore is the storage the session manager writes through.
// *storage.Store implements it.
type TieredStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SessionManager persists the single authenticated-session record.
//
// Contract:
//   - Load after Save (no Clear in between) returns an equal record.
//   - Load after Clear reports absent.
//   - Missing or corrupt stored content reads as absent, never as an error.
type SessionManager interface {
	Load(ctx context.Context) (models.Session, bool)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

type sessionManager struct {
	store TieredStore
	log   logging.Logger
}

func NewSessionManager(store TieredStore, log logging.Logger) SessionManager {
	return &sessionManager{store: store, log: log}
}

func (m *sessionManager) Load(ctx context.Context) (models.Session, bool) {
	raw, ok := m.store.Get(ctx, models.SessionKey)
	if !ok {
		return models.Session{}, false
	}

	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		m.log.Warn(ctx, "discarding malformed session record", "error", err)
		return models.Session{}, false
	}
	if !s.Valid() {
		m.log.Warn(ctx, "discarding session record without user id")
		return models.Session{}, false
	}
	return s, true
}

func (m *sessionManager) Save(ctx context.Context, s models.Session) error {
	if !s.Valid() {
		return ErrInvalidSession
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := m.store.Set(ctx, models.SessionKey, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (m *sessionManager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, models.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
