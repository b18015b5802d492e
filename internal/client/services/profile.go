package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
	"github.com/dmitrijs2005/vigilkeeper/internal/timex"
)

// RecordStore is a single-tier key-value store. Every kv.Repository
// implements it.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProfileManager persists the profile record in the general tier.
//
// Upsert replaces the whole record; fields the caller leaves empty are
// dropped, not merged with the previous value. UpdatedAtIso is always
// stamped from the manager's clock.
type ProfileManager interface {
	Load(ctx context.Context) (models.Profile, bool)
	Upsert(ctx context.Context, p models.Profile) (models.Profile, error)
	Clear(ctx context.Context) error
	DefaultFromSession(s models.Session) models.Profile
}

type profileManager struct {
	store RecordStore
	now   func() time.Time
	log   logging.Logger
}

// NewProfileManager returns a ProfileManager. A nil now means time.Now.
func NewProfileManager(store RecordStore, now func() time.Time, log logging.Logger) ProfileManager {
	if now == nil {
		now = time.Now
	}
	return &profileManager{store: store, now: now, log: log}
}

func (m *profileManager) Load(ctx context.Context) (models.Profile, bool) {
	raw, err := m.store.Get(ctx, models.ProfileKey)
	if err != nil {
		m.log.Warn(ctx, "profile read failed", "error", err)
		return models.Profile{}, false
	}
	if raw == nil {
		return models.Profile{}, false
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		m.log.Warn(ctx, "discarding malformed profile record", "error", err)
		return models.Profile{}, false
	}
	if p.IsZero() {
		m.log.Warn(ctx, "discarding empty profile record")
		return models.Profile{}, false
	}
	return p, true
}

func (m *profileManager) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.UpdatedAtIso = timex.FormatISO(m.now())

	raw, err := json.Marshal(p)
	if err != nil {
		return models.Profile{}, fmt.Errorf("encode profile: %w", err)
	}
	if err := m.store.Set(ctx, models.ProfileKey, raw); err != nil {
		return models.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

func (m *profileManager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, models.ProfileKey); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}

func (m *profileManager) DefaultFromSession(s models.Session) models.Profile {
	return DefaultProfileFromSession(s)
}

// DefaultProfileFromSession seeds a profile from the session record. The
// result is not persisted and carries no timestamp.
func DefaultProfileFromSession(s models.Session) models.Profile {
	return models.Profile{
		FullName: s.FullName,
		BadgeID:  s.UserID,
		SiteName: models.DefaultSiteName,
	}
}
