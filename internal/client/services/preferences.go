package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
	"github.com/dmitrijs2005/vigilkeeper/internal/common"
	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
)

// PreferenceStore is the persistence port of Preferences.
type PreferenceStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Preferences reads and writes UI preference flags. Each key is stored on
// its own; a missing, unreadable or invalid value reads as the default.
type Preferences struct {
	store PreferenceStore
	log   logging.Logger
}

func NewPreferences(store PreferenceStore, log logging.Logger) *Preferences {
	return &Preferences{store: store, log: log}
}

func (p *Preferences) read(ctx context.Context, key string, v any) bool {
	raw, err := p.store.Get(ctx, key)
	if err != nil {
		p.log.Warn(ctx, "preference read failed", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		p.log.Warn(ctx, "ignoring malformed preference", "key", key, "error", err)
		return false
	}
	return true
}

func (p *Preferences) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save preference %s: %w", key, err)
	}
	return nil
}

func (p *Preferences) Bool(ctx context.Context, key string, def bool) bool {
	var v bool
	if !p.read(ctx, key, &v) {
		return def
	}
	return v
}

func (p *Preferences) SetBool(ctx context.Context, key string, v bool) error {
	return p.write(ctx, key, v)
}

// Enum returns the stored value of key if it is one of allowed, def otherwise.
func (p *Preferences) Enum(ctx context.Context, key string, allowed []string, def string) string {
	var v string
	if !p.read(ctx, key, &v) || !slices.Contains(allowed, v) {
		return def
	}
	return v
}

func (p *Preferences) SetEnum(ctx context.Context, key string, allowed []string, v string) error {
	if !slices.Contains(allowed, v) {
		return fmt.Errorf("%w: %s=%q", common.ErrInvalidPreference, key, v)
	}
	return p.write(ctx, key, v)
}

// Get returns the named preference (see models.Preferences) as text.
func (p *Preferences) Get(ctx context.Context, name string) (string, error) {
	spec, ok := models.Preferences[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownPreference, name)
	}
	switch spec.Kind {
	case models.KindBool:
		def, _ := strconv.ParseBool(spec.Default)
		return strconv.FormatBool(p.Bool(ctx, spec.Key, def)), nil
	default:
		return p.Enum(ctx, spec.Key, spec.Allowed, spec.Default), nil
	}
}

// Set parses value for the named preference and stores it.
func (p *Preferences) Set(ctx context.Context, name, value string) error {
	spec, ok := models.Preferences[name]
	if !ok {
		return fmt.Errorf("%w: %s", common.ErrUnknownPreference, name)
	}
	switch spec.Kind {
	case models.KindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", common.ErrInvalidPreference, name, value)
		}
		return p.SetBool(ctx, spec.Key, b)
	default:
		return p.SetEnum(ctx, spec.Key, spec.Allowed, value)
	}
}

// Names lists the known preference names in sorted order.
func (p *Preferences) Names() []string {
	names := make([]string, 0, len(models.Preferences))
	for n := range models.Preferences {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
