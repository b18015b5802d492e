package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/auth"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
	"github.com/dmitrijs2005/vigilkeeper/internal/common"
)

// getSimpleText and getPassphrase are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassphrase = GetPassphrase

// Unlock asks for the keyring passphrase and opens the secure tier. The
// first unlock on a device creates the keyring.
//
// A session that was stored in the general tier while secure storage was
// locked is written again so it moves to the secure tier.
func (a *App) Unlock(ctx context.Context) error {
	passphrase, err := getPassphrase(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(passphrase)

	if err := a.keyring.Unlock(ctx, passphrase); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Wrong passphrase")
			return nil
		}
		return err
	}
	a.setMode(ctx, ModeUnlocked)

	opCtx, cancel := a.opContext(ctx)
	defer cancel()
	if s, ok := a.sessions.Load(opCtx); ok {
		if err := a.sessions.Save(opCtx, s); err != nil {
			a.log.Warn(ctx, "could not move session to secure storage", "error", err)
		}
	}
	return nil
}

func (a *App) Lock(ctx context.Context) error {
	a.keyring.Lock()
	a.setMode(ctx, ModeLocked)
	return nil
}

// Login stores a session built from an access token. Without a configured
// token secret the user id and name are asked for directly.
//
// When no profile exists yet, one is seeded from the session.
func (a *App) Login(ctx context.Context) error {
	s, err := a.readSession()
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.sessions.Save(opCtx, s); err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}
	if _, ok := a.profiles.Load(opCtx); !ok {
		if _, err := a.profiles.Upsert(opCtx, a.profiles.DefaultFromSession(s)); err != nil {
			a.log.Warn(ctx, "could not seed profile", "error", err)
		}
	}

	a.userName = s.FullName
	fmt.Fprintf(a.out, "Welcome, %s\n", s.FullName)
	return nil
}

func (a *App) readSession() (models.Session, error) {
	if a.config != nil && a.config.TokenSecret != "" {
		token, err := getSimpleText(a.reader, "Paste access token", a.out)
		if err != nil {
			return models.Session{}, err
		}
		return auth.SessionFromToken(token, []byte(a.config.TokenSecret))
	}

	userID, err := getSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return models.Session{}, err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{UserID: userID, FullName: fullName}, nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	s, ok := a.sessions.Load(opCtx)
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", s.FullName, s.UserID)
	return nil
}

// Logout clears the session from both tiers and the profile.
func (a *App) Logout(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.sessions.Clear(opCtx); err != nil {
		return err
	}
	if err := a.profiles.Clear(opCtx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
