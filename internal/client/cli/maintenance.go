package cli

import (
	"context"
	"fmt"
	"sort"
)

// confirmWord must be typed to run a destructive command.
const confirmWord = "yes"

// Status lists the keys held by each tier. Values are never printed.
func (a *App) Status(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	backend := a.config.GeneralBackend
	if backend == "" {
		backend = "sqlite"
	}
	fmt.Fprintf(a.out, "secure storage: %s\n", a.Mode)

	general, err := a.stores.General.List(opCtx)
	if err != nil {
		return fmt.Errorf("list general tier: %w", err)
	}
	printKeys(a, "general ("+backend+")", general)

	if !a.keyring.Unlocked() {
		return nil
	}
	secure, err := a.stores.Secure.List(opCtx)
	if err != nil {
		return fmt.Errorf("list secure tier: %w", err)
	}
	printKeys(a, "secure", secure)
	return nil
}

func printKeys(a *App, title string, m map[string][]byte) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(a.out, "%s: %d key(s)\n", title, len(keys))
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %s\n", k)
	}
}

func (a *App) confirm(prompt string) (bool, error) {
	answer, err := getSimpleText(a.reader, prompt+" Type '"+confirmWord+"' to continue", a.out)
	if err != nil {
		return false, err
	}
	return answer == confirmWord, nil
}

// Reset drops the keyring and every secure value, for a forgotten
// passphrase. General tier values are kept; the next unlock creates a new
// keyring.
func (a *App) Reset(ctx context.Context) error {
	ok, err := a.confirm("This deletes the keyring and all values in secure storage.")
	if err != nil || !ok {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.keyring.Reset(opCtx); err != nil {
		return err
	}
	a.setMode(ctx, ModeLocked)
	a.refreshUser(opCtx)
	fmt.Fprintln(a.out, "Keyring reset")
	return nil
}

// Wipe resets the keyring and clears the general tier, leaving the device
// with no stored session, profile or preferences.
func (a *App) Wipe(ctx context.Context) error {
	ok, err := a.confirm("This deletes every value stored for this device.")
	if err != nil || !ok {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.keyring.Reset(opCtx); err != nil {
		return err
	}
	a.setMode(ctx, ModeLocked)
	if err := a.stores.General.Clear(opCtx); err != nil {
		return fmt.Errorf("clear general tier: %w", err)
	}
	a.userName = ""
	fmt.Fprintln(a.out, "All local data removed")
	return nil
}

// refreshUser re-reads the session after storage changed underneath it.
func (a *App) refreshUser(ctx context.Context) {
	a.userName = ""
	if s, ok := a.sessions.Load(ctx); ok {
		a.userName = s.FullName
	}
}
