package cli

import (
	"context"
	"fmt"
)

func (a *App) ShowPrefs(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	for _, name := range a.prefs.Names() {
		v, err := a.prefs.Get(opCtx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-10s %s\n", name, v)
	}
	return nil
}

func (a *App) SetPref(ctx context.Context, name, value string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	if err := a.prefs.Set(opCtx, name, value); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s = %s\n", name, value)
	return nil
}
