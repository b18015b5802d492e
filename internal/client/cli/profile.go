package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/models"
)

func (a *App) ShowProfile(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	p, ok := a.profiles.Load(opCtx)
	if !ok {
		fmt.Fprintln(a.out, "No profile")
		return nil
	}

	for _, f := range profileFields(&p) {
		if *f.value != "" {
			fmt.Fprintf(a.out, "%-24s %s\n", f.label+":", *f.value)
		}
	}
	fmt.Fprintf(a.out, "%-24s %s\n", "Updated:", p.UpdatedAtIso)
	return nil
}

// EditProfile prompts for every field. An empty answer keeps the current
// value, "-" clears it. The record is then replaced as a whole.
func (a *App) EditProfile(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	p, ok := a.profiles.Load(opCtx)
	if !ok {
		if s, found := a.sessions.Load(opCtx); found {
			p = a.profiles.DefaultFromSession(s)
		}
	}
	cancel()

	for _, f := range profileFields(&p) {
		v, err := getTextWithDefault(a.reader, f.label, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}

	opCtx, cancel = a.opContext(ctx)
	defer cancel()
	saved, err := a.profiles.Upsert(opCtx, p)
	if err != nil {
		return err
	}
	if saved.FullName != "" && a.isLoggedIn() {
		a.userName = saved.FullName
	}
	fmt.Fprintln(a.out, "Profile saved")
	return nil
}

var getTextWithDefault = GetTextWithDefault

type profileField struct {
	label string
	value *string
}

func profileFields(p *models.Profile) []profileField {
	return []profileField{
		{"Full name", &p.FullName},
		{"Email", &p.Email},
		{"Phone", &p.Phone},
		{"Site", &p.SiteName},
		{"Badge", &p.BadgeID},
		{"Emergency contact", &p.EmergencyContactName},
		{"Emergency phone", &p.EmergencyContactPhone},
	}
}
