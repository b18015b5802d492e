package models

// Preference keys. Each is persisted on its own in the general tier.
const (
	PrefSidebarCollapsed = "vigil.nav.sidebar.collapsed"
	PrefBottomBarHidden  = "vigil.nav.bottombar.hidden"
	PrefTheme            = "vigil.ui.theme"
)

// Theme values accepted by PrefTheme.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// PreferenceKind tells how a preference value is encoded.
type PreferenceKind int

const (
	KindBool PreferenceKind = iota
	KindEnum
)

// PreferenceSpec describes one named preference.
type PreferenceSpec struct {
	Key     string
	Kind    PreferenceKind
	Allowed []string
	Default string
}

// Preferences lists every known preference, keyed by its short name as
// typed in the CLI.
var Preferences = map[string]PreferenceSpec{
	"sidebar":   {Key: PrefSidebarCollapsed, Kind: KindBool, Default: "false"},
	"bottombar": {Key: PrefBottomBarHidden, Kind: KindBool, Default: "false"},
	"theme": {
		Key:     PrefTheme,
		Kind:    KindEnum,
		Allowed: []string{ThemeLight, ThemeDark, ThemeSystem},
		Default: ThemeSystem,
	},
}
