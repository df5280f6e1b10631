package mythoscribe

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ThemePreferenceKey is the preference key holding the theme mode.
const ThemePreferenceKey = "mythoscribe-theme"

// ThemeMode is the visual mode of the client.
type ThemeMode string

// Supported theme modes.
const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

// ParseThemeMode returns the mode named by s, or ThemeDark for any value
// outside the two supported modes.
func ParseThemeMode(s string) ThemeMode {
	if ThemeMode(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggled returns the opposite mode.
func (m ThemeMode) Toggled() ThemeMode {
	if m == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Icon returns the indicator shown in the header for this mode.
func (m ThemeMode) Icon() string {
	if m == ThemeLight {
		return "☀"
	}
	return "☾"
}

// MetaColor returns the chrome color associated with this mode.
func (m ThemeMode) MetaColor() string {
	if m == ThemeLight {
		return "#f8f9fa"
	}
	return "#1a202c"
}

// DisplayName returns the human-readable mode name.
func (m ThemeMode) DisplayName() string {
	if m == ThemeLight {
		return "Light Mode"
	}
	return "Dark Mode"
}

// Palette contains the semantic colors of a theme.
// Colors are hex strings in "#RRGGBB" format.
type Palette struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Title      string
	Border     string

	// Notification colors
	Info    string
	Success string
	Warning string
	Danger  string

	// Controls
	Button         string
	ButtonText     string
	ButtonDisabled string
	Progress       string
}

// Theme provides styles and the palette for one mode.
type Theme interface {
	Mode() ThemeMode
	Styles() Styles
	Palette() Palette
}

// ThemeController owns the active theme mode and its persisted preference.
type ThemeController struct {
	store PreferenceStore
	mode  ThemeMode
	log   logrus.FieldLogger
}

// NewThemeController reads the persisted preference and applies it.
// A missing, unreadable or unrecognized preference selects ThemeDark.
func NewThemeController(store PreferenceStore, log logrus.FieldLogger) *ThemeController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &ThemeController{store: store, mode: ThemeDark, log: log}

	value, ok, err := store.Get(ThemePreferenceKey)
	if err != nil {
		log.WithError(err).Warn("reading theme preference")
	}
	mode := ThemeDark
	if ok {
		mode = ParseThemeMode(value)
	}
	if err := c.SetTheme(mode); err != nil {
		log.WithError(err).Warn("persisting theme preference")
	}
	return c
}

// Mode returns the active mode.
func (c *ThemeController) Mode() ThemeMode {
	return c.mode
}

// SetTheme applies mode and persists it. Applying the active mode again
// leaves the same state. The mode is applied even when persisting fails.
func (c *ThemeController) SetTheme(mode ThemeMode) error {
	c.mode = ParseThemeMode(string(mode))
	if err := c.store.Set(ThemePreferenceKey, string(c.mode)); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}

// Toggle flips between dark and light and returns the new mode.
func (c *ThemeController) Toggle() (ThemeMode, error) {
	next := c.mode.Toggled()
	err := c.SetTheme(next)
	return c.mode, err
}
