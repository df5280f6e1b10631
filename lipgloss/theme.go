// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import "github.com/mythoscribe/mythoscribe"

// Compile-time interface verification.
var _ mythoscribe.Theme = (*Theme)(nil)

// Theme implements mythoscribe.Theme with Lipgloss-compatible colors.
type Theme struct {
	mode    mythoscribe.ThemeMode
	styles  mythoscribe.Styles
	palette mythoscribe.Palette
}

// Mode returns the mode this theme renders.
func (t *Theme) Mode() mythoscribe.ThemeMode {
	return t.mode
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() mythoscribe.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() mythoscribe.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeFor returns the theme for mode.
func ThemeFor(mode mythoscribe.ThemeMode) *Theme {
	if mode == mythoscribe.ThemeLight {
		return LightTheme()
	}
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	p := mythoscribe.Palette{
		Background: mythoscribe.ThemeDark.MetaColor(),
		Foreground: "#e2e8f0",
		Muted:      "#718096",
		Accent:     "#ff9933", // Saffron
		Title:      "#f6c453", // Temple gold
		Border:     "#4a5568",

		Info:    "#63b3ed",
		Success: "#68d391",
		Warning: "#f6ad55",
		Danger:  "#fc8181",

		Button:         "#ff9933",
		ButtonText:     "#1a202c",
		ButtonDisabled: "#4a5568",
		Progress:       "#f6c453",
	}
	return &Theme{
		mode:    mythoscribe.ThemeDark,
		palette: p,
		styles:  stylesFrom(p, "#2d3748"),
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	p := mythoscribe.Palette{
		Background: mythoscribe.ThemeLight.MetaColor(),
		Foreground: "#2d3748",
		Muted:      "#a0aec0",
		Accent:     "#dd6b20",
		Title:      "#9c4221",
		Border:     "#cbd5e0",

		Info:    "#2b6cb0",
		Success: "#2f855a",
		Warning: "#c05621",
		Danger:  "#c53030",

		Button:         "#dd6b20",
		ButtonText:     "#ffffff",
		ButtonDisabled: "#cbd5e0",
		Progress:       "#dd6b20",
	}
	return &Theme{
		mode:    mythoscribe.ThemeLight,
		palette: p,
		styles:  stylesFrom(p, "#edf2f7"),
	}
}

// stylesFrom derives element styles from a palette. surface is the
// background of raised elements such as the modal and alert banners.
func stylesFrom(p mythoscribe.Palette, surface string) mythoscribe.Styles {
	banner := func(fg string) mythoscribe.ColorPair {
		return mythoscribe.ColorPair{Foreground: fg, Background: surface}
	}
	return mythoscribe.Styles{
		Header:     mythoscribe.ColorPair{Foreground: p.Accent},
		Title:      mythoscribe.ColorPair{Foreground: p.Title},
		Body:       mythoscribe.ColorPair{Foreground: p.Foreground},
		Label:      mythoscribe.ColorPair{Foreground: p.Accent},
		Moral:      mythoscribe.ColorPair{Foreground: p.Foreground},
		Link:       mythoscribe.ColorPair{Foreground: p.Info},
		Caption:    mythoscribe.ColorPair{Foreground: p.Muted},
		Button:     mythoscribe.ColorPair{Foreground: p.ButtonText, Background: p.Button},
		Disabled:   mythoscribe.ColorPair{Foreground: p.Muted, Background: p.ButtonDisabled},
		Progress:   mythoscribe.ColorPair{Foreground: p.Progress},
		Modal:      mythoscribe.ColorPair{Foreground: p.Border, Background: surface},
		Info:       banner(p.Info),
		Success:    banner(p.Success),
		Warning:    banner(p.Warning),
		Danger:     banner(p.Danger),
		StatusLine: mythoscribe.ColorPair{Foreground: p.Muted},
	}
}
