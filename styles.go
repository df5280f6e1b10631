package mythoscribe

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of the story page.
type Styles struct {
	Header     ColorPair // App name line with theme icon
	Title      ColorPair // Story title
	Body       ColorPair // Story text
	Label      ColorPair // "Characters:" and "Moral:" labels
	Moral      ColorPair // Moral text
	Link       ColorPair // Image entries, download and share links
	Caption    ColorPair // Loading phase caption
	Button     ColorPair // Enabled submit and media buttons
	Disabled   ColorPair // Disabled controls
	Progress   ColorPair // Filled part of the video progress bar
	Modal      ColorPair // Image modal frame
	Info       ColorPair // Alert banners, one per severity
	Success    ColorPair
	Warning    ColorPair
	Danger     ColorPair
	StatusLine ColorPair // Key hints at the bottom
}

// Alert returns the banner colors for a severity.
func (s Styles) Alert(sev Severity) ColorPair {
	switch sev {
	case SeveritySuccess:
		return s.Success
	case SeverityWarning:
		return s.Warning
	case SeverityDanger:
		return s.Danger
	default:
		return s.Info
	}
}
