package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the story client.
// Form bindings apply while the prompt has focus; the rest apply while the
// story view has focus.
type KeyMap struct {
	// Global
	ForceQuit    key.Binding
	ToggleTheme  key.Binding
	FocusPrompt  key.Binding
	DismissAlert key.Binding // alt+N dismisses the Nth visible alert

	// Prompt
	Submit      key.Binding
	NextExample key.Binding
	Blur        key.Binding

	// Story view
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Download     key.Binding
	Share        key.Binding
	CopyText     key.Binding
	OpenImage    key.Binding
	CloseModal   key.Binding
	Dismiss      key.Binding

	// Media
	ToggleVideo key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	ToggleMute  key.Binding
	Fullscreen  key.Binding
	ToggleAudio key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		DismissAlert: key.NewBinding(
			key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
			key.WithHelp("alt+1-9", "dismiss alert"),
		),
		FocusPrompt: key.NewBinding(
			key.WithKeys("ctrl+k", "/"),
			key.WithHelp("/", "prompt"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generate"),
		),
		NextExample: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "example"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "story"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		CopyText: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "image"),
		),
		CloseModal: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss newest alert"),
		),
		ToggleVideo: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "-10s"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "+10s"),
		),
		ToggleMute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		ToggleAudio: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "narration"),
		),
	}
}
