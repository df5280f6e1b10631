package bubbletea

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mythoscribe/mythoscribe"
)

const (
	progressWidth = 24
	minStoryRows  = 3
)

// imageModal is the enlarged view of one gallery entry.
type imageModal struct {
	entry mythoscribe.ImageEntry
	open  bool
}

func (im *imageModal) show(entry mythoscribe.ImageEntry) {
	im.entry = entry
	im.open = true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.modal != nil && m.modal.open {
		return m.modalView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.sections()...)
}

// sections returns the page from top to bottom. The story viewport is
// included with its current height.
func (m Model) sections() []string {
	out := []string{m.headerView()}
	if alerts := m.alertsView(); alerts != "" {
		out = append(out, alerts)
	}
	out = append(out, m.formView())
	switch {
	case m.LoadingVisible():
		out = append(out, m.loadingView())
	case m.session.Story() != nil:
		out = append(out, m.viewport.View())
		if media := m.mediaView(); media != "" {
			out = append(out, media)
		}
	}
	return append(out, m.statusView())
}

// syncLayout gives the story viewport whatever height the other sections
// leave free.
func (m *Model) syncLayout() {
	used := lipgloss.Height(m.headerView()) + lipgloss.Height(m.formView()) + lipgloss.Height(m.statusView())
	if alerts := m.alertsView(); alerts != "" {
		used += lipgloss.Height(alerts)
	}
	if media := m.mediaView(); media != "" {
		used += lipgloss.Height(media)
	}
	h := m.height - used
	if h < minStoryRows {
		h = minStoryRows
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m *Model) applyTheme() {
	styles := m.styles()
	m.prompt.PromptStyle = m.style(styles.Label)
	m.prompt.TextStyle = m.style(styles.Body)
	m.prompt.PlaceholderStyle = m.style(styles.Caption)
	m.spinner.Style = m.style(styles.Header)
}

// refreshStory re-renders the story into the viewport, optionally
// scrolling back to the top.
func (m *Model) refreshStory(top bool) {
	view := m.session.Story()
	if view == nil {
		return
	}
	m.viewport.SetContent(renderStory(*view, m.styles(), m.renderer, m.width))
	if top {
		m.viewport.GotoTop()
	}
}

func (m Model) theme() mythoscribe.Theme {
	if t, ok := m.themes[m.session.Themes.Mode()]; ok {
		return t
	}
	return plainTheme{mode: m.session.Themes.Mode()}
}

func (m Model) styles() mythoscribe.Styles {
	return m.theme().Styles()
}

func (m Model) style(cp mythoscribe.ColorPair) lipgloss.Style {
	return styleFromColorPair(cp, m.renderer)
}

func (m Model) headerView() string {
	styles := m.styles()
	mode := m.session.Themes.Mode()
	title := m.style(styles.Header).Bold(true).Render("🕉 Mythoscribe")
	icon := m.style(styles.StatusLine).Render(mode.Icon() + " " + mode.DisplayName())
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(icon)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + icon
}

func (m Model) alertsView() string {
	active := m.session.Alerts.Active()
	if len(active) == 0 {
		return ""
	}
	styles := m.styles()
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	lines := make([]string, 0, len(active))
	for i, note := range active {
		text := fmt.Sprintf("[%d] %s %s", i+1, note.Severity.Glyph(), note.Message)
		lines = append(lines, m.style(styles.Alert(note.Severity)).Width(width).Render(text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formView() string {
	styles := m.styles()
	button := m.style(styles.Button).Bold(true).Render(" Generate Story ")
	if m.SubmitDisabled() {
		button = m.style(styles.Disabled).Render(" Generating... ")
	}
	return m.prompt.View() + "\n" + button
}

func (m Model) loadingView() string {
	styles := m.styles()
	return "\n" + m.spinner.View() + " " + m.style(styles.Caption).Italic(true).Render(m.LoadingCaption()) + "\n"
}

func (m Model) mediaView() string {
	if m.LoadingVisible() {
		return ""
	}
	var lines []string
	if c := m.session.Audio(); c != nil {
		lines = append(lines, m.mediaLine("🎧 Narration", "a", c))
	}
	if c := m.session.Video(); c != nil {
		lines = append(lines, m.mediaLine("🎬 Video    ", "space", c))
	}
	return strings.Join(lines, "\n")
}

func (m Model) mediaLine(label, hint string, c *mythoscribe.MediaController) string {
	styles := m.styles()
	btn := m.style(styles.Button)
	if c.Disabled() {
		btn = m.style(styles.Disabled)
	}

	var parts []string
	parts = append(parts, label, btn.Render(" "+mediaButtonLabel(c, m.player != nil)+" "))

	cur, dur := c.Position()
	if c.Kind() == mythoscribe.MediaVideo {
		filled := int(c.Progress() * progressWidth)
		bar := m.style(styles.Progress).Render(strings.Repeat("━", filled)) +
			m.style(styles.Caption).Render(strings.Repeat("─", progressWidth-filled))
		parts = append(parts, bar)
	}
	if dur > 0 {
		parts = append(parts, clock(cur)+" / "+clock(dur))
	}
	if q := c.Quality(); q != "" {
		parts = append(parts, "📐 "+q)
	}
	if c.Muted() {
		parts = append(parts, "🔇")
	}
	parts = append(parts, m.style(styles.StatusLine).Render("("+hint+")"))
	return strings.Join(parts, " ")
}

func mediaButtonLabel(c *mythoscribe.MediaController, havePlayer bool) string {
	if !havePlayer {
		return "No player"
	}
	switch c.State() {
	case mythoscribe.MediaLoading:
		return "… Loading"
	case mythoscribe.MediaPlaying:
		return "⏸ Pause"
	case mythoscribe.MediaEnded:
		return "↺ Play Again"
	case mythoscribe.MediaErrored:
		return "⚠ Unavailable"
	default:
		return "▶ Play"
	}
}

func (m Model) statusView() string {
	styles := m.styles()
	var hints string
	switch {
	case m.modal != nil && m.modal.open:
		hints = "1-9:image  esc:close"
	case m.prompt.Focused():
		hints = "enter:generate  tab:example  esc:story  alt+N:dismiss alert N  ctrl+t:theme  ctrl+c:quit"
	case m.session.Story() != nil:
		hints = "j/k:scroll  1-9:image  d:download  s:share  c:copy  a:narration  space:video  alt+N/x:dismiss  /:prompt  q:quit"
	default:
		hints = "/:prompt  alt+N:dismiss alert N  ctrl+t:theme  q:quit"
	}
	return m.style(styles.StatusLine).Render(hints)
}

func (m Model) modalView() string {
	styles := m.styles()
	entry := m.modal.entry
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.style(styles.Title).Bold(true).Render(entry.Alt),
		"",
		m.style(styles.Link).Render(entry.URL),
		"",
		m.style(styles.StatusLine).Render("esc: close"),
	)
	box := m.style(styles.Modal).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Modal.Foreground)).
		Padding(1, 2).
		Render(body)
	if m.renderer != nil {
		return m.renderer.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderStory renders a story view for the result viewport.
func renderStory(v mythoscribe.StoryView, styles mythoscribe.Styles, renderer *lipgloss.Renderer, width int) string {
	textWidth := width - 2
	if textWidth < 20 {
		textWidth = 20
	}
	label := styleFromColorPair(styles.Label, renderer).Bold(true)
	body := styleFromColorPair(styles.Body, renderer).Width(textWidth)
	link := styleFromColorPair(styles.Link, renderer)

	var sb strings.Builder
	sb.WriteString(styleFromColorPair(styles.Title, renderer).Bold(true).Width(textWidth).Render(printable(v.Title)))
	sb.WriteString("\n")
	if v.Characters != "" {
		sb.WriteString("\n" + label.Render("Characters:") + " " + styleFromColorPair(styles.Body, renderer).Render(printable(v.Characters)) + "\n")
	}
	if v.Moral != "" {
		sb.WriteString("\n" + label.Render("Moral:") + " " + styleFromColorPair(styles.Moral, renderer).Italic(true).Render(printable(v.Moral)) + "\n")
	}
	sb.WriteString("\n")
	for _, line := range v.Lines {
		sb.WriteString(body.Render(printable(line)))
		sb.WriteString("\n")
	}

	if len(v.Images) > 0 {
		sb.WriteString("\n" + label.Render("Illustrations") + "\n")
		for _, img := range v.Images {
			fmt.Fprintf(&sb, "  %s %s\n", link.Render(fmt.Sprintf("[%d]", img.Index)), img.Alt)
		}
	}

	sb.WriteString("\n" + label.Render("Download:") + " " + link.Render(v.DownloadURL) + "\n")
	sb.WriteString(label.Render("Share:") + "    " + link.Render(v.ShareURL) + "\n")
	return sb.String()
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp mythoscribe.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// plainTheme is used when no theme is configured for a mode.
type plainTheme struct {
	mode mythoscribe.ThemeMode
}

func (t plainTheme) Mode() mythoscribe.ThemeMode  { return t.mode }
func (t plainTheme) Styles() mythoscribe.Styles   { return mythoscribe.Styles{} }
func (t plainTheme) Palette() mythoscribe.Palette { return mythoscribe.Palette{} }

// memoryPreferences keeps preferences for the life of the process.
type memoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryPreferences() *memoryPreferences {
	return &memoryPreferences{values: map[string]string{}}
}

func (p *memoryPreferences) Get(key string) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *memoryPreferences) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}
