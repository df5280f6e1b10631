package bubbletea

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mythoscribe/mythoscribe"
	"github.com/sirupsen/logrus"
)

// Messages produced by the model's commands.
type (
	notifyMsg struct {
		message  string
		severity mythoscribe.Severity
		duration time.Duration
	}
	alertExpiredMsg struct{ id int }
	generatedMsg    struct {
		req   mythoscribe.GenerationRequest
		story *mythoscribe.Story
		err   error
	}
	// phaseTickMsg advances the loading caption of request seq only.
	phaseTickMsg struct{ seq uint64 }
	presentMsg   struct{ story *mythoscribe.Story }
	// Media messages carry the story sequence they were issued for, so
	// anything arriving for a replaced story is discarded.
	mediaOpenedMsg struct {
		seq  uint64
		kind mythoscribe.MediaKind
		el   mythoscribe.MediaElement
		err  error
	}
	mediaEventMsg struct {
		seq  uint64
		kind mythoscribe.MediaKind
		ev   mythoscribe.MediaEvent
		ok   bool
	}
	downloadedMsg struct {
		path string
		err  error
	}
)

// Model is the Bubble Tea model of the story client. It adapts a
// mythoscribe.Session to terminal input and output.
type Model struct {
	ctx     context.Context
	session *mythoscribe.Session
	log     logrus.FieldLogger

	player      mythoscribe.MediaPlayer
	downloader  mythoscribe.StoryDownloader
	downloadDir string
	clipboard   mythoscribe.Clipboard
	sharer      mythoscribe.Sharer
	initial     *mythoscribe.Story

	themes          map[mythoscribe.ThemeMode]mythoscribe.Theme
	renderer        *lipgloss.Renderer
	keymap          KeyMap
	loadingInterval time.Duration

	prompt   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	phase    int
	example  int
	mediaSeq uint64
	modal    *imageModal
	width    int
	height   int
}

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	ctx             context.Context
	renderer        *lipgloss.Renderer
	themes          []mythoscribe.Theme
	prefs           mythoscribe.PreferenceStore
	player          mythoscribe.MediaPlayer
	downloader      mythoscribe.StoryDownloader
	downloadDir     string
	clipboard       mythoscribe.Clipboard
	sharer          mythoscribe.Sharer
	baseURL         string
	log             logrus.FieldLogger
	alertDuration   time.Duration
	loadingInterval time.Duration
	initial         *mythoscribe.Story
}

// WithContext sets the context for network calls and media processes.
func WithContext(ctx context.Context) ModelOption {
	return func(cfg *modelConfig) {
		cfg.ctx = ctx
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithThemes sets the themes the model switches between, keyed by their
// mode.
func WithThemes(themes ...mythoscribe.Theme) ModelOption {
	return func(cfg *modelConfig) {
		cfg.themes = append(cfg.themes, themes...)
	}
}

// WithPreferences sets the durable store for the theme preference.
// Without it the preference lasts for the session only.
func WithPreferences(p mythoscribe.PreferenceStore) ModelOption {
	return func(cfg *modelConfig) {
		cfg.prefs = p
	}
}

// WithPlayer sets the media player. Without one, media controls are shown
// disabled.
func WithPlayer(p mythoscribe.MediaPlayer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.player = p
	}
}

// WithDownloader sets how stories are downloaded and where they are saved.
func WithDownloader(d mythoscribe.StoryDownloader, dir string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.downloader = d
		cfg.downloadDir = dir
	}
}

// WithClipboard sets the clipboard for copy and share.
func WithClipboard(c mythoscribe.Clipboard) ModelOption {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithSharer sets the platform share facility used instead of the
// clipboard.
func WithSharer(s mythoscribe.Sharer) ModelOption {
	return func(cfg *modelConfig) {
		cfg.sharer = s
	}
}

// WithBaseURL sets the service root used to resolve media and build links.
func WithBaseURL(u string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.baseURL = u
	}
}

// WithLogger sets the logger. Logs are discarded by default since the
// terminal belongs to the UI.
func WithLogger(log logrus.FieldLogger) ModelOption {
	return func(cfg *modelConfig) {
		cfg.log = log
	}
}

// WithAlertDuration sets how long alerts stay visible by default.
func WithAlertDuration(d time.Duration) ModelOption {
	return func(cfg *modelConfig) {
		cfg.alertDuration = d
	}
}

// WithLoadingInterval overrides mythoscribe.LoadingPhaseInterval.
func WithLoadingInterval(d time.Duration) ModelOption {
	return func(cfg *modelConfig) {
		cfg.loadingInterval = d
	}
}

// WithInitialStory presents story as soon as the program starts.
func WithInitialStory(story *mythoscribe.Story) ModelOption {
	return func(cfg *modelConfig) {
		cfg.initial = story
	}
}

// NewModel creates a Model that generates stories with generator.
func NewModel(generator mythoscribe.StoryGenerator, opts ...ModelOption) Model {
	cfg := &modelConfig{
		ctx:             context.Background(),
		loadingInterval: mythoscribe.LoadingPhaseInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.log = l
	}
	if cfg.prefs == nil {
		cfg.prefs = newMemoryPreferences()
	}

	themes := make(map[mythoscribe.ThemeMode]mythoscribe.Theme, len(cfg.themes))
	for _, t := range cfg.themes {
		themes[t.Mode()] = t
	}

	session := mythoscribe.NewSession(
		mythoscribe.NewThemeController(cfg.prefs, cfg.log),
		mythoscribe.NewGenerationController(generator, mythoscribe.WithGenerationLogger(cfg.log)),
		&mythoscribe.Notifications{DefaultDuration: cfg.alertDuration},
		cfg.baseURL,
		cfg.log,
	)

	prompt := textinput.New()
	prompt.Placeholder = "Describe the story you want to hear..."
	prompt.Prompt = "❯ "
	prompt.CharLimit = 500
	prompt.Focus()

	m := Model{
		ctx:             cfg.ctx,
		session:         session,
		log:             cfg.log,
		player:          cfg.player,
		downloader:      cfg.downloader,
		downloadDir:     cfg.downloadDir,
		clipboard:       cfg.clipboard,
		sharer:          cfg.sharer,
		initial:         cfg.initial,
		themes:          themes,
		renderer:        cfg.renderer,
		keymap:          DefaultKeyMap(),
		loadingInterval: cfg.loadingInterval,
		prompt:          prompt,
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:        viewport.New(80, 10),
		width:           80,
		height:          24,
	}
	m.applyTheme()
	return m
}

// Session returns the application state behind the model.
func (m Model) Session() *mythoscribe.Session {
	return m.session
}

// SubmitDisabled reports whether the generate button is disabled.
func (m Model) SubmitDisabled() bool {
	return m.session.Generation.SubmitDisabled()
}

// LoadingVisible reports whether the loading indicator is shown.
func (m Model) LoadingVisible() bool {
	return m.session.Generation.LoadingVisible()
}

// LoadingCaption returns the current loading phase caption.
func (m Model) LoadingCaption() string {
	return mythoscribe.LoadingPhases[m.phase%len(mythoscribe.LoadingPhases)]
}

// Alerts returns the visible notifications, oldest first.
func (m Model) Alerts() []mythoscribe.Notification {
	return m.session.Alerts.Active()
}

// StoryView returns the story on display, or nil.
func (m Model) StoryView() *mythoscribe.StoryView {
	return m.session.Story()
}

// AudioControlVisible reports whether the narration control is shown.
func (m Model) AudioControlVisible() bool {
	return m.session.Audio() != nil
}

// VideoControlVisible reports whether the video control is shown.
func (m Model) VideoControlVisible() bool {
	return m.session.Video() != nil
}

// PromptFocused reports whether key input goes to the prompt.
func (m Model) PromptFocused() bool {
	return m.prompt.Focused()
}

// Close releases media players started by the model.
func (m Model) Close() error {
	return m.session.CloseMedia()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		notify(mythoscribe.MsgWelcome, mythoscribe.SeverityInfo, mythoscribe.WelcomeDuration),
	}
	if m.initial != nil {
		story := m.initial
		cmds = append(cmds, func() tea.Msg { return presentMsg{story: story} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncLayout()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.refreshStory(false)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case notifyMsg:
		return m, m.alert(msg.message, msg.severity, msg.duration)
	case alertExpiredMsg:
		m.session.Alerts.Expire(msg.id)
		return m, nil
	case generatedMsg:
		return m.finishGeneration(msg)
	case phaseTickMsg:
		if !m.LoadingVisible() || msg.seq != m.session.Generation.Seq() {
			return m, nil
		}
		m.phase = (m.phase + 1) % len(mythoscribe.LoadingPhases)
		return m, m.phaseTick(msg.seq)
	case spinner.TickMsg:
		if !m.LoadingVisible() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case presentMsg:
		return m, m.present(msg.story)
	case mediaOpenedMsg:
		return m.mediaOpened(msg)
	case mediaEventMsg:
		return m.mediaEvent(msg)
	case downloadedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Warn("story download failed")
			return m, m.alert(mythoscribe.MsgDownloadFailed, mythoscribe.SeverityDanger, 0)
		}
		return m, m.alert("Story saved to "+msg.path, mythoscribe.SeveritySuccess, 0)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.closeMedia()
		return m, tea.Quit
	case key.Matches(msg, m.keymap.ToggleTheme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keymap.DismissAlert):
		m.session.Alerts.DismissAt(int(msg.Runes[0] - '0'))
		return m, nil
	}

	if m.modal != nil && m.modal.open {
		switch {
		case key.Matches(msg, m.keymap.CloseModal), key.Matches(msg, m.keymap.Quit):
			m.modal.open = false
		case key.Matches(msg, m.keymap.OpenImage):
			m.openImage(int(msg.Runes[0] - '0'))
		}
		return m, nil
	}

	if m.prompt.Focused() {
		switch {
		case key.Matches(msg, m.keymap.Submit):
			return m.submit()
		case key.Matches(msg, m.keymap.NextExample):
			m.prompt.SetValue(mythoscribe.ExamplePrompts[m.example%len(mythoscribe.ExamplePrompts)])
			m.prompt.CursorEnd()
			m.example++
			return m, nil
		case key.Matches(msg, m.keymap.Blur):
			m.prompt.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	video, audio := m.session.Video(), m.session.Audio()
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.closeMedia()
		return m, tea.Quit
	case key.Matches(msg, m.keymap.FocusPrompt):
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keymap.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keymap.Dismiss):
		if note, ok := m.session.Alerts.Latest(); ok {
			m.session.Alerts.Dismiss(note.ID)
		}
	case key.Matches(msg, m.keymap.Download):
		return m, m.download()
	case key.Matches(msg, m.keymap.Share):
		return m, m.share()
	case key.Matches(msg, m.keymap.CopyText):
		if view := m.session.Story(); view != nil {
			return m, m.copy(view.Body(), mythoscribe.MsgStoryCopied, mythoscribe.MsgCopyFailed)
		}
	case key.Matches(msg, m.keymap.OpenImage):
		m.openImage(int(msg.Runes[0] - '0'))
	case key.Matches(msg, m.keymap.ToggleVideo):
		m.mediaCommand(video, (*mythoscribe.MediaController).Toggle)
	case key.Matches(msg, m.keymap.SeekBack):
		m.mediaCommand(video, func(c *mythoscribe.MediaController) error { return c.SeekBy(-mythoscribe.SeekStep) })
	case key.Matches(msg, m.keymap.SeekForward):
		m.mediaCommand(video, func(c *mythoscribe.MediaController) error { return c.SeekBy(mythoscribe.SeekStep) })
	case key.Matches(msg, m.keymap.ToggleMute):
		target := video
		if target == nil {
			target = audio
		}
		m.mediaCommand(target, (*mythoscribe.MediaController).ToggleMute)
	case key.Matches(msg, m.keymap.Fullscreen):
		m.mediaCommand(video, (*mythoscribe.MediaController).Fullscreen)
	case key.Matches(msg, m.keymap.ToggleAudio):
		m.mediaCommand(audio, (*mythoscribe.MediaController).Toggle)
	}
	return m, nil
}

// submit starts a generation request unless the button is disabled.
func (m Model) submit() (Model, tea.Cmd) {
	if m.SubmitDisabled() {
		return m, nil
	}
	req, err := m.session.Generation.Begin(m.prompt.Value())
	if err != nil {
		alert := mythoscribe.AlertFor(err)
		return m, m.alert(alert.Message, alert.Severity, 0)
	}
	m.phase = 0

	gen, ctx := m.session.Generation, m.ctx
	return m, tea.Batch(
		func() tea.Msg {
			story, err := gen.Generate(ctx, req)
			return generatedMsg{req: req, story: story, err: err}
		},
		m.phaseTick(req.Seq),
		m.spinner.Tick,
	)
}

func (m Model) finishGeneration(msg generatedMsg) (Model, tea.Cmd) {
	out := m.session.Generation.Finish(msg.req, msg.story, msg.err)
	if out.Alert != nil {
		return m, m.alert(out.Alert.Message, out.Alert.Severity, 0)
	}
	return m, m.present(out.Story)
}

func (m Model) phaseTick(seq uint64) tea.Cmd {
	return tea.Tick(m.loadingInterval, func(time.Time) tea.Msg {
		return phaseTickMsg{seq: seq}
	})
}

// present shows story, replacing any previous one, and starts its media.
func (m *Model) present(story *mythoscribe.Story) tea.Cmd {
	view, err := m.session.Present(story)
	if err != nil {
		m.log.WithError(err).Warn("closing previous media")
	}
	m.mediaSeq++
	if m.modal != nil {
		m.modal.open = false
	}
	m.refreshStory(true)
	m.prompt.Blur()

	if m.player == nil {
		return nil
	}
	var cmds []tea.Cmd
	if view.HasAudio() {
		cmds = append(cmds, m.openMedia(mythoscribe.MediaAudio, view.AudioURL))
	}
	if view.HasVideo() {
		cmds = append(cmds, m.openMedia(mythoscribe.MediaVideo, view.VideoURL))
	}
	return tea.Batch(cmds...)
}

func (m Model) openMedia(kind mythoscribe.MediaKind, url string) tea.Cmd {
	seq, player, ctx := m.mediaSeq, m.player, m.ctx
	return func() tea.Msg {
		el, err := player.Open(ctx, kind, url)
		return mediaOpenedMsg{seq: seq, kind: kind, el: el, err: err}
	}
}

func waitMediaEvent(seq uint64, kind mythoscribe.MediaKind, events <-chan mythoscribe.MediaEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return mediaEventMsg{seq: seq, kind: kind, ev: ev, ok: ok}
	}
}

func (m Model) controller(kind mythoscribe.MediaKind) *mythoscribe.MediaController {
	if kind == mythoscribe.MediaVideo {
		return m.session.Video()
	}
	return m.session.Audio()
}

func (m Model) mediaOpened(msg mediaOpenedMsg) (Model, tea.Cmd) {
	ctrl := m.controller(msg.kind)
	if msg.seq != m.mediaSeq || ctrl == nil {
		if msg.el != nil {
			_ = msg.el.Close()
		}
		return m, nil
	}
	if msg.err != nil {
		return m, m.alertFor(ctrl.Handle(mythoscribe.MediaEvent{Type: mythoscribe.MediaError, Err: msg.err}))
	}
	ctrl.Attach(msg.el)
	return m, waitMediaEvent(msg.seq, msg.kind, msg.el.Events())
}

func (m Model) mediaEvent(msg mediaEventMsg) (Model, tea.Cmd) {
	ctrl := m.controller(msg.kind)
	if msg.seq != m.mediaSeq || ctrl == nil {
		return m, nil
	}
	if !msg.ok {
		// The player went away; its controls stay disabled.
		_ = ctrl.Close()
		ctrl.Attach(nil)
		return m, nil
	}
	alert := m.alertFor(ctrl.Handle(msg.ev))
	el := ctrl.Element()
	if el == nil {
		return m, alert
	}
	return m, tea.Batch(alert, waitMediaEvent(msg.seq, msg.kind, el.Events()))
}

func (m Model) mediaCommand(c *mythoscribe.MediaController, cmd func(*mythoscribe.MediaController) error) {
	if c == nil {
		return
	}
	if err := cmd(c); err != nil && !errors.Is(err, mythoscribe.ErrMediaUnavailable) {
		m.log.WithError(err).WithField("media", c.Kind().String()).Warn("media command failed")
	}
}

func (m Model) closeMedia() {
	if err := m.session.CloseMedia(); err != nil {
		m.log.WithError(err).Warn("closing media")
	}
}

func (m Model) download() tea.Cmd {
	view := m.session.Story()
	if view == nil {
		return nil
	}
	if m.downloader == nil {
		return m.alert("Download: "+view.DownloadURL, mythoscribe.SeverityInfo, 0)
	}
	d, ctx, id, dir := m.downloader, m.ctx, view.ID, m.downloadDir
	return func() tea.Msg {
		path, err := d.Download(ctx, id, dir)
		return downloadedMsg{path: path, err: err}
	}
}

func (m Model) share() tea.Cmd {
	view := m.session.Story()
	if view == nil {
		return nil
	}
	if m.sharer == nil {
		return m.copy(view.ShareURL, mythoscribe.MsgLinkCopied, mythoscribe.MsgLinkCopyFailed)
	}
	sharer, log, url := m.sharer, m.log, view.ShareURL
	return func() tea.Msg {
		if err := sharer.Share(mythoscribe.ShareTitle, url); err != nil {
			log.WithError(err).Warn("share failed")
			return notifyMsg{message: mythoscribe.MsgShareFailed, severity: mythoscribe.SeverityDanger}
		}
		return nil
	}
}

func (m Model) copy(text, ok, failed string) tea.Cmd {
	cb, log := m.clipboard, m.log
	return func() tea.Msg {
		if cb == nil {
			return notifyMsg{message: failed, severity: mythoscribe.SeverityDanger}
		}
		if err := cb.Copy(text); err != nil {
			log.WithError(err).Warn("clipboard copy failed")
			return notifyMsg{message: failed, severity: mythoscribe.SeverityDanger}
		}
		return notifyMsg{message: ok, severity: mythoscribe.SeveritySuccess}
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	note, err := m.session.ToggleTheme()
	if err != nil {
		m.log.WithError(err).Warn("theme preference not saved")
	}
	m.applyTheme()
	m.refreshStory(false)
	return expireAfter(note)
}

// openImage shows gallery entry n (1-based) in the image modal. The modal
// is created on first use and reused afterwards.
func (m *Model) openImage(n int) {
	view := m.session.Story()
	if view == nil || n < 1 || n > len(view.Images) {
		return
	}
	if m.modal == nil {
		m.modal = &imageModal{}
	}
	m.modal.show(view.Images[n-1])
}

// alert raises a notification and schedules its expiry.
func (m Model) alert(message string, severity mythoscribe.Severity, d time.Duration) tea.Cmd {
	return expireAfter(m.session.Alerts.Notify(message, severity, d))
}

func (m Model) alertFor(a *mythoscribe.Alert) tea.Cmd {
	if a == nil {
		return nil
	}
	return m.alert(a.Message, a.Severity, 0)
}

func notify(message string, severity mythoscribe.Severity, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{message: message, severity: severity, duration: d}
	}
}

func expireAfter(note mythoscribe.Notification) tea.Cmd {
	return tea.Tick(note.Duration, func(time.Time) tea.Msg {
		return alertExpiredMsg{id: note.ID}
	})
}
