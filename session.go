package mythoscribe

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Client messages.
const (
	MsgWelcome        = "🕉 Welcome to Mythoscribe - Your Vedic Story Companion ✨"
	MsgStoryCopied    = "Story copied to clipboard!"
	MsgCopyFailed     = "Failed to copy story"
	MsgLinkCopied     = "Story link copied to clipboard!"
	MsgLinkCopyFailed = "Failed to copy story link"
	MsgDownloadFailed = "Failed to download story"
	MsgShareFailed    = "Failed to share story"
)

// WelcomeDuration is how long the startup greeting stays visible.
const WelcomeDuration = 3 * time.Second

// ShareTitle is the title handed to a Sharer.
const ShareTitle = "Vedic Story"

// ExamplePrompts are offered as ready-made prompts.
var ExamplePrompts = []string{
	"The story of Prahlada's unwavering devotion",
	"Arjuna's lesson of focus at the archery contest",
	"How Ganesha came to have an elephant head",
	"Savitri's courage before Yama, the lord of death",
	"The churning of the cosmic ocean",
}

// ThemeSwitchedMessage is the notification shown after a theme toggle.
func ThemeSwitchedMessage(mode ThemeMode) string {
	return "✨ Switched to " + mode.DisplayName()
}

// Session is the application state created once at startup. It owns the
// controllers and the story currently on display; the story ID itself is
// owned by the generation controller.
type Session struct {
	Themes     *ThemeController
	Generation *GenerationController
	Alerts     *Notifications
	BaseURL    string

	log   logrus.FieldLogger
	story *StoryView
	audio *MediaController
	video *MediaController
}

// NewSession assembles a session from its controllers.
func NewSession(themes *ThemeController, generation *GenerationController, alerts *Notifications, baseURL string, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if alerts == nil {
		alerts = &Notifications{}
	}
	return &Session{
		Themes:     themes,
		Generation: generation,
		Alerts:     alerts,
		BaseURL:    baseURL,
		log:        log,
	}
}

// Story returns the story on display, or nil.
func (s *Session) Story() *StoryView {
	return s.story
}

// Audio returns the narration controller, or nil when the story has none.
func (s *Session) Audio() *MediaController {
	return s.audio
}

// Video returns the video controller, or nil when the story has none.
func (s *Session) Video() *MediaController {
	return s.video
}

// Present replaces the displayed story. Media of the previous story is
// closed; a controller is created for each media kind the story carries,
// waiting for its element to be attached.
func (s *Session) Present(story *Story) (StoryView, error) {
	err := s.CloseMedia()

	view := NewStoryView(story, s.BaseURL)
	s.story = &view
	if view.HasAudio() {
		s.audio = NewMediaController(MediaAudio, nil, s.log)
	}
	if view.HasVideo() {
		s.video = NewMediaController(MediaVideo, nil, s.log)
	}
	return view, err
}

// CloseMedia releases both media controllers.
func (s *Session) CloseMedia() error {
	var errs []error
	for _, c := range []*MediaController{s.audio, s.video} {
		if c != nil {
			errs = append(errs, c.Close())
		}
	}
	s.audio, s.video = nil, nil
	return errors.Join(errs...)
}

// ToggleTheme flips the theme and raises the switch notification. The
// returned error reports a failure to persist; the switch still applies.
func (s *Session) ToggleTheme() (Notification, error) {
	mode, err := s.Themes.Toggle()
	note := s.Alerts.Notify(ThemeSwitchedMessage(mode), SeverityInfo, 0)
	return note, err
}
