package mythoscribe

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrMediaUnavailable is returned for commands on media that failed to
// load or is not attached yet.
var ErrMediaUnavailable = errors.New("media unavailable")

// SeekStep is how far a single seek command moves the playhead.
const SeekStep = 10 * time.Second

// MediaKind distinguishes audio narration from video.
type MediaKind int

// Media kinds.
const (
	MediaAudio MediaKind = iota
	MediaVideo
)

// String returns the kind name.
func (k MediaKind) String() string {
	if k == MediaVideo {
		return "video"
	}
	return "audio"
}

// MediaState is the playback state reflected from a media element.
type MediaState int

// Media states.
const (
	MediaPaused MediaState = iota
	MediaLoading
	MediaPlaying
	MediaEnded
	MediaErrored
)

// String returns the state name.
func (s MediaState) String() string {
	switch s {
	case MediaLoading:
		return "loading"
	case MediaPlaying:
		return "playing"
	case MediaEnded:
		return "ended"
	case MediaErrored:
		return "errored"
	default:
		return "paused"
	}
}

// MediaEventType names an event emitted by a media element.
type MediaEventType int

// Media event types.
const (
	MediaLoadStart MediaEventType = iota
	MediaCanPlay
	MediaPlay
	MediaPause
	MediaEnd
	MediaError
	MediaTimeUpdate
	MediaLoadedMetadata
	MediaVolumeChange
)

// MediaEvent is one event from a media element. Only the fields relevant
// to Type are set.
type MediaEvent struct {
	Type        MediaEventType
	CurrentTime time.Duration // MediaTimeUpdate
	Duration    time.Duration // MediaLoadedMetadata, zero when unknown
	Width       int           // MediaLoadedMetadata, video only
	Height      int           // MediaLoadedMetadata, video only
	Muted       bool          // MediaVolumeChange
	Err         error         // MediaError
}

// Media notification messages.
const (
	MsgVideoCompleted = "Video completed! 🎉"
	MsgAudioCompleted = "Audio narration completed!"
	MsgVideoError     = "The video could not be loaded. Please refresh and try again."
	MsgAudioError     = "The audio narration could not be loaded. Please refresh and try again."
	MsgMuted          = "🔇 Audio muted"
	MsgUnmuted        = "🔊 Audio unmuted"
)

// MediaController reflects a media element's events into a playback state
// and issues play, pause and seek commands. It never sets playback state
// itself; state only changes in Handle.
type MediaController struct {
	kind    MediaKind
	element MediaElement
	log     logrus.FieldLogger

	state       MediaState
	currentTime time.Duration
	duration    time.Duration
	width       int
	height      int
	muted       bool
}

// NewMediaController creates a controller for media of the given kind that
// is loading. The element may be attached later with Attach.
func NewMediaController(kind MediaKind, element MediaElement, log logrus.FieldLogger) *MediaController {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &MediaController{
		kind:    kind,
		element: element,
		log:     log.WithField("media", kind.String()),
		state:   MediaLoading,
	}
}

// Attach sets the element once it has been opened.
func (c *MediaController) Attach(element MediaElement) {
	c.element = element
}

// Element returns the attached element, or nil.
func (c *MediaController) Element() MediaElement {
	return c.element
}

// Kind returns the media kind.
func (c *MediaController) Kind() MediaKind {
	return c.kind
}

// State returns the reflected playback state.
func (c *MediaController) State() MediaState {
	return c.state
}

// Disabled reports whether the play control accepts no input.
func (c *MediaController) Disabled() bool {
	return c.state == MediaLoading || c.state == MediaErrored || c.element == nil
}

// Muted reports the element's last reported mute state.
func (c *MediaController) Muted() bool {
	return c.muted
}

// Position returns the last reported playhead and duration.
func (c *MediaController) Position() (current, duration time.Duration) {
	return c.currentTime, c.duration
}

// Progress returns the played fraction in [0, 1].
func (c *MediaController) Progress() float64 {
	if c.state == MediaEnded {
		return 1
	}
	if c.duration <= 0 {
		return 0
	}
	p := float64(c.currentTime) / float64(c.duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Quality returns the "WIDTHxHEIGHT" readout, or "" before metadata.
func (c *MediaController) Quality() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", c.width, c.height)
}

// Handle applies an element event and returns the alert it raises, if any.
// MediaErrored is terminal: later events are ignored.
func (c *MediaController) Handle(ev MediaEvent) *Alert {
	if c.state == MediaErrored {
		return nil
	}

	switch ev.Type {
	case MediaLoadStart:
		c.state = MediaLoading
	case MediaCanPlay:
		if c.state == MediaLoading {
			c.state = MediaPaused
		}
	case MediaPlay:
		c.state = MediaPlaying
	case MediaPause:
		// A pause accompanies the end of playback and may precede canplay.
		if c.state == MediaPlaying {
			c.state = MediaPaused
		}
	case MediaEnd:
		c.state = MediaEnded
		c.currentTime = c.duration
		msg := MsgAudioCompleted
		if c.kind == MediaVideo {
			msg = MsgVideoCompleted
		}
		return &Alert{Message: msg, Severity: SeveritySuccess}
	case MediaError:
		c.state = MediaErrored
		c.log.WithError(ev.Err).Warn("media playback failed")
		msg := MsgAudioError
		if c.kind == MediaVideo {
			msg = MsgVideoError
		}
		return &Alert{Message: msg, Severity: SeverityWarning}
	case MediaTimeUpdate:
		c.currentTime = ev.CurrentTime
	case MediaLoadedMetadata:
		if ev.Duration > 0 {
			c.duration = ev.Duration
		}
		if ev.Width > 0 && ev.Height > 0 {
			c.width, c.height = ev.Width, ev.Height
		}
	case MediaVolumeChange:
		if ev.Muted == c.muted {
			return nil
		}
		c.muted = ev.Muted
		if c.muted {
			return &Alert{Message: MsgMuted, Severity: SeverityInfo}
		}
		return &Alert{Message: MsgUnmuted, Severity: SeverityInfo}
	}
	return nil
}

// Toggle pauses playing media and plays anything else. Ended media is
// rewound before playing again.
func (c *MediaController) Toggle() error {
	if c.Disabled() {
		return ErrMediaUnavailable
	}
	switch c.state {
	case MediaPlaying:
		return c.element.Pause()
	case MediaEnded:
		if err := c.element.Seek(0); err != nil {
			return err
		}
	}
	return c.element.Play()
}

// SeekBy moves the playhead by delta, clamped to [0, duration]. While the
// duration is unknown only the lower bound applies.
func (c *MediaController) SeekBy(delta time.Duration) error {
	if c.element == nil || c.state == MediaErrored {
		return ErrMediaUnavailable
	}
	target := c.currentTime + delta
	if c.duration > 0 && target > c.duration {
		target = c.duration
	}
	if target < 0 {
		target = 0
	}
	return c.element.Seek(target)
}

// ToggleMute asks the element to flip its mute state. The new state is
// reflected once the element reports MediaVolumeChange.
func (c *MediaController) ToggleMute() error {
	if c.element == nil || c.state == MediaErrored {
		return ErrMediaUnavailable
	}
	return c.element.SetMuted(!c.muted)
}

// Fullscreen asks the element to enter fullscreen.
func (c *MediaController) Fullscreen() error {
	if c.element == nil || c.state == MediaErrored {
		return ErrMediaUnavailable
	}
	return c.element.Fullscreen()
}

// Close releases the attached element.
func (c *MediaController) Close() error {
	if c.element == nil {
		return nil
	}
	return c.element.Close()
}
