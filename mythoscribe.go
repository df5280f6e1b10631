// Package mythoscribe provides domain types for generating and viewing
// illustrated, narrated stories produced by a remote generation service.
package mythoscribe

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrStoryNotFound is returned when the service has no story for an ID.
var ErrStoryNotFound = errors.New("story not found")

// StoryID is the opaque identifier the service assigns to a story.
// The service may encode it as a JSON number or string.
type StoryID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *StoryID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = StoryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = StoryID(n.String())
	return nil
}

// Characters lists the characters appearing in a story.
// The service sends either a JSON array of names or a single string; a
// single string decodes to a one-element list so it renders verbatim.
type Characters []string

// UnmarshalJSON accepts an array of strings or a single string.
func (c *Characters) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*c = nil
		} else {
			*c = Characters{s}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = list
	return nil
}

// String joins the names with a comma-space separator.
func (c Characters) String() string {
	return strings.Join(c, ", ")
}

// Story is a generated narrative with its optional media.
type Story struct {
	ID         StoryID    `json:"id"`
	Title      string     `json:"title"`
	Prompt     string     `json:"prompt,omitempty"`
	Content    string     `json:"content"`
	Characters Characters `json:"characters,omitempty"`
	Moral      string     `json:"moral,omitempty"`
	Images     []string   `json:"images,omitempty"`
	AudioPath  string     `json:"audio_path,omitempty"`
	VideoPath  string     `json:"video_path,omitempty"`
	CreatedAt  string     `json:"created_at,omitempty"`
}

// Envelope is the success/failure-tagged wrapper returned by the generation
// endpoint. Story is set only on success; Error and Message only on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Story   *Story `json:"story,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// StoryGenerator requests a new story from the generation service.
type StoryGenerator interface {
	// Generate submits the prompt and blocks until the full story or a
	// failure is returned. Failures are *ServiceError or *TransportError.
	Generate(ctx context.Context, prompt string) (*Story, error)
}

// Viewer runs the interactive client until the user quits. A non-nil
// story is displayed on start.
type Viewer interface {
	View(ctx context.Context, story *Story) error
}

// StoryLibrary reads and removes previously generated stories on the service.
type StoryLibrary interface {
	Stories(ctx context.Context) ([]Story, error)
	// Story returns ErrStoryNotFound when the ID is unknown.
	Story(ctx context.Context, id StoryID) (*Story, error)
	// Delete removes a story. It returns ErrStoryNotFound when the ID is unknown.
	Delete(ctx context.Context, id StoryID) error
}

// StoryDownloader fetches the downloadable rendition of a story.
type StoryDownloader interface {
	// Download saves the story into dir and returns the written path.
	Download(ctx context.Context, id StoryID, dir string) (string, error)
}

// PreferenceStore is durable key/value storage for client preferences.
type PreferenceStore interface {
	// Get returns ok=false when the key has never been set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// Sharer hands a link to a platform share facility.
type Sharer interface {
	Share(title, url string) error
}

// MediaPlayer opens playable media elements.
type MediaPlayer interface {
	// Open starts loading url and returns the element once it accepts
	// commands. The element emits its own events from then on.
	Open(ctx context.Context, kind MediaKind, url string) (MediaElement, error)
}

// MediaElement is a native playback element. Playback state is owned by
// the element; callers only issue commands and observe Events.
type MediaElement interface {
	Play() error
	Pause() error
	Seek(position time.Duration) error
	SetMuted(muted bool) error
	Fullscreen() error
	// Events is closed when the element is closed or its backend exits.
	Events() <-chan MediaEvent
	Close() error
}
