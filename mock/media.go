package mock

import (
	"context"
	"sync"
	"time"

	"github.com/mythoscribe/mythoscribe"
)

// Compile-time interface verification.
var (
	_ mythoscribe.MediaPlayer  = (*MediaPlayer)(nil)
	_ mythoscribe.MediaElement = (*MediaElement)(nil)
)

// MediaPlayer is a mock implementation of mythoscribe.MediaPlayer.
type MediaPlayer struct {
	OpenFn func(ctx context.Context, kind mythoscribe.MediaKind, url string) (mythoscribe.MediaElement, error)
}

func (p *MediaPlayer) Open(ctx context.Context, kind mythoscribe.MediaKind, url string) (mythoscribe.MediaElement, error) {
	return p.OpenFn(ctx, kind, url)
}

// MediaElement is a mythoscribe.MediaElement that records the commands it
// receives. Tests drive its event stream through Emit.
type MediaElement struct {
	mu       sync.Mutex
	commands []string
	seeks    []time.Duration
	events   chan mythoscribe.MediaEvent
	closed   bool

	// Err, when set, is returned by every command.
	Err error
	// CloseErr, when set, is returned by Close.
	CloseErr error
}

// NewMediaElement returns an element with a buffered event stream.
func NewMediaElement() *MediaElement {
	return &MediaElement{events: make(chan mythoscribe.MediaEvent, 16)}
}

// Emit delivers ev on the event stream.
func (e *MediaElement) Emit(ev mythoscribe.MediaEvent) {
	e.events <- ev
}

// Commands returns the names of the commands received so far.
func (e *MediaElement) Commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.commands...)
}

// Seeks returns the positions passed to Seek.
func (e *MediaElement) Seeks() []time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]time.Duration(nil), e.seeks...)
}

// Closed reports whether Close was called.
func (e *MediaElement) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *MediaElement) record(cmd string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, cmd)
	return e.Err
}

func (e *MediaElement) Play() error  { return e.record("play") }
func (e *MediaElement) Pause() error { return e.record("pause") }

func (e *MediaElement) Seek(position time.Duration) error {
	e.mu.Lock()
	e.seeks = append(e.seeks, position)
	e.mu.Unlock()
	return e.record("seek")
}

func (e *MediaElement) SetMuted(muted bool) error {
	if muted {
		return e.record("mute")
	}
	return e.record("unmute")
}

func (e *MediaElement) Fullscreen() error { return e.record("fullscreen") }

func (e *MediaElement) Events() <-chan mythoscribe.MediaEvent {
	return e.events
}

func (e *MediaElement) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	return e.CloseErr
}
