package mpv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/mythoscribe/mythoscribe"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ mythoscribe.MediaElement = (*Element)(nil)

// Properties observed on every element. The observe ID is the index + 1.
var observedProperties = []string{
	"pause",
	"time-pos",
	"duration",
	"mute",
	"width",
	"height",
	"eof-reached",
}

const (
	// timeUpdateStep is the minimum playhead movement reported as a
	// MediaTimeUpdate; mpv reports time-pos on every frame.
	timeUpdateStep = 250 * time.Millisecond

	writeTimeout = time.Second
	quitGrace    = 2 * time.Second
	eventBuffer  = 64
)

// ErrClosed is returned for commands on a closed element.
var ErrClosed = errors.New("player closed")

type deadliner interface {
	SetWriteDeadline(t time.Time) error
}

// Element is a MediaElement backed by one mpv instance's JSON IPC
// connection. Commands are written without waiting for replies; failed
// replies are logged.
type Element struct {
	conn   io.ReadWriteCloser
	log    logrus.FieldLogger
	events chan mythoscribe.MediaEvent
	done   chan struct{}
	g      errgroup.Group

	mu     sync.Mutex // guards writes and nextID
	nextID int64

	closeOnce sync.Once
	closeErr  error
	cleanup   func()

	// Read loop state.
	width, height int
	lastTime      time.Duration
	haveTime      bool
}

// NewElement starts reading events from conn, subscribes to playback
// properties and loads url. conn is usually a unix socket to a running mpv
// started with --idle.
func NewElement(conn io.ReadWriteCloser, url string, log logrus.FieldLogger) (*Element, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Element{
		conn:   conn,
		log:    log,
		events: make(chan mythoscribe.MediaEvent, eventBuffer),
		done:   make(chan struct{}),
	}
	e.g.Go(e.readLoop)

	for i, name := range observedProperties {
		if err := e.send("observe_property", i+1, name); err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}
	if err := e.send("loadfile", url); err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return e, nil
}

// Events returns the element's event stream. It is closed when the player
// exits or the element is closed.
func (e *Element) Events() <-chan mythoscribe.MediaEvent {
	return e.events
}

// Play resumes playback.
func (e *Element) Play() error {
	return e.send("set_property", "pause", false)
}

// Pause pauses playback.
func (e *Element) Pause() error {
	return e.send("set_property", "pause", true)
}

// Seek moves the playhead to an absolute position.
func (e *Element) Seek(pos time.Duration) error {
	return e.send("seek", pos.Seconds(), "absolute")
}

// SetMuted mutes or unmutes the output.
func (e *Element) SetMuted(muted bool) error {
	return e.send("set_property", "mute", muted)
}

// Fullscreen switches the video window to fullscreen.
func (e *Element) Fullscreen() error {
	return e.send("set_property", "fullscreen", true)
}

// Close asks mpv to quit and releases the connection. It is safe to call
// more than once.
func (e *Element) Close() error {
	e.closeOnce.Do(func() {
		_ = e.send("quit")
		close(e.done)
		_ = e.conn.Close()
		e.closeErr = e.g.Wait()
		if e.cleanup != nil {
			e.cleanup()
		}
	})
	return e.closeErr
}

// supervise ties the element to the mpv process: the connection is closed
// when the process exits, and the process is killed if it outlives Close
// by more than quitGrace.
func (e *Element) supervise(exited <-chan error, kill func() error) {
	e.g.Go(func() error {
		select {
		case err := <-exited:
			_ = e.conn.Close()
			if err != nil {
				e.log.WithError(err).Info("player exited")
			}
			return nil
		case <-e.done:
		}
		select {
		case <-exited:
		case <-time.After(quitGrace):
			_ = kill()
			<-exited
		}
		return nil
	})
}

func (e *Element) send(args ...any) error {
	select {
	case <-e.done:
		return ErrClosed
	default:
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	msg, err := sjson.SetBytes([]byte(`{}`), "command", args)
	if err != nil {
		return err
	}
	msg, err = sjson.SetBytes(msg, "request_id", e.nextID)
	if err != nil {
		return err
	}
	msg = append(msg, '\n')

	if d, ok := e.conn.(deadliner); ok {
		_ = d.SetWriteDeadline(time.Now().Add(writeTimeout))
	}
	if _, err := e.conn.Write(msg); err != nil {
		return fmt.Errorf("send %v: %w", args[0], err)
	}
	return nil
}

func (e *Element) readLoop() error {
	defer close(e.events)

	sc := bufio.NewScanner(e.conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		ev, ok := e.translate(sc.Bytes())
		if !ok {
			continue
		}
		select {
		case e.events <- ev:
		case <-e.done:
			return nil
		}
	}

	select {
	case <-e.done:
		return nil
	default:
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		return fmt.Errorf("read player events: %w", err)
	}
	return nil
}

// translate maps one IPC line to a media event. Replies and events with no
// media meaning yield false.
func (e *Element) translate(line []byte) (mythoscribe.MediaEvent, bool) {
	if !gjson.ValidBytes(line) {
		e.log.WithField("line", string(line)).Debug("ignoring malformed player message")
		return mythoscribe.MediaEvent{}, false
	}
	msg := gjson.ParseBytes(line)

	event := msg.Get("event")
	if !event.Exists() {
		if status := msg.Get("error").String(); status != "" && status != "success" {
			e.log.WithFields(logrus.Fields{
				"request_id": msg.Get("request_id").Int(),
				"error":      status,
			}).Warn("player command failed")
		}
		return mythoscribe.MediaEvent{}, false
	}

	switch event.String() {
	case "start-file":
		e.haveTime = false
		return mythoscribe.MediaEvent{Type: mythoscribe.MediaLoadStart}, true
	case "file-loaded":
		return mythoscribe.MediaEvent{Type: mythoscribe.MediaCanPlay}, true
	case "end-file":
		if msg.Get("reason").String() == "error" {
			cause := msg.Get("file_error").String()
			if cause == "" {
				cause = "unknown error"
			}
			return mythoscribe.MediaEvent{
				Type: mythoscribe.MediaError,
				Err:  fmt.Errorf("player: %s", cause),
			}, true
		}
	case "property-change":
		return e.propertyChange(msg.Get("name").String(), msg.Get("data"))
	}
	return mythoscribe.MediaEvent{}, false
}

func (e *Element) propertyChange(name string, data gjson.Result) (mythoscribe.MediaEvent, bool) {
	if !data.Exists() || data.Type == gjson.Null {
		return mythoscribe.MediaEvent{}, false
	}

	switch name {
	case "pause":
		if data.Bool() {
			return mythoscribe.MediaEvent{Type: mythoscribe.MediaPause}, true
		}
		return mythoscribe.MediaEvent{Type: mythoscribe.MediaPlay}, true
	case "time-pos":
		pos := seconds(data.Float())
		if e.haveTime && absDuration(pos-e.lastTime) < timeUpdateStep {
			return mythoscribe.MediaEvent{}, false
		}
		e.lastTime, e.haveTime = pos, true
		return mythoscribe.MediaEvent{Type: mythoscribe.MediaTimeUpdate, CurrentTime: pos}, true
	case "duration":
		return mythoscribe.MediaEvent{Type: mythoscribe.MediaLoadedMetadata, Duration: seconds(data.Float())}, true
	case "width", "height":
		if name == "width" {
			e.width = int(data.Int())
		} else {
			e.height = int(data.Int())
		}
		if e.width == 0 || e.height == 0 {
			return mythoscribe.MediaEvent{}, false
		}
		return mythoscribe.MediaEvent{
			Type:   mythoscribe.MediaLoadedMetadata,
			Width:  e.width,
			Height: e.height,
		}, true
	case "mute":
		return mythoscribe.MediaEvent{Type: mythoscribe.MediaVolumeChange, Muted: data.Bool()}, true
	case "eof-reached":
		if data.Bool() {
			return mythoscribe.MediaEvent{Type: mythoscribe.MediaEnd}, true
		}
	}
	return mythoscribe.MediaEvent{}, false
}

func seconds(s float64) time.Duration {
	if math.IsNaN(s) || s < 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
