// Package mpv plays story audio and video through mpv, driven over its JSON
// IPC socket.
package mpv

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/mythoscribe/mythoscribe"
	"github.com/sirupsen/logrus"
)

// Compile-time interface verification.
var _ mythoscribe.MediaPlayer = (*Player)(nil)

// DefaultBinary is the player executable looked up in PATH.
const DefaultBinary = "mpv"

// DefaultConnectTimeout bounds how long Open waits for the IPC socket.
const DefaultConnectTimeout = 5 * time.Second

var socketSeq atomic.Int64

// Player starts one mpv process per opened media URL.
type Player struct {
	binary         string
	socketDir      string
	connectTimeout time.Duration
	log            logrus.FieldLogger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithBinary sets the mpv executable.
func WithBinary(path string) PlayerOption {
	return func(p *Player) {
		p.binary = path
	}
}

// WithSocketDir sets where IPC sockets are created.
func WithSocketDir(dir string) PlayerOption {
	return func(p *Player) {
		p.socketDir = dir
	}
}

// WithConnectTimeout sets how long Open waits for mpv to accept commands.
func WithConnectTimeout(d time.Duration) PlayerOption {
	return func(p *Player) {
		p.connectTimeout = d
	}
}

// WithLogger sets the logger for player diagnostics.
func WithLogger(log logrus.FieldLogger) PlayerOption {
	return func(p *Player) {
		p.log = log
	}
}

// NewPlayer returns a Player using DefaultBinary.
func NewPlayer(opts ...PlayerOption) *Player {
	p := &Player{
		binary:         DefaultBinary,
		socketDir:      os.TempDir(),
		connectTimeout: DefaultConnectTimeout,
		log:            logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Available reports whether the mpv executable can be found.
func (p *Player) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

// Open starts a paused mpv for url and returns its element. The process is
// killed when ctx is cancelled.
func (p *Player) Open(ctx context.Context, kind mythoscribe.MediaKind, url string) (mythoscribe.MediaElement, error) {
	sock := filepath.Join(p.socketDir, fmt.Sprintf("mythoscribe-%d-%d.sock", os.Getpid(), socketSeq.Add(1)))
	_ = os.Remove(sock)

	cmd := exec.CommandContext(ctx, p.binary, args(kind, sock)...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", p.binary, err)
	}
	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	log := p.log.WithFields(logrus.Fields{"media": kind.String(), "pid": cmd.Process.Pid})

	conn, err := p.dial(ctx, sock, exited)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = os.Remove(sock)
		return nil, err
	}

	el, err := NewElement(conn, url, log)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = os.Remove(sock)
		return nil, err
	}
	el.cleanup = func() { _ = os.Remove(sock) }
	el.supervise(exited, cmd.Process.Kill)
	log.WithField("url", url).Debug("player started")
	return el, nil
}

func (p *Player) dial(ctx context.Context, sock string, exited <-chan error) (net.Conn, error) {
	deadline := time.NewTimer(p.connectTimeout)
	defer deadline.Stop()
	retry := time.NewTicker(50 * time.Millisecond)
	defer retry.Stop()

	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", sock)
		if err == nil {
			return conn, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case werr := <-exited:
			if werr == nil {
				werr = errors.New("exited")
			}
			return nil, fmt.Errorf("%s stopped before accepting commands: %w", p.binary, werr)
		case <-deadline.C:
			return nil, fmt.Errorf("connect to %s: %w", p.binary, err)
		case <-retry.C:
		}
	}
}

// args builds the mpv command line. mpv starts idle and paused so that the
// element sees every load event after subscribing.
func args(kind mythoscribe.MediaKind, sock string) []string {
	a := []string{
		"--idle=yes",
		"--pause",
		"--keep-open=yes",
		"--no-terminal",
		"--input-ipc-server=" + sock,
		"--title=Mythoscribe",
	}
	if kind == mythoscribe.MediaAudio {
		a = append(a, "--no-video", "--force-window=no")
	} else {
		a = append(a, "--force-window=yes")
	}
	return a
}
