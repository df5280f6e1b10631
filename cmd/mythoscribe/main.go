package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mythoscribe/mythoscribe"
	"github.com/mythoscribe/mythoscribe/bubbletea"
	"github.com/mythoscribe/mythoscribe/clipboard"
	"github.com/mythoscribe/mythoscribe/config"
	"github.com/mythoscribe/mythoscribe/fs"
	mhttp "github.com/mythoscribe/mythoscribe/http"
	"github.com/mythoscribe/mythoscribe/lipgloss"
	"github.com/mythoscribe/mythoscribe/mpv"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const usage = `usage: mythoscribe [command] [args]

Commands:
  (none)             open the story client
  open <id>          open the client showing a saved story
  generate <prompt>  generate a story and print it
  library            list saved stories
  show <id>          print a saved story
  delete <id>        delete a saved story

Settings are read from MYTHOSCRIBE_* environment variables and config.yaml
in the config directory.`

// ErrUsage is returned for missing or unknown commands and arguments.
var ErrUsage = errors.New("invalid arguments")

// GenerationError carries the user-facing alert for a failed generation.
type GenerationError struct {
	Alert mythoscribe.Alert
	Err   error
}

func (e *GenerationError) Error() string {
	return e.Alert.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// App encapsulates the application logic for testing.
type App struct {
	Generator mythoscribe.StoryGenerator
	Library   mythoscribe.StoryLibrary
	Viewer    mythoscribe.Viewer
	Formatter mythoscribe.StoryFormatter
	Output    io.Writer
	BaseURL   string
	Log       logrus.FieldLogger
}

// Browse opens the interactive client.
func (a *App) Browse(ctx context.Context) error {
	return a.Viewer.View(ctx, nil)
}

// Open opens the interactive client showing story id.
func (a *App) Open(ctx context.Context, id mythoscribe.StoryID) error {
	story, err := a.Library.Story(ctx, id)
	if err != nil {
		return fmt.Errorf("loading story %s: %w", id, err)
	}
	return a.Viewer.View(ctx, story)
}

// Generate generates a story for prompt and prints it.
func (a *App) Generate(ctx context.Context, prompt string) error {
	ctrl := mythoscribe.NewGenerationController(a.Generator, mythoscribe.WithGenerationLogger(a.logger()))
	story, err := ctrl.Submit(ctx, prompt)
	if err != nil {
		return &GenerationError{Alert: mythoscribe.AlertFor(err), Err: err}
	}
	return a.print(story)
}

// List prints the saved stories.
func (a *App) List(ctx context.Context) error {
	stories, err := a.Library.Stories(ctx)
	if err != nil {
		return fmt.Errorf("listing stories: %w", err)
	}
	_, err = io.WriteString(a.Output, mythoscribe.FormatLibrary(stories))
	return err
}

// Show prints saved story id.
func (a *App) Show(ctx context.Context, id mythoscribe.StoryID) error {
	story, err := a.Library.Story(ctx, id)
	if err != nil {
		return fmt.Errorf("loading story %s: %w", id, err)
	}
	return a.print(story)
}

// Delete removes saved story id.
func (a *App) Delete(ctx context.Context, id mythoscribe.StoryID) error {
	if err := a.Library.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting story %s: %w", id, err)
	}
	a.logger().WithField("story_id", id).Info("story deleted")
	_, err := fmt.Fprintf(a.Output, "Story %s deleted\n", id)
	return err
}

// Run dispatches args, the command line without the program name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.Browse(ctx)
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "generate":
		return a.Generate(ctx, strings.Join(rest, " "))
	case "library":
		return a.List(ctx)
	case "show", "open", "delete":
		if len(rest) != 1 || rest[0] == "" {
			return fmt.Errorf("%w: %s needs exactly one story id", ErrUsage, cmd)
		}
		id := mythoscribe.StoryID(rest[0])
		switch cmd {
		case "show":
			return a.Show(ctx, id)
		case "delete":
			return a.Delete(ctx, id)
		}
		return a.Open(ctx, id)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) print(story *mythoscribe.Story) error {
	view := mythoscribe.NewStoryView(story, a.BaseURL)
	_, err := io.WriteString(a.Output, a.Formatter.Format(view))
	return err
}

func (a *App) logger() logrus.FieldLogger {
	if a.Log == nil {
		return logrus.StandardLogger()
	}
	return a.Log
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("mythoscribe", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprintln(flags.Output(), usage) }
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a rotating file.
	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	defer logFile.Close()
	log := logrus.New()
	log.SetOutput(logFile)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := mhttp.NewClient(cfg.BaseURL)

	opts := []bubbletea.ModelOption{
		bubbletea.WithBaseURL(cfg.BaseURL),
		bubbletea.WithThemes(lipgloss.DarkTheme(), lipgloss.LightTheme()),
		bubbletea.WithPreferences(fs.NewPreferences(filepath.Join(cfg.ConfigDir, fs.PreferencesFile))),
		bubbletea.WithDownloader(client, cfg.DownloadDir),
		bubbletea.WithLogger(log),
		bubbletea.WithAlertDuration(cfg.AlertDuration),
	}
	if cb := clipboard.NewSystem(); cb.Available() {
		opts = append(opts, bubbletea.WithClipboard(cb))
	} else {
		log.Info("system clipboard unavailable")
	}
	if cfg.PlayerEnabled() {
		player := mpv.NewPlayer(mpv.WithBinary(cfg.Player), mpv.WithLogger(log))
		if player.Available() {
			opts = append(opts, bubbletea.WithPlayer(player))
		} else {
			log.WithField("player", cfg.Player).Warn("media player not found, playback disabled")
		}
	}

	app := &App{
		Generator: client,
		Library:   client,
		Viewer:    bubbletea.NewViewer(client, opts...),
		Formatter: &mythoscribe.TextFormatter{},
		Output:    os.Stdout,
		BaseURL:   cfg.BaseURL,
		Log:       log,
	}
	log.WithField("base_url", cfg.BaseURL).Debug("starting")
	return app.Run(ctx, flags.Args())
}
