// Package bubbletea provides the interactive story client using the Bubble Tea framework.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mythoscribe/mythoscribe"
)

// Compile-time interface verification.
var _ mythoscribe.Viewer = (*Viewer)(nil)

// Viewer implements mythoscribe.Viewer using a Bubble Tea TUI.
type Viewer struct {
	generator mythoscribe.StoryGenerator
	opts      []ModelOption
}

// NewViewer creates a new Viewer. opts are applied to every model it runs.
func NewViewer(generator mythoscribe.StoryGenerator, opts ...ModelOption) *Viewer {
	return &Viewer{generator: generator, opts: opts}
}

// View runs the client and blocks until the user exits or ctx is done.
// A non-nil story is displayed on start.
func (v *Viewer) View(ctx context.Context, story *mythoscribe.Story) error {
	opts := append([]ModelOption{WithContext(ctx)}, v.opts...)
	if story != nil {
		opts = append(opts, WithInitialStory(story))
	}
	m := NewModel(v.generator, opts...)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return finish(ctx, m, err)
}

// finish releases the media of a finished program and reports its error.
// Every copy of the model shares one session, so closing m closes the
// media opened by the program's final model.
func finish(ctx context.Context, m Model, runErr error) error {
	m.closeMedia()
	if runErr != nil && ctx.Err() != nil {
		// Interrupted by signal.
		return nil
	}
	return runErr
}
