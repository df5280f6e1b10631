package bubbletea

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mythoscribe/mythoscribe"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func TestRenderStory(t *testing.T) {
	t.Parallel()

	view := mythoscribe.NewStoryView(&mythoscribe.Story{
		ID:         "42",
		Title:      "The Brave Mouse",
		Content:    "Once upon a time\n\tthere was a mouse",
		Characters: mythoscribe.Characters{"Mouse", "Lion"},
		Moral:      "Courage is small",
		Images:     []string{"/img/1.png"},
	}, "http://localhost:5000")

	out := renderStory(view, mythoscribe.Styles{}, plainRenderer(), 80)

	assert.Contains(t, out, "The Brave Mouse")
	assert.Contains(t, out, "Characters: Mouse, Lion")
	assert.Contains(t, out, "Moral: Courage is small")
	assert.Contains(t, out, "there was a mouse")
	assert.Contains(t, out, "[1] Story illustration 1")
	assert.Contains(t, out, "Download: http://localhost:5000/download_story/42")
	assert.Contains(t, out, "http://localhost:5000/story/42")
	assert.NotContains(t, out, "\t")
}

func TestRenderStory_OmitsEmptyMetadata(t *testing.T) {
	t.Parallel()

	view := mythoscribe.NewStoryView(&mythoscribe.Story{ID: "1", Title: "Untitled", Content: "Text"}, "")

	out := renderStory(view, mythoscribe.Styles{}, plainRenderer(), 80)

	assert.NotContains(t, out, "Characters:")
	assert.NotContains(t, out, "Moral:")
	assert.NotContains(t, out, "Illustrations")
}

func TestMediaButtonLabel(t *testing.T) {
	t.Parallel()

	c := mythoscribe.NewMediaController(mythoscribe.MediaVideo, nil, nil)
	assert.Equal(t, "No player", mediaButtonLabel(c, false))
	assert.Equal(t, "… Loading", mediaButtonLabel(c, true))

	c.Handle(mythoscribe.MediaEvent{Type: mythoscribe.MediaCanPlay})
	assert.Equal(t, "▶ Play", mediaButtonLabel(c, true))
	c.Handle(mythoscribe.MediaEvent{Type: mythoscribe.MediaPlay})
	assert.Equal(t, "⏸ Pause", mediaButtonLabel(c, true))
	c.Handle(mythoscribe.MediaEvent{Type: mythoscribe.MediaEnd})
	assert.Equal(t, "↺ Play Again", mediaButtonLabel(c, true))
	c.Handle(mythoscribe.MediaEvent{Type: mythoscribe.MediaError})
	assert.Equal(t, "⚠ Unavailable", mediaButtonLabel(c, true))
}

func TestClock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0:00", clock(0))
	assert.Equal(t, "1:05", clock(65*time.Second))
	assert.Equal(t, "10:00", clock(599600*time.Millisecond))
}

func TestHeaderShowsThemeMode(t *testing.T) {
	t.Parallel()

	m := NewModel(unusedGenerator(t), WithRenderer(plainRenderer()))
	header := m.headerView()

	assert.Contains(t, header, "🕉 Mythoscribe")
	assert.Contains(t, header, mythoscribe.ThemeDark.DisplayName())
}
