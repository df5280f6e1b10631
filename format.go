package mythoscribe

import (
	"fmt"
	"strings"
	"time"
)

// StoryFormatter renders a story view as plain text.
type StoryFormatter interface {
	Format(v StoryView) string
}

// TextFormatter implements StoryFormatter with the layout of the
// downloadable story file.
type TextFormatter struct{}

// Format renders the story view as plain text.
func (f *TextFormatter) Format(v StoryView) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Title: %s\n", v.Title)
	if v.ID != "" {
		fmt.Fprintf(&sb, "Link: %s\n", v.ShareURL)
	}
	if v.Characters != "" {
		fmt.Fprintf(&sb, "\nCharacters: %s\n", v.Characters)
	}
	if v.Moral != "" {
		fmt.Fprintf(&sb, "\nMoral: %s\n", v.Moral)
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 50))
	sb.WriteString("\n\n")
	sb.WriteString(v.Body())
	sb.WriteString("\n")

	if len(v.Images) > 0 {
		sb.WriteString("\nIllustrations:\n")
		for _, img := range v.Images {
			fmt.Fprintf(&sb, "  [%d] %s\n", img.Index, img.URL)
		}
	}
	if v.HasAudio() {
		fmt.Fprintf(&sb, "\nAudio: %s\n", v.AudioURL)
	}
	if v.HasVideo() {
		fmt.Fprintf(&sb, "Video: %s\n", v.VideoURL)
	}

	return sb.String()
}

// FormatLibrary renders one line per story: ID, creation time and title.
func FormatLibrary(stories []Story) string {
	if len(stories) == 0 {
		return "No stories yet.\n"
	}
	width := 0
	for _, s := range stories {
		if len(s.ID) > width {
			width = len(s.ID)
		}
	}
	var sb strings.Builder
	for _, s := range stories {
		fmt.Fprintf(&sb, "%*s  %s  %s\n", width, s.ID, FormatDate(s.CreatedAt), s.Title)
	}
	return sb.String()
}

// createdLayouts are the timestamp shapes the service emits, most specific first.
var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// FormatDate renders a creation timestamp as "January 2, 2006, 03:04 PM".
// The wall clock is shown as sent; unrecognised values are returned as is
// and an empty value renders as "-".
func FormatDate(created string) string {
	if created == "" {
		return "-"
	}
	for _, layout := range createdLayouts {
		t, err := time.Parse(layout, created)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			return t.Format("January 2, 2006")
		}
		return t.Format("January 2, 2006, 03:04 PM")
	}
	return created
}
