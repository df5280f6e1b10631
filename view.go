package mythoscribe

import (
	"fmt"
	"net/url"
	"strings"
)

// ImageEntry is one selectable illustration in a story gallery.
type ImageEntry struct {
	Index int    // 1-based position in the gallery
	Path  string // path as sent by the service
	URL   string // Path resolved against the service base URL
	Alt   string
}

// StoryView is the display projection of a Story.
type StoryView struct {
	ID         StoryID
	Title      string
	Lines      []string // body split on newlines, one entry per visual line
	Characters string   // empty when the story names none
	Moral      string
	Images     []ImageEntry
	AudioURL   string // empty hides the audio control
	VideoURL   string // empty hides the video control

	DownloadURL string
	ShareURL    string
}

// HasAudio reports whether the story carries audio narration.
func (v StoryView) HasAudio() bool {
	return v.AudioURL != ""
}

// HasVideo reports whether the story carries a video.
func (v StoryView) HasVideo() bool {
	return v.VideoURL != ""
}

// Body returns the body text with its original line breaks.
func (v StoryView) Body() string {
	return strings.Join(v.Lines, "\n")
}

// NewStoryView projects story for display. Relative media paths are
// resolved against baseURL.
func NewStoryView(story *Story, baseURL string) StoryView {
	v := StoryView{
		ID:          story.ID,
		Title:       story.Title,
		Lines:       strings.Split(strings.ReplaceAll(story.Content, "\r\n", "\n"), "\n"),
		Characters:  story.Characters.String(),
		Moral:       story.Moral,
		DownloadURL: DownloadURL(baseURL, story.ID),
		ShareURL:    ShareURL(baseURL, story.ID),
	}
	for i, path := range story.Images {
		v.Images = append(v.Images, ImageEntry{
			Index: i + 1,
			Path:  path,
			URL:   ResolveURL(baseURL, path),
			Alt:   fmt.Sprintf("Story illustration %d", i+1),
		})
	}
	if story.AudioPath != "" {
		v.AudioURL = ResolveURL(baseURL, story.AudioPath)
	}
	if story.VideoPath != "" {
		v.VideoURL = ResolveURL(baseURL, story.VideoPath)
	}
	return v
}

// DownloadURL returns the download endpoint for a story.
func DownloadURL(baseURL string, id StoryID) string {
	return strings.TrimRight(baseURL, "/") + "/download_story/" + url.PathEscape(string(id))
}

// ShareURL returns the canonical shareable link for a story.
func ShareURL(baseURL string, id StoryID) string {
	return strings.TrimRight(baseURL, "/") + "/story/" + url.PathEscape(string(id))
}

// ResolveURL resolves a possibly relative media path against baseURL.
// Absolute URLs and unparsable input are returned unchanged.
func ResolveURL(baseURL, path string) string {
	ref, err := url.Parse(path)
	if err != nil || ref.IsAbs() {
		return path
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" {
		return path
	}
	return base.ResolveReference(ref).String()
}
