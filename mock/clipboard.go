package mock

import "github.com/mythoscribe/mythoscribe"

// Compile-time interface verification.
var (
	_ mythoscribe.Clipboard = (*Clipboard)(nil)
	_ mythoscribe.Sharer    = (*Sharer)(nil)
)

// Clipboard is a mock implementation of mythoscribe.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Sharer is a mock implementation of mythoscribe.Sharer.
type Sharer struct {
	ShareFn func(title, url string) error
}

func (s *Sharer) Share(title, url string) error {
	return s.ShareFn(title, url)
}
