package mock

import (
	"context"

	"github.com/mythoscribe/mythoscribe"
)

var _ mythoscribe.Viewer = (*Viewer)(nil)

// Viewer is a mock implementation of mythoscribe.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, story *mythoscribe.Story) error
}

func (v *Viewer) View(ctx context.Context, story *mythoscribe.Story) error {
	return v.ViewFn(ctx, story)
}
