// Package mock provides test doubles for mythoscribe interfaces.
package mock

import (
	"context"

	"github.com/mythoscribe/mythoscribe"
)

// Compile-time interface verification.
var (
	_ mythoscribe.StoryGenerator  = (*StoryGenerator)(nil)
	_ mythoscribe.StoryLibrary    = (*StoryLibrary)(nil)
	_ mythoscribe.StoryDownloader = (*StoryDownloader)(nil)
)

// StoryGenerator is a mock implementation of mythoscribe.StoryGenerator.
type StoryGenerator struct {
	GenerateFn func(ctx context.Context, prompt string) (*mythoscribe.Story, error)
}

func (g *StoryGenerator) Generate(ctx context.Context, prompt string) (*mythoscribe.Story, error) {
	return g.GenerateFn(ctx, prompt)
}

// StoryLibrary is a mock implementation of mythoscribe.StoryLibrary.
type StoryLibrary struct {
	StoriesFn func(ctx context.Context) ([]mythoscribe.Story, error)
	StoryFn   func(ctx context.Context, id mythoscribe.StoryID) (*mythoscribe.Story, error)
	DeleteFn  func(ctx context.Context, id mythoscribe.StoryID) error
}

func (l *StoryLibrary) Stories(ctx context.Context) ([]mythoscribe.Story, error) {
	return l.StoriesFn(ctx)
}

func (l *StoryLibrary) Story(ctx context.Context, id mythoscribe.StoryID) (*mythoscribe.Story, error) {
	return l.StoryFn(ctx, id)
}

func (l *StoryLibrary) Delete(ctx context.Context, id mythoscribe.StoryID) error {
	return l.DeleteFn(ctx, id)
}

// StoryDownloader is a mock implementation of mythoscribe.StoryDownloader.
type StoryDownloader struct {
	DownloadFn func(ctx context.Context, id mythoscribe.StoryID, dir string) (string, error)
}

func (d *StoryDownloader) Download(ctx context.Context, id mythoscribe.StoryID, dir string) (string, error) {
	return d.DownloadFn(ctx, id, dir)
}
