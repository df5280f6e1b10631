package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mythoscribe/mythoscribe"
	main "github.com/mythoscribe/mythoscribe/cmd/mythoscribe"
	"github.com/mythoscribe/mythoscribe/mock"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(out *bytes.Buffer) *main.App {
	log, _ := test.NewNullLogger()
	return &main.App{
		Generator: &mock.StoryGenerator{},
		Library:   &mock.StoryLibrary{},
		Viewer:    &mock.Viewer{},
		Formatter: &mythoscribe.TextFormatter{},
		Output:    out,
		BaseURL:   "http://localhost:5000",
		Log:       log,
	}
}

func TestApp_Run_NoArgsOpensClient(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	var called bool
	app.Viewer = &mock.Viewer{
		ViewFn: func(ctx context.Context, story *mythoscribe.Story) error {
			called = true
			assert.Nil(t, story, "client starts without a story")
			return nil
		},
	}

	err := app.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestApp_Run_OpenShowsSavedStory(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	saved := &mythoscribe.Story{ID: "42", Title: "The Brave Mouse"}
	app.Library = &mock.StoryLibrary{
		StoryFn: func(ctx context.Context, id mythoscribe.StoryID) (*mythoscribe.Story, error) {
			assert.Equal(t, mythoscribe.StoryID("42"), id)
			return saved, nil
		},
	}
	var viewed *mythoscribe.Story
	app.Viewer = &mock.Viewer{
		ViewFn: func(ctx context.Context, story *mythoscribe.Story) error {
			viewed = story
			return nil
		},
	}

	err := app.Run(context.Background(), []string{"open", "42"})

	require.NoError(t, err)
	assert.Same(t, saved, viewed)
}

func TestApp_Run_Generate(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	var prompt string
	app.Generator = &mock.StoryGenerator{
		GenerateFn: func(ctx context.Context, p string) (*mythoscribe.Story, error) {
			prompt = p
			return &mythoscribe.Story{
				ID:      "42",
				Title:   "The Brave Mouse",
				Content: "Once upon a time",
				Moral:   "Courage is small",
			}, nil
		},
	}

	err := app.Run(context.Background(), []string{"generate", "A", "story", "about", "a", "brave", "mouse"})

	require.NoError(t, err)
	assert.Equal(t, "A story about a brave mouse", prompt)
	assert.Contains(t, out.String(), "Title: The Brave Mouse")
	assert.Contains(t, out.String(), "Link: http://localhost:5000/story/42")
	assert.Contains(t, out.String(), "Once upon a time")
}

func TestApp_Run_GenerateFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		err       error
		wantAlert mythoscribe.Alert
	}{
		{
			name:      "empty prompt",
			args:      []string{"generate"},
			wantAlert: mythoscribe.Alert{Message: mythoscribe.MsgEmptyPrompt, Severity: mythoscribe.SeverityWarning},
		},
		{
			name:      "quota exceeded",
			args:      []string{"generate", "a story"},
			err:       &mythoscribe.ServiceError{Code: mythoscribe.CodeQuotaExceeded, StatusCode: 429},
			wantAlert: mythoscribe.Alert{Message: mythoscribe.MsgQuotaExceeded, Severity: mythoscribe.SeverityWarning},
		},
		{
			name:      "transport",
			args:      []string{"generate", "a story"},
			err:       &mythoscribe.TransportError{Err: errors.New("connection refused")},
			wantAlert: mythoscribe.Alert{Message: mythoscribe.MsgTransportFailure, Severity: mythoscribe.SeverityDanger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			app := newApp(&out)
			app.Generator = &mock.StoryGenerator{
				GenerateFn: func(ctx context.Context, prompt string) (*mythoscribe.Story, error) {
					return nil, tt.err
				},
			}

			err := app.Run(context.Background(), tt.args)

			var genErr *main.GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.wantAlert, genErr.Alert)
			assert.Equal(t, tt.wantAlert.Message, err.Error())
			assert.Empty(t, out.String())
		})
	}
}

func TestApp_Run_Library(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	app.Library = &mock.StoryLibrary{
		StoriesFn: func(ctx context.Context) ([]mythoscribe.Story, error) {
			return []mythoscribe.Story{
				{ID: "1", Title: "The Brave Mouse", CreatedAt: "2024-01-02"},
				{ID: "12", Title: "Savitri and Satyavan"},
			}, nil
		},
	}

	err := app.Run(context.Background(), []string{"library"})

	require.NoError(t, err)
	assert.Equal(t, " 1  January 2, 2024  The Brave Mouse\n12  -  Savitri and Satyavan\n", out.String())
}

func TestApp_Run_ShowNotFound(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	app.Library = &mock.StoryLibrary{
		StoryFn: func(ctx context.Context, id mythoscribe.StoryID) (*mythoscribe.Story, error) {
			return nil, mythoscribe.ErrStoryNotFound
		},
	}

	err := app.Run(context.Background(), []string{"show", "99"})

	require.ErrorIs(t, err, mythoscribe.ErrStoryNotFound)
	assert.Contains(t, err.Error(), "99")
}

func TestApp_Run_Delete(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	var deleted mythoscribe.StoryID
	app.Library = &mock.StoryLibrary{
		DeleteFn: func(ctx context.Context, id mythoscribe.StoryID) error {
			deleted = id
			return nil
		},
	}

	err := app.Run(context.Background(), []string{"delete", "12"})

	require.NoError(t, err)
	assert.Equal(t, mythoscribe.StoryID("12"), deleted)
	assert.Equal(t, "Story 12 deleted\n", out.String())
}

func TestApp_Run_DeleteNotFound(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newApp(&out)
	app.Library = &mock.StoryLibrary{
		DeleteFn: func(ctx context.Context, id mythoscribe.StoryID) error {
			return mythoscribe.ErrStoryNotFound
		},
	}

	err := app.Run(context.Background(), []string{"delete", "99"})

	require.ErrorIs(t, err, mythoscribe.ErrStoryNotFound)
	assert.Contains(t, err.Error(), "99")
	assert.Empty(t, out.String())
}

func TestApp_Run_UsageErrors(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"show"},
		{"open", "1", "2"},
		{"delete"},
		{"publish"},
	} {
		var out bytes.Buffer
		err := newApp(&out).Run(context.Background(), args)
		assert.ErrorIs(t, err, main.ErrUsage, "args %q", args)
	}
}

func TestApp_Generate_LogsFailure(t *testing.T) {
	t.Parallel()

	log, hook := test.NewNullLogger()
	var out bytes.Buffer
	app := newApp(&out)
	app.Log = log
	app.Generator = &mock.StoryGenerator{
		GenerateFn: func(ctx context.Context, prompt string) (*mythoscribe.Story, error) {
			return nil, &mythoscribe.ServiceError{Code: mythoscribe.CodeTimeout}
		},
	}

	err := app.Generate(context.Background(), "a story")

	require.Error(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "story generation failed", entry.Message)
}
