package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/mythoscribe/mythoscribe"
	mhttp "github.com/mythoscribe/mythoscribe/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *mhttp.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return mhttp.NewClient(srv.URL)
}

func TestClient_Generate_PostsTrimmedPromptAsJSON(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotType string
	var gotBody map[string]any
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = io.WriteString(w, `{"success":true,"story":{"id":12,"title":"The Brave Mouse","content":"Once upon a time...\nThe end.","characters":"Mouse, Lion","moral":"Courage","images":["/static/images/12_1.png"],"audio_path":"/static/audio/12.mp3"}}`)
	})

	story, err := client.Generate(context.Background(), "a brave mouse")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/generate_story", gotPath)
	assert.Contains(t, gotType, "application/json")
	assert.Equal(t, map[string]any{"prompt": "a brave mouse"}, gotBody)

	require.NotNil(t, story)
	assert.Equal(t, mythoscribe.StoryID("12"), story.ID)
	assert.Equal(t, "The Brave Mouse", story.Title)
	assert.Equal(t, mythoscribe.Characters{"Mouse", "Lion"}, story.Characters)
	assert.Equal(t, []string{"/static/images/12_1.png"}, story.Images)
	assert.Equal(t, "/static/audio/12.mp3", story.AudioPath)
	assert.Empty(t, story.VideoPath)
}

func TestClient_Generate_FailureEnvelopeIsServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   mythoscribe.ServiceError
	}{
		{
			name:   "quota on 429",
			status: http.StatusTooManyRequests,
			body:   `{"success":false,"error":"AI Service Quota Exceeded","message":"quota"}`,
			want:   mythoscribe.ServiceError{Code: mythoscribe.CodeQuotaExceeded, Message: "quota", StatusCode: 429},
		},
		{
			name:   "message on 200",
			status: http.StatusOK,
			body:   `{"success":false,"message":"Prompt rejected"}`,
			want:   mythoscribe.ServiceError{Message: "Prompt rejected", StatusCode: 200},
		},
		{
			name:   "bare error on 500",
			status: http.StatusInternalServerError,
			body:   `{"error":"boom"}`,
			want:   mythoscribe.ServiceError{Code: "boom", StatusCode: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			story, err := client.Generate(context.Background(), "x")

			assert.Nil(t, story)
			var svcErr *mythoscribe.ServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tt.want, *svcErr)
		})
	}
}

func TestClient_Generate_UndecodableResponseIsTransportError(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>Bad Gateway</html>")
	})

	_, err := client.Generate(context.Background(), "x")

	var trErr *mythoscribe.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, mythoscribe.MsgTransportFailure, mythoscribe.AlertFor(err).Message)
}

func TestClient_Generate_SuccessWithoutStoryIsTransportError(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	_, err := client.Generate(context.Background(), "x")

	var trErr *mythoscribe.TransportError
	assert.ErrorAs(t, err, &trErr)
}

func TestClient_Generate_UnreachableServerIsTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := mhttp.NewClient(url).Generate(context.Background(), "x")

	var trErr *mythoscribe.TransportError
	assert.ErrorAs(t, err, &trErr)
}

func TestClient_Generate_HonoursContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "x")

	var trErr *mythoscribe.TransportError
	require.ErrorAs(t, err, &trErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Stories(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":2,"title":"Second","created_at":"2026-01-02"},{"id":1,"title":"First","characters":["Arjuna"]}]`)
	})

	stories, err := client.Stories(context.Background())

	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, mythoscribe.StoryID("2"), stories[0].ID)
	assert.Equal(t, "2026-01-02", stories[0].CreatedAt)
	assert.Equal(t, mythoscribe.Characters{"Arjuna"}, stories[1].Characters)
}

func TestClient_Story_NotFound(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/story/99", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Story(context.Background(), "99")

	assert.ErrorIs(t, err, mythoscribe.ErrStoryNotFound)
}

func TestClient_Story(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"title":"Seven","content":"Body","video_path":"/static/videos/7.mp4"}`)
	})

	story, err := client.Story(context.Background(), "7")

	require.NoError(t, err)
	assert.Equal(t, "Seven", story.Title)
	assert.Equal(t, "/static/videos/7.mp4", story.VideoPath)
}

func TestClient_Download_UsesServerFilename(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/download_story/12", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="The_Brave_Mouse.txt"`)
		_, _ = io.WriteString(w, "Title: The Brave Mouse\n")
	})
	dir := t.TempDir()

	path, err := client.Download(context.Background(), "12", dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "The_Brave_Mouse.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Title: The Brave Mouse\n", string(data))
}

func TestClient_Download_FallbackAndTraversal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		disposition string
		want        string
	}{
		{name: "missing header", disposition: "", want: "story_5.txt"},
		{name: "path traversal", disposition: `attachment; filename="../../etc/passwd"`, want: "passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				_, _ = io.WriteString(w, "text")
			})
			dir := t.TempDir()

			path, err := client.Download(context.Background(), "5", dir)

			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), path)
		})
	}
}

func TestClient_Delete_RedirectIsSuccess(t *testing.T) {
	t.Parallel()

	var libraryHits atomic.Int32
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/delete_story/3":
			assert.Equal(t, http.MethodPost, r.Method)
			http.Redirect(w, r, "/library", http.StatusFound)
		case "/library":
			libraryHits.Add(1)
			_, _ = io.WriteString(w, "<html></html>")
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	err := client.Delete(context.Background(), "3")

	require.NoError(t, err)
	assert.Zero(t, libraryHits.Load(), "redirect must not be followed")
}

func TestClient_Delete_Failures(t *testing.T) {
	t.Parallel()

	t.Run("unknown story", func(t *testing.T) {
		t.Parallel()
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := client.Delete(context.Background(), "99")

		assert.ErrorIs(t, err, mythoscribe.ErrStoryNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.Delete(context.Background(), "4")

		require.Error(t, err)
		assert.NotErrorIs(t, err, mythoscribe.ErrStoryNotFound)
		assert.Contains(t, err.Error(), "HTTP 500")
	})
}
