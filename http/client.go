// Package http provides the Mythoscribe service client over HTTP using req.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/mythoscribe/mythoscribe"
)

// Compile-time interface verification.
var (
	_ mythoscribe.StoryGenerator  = (*Client)(nil)
	_ mythoscribe.StoryLibrary    = (*Client)(nil)
	_ mythoscribe.StoryDownloader = (*Client)(nil)
)

// DefaultUserAgent identifies the client to the service.
const DefaultUserAgent = "mythoscribe-cli/1.0"

// Client talks to the Mythoscribe web service.
type Client struct {
	client  *req.Client
	baseURL string
}

// ClientOption configures a Client.
type ClientOption func(*req.Client)

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) ClientOption {
	return func(c *req.Client) {
		c.SetUserAgent(ua)
	}
}

// NewClient returns a client for the service at baseURL.
// Requests have no client-side timeout; a generation waits until the
// service answers or the context is cancelled.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	rc := req.C().
		SetBaseURL(baseURL).
		SetTimeout(0).
		SetUserAgent(DefaultUserAgent).
		SetCommonHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{client: rc, baseURL: baseURL}
}

// BaseURL returns the service root used to build links.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// Generate posts the prompt to the generation endpoint. A decodable failure
// envelope, whatever its HTTP status, yields *mythoscribe.ServiceError; no
// response or an undecodable one yields *mythoscribe.TransportError.
func (c *Client) Generate(ctx context.Context, prompt string) (*mythoscribe.Story, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(generateRequest{Prompt: prompt}).
		Post("/generate_story")
	if err != nil {
		return nil, &mythoscribe.TransportError{Err: err}
	}

	var env mythoscribe.Envelope
	if err := json.Unmarshal(resp.Bytes(), &env); err != nil {
		return nil, &mythoscribe.TransportError{
			Err: fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err),
		}
	}

	if !env.Success {
		return nil, &mythoscribe.ServiceError{
			Code:       env.Error,
			Message:    env.Message,
			StatusCode: resp.StatusCode,
		}
	}
	if env.Story == nil {
		return nil, &mythoscribe.TransportError{
			Err: errors.New("success response without story"),
		}
	}
	return env.Story, nil
}

// Stories lists all stories, newest first.
func (c *Client) Stories(ctx context.Context) ([]mythoscribe.Story, error) {
	var stories []mythoscribe.Story
	resp, err := c.client.R().
		SetContext(ctx).
		SetSuccessResult(&stories).
		Get("/api/stories")
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("list stories: HTTP %d", resp.StatusCode)
	}
	return stories, nil
}

// Story fetches a single story.
func (c *Client) Story(ctx context.Context, id mythoscribe.StoryID) (*mythoscribe.Story, error) {
	var story mythoscribe.Story
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", string(id)).
		SetSuccessResult(&story).
		Get("/api/story/{id}")
	if err != nil {
		return nil, fmt.Errorf("get story %s: %w", id, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, mythoscribe.ErrStoryNotFound
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("get story %s: HTTP %d", id, resp.StatusCode)
	}
	return &story, nil
}

// Delete removes a story. The service answers a successful form post with a
// redirect to the library page, which is not followed.
func (c *Client) Delete(ctx context.Context, id mythoscribe.StoryID) error {
	resp, err := c.client.Clone().
		SetRedirectPolicy(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}).
		R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetPathParam("id", string(id)).
		Post("/delete_story/{id}")
	if err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return mythoscribe.ErrStoryNotFound
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return nil
	default:
		return fmt.Errorf("delete story %s: HTTP %d", id, resp.StatusCode)
	}
}

// Download fetches the story file from the download endpoint and writes it
// into dir under the name the service suggests.
func (c *Client) Download(ctx context.Context, id mythoscribe.StoryID, dir string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetPathParam("id", string(id)).
		Get("/download_story/{id}")
	if err != nil {
		return "", fmt.Errorf("download story %s: %w", id, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return "", mythoscribe.ErrStoryNotFound
	}
	if !resp.IsSuccessState() {
		return "", fmt.Errorf("download story %s: HTTP %d", id, resp.StatusCode)
	}

	name := attachmentName(resp.GetHeader("Content-Disposition"))
	if name == "" {
		name = fmt.Sprintf("story_%s.txt", id)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, resp.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// attachmentName extracts a safe base file name from a Content-Disposition
// header, or returns "" when none is given.
func attachmentName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	name := filepath.Base(filepath.Clean("/" + params["filename"]))
	if name == "/" || name == "." {
		return ""
	}
	return name
}
