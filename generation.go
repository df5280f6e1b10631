package mythoscribe

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LoadingPhaseInterval is how long each loading caption stays visible.
const LoadingPhaseInterval = 3 * time.Second

// LoadingPhases are the captions cycled while a story is being generated.
var LoadingPhases = []string{
	"Generating story content...",
	"Creating beautiful illustrations...",
	"Preparing audio narration...",
	"Crafting divine video narration...",
	"Finalizing your Vedic story...",
}

// GenerationState is the lifecycle state of a generation request.
type GenerationState int

// Generation states.
const (
	GenerationIdle GenerationState = iota
	GenerationInFlight
	GenerationSucceeded
	GenerationFailed
)

// String returns the state name.
func (s GenerationState) String() string {
	switch s {
	case GenerationInFlight:
		return "in-flight"
	case GenerationSucceeded:
		return "succeeded"
	case GenerationFailed:
		return "failed"
	default:
		return "idle"
	}
}

// GenerationRequest identifies one accepted submission.
type GenerationRequest struct {
	Seq    uint64 // increases with every accepted submission
	Prompt string // trimmed prompt
}

// Outcome is the settled result of a generation request.
type Outcome struct {
	State GenerationState // GenerationSucceeded or GenerationFailed
	Story *Story          // set on success
	Err   error           // set on failure
	Alert *Alert          // the single alert to show, nil on success
}

// GenerationController drives the submit, loading, success or failure
// lifecycle of story generation and tracks the current story.
type GenerationController struct {
	generator StoryGenerator
	log       logrus.FieldLogger

	state          GenerationState
	seq            uint64
	currentStoryID StoryID
}

// GenerationOption configures a GenerationController.
type GenerationOption func(*GenerationController)

// WithGenerationLogger sets the logger for generation failures.
func WithGenerationLogger(log logrus.FieldLogger) GenerationOption {
	return func(c *GenerationController) {
		c.log = log
	}
}

// NewGenerationController creates an idle controller using generator.
func NewGenerationController(generator StoryGenerator, opts ...GenerationOption) *GenerationController {
	c := &GenerationController{generator: generator}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// State returns the current lifecycle state.
func (c *GenerationController) State() GenerationState {
	return c.state
}

// InFlight reports whether a request is awaiting its response.
func (c *GenerationController) InFlight() bool {
	return c.state == GenerationInFlight
}

// SubmitDisabled reports whether the submit control is disabled.
func (c *GenerationController) SubmitDisabled() bool {
	return c.InFlight()
}

// LoadingVisible reports whether the loading indicator is shown.
func (c *GenerationController) LoadingVisible() bool {
	return c.InFlight()
}

// Seq returns the sequence number of the most recently accepted request.
func (c *GenerationController) Seq() uint64 {
	return c.seq
}

// CurrentStoryID returns the ID of the most recently generated story.
func (c *GenerationController) CurrentStoryID() StoryID {
	return c.currentStoryID
}

// Begin validates prompt and moves the controller to GenerationInFlight.
// It returns ErrEmptyPrompt for a blank prompt and ErrGenerationInFlight
// while another request is pending; neither changes state.
func (c *GenerationController) Begin(prompt string) (GenerationRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GenerationRequest{}, ErrEmptyPrompt
	}
	if c.state == GenerationInFlight {
		return GenerationRequest{}, ErrGenerationInFlight
	}
	c.seq++
	c.state = GenerationInFlight
	return GenerationRequest{Seq: c.seq, Prompt: prompt}, nil
}

// Generate performs the network call for req. It does not touch controller
// state, so it may run off the goroutine that calls Begin and Finish.
func (c *GenerationController) Generate(ctx context.Context, req GenerationRequest) (*Story, error) {
	return c.generator.Generate(ctx, req.Prompt)
}

// Finish settles req with the generator result. The controller is always
// back to GenerationIdle afterwards; the settled state is in the Outcome.
func (c *GenerationController) Finish(req GenerationRequest, story *Story, err error) Outcome {
	defer c.reset()

	log := c.log.WithFields(logrus.Fields{
		"seq":        req.Seq,
		"prompt_len": len(req.Prompt),
	})

	if err == nil && story == nil {
		err = &TransportError{Err: errNoStory}
	}
	if err != nil {
		c.state = GenerationFailed
		alert := AlertFor(err)
		log.WithError(err).WithField("severity", alert.Severity.String()).Warn("story generation failed")
		return Outcome{State: GenerationFailed, Err: err, Alert: &alert}
	}

	c.state = GenerationSucceeded
	c.currentStoryID = story.ID
	log.WithField("story_id", story.ID).Info("story generated")
	return Outcome{State: GenerationSucceeded, Story: story}
}

// Submit runs a complete request synchronously: Begin, Generate and
// Finish. The controller is idle again on every return path.
func (c *GenerationController) Submit(ctx context.Context, prompt string) (*Story, error) {
	req, err := c.Begin(prompt)
	if err != nil {
		return nil, err
	}
	defer c.reset()

	story, err := c.Generate(ctx, req)
	out := c.Finish(req, story, err)
	return out.Story, out.Err
}

func (c *GenerationController) reset() {
	c.state = GenerationIdle
}
