package mythoscribe

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned when a prompt is empty after trimming.
// It is detected locally and never reaches the network.
var ErrEmptyPrompt = errors.New("empty story prompt")

// ErrGenerationInFlight is returned when a submission is attempted while a
// previous one has not settled.
var ErrGenerationInFlight = errors.New("story generation already in progress")

var errNoStory = errors.New("success envelope without a story")

// Server error codes with dedicated remediation text.
const (
	CodeQuotaExceeded = "AI Service Quota Exceeded"
	CodeAccessDenied  = "AI Service Access Denied"
	CodeTimeout       = "AI Service Timeout"
)

// User-facing messages.
const (
	MsgEmptyPrompt        = "Please enter a story prompt"
	MsgGenerationFailed   = "Failed to generate story"
	MsgGenerationInFlight = "A story is already being generated"
	MsgTransportFailure   = "An error occurred while generating the story. Please try again."
	MsgQuotaExceeded      = "AI Service Limit Reached. The daily quota has been exceeded. If you have a Pro API key, please check:\n\n" +
		"1. Verify your API key is correct in .env file\n" +
		"2. Ensure your Google Cloud project has billing enabled\n" +
		"3. Check if your Pro subscription is active\n" +
		"4. Try refreshing your API quota in Google AI Studio\n\n" +
		"Please try again tomorrow or contact support for increased limits."
	MsgAccessDenied = "Service Configuration Issue. Please contact support to resolve the access problem."
	MsgTimeout      = "Service Timeout. The AI service is taking too long to respond. Please try again."
)

var classifiedMessages = map[string]string{
	CodeQuotaExceeded: MsgQuotaExceeded,
	CodeAccessDenied:  MsgAccessDenied,
	CodeTimeout:       MsgTimeout,
}

// ServiceError is a failure envelope returned by the generation service.
type ServiceError struct {
	Code       string // envelope "error" field, may be empty
	Message    string // envelope "message" field, may be empty
	StatusCode int    // HTTP status of the response carrying the envelope
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	code := e.Code
	if code == "" {
		code = "unknown error"
	}
	if e.Message != "" {
		return fmt.Sprintf("generation service: %s: %s", code, e.Message)
	}
	return "generation service: " + code
}

// Classified reports whether Code has dedicated remediation text.
func (e *ServiceError) Classified() bool {
	_, ok := classifiedMessages[e.Code]
	return ok
}

// TransportError is a failure with no structured detail: the request never
// produced a decodable envelope.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "generation transport: " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Alert is a user-facing message with its severity.
type Alert struct {
	Message  string
	Severity Severity
}

// AlertFor maps a generation failure to the single alert shown for it.
// It returns the zero Alert for a nil error.
func AlertFor(err error) Alert {
	if err == nil {
		return Alert{}
	}
	if errors.Is(err, ErrEmptyPrompt) {
		return Alert{Message: MsgEmptyPrompt, Severity: SeverityWarning}
	}
	if errors.Is(err, ErrGenerationInFlight) {
		return Alert{Message: MsgGenerationInFlight, Severity: SeverityInfo}
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		if msg, ok := classifiedMessages[svcErr.Code]; ok {
			return Alert{Message: msg, Severity: SeverityWarning}
		}
		if svcErr.Message != "" {
			return Alert{Message: svcErr.Message, Severity: SeverityDanger}
		}
		return Alert{Message: MsgGenerationFailed, Severity: SeverityDanger}
	}
	return Alert{Message: MsgTransportFailure, Severity: SeverityDanger}
}
