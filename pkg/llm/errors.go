package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode identifies the kind of failure a back-end capability reported.
type ErrorCode string

const (
	ErrorCodeTimeout        ErrorCode = "timeout"
	ErrorCodeRateLimit      ErrorCode = "rate-limit"
	ErrorCodeContentFilter  ErrorCode = "content-filter"
	ErrorCodeAuthentication ErrorCode = "authentication"
	ErrorCodeInvalidRequest ErrorCode = "invalid-request"
	ErrorCodeModelNotFound  ErrorCode = "model-not-found"
	ErrorCodeOther          ErrorCode = "other"
)

// BackendError is the interface implemented by every back-end error
// variant in this package. Use errors.As(err, &backendErr) to recover one from an error
// chain, then backendErr.Code() to switch on the taxonomy.
type BackendError interface {
	error
	Code() ErrorCode
}

// TimeoutError reports that a request exceeded its configured deadline.
type TimeoutError struct {
	Model   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model %q: request timed out after %s", e.Model, e.Timeout)
}
func (e *TimeoutError) Code() ErrorCode { return ErrorCodeTimeout }

// RateLimitError reports upstream throttling, with an optional retry hint.
type RateLimitError struct {
	Model      string
	RetryAfter *time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != nil {
		return fmt.Sprintf("model %q: rate limited, retry after %s", e.Model, *e.RetryAfter)
	}
	return fmt.Sprintf("model %q: rate limited", e.Model)
}
func (e *RateLimitError) Code() ErrorCode { return ErrorCodeRateLimit }

// ContentFilterError reports an upstream safety refusal.
type ContentFilterError struct {
	Model  string
	Reason string
}

func (e *ContentFilterError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("model %q: blocked by content filter: %s", e.Model, e.Reason)
	}
	return fmt.Sprintf("model %q: blocked by content filter", e.Model)
}
func (e *ContentFilterError) Code() ErrorCode { return ErrorCodeContentFilter }

// AuthenticationError reports missing or rejected credentials.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}
func (e *AuthenticationError) Code() ErrorCode { return ErrorCodeAuthentication }

// InvalidRequestError reports malformed input rejected by upstream.
type InvalidRequestError struct {
	Message string
	Model   string
}

func (e *InvalidRequestError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("model %q: invalid request: %s", e.Model, e.Message)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}
func (e *InvalidRequestError) Code() ErrorCode { return ErrorCodeInvalidRequest }

// ModelNotFoundError reports an unknown model identifier.
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found upstream", e.Model)
}
func (e *ModelNotFoundError) Code() ErrorCode { return ErrorCodeModelNotFound }

// OtherError is the catch-all variant for failures outside the taxonomy.
type OtherError struct {
	Message string
	Model   string
}

func (e *OtherError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("model %q: %s", e.Model, e.Message)
	}
	return e.Message
}
func (e *OtherError) Code() ErrorCode { return ErrorCodeOther }

// CodeOf extracts the BackendError taxonomy code from err, defaulting to
// ErrorCodeOther when err does not wrap a recognized variant.
func CodeOf(err error) ErrorCode {
	var be BackendError
	if errors.As(err, &be) {
		return be.Code()
	}
	return ErrorCodeOther
}
