package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the chat-completions provider could
	// not be reached.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrEmptyResponse indicates the provider answered with no content.
	ErrEmptyResponse = errors.New("llm response contained no content")
)
