package llmclient

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrInvalidJSON   = errors.New("invalid json from LLM")
	ErrEmptyResponse = errors.New("empty response from LLM")
)

// Client is the capability a generation provider offers: a JSON-mode call
// for structured output and a plain-text call for diagrams.
type Client interface {
	Name() string
	GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error)
	GenerateText(ctx context.Context, system, user string) (string, error)
	Close() error
}

// PermanentError indicates an error that will not resolve by retrying the
// same request against the same provider. Fallback still tries its secondary
// on any error, permanent or not, since a different provider may accept what
// this one rejected.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
