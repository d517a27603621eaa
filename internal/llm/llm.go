package llm

import (
	"context"
	"errors"
)

// ErrDisabled is returned by the disabled generator installed when no API
// key is configured.
var ErrDisabled = errors.New("llm: text generation disabled")

// Generator produces text from a system instruction and user content.
// Every caller treats failure as recoverable and proceeds with a degraded
// result, so a Generator is never load-bearing.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Disabled is the Generator wired in when the service runs without an API
// key. Every call fails, which callers handle the same as a service outage.
type Disabled struct{}

var _ Generator = Disabled{}

func (Disabled) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", ErrDisabled
}
