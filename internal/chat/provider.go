// Package chat answers health questions through an ordered chain of optional
// remote providers, ending with a local keyword responder that always answers.
package chat

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured means the provider has no credentials and was skipped.
	ErrNotConfigured = errors.New("provider not configured")
	ErrEmptyReply    = errors.New("provider returned an empty reply")
)

// Provider produces one reply. history holds the conversation before message.
type Provider interface {
	Name() string
	Reply(ctx context.Context, history []Message, message string) (string, error)
}

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 800
)
