package llm

import (
	"context"
	"errors"
	"fmt"
)

// Chat roles understood by OpenAI-compatible gateways.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the first choice returned by the model. Content is nil when
// the provider answered successfully without any message content.
type Completion struct {
	Model   string
	Content *string
}

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, messages []Message) (Completion, error)
}

// ErrMissingAPIKey is returned before any network call when no credential is set.
var ErrMissingAPIKey = errors.New("api key not configured")

// StatusError reports a non-2xx provider response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AI gateway error: %d", e.StatusCode)
}
