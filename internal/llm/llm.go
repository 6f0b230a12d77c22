// Package llm wraps the hosted generative model behind a small interface so
// the coach can be exercised without network access.
package llm

import (
	"context"
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

var ErrEmptyResponse = errors.New("model returned no text")

type Message struct {
	Role string
	Text string
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

type Reply struct {
	Text    string
	Model   string
	Usage   Usage
	Latency time.Duration
}

// Client sends prompts to a language model. Chat continues a conversation
// seeded with history; Generate is a single-shot call.
type Client interface {
	Chat(ctx context.Context, systemInstruction string, history []Message, prompt string) (Reply, error)
	Generate(ctx context.Context, systemInstruction string, prompt string) (Reply, error)
	Close() error
}
