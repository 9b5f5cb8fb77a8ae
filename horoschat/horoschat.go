// CLAUDE:SUMMARY Transport-agnostic chat completion client for OpenAI-compatible servers, with JSON-mode support and a noop fallback.
// Package horoschat provides a chat completion client for any
// OpenAI-compatible /v1/chat/completions server.
//
// It decouples generation from the serving backend (vLLM, Ollama, llama.cpp
// server, RunPod, or OpenAI itself) so callers only deal with prompts and
// strings. JSON mode asks the server for a structured response via
// response_format; callers still validate what comes back.
//
// Usage:
//
//	chat := horoschat.New(horoschat.Config{
//	    Endpoint: "http://localhost:8004",
//	    Model:    "qwen2.5-14b-instruct",
//	})
//	out, err := chat.Complete(ctx, horoschat.Request{
//	    System: "You are a quiz author.",
//	    User:   prompt,
//	    JSON:   true,
//	})
package horoschat

import (
	"context"
	"log/slog"
	"time"
)

// Request is one completion call.
type Request struct {
	// System is the system message; empty means none is sent.
	System string
	// User is the user message carrying the actual prompt.
	User string
	// JSON requests a JSON-object response via response_format.
	JSON bool
	// MaxTokens overrides the configured completion budget when > 0.
	MaxTokens int
}

// Completer produces chat completions.
type Completer interface {
	// Complete returns the assistant message content for one request.
	Complete(ctx context.Context, req Request) (string, error)

	// Model returns the model name completions are requested from.
	Model() string
}

// Config configures the chat client.
type Config struct {
	// Endpoint is the base URL of the completion server
	// (e.g. "http://localhost:8004"). If empty, a noop completer is
	// returned that replies with an empty JSON object.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Model is the model name sent in the request.
	Model string `json:"model" yaml:"model"`

	// APIKey is sent as a Bearer token when non-empty.
	APIKey string `json:"api_key" yaml:"api_key"`

	// Temperature for sampling. Default: 0.2 — generation wants
	// consistency, not creativity.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens is the default completion budget. Default: 4096.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Timeout per HTTP request. Default: 120s; generation runs long.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Logger for debug/error messages. Defaults to slog.Default().
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Temperature <= 0 {
		c.Temperature = 0.2
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 4096
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// New creates a Completer from config. If Endpoint is empty, returns a noop
// completer for wiring and tests without a server.
func New(cfg Config) Completer {
	cfg.defaults()
	if cfg.Endpoint == "" {
		return &noopCompleter{model: cfg.Model}
	}
	return newOpenAIClient(cfg)
}

// noopCompleter answers every request with an empty JSON object.
type noopCompleter struct {
	model string
}

func (n *noopCompleter) Complete(_ context.Context, _ Request) (string, error) {
	return "{}", nil
}

func (n *noopCompleter) Model() string { return n.model }
