package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured JSON from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// defaultMaxTokens applies when a Request leaves MaxTokens at zero.
const defaultMaxTokens = 1024

// Request is a single-turn or multi-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode. Without it Content carries the raw text.
	Schema *Schema

	MaxTokens int

	// Temperature in 0.0 - 1.0; zero leaves the vendor default.
	Temperature float64
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the output must conform to.
type Schema struct {
	// Name is kebab-case, e.g. "pathway-briefing". It keys the compiled
	// schema cache, so one name must always carry one definition.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// reply is what a vendor adapter pulls out of its SDK response before the
// shared checks run.
type reply struct {
	text  string
	stop  string
	usage Usage
	model string
}

// response rejects truncated output, validates it against req.Schema and
// builds the Response. A truncated document never reaches validation.
func (r reply) response(req Request) (*Response, error) {
	content := json.RawMessage(r.text)
	if r.stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if r.stop == "" {
		r.stop = StopEnd
	}
	return &Response{Content: content, Usage: r.usage, Model: r.model, StopReason: r.stop}, nil
}

// resolveModel maps a short model alias to a vendor model id. Unknown
// names pass through so full ids can be configured directly.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
