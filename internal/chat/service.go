// Package chat answers free-text questions about an analyzed property.
package chat

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"farmai-backend/internal/llm"
)

// MaxHistory is the number of most recent turns included in the prompt.
const MaxHistory = 10

const operation = "chat"

//go:embed prompt.tmpl
var promptText string

var promptTemplate = template.Must(template.New("chat").Parse(promptText))

// ErrEmptyReply is returned when the model answers with only whitespace.
var ErrEmptyReply = errors.New("empty reply from LLM")

// Message is one prior conversation turn.
type Message struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Request is the body of POST /chat. Context is the analysis result, if any.
type Request struct {
	Message string          `json:"message" binding:"required"`
	History []Message       `json:"history" binding:"dive"`
	Context json.RawMessage `json:"context"`
}

// Reply is the chat response.
type Reply struct {
	Reply string `json:"reply"`
}

// Service builds the agronomist prompt and relays it to the LLM.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

type promptView struct {
	Context string
	History []Message
	Message string
}

// Answer returns the agronomist's reply to req.
func (s *Service) Answer(ctx context.Context, req Request) (Reply, error) {
	if s.LLM == nil {
		return Reply{}, llm.ErrNotConfigured
	}
	prompt, err := BuildPrompt(req)
	if err != nil {
		return Reply{}, err
	}
	text, err := s.LLM.Generate(llm.WithOperation(ctx, operation), prompt)
	if err != nil {
		return Reply{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyReply
	}
	return Reply{Reply: text}, nil
}

// BuildPrompt renders the agronomist prompt for req.
func BuildPrompt(req Request) (string, error) {
	view := promptView{
		History: recentHistory(req.History),
		Message: req.Message,
	}
	if hasContext(req.Context) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, req.Context, "", "  "); err != nil {
			return "", fmt.Errorf("context: %w", err)
		}
		view.Context = buf.String()
	}

	var b strings.Builder
	if err := promptTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render chat prompt: %w", err)
	}
	return b.String(), nil
}

func recentHistory(history []Message) []Message {
	if len(history) <= MaxHistory {
		return history
	}
	return history[len(history)-MaxHistory:]
}

// hasContext treats absent, null, and empty-object context as no context.
func hasContext(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil && len(obj) == 0 {
		return false
	}
	return true
}
