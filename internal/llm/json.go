package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidJSON is returned when model output does not hold a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON from LLM")

var fencePattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSON pulls a JSON object out of model output. The first fenced code
// block wins when present; otherwise the whole trimmed text is used.
func ExtractJSON(text string) (json.RawMessage, error) {
	raw := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		raw = strings.TrimSpace(m[1])
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: empty output", ErrInvalidJSON)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidJSON)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}
