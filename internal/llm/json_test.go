package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `  {"a": 1}  `, want: `{"a":1}`},
		{name: "json fence", in: "Here you go:\n```json\n{\"status_log\": [\"x\"]}\n```\nthanks", want: `{"status_log":["x"]}`},
		{name: "plain fence", in: "```\n{\"b\": true}\n```", want: `{"b":true}`},
		{name: "first fence wins", in: "```json\n{\"n\":1}\n```\n```json\n{\"n\":2}\n```", want: `{"n":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestExtractJSONRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "not json", "[1,2]", "null", "```json\n{broken\n```"} {
		if _, err := ExtractJSON(in); !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("expected ErrInvalidJSON for %q, got %v", in, err)
		}
	}
}
