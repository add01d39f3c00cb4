package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"
)

func TestWithRetryRetriesTransientOnce(t *testing.T) {
	calls := 0
	base := ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", fmt.Errorf("gemini http status 503: unavailable")
		}
		return "ok", nil
	})
	client := retryingClient{base: base, delay: time.Millisecond}

	out, err := client.Generate(WithOperation(context.Background(), "chat"), "hi")
	if err != nil || out != "ok" {
		t.Fatalf("expected ok after retry, got %q %v", out, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("gemini http status 400: bad request")
	base := ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", permanent
	})
	client := retryingClient{base: base, delay: time.Millisecond}

	if _, err := client.Generate(context.Background(), "hi"); !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestWithRetryHonorsCancellation(t *testing.T) {
	base := ClientFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", io.ErrUnexpectedEOF
	})
	client := retryingClient{base: base, delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Generate(ctx, "hi"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithRetryNil(t *testing.T) {
	if WithRetry(nil) != nil {
		t.Fatalf("expected nil client")
	}
}

func TestShouldRetry(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":            {err: nil, want: false},
		"deadline":       {err: context.DeadlineExceeded, want: true},
		"canceled":       {err: context.Canceled, want: false},
		"not configured": {err: ErrNotConfigured, want: false},
		"5xx":            {err: errors.New("gemini http status 500: boom"), want: true},
		"reset":          {err: errors.New("read: connection reset by peer"), want: true},
		"eof":            {err: io.EOF, want: true},
		"4xx":            {err: errors.New("gemini http status 429: quota"), want: false},
	}
	for name, tc := range cases {
		if got := ShouldRetry(tc.err); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, got)
		}
	}
}

func TestPlaceholderClient(t *testing.T) {
	if _, err := (PlaceholderClient{}).Generate(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestOperationFromContext(t *testing.T) {
	if got := OperationFromContext(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	if got := OperationFromContext(WithOperation(context.Background(), "finance")); got != "finance" {
		t.Fatalf("expected finance, got %q", got)
	}
}
