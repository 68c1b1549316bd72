package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"vimeo-albums/internal/api"
)

func TestWithRetryResultEventuallySucceeds(t *testing.T) {
	calls := 0
	value, err := withRetryResult(context.Background(), 3, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("withRetryResult should eventually succeed: %v", err)
	}
	if value != "ok" || calls != 3 {
		t.Fatalf("unexpected value=%q calls=%d", value, calls)
	}
}

func TestWithRetryResultReturnsLastError(t *testing.T) {
	expected := errors.New("permanent")
	calls := 0
	_, err := withRetryResult(context.Background(), 2, func() (int, error) {
		calls++
		return 0, expected
	})
	if !errors.Is(err, expected) {
		t.Fatalf("expected last error %v, got %v", expected, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestWithRetryResultRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := withRetryResult(ctx, 3, func() (int, error) {
		return 0, errors.New("retryable")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestWithRetryStopsOnClientError(t *testing.T) {
	calls := 0
	_, err := withRetryResult(context.Background(), 3, func() (int, error) {
		calls++
		return 0, fmt.Errorf("fetch album: %w", &api.Error{StatusCode: 404})
	})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("client errors should not be retried, got %d attempts", calls)
	}
}

func TestWithRetryResultRetriesRateLimit(t *testing.T) {
	calls := 0
	value, err := withRetryResult(context.Background(), 3, func() (int, error) {
		calls++
		if calls < 2 {
			return 0, &api.Error{StatusCode: 429}
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("withRetryResult failed: %v", err)
	}
	if value != 42 || calls != 2 {
		t.Fatalf("unexpected value=%d calls=%d", value, calls)
	}
}
