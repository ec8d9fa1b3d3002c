package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("HTTP %d", int(s)) }
func (s statusErr) HTTPStatus() int { return int(s) }

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   5 * time.Millisecond,
		MaxDelay:       20 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_Success(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_SingleAttemptReturnsErrorUnchanged(t *testing.T) {
	testErr := statusErr(503)
	attempts := 0

	err := WithBackoff(context.Background(), Attempts(1), func() error {
		attempts++
		return testErr
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
	if err != error(testErr) {
		t.Errorf("expected the original error value, got %v", err)
	}
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return statusErr(500)
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	testErr := statusErr(502)
	attempts := 0

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return testErr
	})

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, testErr) {
		t.Errorf("expected wrapped error to contain original error, got %v", err)
	}
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	testErr := statusErr(401)
	attempts := 0

	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return testErr
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt for non-retryable error, got %d", attempts)
	}
	if err != error(testErr) {
		t.Errorf("expected original error, got %v", err)
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	err := WithBackoff(ctx, fastConfig(5), func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return statusErr(500)
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled error, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"HTTP 500", statusErr(500), true},
		{"HTTP 503", statusErr(503), true},
		{"HTTP 429", statusErr(429), true},
		{"HTTP 408", statusErr(408), true},
		{"HTTP 400", statusErr(400), false},
		{"HTTP 404", statusErr(404), false},
		{"wrapped HTTP 502", fmt.Errorf("scrape: %w", statusErr(502)), true},
		{"ECONNREFUSED", syscall.ECONNREFUSED, true},
		{"ECONNRESET", syscall.ECONNRESET, true},
		{"generic error", errors.New("some error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestAttempts(t *testing.T) {
	if got := Attempts(0).MaxAttempts; got != 1 {
		t.Errorf("Attempts(0).MaxAttempts = %d, want 1", got)
	}
	if got := Attempts(4).MaxAttempts; got != 4 {
		t.Errorf("Attempts(4).MaxAttempts = %d, want 4", got)
	}
	if DefaultConfig().MaxAttempts != 3 {
		t.Errorf("DefaultConfig().MaxAttempts = %d, want 3", DefaultConfig().MaxAttempts)
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 50; i++ {
		got := addJitter(base, 0.1)
		if got < base || got > base+10*time.Millisecond {
			t.Fatalf("addJitter() = %v, want within [%v, %v]", got, base, base+10*time.Millisecond)
		}
	}
	if addJitter(base, 0) != base {
		t.Error("zero jitter fraction should leave the duration unchanged")
	}
}
