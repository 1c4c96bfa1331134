package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
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

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("dial: %w", syscall.ECONNREFUSED)
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
	attempts := 0
	testErr := fmt.Errorf("dial: %w", syscall.ECONNRESET)
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return testErr
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, testErr) {
		t.Errorf("expected wrapped error to contain original error")
	}
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	attempts := 0
	testErr := errors.New("relation \"posts\" does not exist")
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return testErr
	})

	if attempts != 1 {
		t.Errorf("expected 1 attempt (non-retryable), got %d", attempts)
	}
	if err != testErr {
		t.Errorf("expected same error, got %v", err)
	}
}

func TestWithBackoff_RetryIf(t *testing.T) {
	cfg := fastConfig(4)
	cfg.RetryIf = UnlessContextError

	attempts := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		if attempts < 4 {
			return errors.New("no such table: posts")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	cfg := fastConfig(5)
	cfg.InitialDelay = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return syscall.ECONNREFUSED
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled error, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil", err: nil, retryable: false},
		{name: "canceled", err: context.Canceled, retryable: false},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), retryable: false},
		{name: "net timeout", err: timeoutError{}, retryable: true},
		{name: "refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "reset", err: fmt.Errorf("read: %w", syscall.ECONNRESET), retryable: true},
		{name: "timed out", err: syscall.ETIMEDOUT, retryable: true},
		{name: "unreachable", err: syscall.ENETUNREACH, retryable: true},
		{name: "plain", err: errors.New("syntax error"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestUnlessContextError(t *testing.T) {
	if UnlessContextError(nil) {
		t.Error("nil must not be retried")
	}
	if UnlessContextError(context.Canceled) {
		t.Error("context errors must not be retried")
	}
	if !UnlessContextError(errors.New("boom")) {
		t.Error("other errors must be retried")
	}
}

func TestConfigs(t *testing.T) {
	for name, cfg := range map[string]Config{
		"default": DefaultConfig(),
		"db":      DBConfig(),
		"startup": StartupConfig(),
	} {
		if cfg.MaxAttempts < 1 || cfg.InitialDelay <= 0 || cfg.MaxDelay < cfg.InitialDelay || cfg.Multiplier < 1 {
			t.Errorf("%s config is inconsistent: %+v", name, cfg)
		}
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		got := addJitter(base, 0.1)
		if got < base || got > base+10*time.Millisecond {
			t.Fatalf("addJitter(%v, 0.1) = %v, out of range", base, got)
		}
	}
	if got := addJitter(base, 0); got != base {
		t.Errorf("zero fraction changed duration: %v", got)
	}
}
