package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int, timeout time.Duration, halfOpen int) (*Breaker, *time.Time) {
	b := New(Config{Enabled: true, FailureThreshold: threshold, OpenTimeout: timeout, HalfOpenMaxReq: halfOpen})
	now := time.Date(2025, 11, 12, 20, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_Transitions(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(2, 5*time.Second, 1)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}
	b.RecordFailure()
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}
	b.RecordSuccess()
	if state := b.State(); state != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b, now := newTestBreaker(1, time.Second, 1)
	b.RecordFailure()
	*now = now.Add(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe: %v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != StateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestBreaker_Execute(t *testing.T) {
	t.Parallel()

	b, _ := newTestBreaker(2, time.Minute, 1)
	upstream := errors.New("status=503")
	notFound := errors.New("status=404")
	isUpstream := func(err error) bool { return errors.Is(err, upstream) }

	if err := b.Execute(func() error { return notFound }, isUpstream); !errors.Is(err, notFound) {
		t.Fatalf("expected caller error to pass through, got %v", err)
	}
	if err := b.Execute(func() error { return notFound }, isUpstream); !errors.Is(err, notFound) {
		t.Fatalf("expected caller error to pass through, got %v", err)
	}
	if state := b.State(); state != StateClosed {
		t.Fatalf("non-upstream errors must not open the breaker, got %s", state)
	}

	_ = b.Execute(func() error { return upstream }, isUpstream)
	_ = b.Execute(func() error { return upstream }, isUpstream)

	calls := 0
	err := b.Execute(func() error { calls++; return nil }, isUpstream)
	if !errors.Is(err, ErrCircuitOpen) || calls != 0 {
		t.Fatalf("expected open breaker to short-circuit, err=%v calls=%d", err, calls)
	}
}

func TestBreaker_DisabledAlwaysRuns(t *testing.T) {
	t.Parallel()

	b := New(Config{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		if err := b.Execute(func() error { return errors.New("boom") }, nil); err == nil || errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("disabled breaker must run fn, got %v", err)
		}
	}

	var nilBreaker *Breaker
	if err := nilBreaker.Execute(func() error { return nil }, nil); err != nil {
		t.Fatalf("nil breaker must run fn: %v", err)
	}
}

func TestConfig_Normalize(t *testing.T) {
	t.Parallel()

	cfg := Config{Enabled: true}.Normalize()
	defaults := DefaultConfig()
	if cfg.FailureThreshold != defaults.FailureThreshold || cfg.OpenTimeout != defaults.OpenTimeout || cfg.HalfOpenMaxReq != defaults.HalfOpenMaxReq {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}
