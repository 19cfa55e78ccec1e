package checkout

import (
	"context"
	"errors"
	"testing"
)

type blockingStarter struct {
	entered  chan struct{}
	release  chan struct{}
	beginErr error
	calls    int
}

func (s *blockingStarter) Begin(_ context.Context, _ []Line, _ string) (string, error) {
	s.calls++
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	return "https://pay.example.com/s/1", s.beginErr
}

func TestHandoffIgnoresSecondBeginWhilePending(t *testing.T) {
	starter := &blockingStarter{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	handoff := NewHandoff(starter)

	done := make(chan error, 1)
	go func() {
		_, err := handoff.Begin(context.Background(), []Line{{VariantID: "v", Quantity: 1}}, "DE")
		done <- err
	}()

	<-starter.entered
	if _, err := handoff.Begin(context.Background(), []Line{{VariantID: "v", Quantity: 1}}, "DE"); !errors.Is(err, ErrPending) {
		t.Fatalf("expected ErrPending while in flight, got %v", err)
	}
	close(starter.release)

	if err := <-done; err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	if starter.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", starter.calls)
	}
}

func TestHandoffReEnabledAfterFailure(t *testing.T) {
	starter := &blockingStarter{beginErr: errors.New("upstream down")}
	handoff := NewHandoff(starter)
	ctx := context.Background()
	lines := []Line{{VariantID: "v", Quantity: 1}}

	if _, err := handoff.Begin(ctx, lines, "DE"); err == nil {
		t.Fatalf("expected failure")
	}
	// The guard resets: the shopper can try again, no automatic retry.
	starter.beginErr = nil
	url, err := handoff.Begin(ctx, lines, "DE")
	if err != nil || url == "" {
		t.Fatalf("expected second attempt to succeed, got url=%q err=%v", url, err)
	}
	if starter.calls != 2 {
		t.Fatalf("expected two upstream calls, got %d", starter.calls)
	}
}
