package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemorySlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	opener := NewMemoryOpener()
	slot := opener.Open("session-1")

	if _, err := slot.Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty on fresh slot, got %v", err)
	}

	if err := slot.Save(ctx, []byte(`[{"variantId":"a"}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := slot.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `[{"variantId":"a"}]` {
		t.Fatalf("unexpected data %s", data)
	}

	// Same key yields the same slot; different keys are isolated.
	again, err := opener.Open("session-1").Load(ctx)
	if err != nil || string(again) != string(data) {
		t.Fatalf("expected shared slot per key, got %s err=%v", again, err)
	}
	if _, err := opener.Open("session-2").Load(ctx); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected isolated slot per key, got %v", err)
	}
}

func TestMemorySlotLastWriterWins(t *testing.T) {
	ctx := context.Background()
	opener := NewMemoryOpener()

	// Two handles on the same key behave like two tabs: no conflict
	// detection, the later write clobbers the earlier one.
	first := opener.Open("shared")
	second := opener.Open("shared")

	if err := first.Save(ctx, []byte(`["first"]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := second.Save(ctx, []byte(`["second"]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := first.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != `["second"]` {
		t.Fatalf("expected last write to win, got %s", data)
	}
}
