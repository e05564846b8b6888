package requestctx

import (
	"context"
	"testing"
)

func TestEnsureRequestIDKeepsExisting(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	_, id := EnsureRequestID(ctx)
	if id != "req-1" {
		t.Fatalf("expected req-1, got %q", id)
	}
}

func TestEnsureRequestIDGenerates(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if id == "" {
		t.Fatal("expected generated request id")
	}
	if GetRequestID(ctx) != id {
		t.Fatalf("expected context to carry %q", id)
	}
}
