package kit

import (
	"context"
	"testing"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "abc123")
	if got := GetTraceID(ctx); got != "abc123" {
		t.Fatalf("GetTraceID = %q, want abc123", got)
	}
	if got := GetTraceID(context.Background()); got != "" {
		t.Fatalf("GetTraceID on empty ctx = %q, want empty", got)
	}
}

func TestTransportDefaultsToHTTP(t *testing.T) {
	if got := GetTransport(context.Background()); got != "http" {
		t.Fatalf("GetTransport = %q, want http", got)
	}
	ctx := WithTransport(context.Background(), "mcp")
	if got := GetTransport(ctx); got != "mcp" {
		t.Fatalf("GetTransport = %q, want mcp", got)
	}
}

func TestContextKeysAreIndependent(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace")
	ctx = WithRequestID(ctx, "req")
	ctx = WithRemoteAddr(ctx, "10.0.0.1")

	if GetTraceID(ctx) != "trace" || GetRequestID(ctx) != "req" || GetRemoteAddr(ctx) != "10.0.0.1" {
		t.Fatalf("keys collided: %q %q %q", GetTraceID(ctx), GetRequestID(ctx), GetRemoteAddr(ctx))
	}
}
