// CLAUDE:SUMMARY Transport-agnostic endpoint type and request-scoped context keys shared across HTTP and MCP.
// Package kit holds the small shared vocabulary between transports: the
// Endpoint function type every tool/handler reduces to, and the context
// keys enriching a request as it crosses transport boundaries.
package kit

import "context"

// Endpoint is a transport-agnostic operation: decoded request in, response
// value out. HTTP handlers and MCP tools both wrap Endpoints.
type Endpoint func(ctx context.Context, req any) (any, error)

type contextKey string

const (
	TraceIDKey    contextKey = "kit_trace_id"
	RequestIDKey  contextKey = "kit_request_id"
	TransportKey  contextKey = "kit_transport" // "http", "mcp"
	RemoteAddrKey contextKey = "kit_remote_addr"
)

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}
func GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(TraceIDKey).(string)
	return v
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return "http"
}

func WithRemoteAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, RemoteAddrKey, addr)
}
func GetRemoteAddr(ctx context.Context) string {
	v, _ := ctx.Value(RemoteAddrKey).(string)
	return v
}
