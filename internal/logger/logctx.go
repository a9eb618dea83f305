package logger

import "context"

// LogCtx holds contextual information for logging
type LogCtx struct {
	Action    string
	RequestID string
}

type logCtxKey struct{}

// WithRequestID adds or updates the RequestID in the LogCtx within the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	lc, _ := ctx.Value(logCtxKey{}).(LogCtx)
	lc.RequestID = requestID
	return context.WithValue(ctx, logCtxKey{}, lc)
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	lc, _ := ctx.Value(logCtxKey{}).(LogCtx)
	lc.Action = action
	return context.WithValue(ctx, logCtxKey{}, lc)
}

func RequestID(ctx context.Context) string {
	lc, _ := ctx.Value(logCtxKey{}).(LogCtx)
	return lc.RequestID
}
