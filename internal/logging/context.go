package logging

import "context"

// RequestIDKey is the attribute name used for request ids in log records.
const RequestIDKey = "request_id"

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx carrying id. Both logger
// backends add it to every record logged with that context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
