package constants

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	HeaderXRequestID      = "X-Request-Id"
	HeaderXIdempotencyKey = "X-Idempotency-Key"
	HeaderXSessionID      = "X-Session-Id"

	// ContextKeyRequestID is the context key for the request ID.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyIdempotencyKey is the context key for the submit idempotency key.
	ContextKeyIdempotencyKey contextKey = "idempotency_key"
	// ContextKeySessionID is the context key for the storefront session ID.
	ContextKeySessionID contextKey = "session_id"
)
