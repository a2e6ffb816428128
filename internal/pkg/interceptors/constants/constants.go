// Package constants names the request metadata shared by the HTTP middleware
// and the gRPC interceptors.
package constants

// contextKey keeps these keys from colliding with plain string keys.
type contextKey string

const (
	HeaderXRequestId      = "x-request-id"
	HeaderXIdempotencyKey = "x-idempotency-key"

	ContextKeyRequestID      contextKey = HeaderXRequestId
	ContextKeyIdempotencyKey contextKey = HeaderXIdempotencyKey
)
