package interceptors

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/interceptors/constants"
)

// withRequestMetadata copies the request id and idempotency key from the
// incoming metadata into the context. A call without a request id gets a
// fresh one.
func withRequestMetadata(ctx context.Context) (context.Context, string, string) {
	md, _ := metadata.FromIncomingContext(ctx)

	requestID := firstValue(md, constants.HeaderXRequestId)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	idempotencyKey := firstValue(md, constants.HeaderXIdempotencyKey)

	ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
	ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, idempotencyKey)
	return ctx, requestID, idempotencyKey
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(constants.ContextKeyRequestID).(string)
	return id
}

func IdempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(constants.ContextKeyIdempotencyKey).(string)
	return key
}

func firstValue(md metadata.MD, key string) string {
	if vals := md.Get(key); len(vals) > 0 {
		return vals[0]
	}
	return ""
}
