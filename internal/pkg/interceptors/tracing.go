package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor attaches request metadata to the context and logs
// each call once it completes.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, requestID, idempotencyKey := withRequestMetadata(ctx)
		start := time.Now()

		resp, err := handler(ctx, req)
		logCall(ctx, info.FullMethod, requestID, idempotencyKey, start, err)
		return resp, err
	}
}

// StreamServerInterceptor is the streaming counterpart of
// UnaryServerInterceptor; the stream's context carries the metadata.
func StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		ctx, requestID, idempotencyKey := withRequestMetadata(ss.Context())
		start := time.Now()

		err := handler(srv, &contextStream{ServerStream: ss, ctx: ctx})
		logCall(ctx, info.FullMethod, requestID, idempotencyKey, start, err)
		return err
	}
}

type contextStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *contextStream) Context() context.Context {
	return s.ctx
}

func logCall(ctx context.Context, method, requestID, idempotencyKey string, start time.Time, err error) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelWarn
	}
	slog.Log(ctx, level, "grpc call",
		"method", method,
		"request_id", requestID,
		"idempotency_key", idempotencyKey,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
}
