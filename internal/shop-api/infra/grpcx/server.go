// Package grpcx exposes the standard gRPC health service, driven by the
// connectivity probe.
package grpcx

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/jcmexdev/ecommerce-shop-api/internal/pkg/interceptors"
)

// NewServer returns a gRPC server serving hs as grpc.health.v1.Health.
func NewServer(hs *health.Server) *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(interceptors.UnaryServerInterceptor()),
		grpc.ChainStreamInterceptor(interceptors.StreamServerInterceptor()),
	)
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	return srv
}
