package grpcx

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/ports"
)

// ServiceName is the health service name reported alongside the overall ("")
// status.
const ServiceName = "shop-api"

// HealthWatcher polls the connectivity probe and mirrors the outcome into a
// health server.
type HealthWatcher struct {
	probe    ports.ConnectivityProbe
	health   *health.Server
	interval time.Duration
	last     healthpb.HealthCheckResponse_ServingStatus
}

func NewHealthWatcher(probe ports.ConnectivityProbe, hs *health.Server, interval time.Duration) *HealthWatcher {
	return &HealthWatcher{
		probe:    probe,
		health:   hs,
		interval: interval,
		last:     healthpb.HealthCheckResponse_UNKNOWN,
	}
}

// Run checks immediately and then every interval until ctx is done, at which
// point every service is marked NOT_SERVING.
func (w *HealthWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.CheckOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.health.Shutdown()
			return
		case <-ticker.C:
			w.CheckOnce(ctx)
		}
	}
}

// CheckOnce runs the probe and publishes the resulting status.
func (w *HealthWatcher) CheckOnce(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	res := w.probe.TestConnection(ctx)

	status := healthpb.HealthCheckResponse_SERVING
	if res.Status != entity.ProbeStatusOK {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	if status != w.last {
		slog.InfoContext(ctx, "health status changed", "from", w.last.String(), "to", status.String(), "detail", res.Detail)
		w.last = status
	}
	w.health.SetServingStatus("", status)
	w.health.SetServingStatus(ServiceName, status)
	return status
}
