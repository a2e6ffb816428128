package grpcx

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/jcmexdev/ecommerce-shop-api/internal/shop-api/core/domain/entity"
)

type switchProbe struct {
	mu sync.Mutex
	ok bool
}

func (p *switchProbe) set(ok bool) {
	p.mu.Lock()
	p.ok = ok
	p.mu.Unlock()
}

func (p *switchProbe) TestConnection(context.Context) entity.ProbeResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ok {
		return entity.ProbeResult{Status: entity.ProbeStatusOK}
	}
	return entity.ProbeResult{Status: entity.ProbeStatusError, Detail: "connection refused"}
}

func check(t *testing.T, hs *health.Server, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthWatcher_FollowsProbe(t *testing.T) {
	probe := &switchProbe{ok: true}
	hs := health.NewServer()
	w := NewHealthWatcher(probe, hs, time.Hour)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, w.CheckOnce(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, hs, ServiceName))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, hs, ""))

	probe.set(false)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, w.CheckOnce(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, hs, ServiceName))

	probe.set(true)
	w.CheckOnce(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, hs, ServiceName))
}

func TestHealthWatcher_RunPollsAndShutsDown(t *testing.T) {
	probe := &switchProbe{ok: false}
	hs := health.NewServer()
	w := NewHealthWatcher(probe, hs, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	probe.set(true)
	assert.Eventually(t, func() bool {
		return check(t, hs, ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, hs, ServiceName))
}

func TestServer_ServesHealthOverGRPC(t *testing.T) {
	hs := health.NewServer()
	NewHealthWatcher(&switchProbe{ok: true}, hs, time.Hour).CheckOnce(context.Background())

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
