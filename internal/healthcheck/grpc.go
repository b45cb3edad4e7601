package healthcheck

import (
	"context"
	"net"
	"time"

	"github.com/sbilibin2017/gw-blog/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultInterval is how often the gRPC server re-runs its checks.
const DefaultInterval = 10 * time.Second

// GRPCServer exposes grpc.health.v1.Health, driven by the same checks as
// the HTTP endpoint.
type GRPCServer struct {
	address  string
	checks   map[string]Check
	interval time.Duration
	health   *health.Server
}

// NewGRPCServer creates a health server for address. A non-positive
// interval selects DefaultInterval.
func NewGRPCServer(address string, checks map[string]Check, interval time.Duration) *GRPCServer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &GRPCServer{
		address:  address,
		checks:   checks,
		interval: interval,
		health:   health.NewServer(),
	}
}

// Refresh runs the checks once and publishes the overall status.
func (s *GRPCServer) Refresh(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if _, ok := Run(ctx, s.checks); !ok {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	return status
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves health checks on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, s.health)

	s.Refresh(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Log.Infow("stopping gRPC health server")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()

	logger.Log.Infow("starting gRPC health server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
