package grpcserver

import (
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// Name reported on the health checks.
const ServiceName = "gotierlist.TierlistService"

// Server exposes the health check of the api over gRPC.
type Server struct {
	grpcServer   *grpc.Server
	healthServer *health.Server
}

// NewServer creates the gRPC server with the health service registered.
func NewServer() *Server {
	grpcServer := grpc.NewServer()

	// Register the health check.
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &Server{
		grpcServer:   grpcServer,
		healthServer: healthServer,
	}
}

// Serve marks the service as serving and blocks until the server stops.
func (s *Server) Serve(list net.Listener) error {
	s.healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	log.Println("Running gRPC server.")
	return s.grpcServer.Serve(list)
}

// Shutdown sets it to not serving and stops the server.
func (s *Server) Shutdown() {
	s.healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	s.healthServer.Shutdown()
	s.grpcServer.GracefulStop()
}
