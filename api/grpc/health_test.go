package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func setupHealthClient(t *testing.T) (*Server, grpc_health_v1.HealthClient) {
	t.Helper()
	list := bufconn.Listen(1024 * 1024)

	server := NewServer()
	go func() {
		_ = server.Serve(list)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return list.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return server, grpc_health_v1.NewHealthClient(conn)
}

func TestHealthServing(t *testing.T) {
	server, client := setupHealthClient(t)
	defer server.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Serve sets the status asynchronously, wait for it.
	assert.Eventually(t, func() bool {
		resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
		return err == nil && resp.Status == grpc_health_v1.HealthCheckResponse_SERVING
	}, 3*time.Second, 20*time.Millisecond)
}

func TestHealthUnknownService(t *testing.T) {
	server, client := setupHealthClient(t)
	defer server.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "unknown"})
	assert.Error(t, err)
}
