package interceptors

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// scriptedService answers health checks with a pre-configured sequence of status codes.
type scriptedService struct {
	healthpb.UnimplementedHealthServer

	mu        sync.Mutex
	callCount int32
	// responses - a queue of gRPC codes to return for each call.
	responses []codes.Code
}

// Check simulates a gRPC call and returns the next pre-configured response.
func (s *scriptedService) Check(_ context.Context, _ *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount++

	if len(s.responses) > 0 {
		code := s.responses[0]
		s.responses = s.responses[1:]
		if code != codes.OK {
			return nil, status.Error(code, "scripted error")
		}
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

func (s *scriptedService) setResponses(responses ...codes.Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = responses
	s.callCount = 0
}

func (s *scriptedService) getCallCount() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// setupTestEnvironment creates a bufconn gRPC server and a client with the retry and breaker interceptors.
func setupTestEnvironment(t *testing.T) (healthpb.HealthClient, *scriptedService) {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	service := &scriptedService{}

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, service)

	go func() {
		_ = grpcServer.Serve(lis)
	}()

	retryCfg := config.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: 10 * time.Millisecond,
	}
	circuitBreakerCfg := config.CircuitBreakerConfig{
		ConsecutiveFailures: 5,
		ErrorRatePercent:    60,
		OpenTimeout:         5 * time.Second,
		HalfOpenRequests:    3,
	}

	conn, err := grpc.NewClient("passthrough://bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			NewRetryInterceptor(retryCfg),
			NewCircuitBreaker("test-cb", circuitBreakerCfg),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		grpcServer.Stop()
		_ = lis.Close()
	})

	return healthpb.NewHealthClient(conn), service
}

func TestInterceptors_HappyPath(t *testing.T) {
	client, service := setupTestEnvironment(t)

	// given
	service.setResponses(codes.OK)

	// when
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})

	// then
	require.NoError(t, err)
	require.Equal(t, int32(1), service.getCallCount(), "Server should be called exactly once")
}

func TestInterceptors_RetryOnTransientError(t *testing.T) {
	client, service := setupTestEnvironment(t)

	// given
	service.setResponses(codes.Unavailable, codes.Aborted, codes.OK)

	// when
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})

	// then
	require.NoError(t, err)
	require.Equal(t, int32(3), service.getCallCount(), "Server should be called exactly 3 times due to retries")
}

func TestInterceptors_NoRetryOnDataError(t *testing.T) {
	testCases := []struct {
		name string
		code codes.Code
	}{
		{name: "invalid argument", code: codes.InvalidArgument},
		{name: "not found", code: codes.NotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, service := setupTestEnvironment(t)

			// given
			service.setResponses(tc.code)

			// when
			_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})

			// then
			require.Error(t, err)
			require.Equal(t, tc.code, status.Code(err))
			require.Equal(t, int32(1), service.getCallCount(), "no retries on data error")
		})
	}
}

func TestInterceptors_CircuitBreakerOpens(t *testing.T) {
	client, service := setupTestEnvironment(t)

	// given
	// ConsecutiveFailures > 5 needs two calls of three attempts each.
	service.setResponses(
		codes.Unavailable, codes.Unavailable, codes.Unavailable, // first call
		codes.Unavailable, codes.Unavailable, codes.Unavailable, // second call
	)

	// when
	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.Error(t, err, "First call should fail")

	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.Error(t, err, "Second call should fail")

	require.Equal(t, int32(6), service.getCallCount(), "Server should be called 6 times")

	// then: the third call is rejected without reaching the server
	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, int32(6), service.getCallCount(), "circuit breaker should block the call")
}

func TestInterceptors_CircuitBreakerIgnoresDataError(t *testing.T) {
	client, service := setupTestEnvironment(t)

	// given
	responses := make([]codes.Code, 10)
	for i := range responses {
		responses[i] = codes.NotFound
	}
	service.setResponses(responses...)

	// when
	for range 10 {
		_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
		// then
		require.Error(t, err)
		require.Equal(t, codes.NotFound, status.Code(err))
	}

	require.Equal(t, int32(10), service.getCallCount(), "circuit breaker should not trigger on data errors")
}

func Test_isSuccessful(t *testing.T) {
	require.True(t, isSuccessful(nil))
	require.True(t, isSuccessful(status.Error(codes.NotFound, "missing")))
	require.False(t, isSuccessful(status.Error(codes.Unavailable, "down")))
	require.False(t, isSuccessful(context.DeadlineExceeded))
}
