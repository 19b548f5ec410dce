package main

import (
	"context"
	"flag"
	"os"
	"time"

	grpcapi "github.com/Dhoini/nice-proxy/internal/api/grpc"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Проба для контейнера: код 0, если gRPC health-сервер отвечает SERVING
func main() {
	addr := flag.String("addr", "localhost:"+envOr("GRPC_PORT", "50051"), "gRPC health server address")
	service := flag.String("service", grpcapi.ServiceName, "service name to check")
	timeout := flag.Duration("timeout", 3*time.Second, "check timeout")
	flag.Parse()

	log := logger.New(logger.WARN)

	opts := grpcapi.DefaultClientOptions()
	opts.Address = *addr
	opts.Timeout = *timeout

	client, err := grpcapi.NewClient(opts, log)
	if err != nil {
		log.Fatal("Failed to create health client: %v", err)
	}
	defer client.Close()

	status, err := client.Check(context.Background(), *service)
	if err != nil || status != healthpb.HealthCheckResponse_SERVING {
		log.Error("Service %q is %s", *service, status)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
