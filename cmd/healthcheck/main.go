package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Probes the gRPC health endpoint of the server. Exits non-zero unless the
// service reports SERVING, so it can back a container health check.
func main() {
	addr := flag.String("addr", "localhost:9090", "health server address")
	service := flag.String("service", "storefront", "service name to check")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: *service})
	if err != nil {
		log.Fatalf("Health check failed: %v", err)
	}

	fmt.Printf("%s: %s\n", *service, resp.GetStatus())
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		os.Exit(1)
	}
}
