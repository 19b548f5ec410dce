package grpc

import (
	"context"
	"time"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor логирует каждый unary вызов с кодом ответа и длительностью
func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []interface{}{
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.Warnw("gRPC request failed", append(fields, "error", err)...)
		} else {
			log.Debugw("gRPC request", fields...)
		}
		return resp, err
	}
}
