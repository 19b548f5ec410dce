package grpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// Client представляет gRPC клиент health-протокола
type Client struct {
	conn   *grpc.ClientConn
	health healthpb.HealthClient
	opts   *ClientOptions
	log    *logger.Logger
}

// ClientOptions настройки для gRPC клиента
type ClientOptions struct {
	Address          string
	Timeout          time.Duration
	UseTLS           bool
	KeepAlive        bool
	KeepAliveTime    time.Duration
	KeepAliveTimeout time.Duration
}

// DefaultClientOptions возвращает настройки по умолчанию
func DefaultClientOptions() *ClientOptions {
	return &ClientOptions{
		Address:          "localhost:50051",
		Timeout:          time.Second * 5,
		UseTLS:           false,
		KeepAlive:        false,
		KeepAliveTime:    time.Minute,
		KeepAliveTimeout: time.Second * 20,
	}
}

// NewClient создает новый gRPC клиент. Соединение устанавливается лениво при первом вызове.
func NewClient(opts *ClientOptions, log *logger.Logger, extra ...grpc.DialOption) (*Client, error) {
	log.Debug("Creating gRPC client to %s", opts.Address)

	var dialOpts []grpc.DialOption

	if opts.UseTLS {
		creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(creds))
	} else {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	if opts.KeepAlive {
		dialOpts = append(dialOpts, grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                opts.KeepAliveTime,
			Timeout:             opts.KeepAliveTimeout,
			PermitWithoutStream: true,
		}))
	}

	conn, err := grpc.NewClient(opts.Address, append(dialOpts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client: %w", err)
	}

	return &Client{
		conn:   conn,
		health: healthpb.NewHealthClient(conn),
		opts:   opts,
		log:    log,
	}, nil
}

// Check запрашивает статус сервиса; пустое имя означает сервер целиком
func (c *Client) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		c.log.Warn("Health check of %q at %s failed: %v", service, c.opts.Address, err)
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("health check failed: %w", err)
	}

	c.log.Debug("Health check of %q: %s", service, resp.GetStatus())
	return resp.GetStatus(), nil
}

// Close закрывает соединение с gRPC сервером
func (c *Client) Close() error {
	if c.conn != nil {
		c.log.Debug("Closing gRPC client connection")
		return c.conn.Close()
	}
	return nil
}
