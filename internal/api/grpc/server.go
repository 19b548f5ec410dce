package grpc

import (
	"fmt"
	"net"
	"time"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

// ServiceName имя сервиса в health-протоколе
const ServiceName = "nice.proxy.v1.CustomerProxy"

// Server gRPC сервер, отдающий стандартный health-протокол
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	log        *logger.Logger
	addr       string
	listener   net.Listener
}

// NewServer создает новый gRPC сервер
func NewServer(addr string, log *logger.Logger) *Server {
	// Настройки keepalive для gRPC
	kaParams := keepalive.ServerParameters{
		MaxConnectionIdle:     time.Minute * 5,
		MaxConnectionAge:      time.Hour,
		MaxConnectionAgeGrace: time.Minute * 5,
		Time:                  time.Minute * 2,
		Timeout:               time.Second * 20,
	}

	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(kaParams),
		grpc.UnaryInterceptor(LoggingInterceptor(log)),
	)
	healthServer := health.NewServer()

	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
		log:        log,
		addr:       addr,
	}
}

// Start слушает адрес и обслуживает запросы до Stop
func (s *Server) Start() error {
	s.log.Info("Starting gRPC server on %s", s.addr)

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return s.Serve(listener)
}

// Serve обслуживает запросы на переданном listener
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	if err := s.grpcServer.Serve(listener); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// SetServing переключает статус health-проверки
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Stop останавливает gRPC сервер
func (s *Server) Stop() {
	s.log.Info("Stopping gRPC server")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
