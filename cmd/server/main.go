package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dhoini/nice-proxy/config"
	grpcapi "github.com/Dhoini/nice-proxy/internal/api/grpc"
	"github.com/Dhoini/nice-proxy/internal/api/rest"
	"github.com/Dhoini/nice-proxy/internal/integration/nice"
	"github.com/Dhoini/nice-proxy/internal/kafka"
	"github.com/Dhoini/nice-proxy/internal/kafka/producer"
	"github.com/Dhoini/nice-proxy/internal/metrics"
	"github.com/Dhoini/nice-proxy/internal/repository"
	"github.com/Dhoini/nice-proxy/internal/repository/postgres"
	"github.com/Dhoini/nice-proxy/internal/service"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.INFO).Fatal("Failed to load configuration: %v", err)
	}

	// Инициализация логгера
	log := logger.NewWithOptions(logger.Options{
		Level: logger.ParseLevel(cfg.Logging.Level),
		JSON:  cfg.IsProduction(),
	})
	defer func() { _ = log.Sync() }()

	// Создаем контекст с возможностью отмены
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация Prometheus
	registry := metrics.NewRegistry()
	customerMetrics := metrics.NewCustomerMetrics(registry, log)

	// Выбор хранилища клиентов
	var repo repository.CustomerRepository
	if cfg.Database.URL != "" {
		dbPool, err := postgres.NewConnection(ctx, cfg.Database.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()
		repo = postgres.NewPostgresCustomerRepository(dbPool, log)
	} else {
		log.Warn("DATABASE_URL is not set, using in-memory customer store")
		repo = repository.NewInMemoryCustomerRepository(log)
	}

	// Инициализация Kafka продюсера
	var publisher service.EventPublisher = service.NopEventPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaConfig := kafka.NewConfig(cfg.Kafka.Brokers)

		admin, err := kafka.NewClusterAdmin(kafkaConfig, log)
		if err != nil {
			log.Fatal("Failed to create Kafka admin: %v", err)
		}
		if err := kafka.EnsureTopic(admin, kafka.DefaultTopicSpec(cfg.Kafka.Topic), log); err != nil {
			log.Warn("Kafka topic check failed, continuing: %v", err)
		}
		_ = admin.Close()

		syncProducer, err := kafka.NewSyncProducer(kafkaConfig, log)
		if err != nil {
			log.Fatal("Failed to create Kafka producer: %v", err)
		}
		customerProducer := producer.NewCustomerProducer(syncProducer, cfg.Kafka.Topic, log)
		defer func() {
			if err := customerProducer.Close(); err != nil {
				log.Error("Failed to close Kafka producer: %v", err)
			}
		}()
		publisher = customerProducer
	}

	if cfg.Nice.AuthURL == "" {
		log.Warn("NICE_AUTH_URL is not set, /token will fail")
	}
	niceClient := nice.NewClient(nice.Config{
		AuthURL:      cfg.Nice.AuthURL,
		ClientID:     cfg.Nice.ClientID,
		ClientSecret: cfg.Nice.ClientSecret,
		Timeout:      cfg.Nice.Timeout,
	}, customerMetrics, log)

	customerService := service.NewCustomerService(repo, publisher, customerMetrics, cfg.Database.Timeout, log)

	// Установка режима Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Настройка маршрутизатора
	router := rest.SetupRouter(rest.Dependencies{
		Customers: customerService,
		Tokens:    niceClient,
		Registry:  registry,
		Log:       log,
	})

	// Создание и запуск HTTP сервера
	server := rest.NewServer(router, cfg.Server, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// gRPC health сервер
	var grpcServer *grpcapi.Server
	if cfg.GRPC.Port != "" {
		grpcServer = grpcapi.NewServer(":"+cfg.GRPC.Port, log)
		go func() {
			if err := grpcServer.Start(); err != nil {
				log.Fatal("gRPC server error: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if grpcServer != nil {
		grpcServer.SetServing(false)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if grpcServer != nil {
		grpcServer.Stop()
	}

	log.Info("Server stopped gracefully")
}
