package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config структура конфигурации приложения
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Nice     NiceConfig
	Kafka    KafkaConfig
	GRPC     GRPCConfig
}

// AppConfig общие настройки приложения
type AppConfig struct {
	Env string
}

// ServerConfig конфигурация HTTP сервера
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig конфигурация базы данных
type DatabaseConfig struct {
	URL     string
	Timeout time.Duration
}

// LoggingConfig конфигурация логгера
type LoggingConfig struct {
	Level string
}

// NiceConfig параметры client-credentials гранта к NICE
type NiceConfig struct {
	AuthURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// KafkaConfig конфигурация публикации событий; пустой список брокеров отключает публикацию
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// GRPCConfig конфигурация gRPC health сервера; пустой порт отключает сервер
type GRPCConfig struct {
	Port string
}

// IsProduction сообщает, запущено ли приложение в production окружении
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env: v.GetString("APP_ENV"),
		},
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URL:     v.GetString("DATABASE_URL"),
			Timeout: v.GetDuration("DB_TIMEOUT"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Nice: NiceConfig{
			AuthURL:      strings.TrimRight(v.GetString("NICE_AUTH_URL"), "/"),
			ClientID:     v.GetString("NICE_CLIENT_ID"),
			ClientSecret: v.GetString("NICE_CLIENT_SECRET"),
			Timeout:      v.GetDuration("UPSTREAM_TIMEOUT"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		GRPC: GRPCConfig{
			Port: v.GetString("GRPC_PORT"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "10000")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_TIMEOUT", 5*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("NICE_AUTH_URL", "")
	v.SetDefault("NICE_CLIENT_ID", "")
	v.SetDefault("NICE_CLIENT_SECRET", "")
	v.SetDefault("UPSTREAM_TIMEOUT", 10*time.Second)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "customer.adjusted")
	v.SetDefault("GRPC_PORT", "")
}

// splitList разбирает список через запятую, отбрасывая пустые элементы
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
