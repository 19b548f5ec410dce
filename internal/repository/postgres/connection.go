package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// managedHost домен управляемого Postgres, сертификат которого не проходит стандартную проверку
const managedHost = "render.com"

// NewConnection создает новое подключение к PostgreSQL
func NewConnection(ctx context.Context, connString string, log *logger.Logger) (*pgxpool.Pool, error) {
	log.Info("Connecting to PostgreSQL")

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Настраиваем пул соединений
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	if relaxTLS(poolConfig.ConnConfig.Host) {
		log.Warn("Relaxing TLS verification for managed database host %s", poolConfig.ConnConfig.Host)
		relaxFallbacks(poolConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Проверяем подключение
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Info("Successfully connected to PostgreSQL")
	return pool, nil
}

// relaxTLS сообщает, нужно ли ослабить проверку TLS для данного хоста
func relaxTLS(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	return host == managedHost || strings.HasSuffix(host, "."+managedHost)
}

// relaxFallbacks отключает проверку сертификата во всех TLS-вариантах подключения.
// Подключения без TLS (sslmode=disable) остаются как есть.
func relaxFallbacks(cfg *pgxpool.Config) {
	cc := cfg.ConnConfig
	if cc.TLSConfig != nil {
		cc.TLSConfig.InsecureSkipVerify = true
	}
	for _, fb := range cc.Fallbacks {
		if fb.TLSConfig != nil {
			fb.TLSConfig.InsecureSkipVerify = true
		}
	}
}
