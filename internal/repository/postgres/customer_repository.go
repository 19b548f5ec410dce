package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/internal/repository"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createCustomersTable = `
	CREATE TABLE IF NOT EXISTS customers (
		id           SERIAL PRIMARY KEY,
		customer_id  TEXT UNIQUE NOT NULL,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		points       INTEGER NOT NULL DEFAULT 0,
		balance      NUMERIC(12,2) NOT NULL DEFAULT 0,
		risk_level   TEXT NOT NULL DEFAULT 'low',
		status       TEXT NOT NULL DEFAULT 'active',
		segment      TEXT NOT NULL DEFAULT 'standard',
		credit_limit NUMERIC(12,2) NOT NULL DEFAULT 0,
		delinquent   BOOLEAN NOT NULL DEFAULT false,
		notes        TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const insertSeedCustomer = `
	INSERT INTO customers (customer_id, first_name, last_name, points, balance, risk_level, status, segment, credit_limit, delinquent, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (customer_id) DO NOTHING
`

// summaryColumns колонки проекции без notes и внутреннего id
const summaryColumns = `customer_id, first_name, last_name, points, balance, risk_level, status, segment, credit_limit, delinquent, created_at, updated_at`

// PostgresCustomerRepository реализация репозитория клиентов через PostgreSQL
type PostgresCustomerRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

var _ repository.CustomerRepository = (*PostgresCustomerRepository)(nil)

// NewPostgresCustomerRepository создает новый репозиторий клиентов через PostgreSQL
func NewPostgresCustomerRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		db:  db,
		log: log,
	}
}

// Bootstrap создает таблицу customers и вставляет начальных клиентов, пропуская конфликты по customer_id
func (r *PostgresCustomerRepository) Bootstrap(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createCustomersTable); err != nil {
		return storageError("failed to create customers table", err)
	}

	seeds := repository.SeedCustomers()
	batch := &pgx.Batch{}
	for _, c := range seeds {
		batch.Queue(insertSeedCustomer,
			c.CustomerID,
			c.FirstName,
			c.LastName,
			c.Points,
			c.Balance.StringFixed(2),
			c.RiskLevel,
			c.Status,
			c.Segment,
			c.CreditLimit.StringFixed(2),
			c.Delinquent,
			c.Notes,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	var inserted int64
	for range seeds {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return storageError("failed to seed customers", err)
		}
		inserted += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return storageError("failed to seed customers", err)
	}

	r.log.Info("Bootstrap complete: %d of %d seed customers inserted", inserted, len(seeds))
	return nil
}

// List возвращает всех клиентов по возрастанию customer_id
func (r *PostgresCustomerRepository) List(ctx context.Context) ([]domain.CustomerSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM customers ORDER BY customer_id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storageError("failed to query customers", err)
	}
	defer rows.Close()

	customers := make([]domain.CustomerSummary, 0)
	for rows.Next() {
		var customer domain.CustomerSummary
		if err := rows.Scan(summaryTargets(&customer)...); err != nil {
			return nil, storageError("failed to scan customer", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating customers", err)
	}

	return customers, nil
}

// GetByCustomerID возвращает полную запись клиента по customer_id
func (r *PostgresCustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (domain.Customer, error) {
	query := `SELECT ` + summaryColumns + `, notes FROM customers WHERE customer_id = $1`

	return r.getOne(ctx, query, customerID)
}

// GetByCustomerIDAndLastName возвращает клиента, если совпадают customer_id и фамилия (без учета регистра)
func (r *PostgresCustomerRepository) GetByCustomerIDAndLastName(ctx context.Context, customerID, lastName string) (domain.Customer, error) {
	query := `
		SELECT ` + summaryColumns + `, notes
		FROM customers
		WHERE customer_id = $1 AND LOWER(TRIM(last_name)) = LOWER(TRIM($2))
	`

	return r.getOne(ctx, query, customerID, lastName)
}

// Adjust блокирует строку клиента, применяет корректировку и сохраняет результат в одной транзакции
func (r *PostgresCustomerRepository) Adjust(ctx context.Context, customerID string, adj domain.Adjustment) (domain.CustomerSummary, error) {
	var updated domain.CustomerSummary

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var current domain.CustomerSummary
		err := tx.QueryRow(ctx,
			`SELECT `+summaryColumns+` FROM customers WHERE customer_id = $1 FOR UPDATE`,
			customerID,
		).Scan(summaryTargets(&current)...)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return storageError("failed to lock customer", err)
		}

		merged := current.Apply(adj, current.UpdatedAt)

		err = tx.QueryRow(ctx, `
			UPDATE customers
			SET points = $2, balance = $3, risk_level = $4, status = $5, segment = $6, delinquent = $7, updated_at = now()
			WHERE customer_id = $1
			RETURNING updated_at
		`,
			customerID,
			merged.Points,
			merged.Balance.StringFixed(2),
			merged.RiskLevel,
			merged.Status,
			merged.Segment,
			merged.Delinquent,
		).Scan(&merged.UpdatedAt)
		if err != nil {
			return storageError("failed to update customer", err)
		}

		updated = merged
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStorageUnavailable) {
			return domain.CustomerSummary{}, err
		}
		return domain.CustomerSummary{}, storageError("failed to adjust customer", err)
	}

	return updated, nil
}

func (r *PostgresCustomerRepository) getOne(ctx context.Context, query string, args ...any) (domain.Customer, error) {
	var customer domain.Customer

	targets := append(summaryTargets(&customer.CustomerSummary), &customer.Notes)
	if err := r.db.QueryRow(ctx, query, args...).Scan(targets...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.ErrNotFound
		}
		return domain.Customer{}, storageError("failed to get customer", err)
	}

	return customer, nil
}

// summaryTargets возвращает адреса полей в порядке summaryColumns
func summaryTargets(c *domain.CustomerSummary) []any {
	return []any{
		&c.CustomerID,
		&c.FirstName,
		&c.LastName,
		&c.Points,
		&c.Balance,
		&c.RiskLevel,
		&c.Status,
		&c.Segment,
		&c.CreditLimit,
		&c.Delinquent,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
}

// storageError оборачивает ошибку драйвера в ErrStorageUnavailable, сохраняя исходную ошибку
func storageError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w: %w (sqlstate %s)", msg, domain.ErrStorageUnavailable, err, pgErr.Code)
	}
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrStorageUnavailable, err)
}
