package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AdminRepository
	repository.MotorTypeRepository
	repository.MotorUnitRepository
	repository.TransactionRepository
	repository.BlogRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		AdminRepository:        NewAdminRepository(db),
		MotorTypeRepository:    NewMotorTypeRepository(db),
		MotorUnitRepository:    NewMotorUnitRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		BlogRepository:         NewBlogRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// DB exposes the underlying handle for jobs that run their own queries
func (s *Store) DB() *sql.DB {
	return s.db
}

// notFound maps sql.ErrNoRows to repository.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// expectGuarded turns a conditional update that matched no row into repository.ErrConflict
func expectGuarded(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrConflict
	}
	return nil
}

// expectOne turns a zero-row update or delete into repository.ErrNotFound
func expectOne(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func offsetFor(page, pageSize int32) int32 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id SERIAL PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		device_token TEXT NOT NULL DEFAULT '',
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS motor_types (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		brand VARCHAR(255) NOT NULL DEFAULT '',
		engine_cc INTEGER NOT NULL DEFAULT 0,
		daily_rate BIGINT NOT NULL CHECK (daily_rate >= 0),
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS motor_units (
		id SERIAL PRIMARY KEY,
		motor_type_id INTEGER NOT NULL REFERENCES motor_types(id),
		plate_number VARCHAR(32) NOT NULL UNIQUE,
		color VARCHAR(64) NOT NULL DEFAULT '',
		year INTEGER NOT NULL DEFAULT 0,
		daily_rate BIGINT NOT NULL CHECK (daily_rate >= 0),
		status VARCHAR(16) NOT NULL DEFAULT 'AVAILABLE',
		image_url TEXT NOT NULL DEFAULT '',
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		unit_id INTEGER NOT NULL REFERENCES motor_units(id),
		customer_name VARCHAR(255) NOT NULL,
		customer_phone VARCHAR(32) NOT NULL,
		customer_id_number VARCHAR(64) NOT NULL DEFAULT '',
		customer_address TEXT NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		daily_rate BIGINT NOT NULL,
		full_days BIGINT NOT NULL DEFAULT 0,
		extra_hours BIGINT NOT NULL DEFAULT 0,
		total_cost BIGINT NOT NULL DEFAULT 0,
		penalty BIGINT NOT NULL DEFAULT 0,
		paid_amount BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL,
		payment_status VARCHAR(16) NOT NULL DEFAULT 'UNPAID',
		notes TEXT NOT NULL DEFAULT '',
		created_by INTEGER NOT NULL DEFAULT 0,
		completed_on TIMESTAMPTZ,
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE transactions ADD COLUMN IF NOT EXISTS paid_amount BIGINT NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_status_end ON transactions (status, end_date)`,
	`CREATE TABLE IF NOT EXISTS blogs (
		id SERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		content TEXT NOT NULL,
		cover_url TEXT NOT NULL DEFAULT '',
		published BOOLEAN NOT NULL DEFAULT FALSE,
		author_id INTEGER NOT NULL,
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id SERIAL PRIMARY KEY,
		admin_id INTEGER NOT NULL DEFAULT 0,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		attributes JSONB,
		created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates any missing tables. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		logger.DatabaseCall("MIGRATE", fmt.Sprintf("schema[%d]", i))
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.DatabaseResult("MIGRATE", 0, err)
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	logger.Info("Database schema is up to date", "statements", len(schema))
	return nil
}
