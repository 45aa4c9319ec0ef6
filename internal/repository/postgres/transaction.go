package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `id, code, unit_id, customer_name, customer_phone, customer_id_number, customer_address,
	start_date, end_date, start_time, end_time, daily_rate, full_days, extra_hours, total_cost, penalty,
	paid_amount, status, payment_status, notes, created_by, completed_on, created_on, updated_on`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t           domain.Transaction
		start, end  time.Time
		completedOn sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Code, &t.UnitID, &t.CustomerName, &t.CustomerPhone, &t.CustomerIDNumber, &t.CustomerAddress,
		&start, &end, &t.StartTime, &t.EndTime, &t.DailyRate, &t.FullDays, &t.ExtraHours, &t.TotalCost, &t.Penalty,
		&t.PaidAmount, &t.Status, &t.PaymentStatus, &t.Notes, &t.CreatedBy, &completedOn, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	t.StartDate = start.Format("2006-01-02")
	t.EndDate = end.Format("2006-01-02")
	if completedOn.Valid {
		s := completedOn.Time.Format(time.RFC3339)
		t.CompletedOn = &s
	}
	return &t, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	logger.EnterMethod("transactionRepository.Create", "code", t.Code, "unitID", t.UnitID)

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Create", err, "code", t.Code)
		return err
	}
	defer dbTx.Rollback()

	now := time.Now()
	logger.DatabaseCall("UPDATE", "motor_units", "unitID", t.UnitID, "status", domain.MotorUnitStatusRented)
	result, err := dbTx.ExecContext(ctx,
		`UPDATE motor_units SET status='RENTED', updated_on=$1 WHERE id=$2 AND status='AVAILABLE'`, now, t.UnitID)
	if err := expectGuarded(result, err); err != nil {
		logger.ExitMethodWithError("transactionRepository.Create", err, "unitID", t.UnitID)
		return err
	}

	query := `INSERT INTO transactions (code, unit_id, customer_name, customer_phone, customer_id_number, customer_address,
	              start_date, end_date, start_time, end_time, daily_rate, full_days, extra_hours, total_cost, penalty,
	              status, payment_status, notes, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21) RETURNING id`
	logger.DatabaseCall("INSERT", "transactions", "code", t.Code)

	err = dbTx.QueryRowContext(ctx, query, t.Code, t.UnitID, t.CustomerName, t.CustomerPhone, t.CustomerIDNumber, t.CustomerAddress,
		t.StartDate, t.EndDate, t.StartTime, t.EndTime, t.DailyRate, t.FullDays, t.ExtraHours, t.TotalCost, t.Penalty,
		t.Status, t.PaymentStatus, t.Notes, t.CreatedBy, now, now).Scan(&t.ID)
	logger.DatabaseResult("INSERT", 1, err, "transactionID", t.ID)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Create", err, "code", t.Code)
		t.ID = 0
		return err
	}

	if err := dbTx.Commit(); err != nil {
		logger.ExitMethodWithError("transactionRepository.Create", err, "code", t.Code)
		t.ID = 0
		return err
	}
	logger.ExitMethod("transactionRepository.Create", "transactionID", t.ID)
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *transactionRepository) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE code = $1`
	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

func (r *transactionRepository) Close(ctx context.Context, t *domain.Transaction, from ...domain.TransactionStatus) error {
	logger.EnterMethod("transactionRepository.Close", "transactionID", t.ID, "status", t.Status)
	if len(from) == 0 {
		return fmt.Errorf("closing transaction %d: no source status given", t.ID)
	}

	var completedOn interface{}
	if t.CompletedOn != nil {
		completedOn = *t.CompletedOn
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Close", err)
		return err
	}
	defer dbTx.Rollback()

	now := time.Now()
	args := []interface{}{t.Status, t.Penalty, t.Notes, completedOn, now, t.ID}
	placeholders := make([]string, len(from))
	for i, status := range from {
		args = append(args, status)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	// a late fee reopens the payment when it exceeds what was already paid
	query := `UPDATE transactions SET status=$1, penalty=$2, notes=$3, completed_on=$4, updated_on=$5,
	              payment_status = CASE WHEN paid_amount < total_cost + $2 THEN 'UNPAID' ELSE payment_status END
	          WHERE id=$6 AND status IN (` + strings.Join(placeholders, ", ") + `) RETURNING unit_id, payment_status`
	logger.DatabaseCall("UPDATE", "transactions", "transactionID", t.ID, "status", t.Status)

	var unitID int32
	err = dbTx.QueryRowContext(ctx, query, args...).Scan(&unitID, &t.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		err = repository.ErrConflict
	}
	logger.DatabaseResult("UPDATE", 1, err, "transactionID", t.ID)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.Close", err, "transactionID", t.ID)
		return err
	}

	logger.DatabaseCall("UPDATE", "motor_units", "unitID", unitID, "status", domain.MotorUnitStatusAvailable)
	result, err := dbTx.ExecContext(ctx, `UPDATE motor_units SET status='AVAILABLE', updated_on=$1 WHERE id=$2`, now, unitID)
	if err := expectOne(result, err); err != nil {
		logger.ExitMethodWithError("transactionRepository.Close", err, "unitID", unitID)
		return err
	}

	if err := dbTx.Commit(); err != nil {
		logger.ExitMethodWithError("transactionRepository.Close", err)
		return err
	}
	logger.ExitMethod("transactionRepository.Close", "transactionID", t.ID, "paymentStatus", t.PaymentStatus)
	return nil
}

func (r *transactionRepository) UpdatePenalty(ctx context.Context, t *domain.Transaction) error {
	query := `UPDATE transactions SET status='OVERDUE', penalty=$1, updated_on=$2,
	              payment_status = CASE WHEN paid_amount < total_cost + $1 THEN 'UNPAID' ELSE payment_status END
	          WHERE id=$3 AND status IN ('ACTIVE', 'OVERDUE') RETURNING payment_status`
	logger.DatabaseCall("UPDATE", "transactions", "transactionID", t.ID, "penalty", t.Penalty)

	err := r.db.QueryRowContext(ctx, query, t.Penalty, time.Now(), t.ID).Scan(&t.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		err = repository.ErrConflict
	}
	logger.DatabaseResult("UPDATE", 1, err, "transactionID", t.ID)
	if err != nil {
		return err
	}
	t.Status = domain.TransactionStatusOverdue
	return nil
}

func (r *transactionRepository) MarkPaid(ctx context.Context, t *domain.Transaction) error {
	query := `UPDATE transactions SET payment_status='PAID', paid_amount=total_cost + penalty, updated_on=$1
	          WHERE id=$2 AND status <> 'CANCELLED' AND payment_status='UNPAID' RETURNING penalty, paid_amount`
	logger.DatabaseCall("UPDATE", "transactions", "transactionID", t.ID, "paymentStatus", domain.PaymentStatusPaid)

	err := r.db.QueryRowContext(ctx, query, time.Now(), t.ID).Scan(&t.Penalty, &t.PaidAmount)
	if errors.Is(err, sql.ErrNoRows) {
		err = repository.ErrConflict
	}
	logger.DatabaseResult("UPDATE", 1, err, "transactionID", t.ID)
	if err != nil {
		return err
	}
	t.PaymentStatus = domain.PaymentStatusPaid
	return nil
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	where := ` FROM transactions WHERE 1=1`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		where += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if filter.UnitID > 0 {
		args = append(args, filter.UnitID)
		where += fmt.Sprintf(" AND unit_id = $%d", len(args))
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where += fmt.Sprintf(" AND (code ILIKE $%d OR customer_name ILIKE $%d OR customer_phone ILIKE $%d)", len(args), len(args), len(args))
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*)"+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + transactionColumns + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pageSize, offsetFor(page, pageSize))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *t)
	}
	return txs, count, rows.Err()
}

func (r *transactionRepository) ListOpenEndingBefore(ctx context.Context, day time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
	          WHERE status IN ('ACTIVE', 'OVERDUE') AND end_date <= $1 ORDER BY end_date, end_time`
	logger.DatabaseCall("SELECT", "transactions", "endDateUpTo", day.Format("2006-01-02"))
	rows, err := r.db.QueryContext(ctx, query, day.Format("2006-01-02"))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}
	logger.DatabaseResult("SELECT", int64(len(txs)), rows.Err())
	return txs, rows.Err()
}
