package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/notify"
	"rentalmotor-backend/internal/repository"
	"rentalmotor-backend/internal/utils"

	"github.com/oklog/ulid/v2"
)

const transactionCodePrefix = "TRX-"

type transactionService struct {
	txRepo   repository.TransactionRepository
	unitRepo repository.MotorUnitRepository
	noteSvc  NotificationService
	loc      *time.Location
	now      func() time.Time
}

type TransactionOption func(*transactionService)

// WithClock replaces time.Now as the source of "now" for penalties and timestamps
func WithClock(now func() time.Time) TransactionOption {
	return func(s *transactionService) {
		s.now = now
	}
}

func NewTransactionService(
	txRepo repository.TransactionRepository,
	unitRepo repository.MotorUnitRepository,
	noteSvc NotificationService,
	loc *time.Location,
	opts ...TransactionOption,
) TransactionService {
	if loc == nil {
		loc = time.UTC
	}
	s := &transactionService{
		txRepo:   txRepo,
		unitRepo: unitRepo,
		noteSvc:  noteSvc,
		loc:      loc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// parsePeriod validates the rental dates and clocks and returns the start and end instants
func (s *transactionService) parsePeriod(input RentalInput) (time.Time, time.Time, error) {
	start, err := utils.ParseInstant(strings.TrimSpace(input.StartDate), strings.TrimSpace(input.StartTime), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("start", "%s", err.Error())
	}
	end, err := utils.ParseInstant(strings.TrimSpace(input.EndDate), strings.TrimSpace(input.EndTime), s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("end", "%s", err.Error())
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return start, end, nil
}

func (s *transactionService) Quote(ctx context.Context, input RentalInput) (*Quote, error) {
	start, end, err := s.parsePeriod(input)
	if err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.GetByID(ctx, input.UnitID)
	if err != nil {
		return nil, err
	}

	cost := utils.CalculateRentalCost(utils.RentalPeriod{Start: start, End: end, DailyRate: unit.DailyRate})
	return &Quote{UnitID: unit.ID, DailyRate: unit.DailyRate, Cost: cost}, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, adminID int32, input RentalInput) (*domain.Transaction, error) {
	logger.EnterMethod("transactionService.CreateTransaction", "adminID", adminID, "unitID", input.UnitID)

	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, invalid("customer_name", "is required")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, invalid("customer_phone", "is required")
	}
	start, end, err := s.parsePeriod(input)
	if err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.GetByID(ctx, input.UnitID)
	if err != nil {
		logger.ExitMethodWithError("transactionService.CreateTransaction", err, "unitID", input.UnitID)
		return nil, err
	}
	if unit.Status != domain.MotorUnitStatusAvailable {
		logger.Warn("Motor unit not available for rent", "unitID", unit.ID, "status", unit.Status)
		return nil, ErrUnitNotAvailable
	}

	cost := utils.CalculateRentalCost(utils.RentalPeriod{Start: start, End: end, DailyRate: unit.DailyRate})

	tx := &domain.Transaction{
		Code:             transactionCodePrefix + ulid.Make().String(),
		UnitID:           unit.ID,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		CustomerPhone:    strings.TrimSpace(input.CustomerPhone),
		CustomerIDNumber: strings.TrimSpace(input.CustomerIDNumber),
		CustomerAddress:  strings.TrimSpace(input.CustomerAddress),
		StartDate:        start.Format(utils.DateLayout),
		EndDate:          end.Format(utils.DateLayout),
		StartTime:        start.Format(utils.ClockLayout),
		EndTime:          end.Format(utils.ClockLayout),
		DailyRate:        unit.DailyRate,
		FullDays:         cost.FullDays,
		ExtraHours:       cost.ExtraHours,
		TotalCost:        cost.Amount,
		Status:           domain.TransactionStatusActive,
		PaymentStatus:    domain.PaymentStatusUnpaid,
		Notes:            strings.TrimSpace(input.Notes),
		CreatedBy:        adminID,
	}

	// the unit is claimed in the same write, so a concurrent rental of it loses here
	if err := s.txRepo.Create(ctx, tx); err != nil {
		logger.ExitMethodWithError("transactionService.CreateTransaction", err)
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUnitNotAvailable
		}
		return nil, err
	}

	logger.Info("Rental transaction created",
		"transactionID", tx.ID,
		"code", tx.Code,
		"unitID", unit.ID,
		"fullDays", tx.FullDays,
		"extraHours", tx.ExtraHours,
		"totalCost", tx.TotalCost)

	s.noteSvc.Notify(ctx, &domain.Notification{
		Title:      "New rental",
		Message:    fmt.Sprintf("%s rented %s until %s %s, total %s", tx.CustomerName, unit.PlateNumber, tx.EndDate, tx.EndTime, notify.FormatRupiah(tx.TotalCost)),
		Attributes: transactionAttributes(tx, domain.NotificationTypeTransactionCreated),
	})

	logger.ExitMethod("transactionService.CreateTransaction", "transactionID", tx.ID)
	return tx, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	return s.txRepo.GetByID(ctx, id)
}

func (s *transactionService) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	return s.txRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *transactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return s.txRepo.List(ctx, filter, page, pageSize)
}

func (s *transactionService) DueAt(tx *domain.Transaction) (time.Time, error) {
	return utils.ParseInstant(tx.EndDate, tx.EndTime, s.loc)
}

func (s *transactionService) FinishTransaction(ctx context.Context, adminID, id int32) (*domain.Transaction, error) {
	logger.EnterMethod("transactionService.FinishTransaction", "adminID", adminID, "transactionID", id)

	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("transactionService.FinishTransaction", err)
		return nil, err
	}
	if !tx.IsOpen() {
		return nil, ErrTransactionClosed
	}

	due, err := s.DueAt(tx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	penalty := utils.CalculatePenalty(due, now, tx.DailyRate)

	completedOn := now.In(s.loc).Format(time.RFC3339)
	tx.Penalty = penalty.Amount
	tx.Status = domain.TransactionStatusCompleted
	tx.CompletedOn = &completedOn

	if err := s.txRepo.Close(ctx, tx, domain.TransactionStatusActive, domain.TransactionStatusOverdue); err != nil {
		logger.ExitMethodWithError("transactionService.FinishTransaction", err)
		return nil, closeError(err)
	}

	logger.Info("Rental transaction finished",
		"transactionID", tx.ID,
		"code", tx.Code,
		"lateDays", penalty.FullDays,
		"lateHours", penalty.ExtraHours,
		"penalty", tx.Penalty,
		"amountDue", tx.AmountDue(),
		"outstanding", tx.Outstanding())

	msg := fmt.Sprintf("%s returned the motorcycle, rental %s", tx.CustomerName, notify.FormatRupiah(tx.TotalCost))
	if tx.Penalty > 0 {
		msg += fmt.Sprintf(", late fee %s", notify.FormatRupiah(tx.Penalty))
	}
	msg += fmt.Sprintf(", total %s", notify.FormatRupiah(tx.AmountDue()))
	if tx.PaidAmount > 0 && tx.Outstanding() > 0 {
		msg += fmt.Sprintf(", still to collect %s", notify.FormatRupiah(tx.Outstanding()))
	}
	s.noteSvc.Notify(ctx, &domain.Notification{
		Title:      "Rental finished",
		Message:    msg,
		Attributes: transactionAttributes(tx, domain.NotificationTypeTransactionFinished),
	})

	logger.ExitMethod("transactionService.FinishTransaction", "transactionID", tx.ID)
	return tx, nil
}

func (s *transactionService) CancelTransaction(ctx context.Context, adminID, id int32, reason string) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status != domain.TransactionStatusActive {
		return nil, ErrTransactionClosed
	}

	tx.Status = domain.TransactionStatusCancelled
	if reason = strings.TrimSpace(reason); reason != "" {
		if tx.Notes != "" {
			tx.Notes += "\n"
		}
		tx.Notes += "Cancelled: " + reason
	}

	if err := s.txRepo.Close(ctx, tx, domain.TransactionStatusActive); err != nil {
		return nil, closeError(err)
	}

	logger.Info("Rental transaction cancelled", "transactionID", tx.ID, "code", tx.Code, "adminID", adminID)

	s.noteSvc.Notify(ctx, &domain.Notification{
		Title:      "Rental cancelled",
		Message:    fmt.Sprintf("Rental %s for %s was cancelled", tx.Code, tx.CustomerName),
		Attributes: transactionAttributes(tx, domain.NotificationTypeTransactionCancelled),
	})
	return tx, nil
}

func (s *transactionService) MarkPaid(ctx context.Context, id int32) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.Status == domain.TransactionStatusCancelled {
		return nil, ErrTransactionClosed
	}
	if tx.PaymentStatus == domain.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	if err := s.txRepo.MarkPaid(ctx, tx); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyPaid
		}
		return nil, err
	}
	logger.Info("Rental transaction paid", "transactionID", tx.ID, "code", tx.Code, "amount", tx.PaidAmount)
	return tx, nil
}

func (s *transactionService) AssessOverdue(ctx context.Context) ([]domain.Transaction, error) {
	logger.EnterMethod("transactionService.AssessOverdue")

	now := s.now()
	candidates, err := s.txRepo.ListOpenEndingBefore(ctx, now.In(s.loc))
	if err != nil {
		logger.ExitMethodWithError("transactionService.AssessOverdue", err)
		return nil, err
	}

	var (
		updated []domain.Transaction
		errs    []error
	)
	for i := range candidates {
		tx := &candidates[i]
		due, err := s.DueAt(tx)
		if err != nil {
			errs = append(errs, fmt.Errorf("transaction %s: %w", tx.Code, err))
			continue
		}
		if !now.After(due) {
			continue
		}

		penalty := utils.CalculatePenalty(due, now, tx.DailyRate)
		becameOverdue := tx.Status == domain.TransactionStatusActive
		if !becameOverdue && tx.Penalty == penalty.Amount {
			continue
		}

		tx.Penalty = penalty.Amount
		err = s.txRepo.UpdatePenalty(ctx, tx)
		if errors.Is(err, repository.ErrConflict) {
			logger.Info("Transaction closed before penalty update", "transactionID", tx.ID, "code", tx.Code)
			continue
		}
		if err != nil {
			logger.Error("Failed to update overdue transaction", "transactionID", tx.ID, "error", err)
			errs = append(errs, fmt.Errorf("transaction %s: %w", tx.Code, err))
			continue
		}
		updated = append(updated, *tx)

		if becameOverdue {
			s.noteSvc.Notify(ctx, &domain.Notification{
				Title:      "Rental overdue",
				Message:    fmt.Sprintf("%s (%s) was due back %s %s, late fee so far %s", tx.CustomerName, tx.CustomerPhone, tx.EndDate, tx.EndTime, notify.FormatRupiah(tx.Penalty)),
				Attributes: transactionAttributes(tx, domain.NotificationTypeTransactionOverdue),
			})
		}
	}

	logger.ExitMethod("transactionService.AssessOverdue", "checked", len(candidates), "updated", len(updated))
	return updated, errors.Join(errs...)
}

// closeError maps a lost status race to ErrTransactionClosed
func closeError(err error) error {
	if errors.Is(err, repository.ErrConflict) {
		return ErrTransactionClosed
	}
	return err
}

func transactionAttributes(tx *domain.Transaction, noteType string) map[string]string {
	return map[string]string{
		"type":           noteType,
		"transaction_id": strconv.Itoa(int(tx.ID)),
		"code":           tx.Code,
	}
}
