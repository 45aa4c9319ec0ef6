package jobs

import (
	"context"
	"fmt"
	"strconv"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/notify"
)

const reminderPageSize = 100

// MarkOverdueTransactions flags open rentals past their due instant and refreshes their penalty
func (jr *JobRunner) MarkOverdueTransactions() {
	jr.runWithRecovery("MarkOverdueTransactions", func(ctx context.Context) {
		if _, err := jr.markOverdue(ctx); err != nil {
			logger.Error("Failed to mark overdue transactions", "error", err)
		}
	})
}

func (jr *JobRunner) markOverdue(ctx context.Context) (int, error) {
	updated, err := jr.services.Transaction.AssessOverdue(ctx)
	logger.WithJob("MarkOverdueTransactions").Info("Assessed overdue transactions", "updated", len(updated))
	return len(updated), err
}

// SendOverdueReminders notifies admins about every overdue rental with its running penalty
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func(ctx context.Context) {
		if _, err := jr.sendOverdueReminders(ctx); err != nil {
			logger.Error("Failed to send overdue reminders", "error", err)
		}
	})
}

func (jr *JobRunner) sendOverdueReminders(ctx context.Context) (int, error) {
	log := logger.WithJob("SendOverdueReminders")
	filter := domain.TransactionFilter{Status: string(domain.TransactionStatusOverdue)}

	sent := 0
	for page := int32(1); ; page++ {
		txs, total, err := jr.services.Transaction.ListTransactions(ctx, filter, page, reminderPageSize)
		if err != nil {
			return sent, fmt.Errorf("failed to list overdue transactions: %w", err)
		}

		for i := range txs {
			note, err := jr.reminderFor(&txs[i])
			if err != nil {
				log.Warn("Skipping reminder", "transaction_id", txs[i].ID, "error", err)
				continue
			}
			jr.services.Notification.Notify(ctx, note)
			sent++
		}

		if len(txs) == 0 || int64(page)*reminderPageSize >= int64(total) {
			break
		}
	}

	log.Info("Sent overdue reminders", "count", sent)
	return sent, nil
}

func (jr *JobRunner) reminderFor(tx *domain.Transaction) (*domain.Notification, error) {
	due, err := jr.services.Transaction.DueAt(tx)
	if err != nil {
		return nil, err
	}
	return &domain.Notification{
		Title: fmt.Sprintf("Rental %s is still out", tx.Code),
		Message: fmt.Sprintf("%s (%s) was due back %s. Running penalty %s, total due %s.",
			tx.CustomerName, tx.CustomerPhone, due.Format("02 Jan 2006 15:04"),
			notify.FormatRupiah(tx.Penalty), notify.FormatRupiah(tx.AmountDue())),
		Attributes: map[string]string{
			"type":           domain.NotificationTypeOverdueReminder,
			"transaction_id": strconv.Itoa(int(tx.ID)),
			"code":           tx.Code,
		},
	}, nil
}
