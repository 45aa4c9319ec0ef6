package service

import (
	"context"
	"fmt"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/payment"
	"rentalmotor-backend/internal/repository"

	"github.com/skip2/go-qrcode"
)

type paymentService struct {
	txRepo        repository.TransactionRepository
	staticPayload string
	fee           payment.Fee
	qrSize        int
}

func NewPaymentService(txRepo repository.TransactionRepository, staticPayload string, fee payment.Fee, qrSize int) PaymentService {
	if qrSize <= 0 {
		qrSize = 512
	}
	return &paymentService{
		txRepo:        txRepo,
		staticPayload: staticPayload,
		fee:           fee,
		qrSize:        qrSize,
	}
}

func (s *paymentService) GenerateQRIS(ctx context.Context, transactionID int32) (*QRISPayment, error) {
	logger.EnterMethod("paymentService.GenerateQRIS", "transactionID", transactionID)

	if s.staticPayload == "" {
		return nil, ErrPaymentNotConfigured
	}

	tx, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Status == domain.TransactionStatusCancelled {
		return nil, ErrTransactionClosed
	}
	if tx.PaymentStatus == domain.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	// after an up-front payment only the late fee is left to collect
	amount := tx.Outstanding()
	if amount <= 0 {
		return nil, ErrNothingToPay
	}

	payload, err := payment.ToDynamic(s.staticPayload, amount, s.fee)
	if err != nil {
		logger.ExitMethodWithError("paymentService.GenerateQRIS", err)
		return nil, fmt.Errorf("failed to build QRIS: %w", err)
	}
	merchant, err := payment.ReadMerchant(payload)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(payload, qrcode.Medium, s.qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	logger.ExitMethod("paymentService.GenerateQRIS", "transactionID", tx.ID, "amount", amount)
	return &QRISPayment{
		TransactionID: tx.ID,
		Code:          tx.Code,
		Amount:        amount,
		Payload:       payload,
		Merchant:      merchant.Name,
		PNG:           png,
	}, nil
}
