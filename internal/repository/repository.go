package repository

import (
	"context"
	"errors"
	"time"

	"rentalmotor-backend/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a guarded write finds the row in a state that no longer allows it
var ErrConflict = errors.New("record state changed")

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id int32) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) error
	List(ctx context.Context) ([]domain.Admin, error)
}

type MotorTypeRepository interface {
	Create(ctx context.Context, mt *domain.MotorType) error
	GetByID(ctx context.Context, id int32) (*domain.MotorType, error)
	Update(ctx context.Context, mt *domain.MotorType) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.MotorType, error)
}

type MotorUnitRepository interface {
	Create(ctx context.Context, unit *domain.MotorUnit) error
	GetByID(ctx context.Context, id int32) (*domain.MotorUnit, error)
	Update(ctx context.Context, unit *domain.MotorUnit) error
	UpdateStatus(ctx context.Context, id int32, status domain.MotorUnitStatus) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, motorTypeID int32, status string) ([]domain.MotorUnit, error)
}

type TransactionRepository interface {
	// Create inserts tx and marks its unit RENTED in one database transaction.
	// It returns ErrConflict when the unit is no longer AVAILABLE.
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	GetByCode(ctx context.Context, code string) (*domain.Transaction, error)
	// Close stores the final status, penalty and notes of tx and frees its unit in one
	// database transaction. It returns ErrConflict when the stored status is not one of from.
	Close(ctx context.Context, tx *domain.Transaction, from ...domain.TransactionStatus) error
	// UpdatePenalty marks an open transaction OVERDUE with tx.Penalty.
	// It returns ErrConflict when the transaction was closed meanwhile.
	UpdatePenalty(ctx context.Context, tx *domain.Transaction) error
	// MarkPaid settles total cost plus penalty.
	// It returns ErrConflict when the transaction is cancelled or already paid.
	MarkPaid(ctx context.Context, tx *domain.Transaction) error
	List(ctx context.Context, filter domain.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error)
	// ListOpenEndingBefore returns ACTIVE and OVERDUE transactions whose end date is on or before day
	ListOpenEndingBefore(ctx context.Context, day time.Time) ([]domain.Transaction, error)
}

type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) error
	GetByID(ctx context.Context, id int32) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, publishedOnly bool, page, pageSize int32) ([]domain.Blog, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, adminID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, adminID int32) error
}
