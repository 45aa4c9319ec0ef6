package service

import (
	"context"
	"io"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/utils"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Admin, string, string, error) // admin, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Register(ctx context.Context, actorID int32, admin *domain.Admin, password string) error
	Me(ctx context.Context, adminID int32) (*domain.Admin, error)
	UpdateDeviceToken(ctx context.Context, adminID int32, token string) error
	EnsureBootstrapAdmin(ctx context.Context, username, email, password string) error
}

type MotorService interface {
	CreateType(ctx context.Context, mt *domain.MotorType) error
	GetType(ctx context.Context, id int32) (*domain.MotorType, error)
	UpdateType(ctx context.Context, mt *domain.MotorType) error
	DeleteType(ctx context.Context, id int32) error
	ListTypes(ctx context.Context) ([]domain.MotorType, error)

	CreateUnit(ctx context.Context, unit *domain.MotorUnit) error
	GetUnit(ctx context.Context, id int32) (*domain.MotorUnit, error)
	UpdateUnit(ctx context.Context, unit *domain.MotorUnit) error
	DeleteUnit(ctx context.Context, id int32) error
	ListUnits(ctx context.Context, motorTypeID int32, status string) ([]domain.MotorUnit, error)
	SetUnitStatus(ctx context.Context, id int32, status domain.MotorUnitStatus) (*domain.MotorUnit, error)
}

// RentalInput is what the front desk fills in when a motorcycle leaves the shop
type RentalInput struct {
	UnitID           int32  `json:"unit_id"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerIDNumber string `json:"customer_id_number"`
	CustomerAddress  string `json:"customer_address"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Notes            string `json:"notes"`
}

// Quote is a price preview for a prospective rental
type Quote struct {
	UnitID    int32               `json:"unit_id"`
	DailyRate int64               `json:"daily_rate"`
	Cost      utils.CostBreakdown `json:"cost"`
}

type TransactionService interface {
	Quote(ctx context.Context, input RentalInput) (*Quote, error)
	CreateTransaction(ctx context.Context, adminID int32, input RentalInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error)
	GetByCode(ctx context.Context, code string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error)
	FinishTransaction(ctx context.Context, adminID, id int32) (*domain.Transaction, error)
	CancelTransaction(ctx context.Context, adminID, id int32, reason string) (*domain.Transaction, error)
	MarkPaid(ctx context.Context, id int32) (*domain.Transaction, error)
	// AssessOverdue refreshes the running penalty of every open transaction past its due instant
	AssessOverdue(ctx context.Context) ([]domain.Transaction, error)
	// DueAt returns the instant a transaction's motorcycle is due back
	DueAt(tx *domain.Transaction) (time.Time, error)
}

// QRISPayment is a dynamic QRIS for the outstanding amount of a transaction
type QRISPayment struct {
	TransactionID int32  `json:"transaction_id"`
	Code          string `json:"code"`
	Amount        int64  `json:"amount"`
	Payload       string `json:"payload"`
	Merchant      string `json:"merchant"`
	PNG           []byte `json:"-"`
}

type PaymentService interface {
	GenerateQRIS(ctx context.Context, transactionID int32) (*QRISPayment, error)
}

type BlogService interface {
	CreateBlog(ctx context.Context, authorID int32, blog *domain.Blog) error
	GetBlog(ctx context.Context, id int32) (*domain.Blog, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, blog *domain.Blog) error
	DeleteBlog(ctx context.Context, id int32) error
	ListBlogs(ctx context.Context, publishedOnly bool, page, pageSize int32) ([]domain.Blog, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, adminID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, adminID, notificationID int32) error
	// Notify stores a feed entry and fans it out to email and push. Channel failures are logged only.
	Notify(ctx context.Context, note *domain.Notification)
}

type UploadService interface {
	Save(ctx context.Context, folder, filename, contentType string, size int64, reader io.Reader) (*domain.StoredFile, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
