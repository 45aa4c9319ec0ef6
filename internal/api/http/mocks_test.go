package http

import (
	"context"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.Admin, string, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*domain.Admin), args.String(1), args.String(2), args.Error(3)
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	args := m.Called(ctx, refresh)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockAuthService) Register(ctx context.Context, actorID int32, admin *domain.Admin, password string) error {
	args := m.Called(ctx, actorID, admin, password)
	return args.Error(0)
}
func (m *MockAuthService) Me(ctx context.Context, adminID int32) (*domain.Admin, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAuthService) UpdateDeviceToken(ctx context.Context, adminID int32, token string) error {
	args := m.Called(ctx, adminID, token)
	return args.Error(0)
}
func (m *MockAuthService) EnsureBootstrapAdmin(ctx context.Context, username, email, password string) error {
	args := m.Called(ctx, username, email, password)
	return args.Error(0)
}

// MockTransactionService
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) Quote(ctx context.Context, input service.RentalInput) (*service.Quote, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Quote), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, adminID int32, input service.RentalInput) (*domain.Transaction, error) {
	args := m.Called(ctx, adminID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionService) FinishTransaction(ctx context.Context, adminID, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, adminID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) CancelTransaction(ctx context.Context, adminID, id int32, reason string) (*domain.Transaction, error) {
	args := m.Called(ctx, adminID, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) MarkPaid(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) AssessOverdue(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DueAt(tx *domain.Transaction) (time.Time, error) {
	args := m.Called(tx)
	return args.Get(0).(time.Time), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GenerateQRIS(ctx context.Context, transactionID int32) (*service.QRISPayment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QRISPayment), args.Error(1)
}

// MockBlogService
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) CreateBlog(ctx context.Context, authorID int32, blog *domain.Blog) error {
	args := m.Called(ctx, authorID, blog)
	return args.Error(0)
}
func (m *MockBlogService) GetBlog(ctx context.Context, id int32) (*domain.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}
func (m *MockBlogService) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Blog, error) {
	args := m.Called(ctx, slug, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}
func (m *MockBlogService) UpdateBlog(ctx context.Context, blog *domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}
func (m *MockBlogService) DeleteBlog(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBlogService) ListBlogs(ctx context.Context, publishedOnly bool, page, pageSize int32) ([]domain.Blog, int32, error) {
	args := m.Called(ctx, publishedOnly, page, pageSize)
	return args.Get(0).([]domain.Blog), args.Get(1).(int32), args.Error(2)
}
