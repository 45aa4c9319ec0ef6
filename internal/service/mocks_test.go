package service

import (
	"context"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/notify"
	"rentalmotor-backend/internal/security"

	"github.com/stretchr/testify/mock"
)

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}
func (m *MockAdminRepo) GetByID(ctx context.Context, id int32) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
func (m *MockAdminRepo) Update(ctx context.Context, admin *domain.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}
func (m *MockAdminRepo) List(ctx context.Context) ([]domain.Admin, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Admin), args.Error(1)
}

// MockMotorTypeRepo
type MockMotorTypeRepo struct {
	mock.Mock
}

func (m *MockMotorTypeRepo) Create(ctx context.Context, mt *domain.MotorType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
func (m *MockMotorTypeRepo) GetByID(ctx context.Context, id int32) (*domain.MotorType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MotorType), args.Error(1)
}
func (m *MockMotorTypeRepo) Update(ctx context.Context, mt *domain.MotorType) error {
	args := m.Called(ctx, mt)
	return args.Error(0)
}
func (m *MockMotorTypeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMotorTypeRepo) List(ctx context.Context) ([]domain.MotorType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MotorType), args.Error(1)
}

// MockMotorUnitRepo
type MockMotorUnitRepo struct {
	mock.Mock
}

func (m *MockMotorUnitRepo) Create(ctx context.Context, unit *domain.MotorUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}
func (m *MockMotorUnitRepo) GetByID(ctx context.Context, id int32) (*domain.MotorUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MotorUnit), args.Error(1)
}
func (m *MockMotorUnitRepo) Update(ctx context.Context, unit *domain.MotorUnit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}
func (m *MockMotorUnitRepo) UpdateStatus(ctx context.Context, id int32, status domain.MotorUnitStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockMotorUnitRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMotorUnitRepo) List(ctx context.Context, motorTypeID int32, status string) ([]domain.MotorUnit, error) {
	args := m.Called(ctx, motorTypeID, status)
	return args.Get(0).([]domain.MotorUnit), args.Error(1)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) GetByCode(ctx context.Context, code string) (*domain.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionRepo) Close(ctx context.Context, tx *domain.Transaction, from ...domain.TransactionStatus) error {
	args := m.Called(ctx, tx, from)
	return args.Error(0)
}
func (m *MockTransactionRepo) UpdatePenalty(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) MarkPaid(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) List(ctx context.Context, filter domain.TransactionFilter, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Transaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockTransactionRepo) ListOpenEndingBefore(ctx context.Context, day time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockBlogRepo
type MockBlogRepo struct {
	mock.Mock
}

func (m *MockBlogRepo) Create(ctx context.Context, blog *domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}
func (m *MockBlogRepo) GetByID(ctx context.Context, id int32) (*domain.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}
func (m *MockBlogRepo) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}
func (m *MockBlogRepo) Update(ctx context.Context, blog *domain.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}
func (m *MockBlogRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBlogRepo) List(ctx context.Context, publishedOnly bool, page, pageSize int32) ([]domain.Blog, int32, error) {
	args := m.Called(ctx, publishedOnly, page, pageSize)
	return args.Get(0).([]domain.Blog), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, adminID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, adminID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, adminID int32) error {
	args := m.Called(ctx, id, adminID)
	return args.Error(0)
}

// MockNotificationService records notifications raised by other services
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, adminID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, adminID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, adminID, notificationID int32) error {
	args := m.Called(ctx, adminID, notificationID)
	return args.Error(0)
}
func (m *MockNotificationService) Notify(ctx context.Context, note *domain.Notification) {
	m.Called(ctx, note)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(adminID int32, username string) (string, error) {
	args := m.Called(adminID, username)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(adminID int32, username string) (string, error) {
	args := m.Called(adminID, username)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.AdminClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.AdminClaims), args.Error(1)
}

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, email notify.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockPushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) SendPush(ctx context.Context, push notify.Push) error {
	args := m.Called(ctx, push)
	return args.Error(0)
}
