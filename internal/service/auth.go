package service

import (
	"context"
	"errors"
	"strings"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"
	"rentalmotor-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type authService struct {
	adminRepo repository.AdminRepository
	tokens    security.TokenManager
}

func NewAuthService(adminRepo repository.AdminRepository, tokens security.TokenManager) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.Admin, string, string, error) {
	logger.EnterMethod("authService.Login", "username", username)

	admin, err := s.adminRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.ExitMethodWithError("authService.Login", err)
			return nil, "", "", err
		}
		logger.Warn("Login failed: unknown username", "username", username)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login failed: wrong password", "username", username)
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.generateTokens(admin)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err)
		return nil, "", "", err
	}

	logger.ExitMethod("authService.Login", "adminID", admin.ID)
	return admin, access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", ErrInvalidToken
	}

	// the admin may have been removed since the token was issued
	admin, err := s.adminRepo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidToken
		}
		return "", "", err
	}

	return s.generateTokens(admin)
}

func (s *authService) Register(ctx context.Context, actorID int32, admin *domain.Admin, password string) error {
	logger.EnterMethod("authService.Register", "actorID", actorID, "username", admin.Username)

	admin.Username = strings.TrimSpace(admin.Username)
	admin.Email = strings.TrimSpace(admin.Email)
	if admin.Username == "" {
		return invalid("username", "is required")
	}
	if !strings.Contains(admin.Email, "@") {
		return invalid("email", "must be a valid email address")
	}
	if len(password) < minPasswordLength {
		return invalid("password", "must be at least %d characters", minPasswordLength)
	}

	if _, err := s.adminRepo.GetByUsername(ctx, admin.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin.PasswordHash = string(hash)
	if admin.Name == "" {
		admin.Name = admin.Username
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return err
	}

	logger.Info("Admin registered", "adminID", admin.ID, "username", admin.Username, "createdBy", actorID)
	logger.ExitMethod("authService.Register", "adminID", admin.ID)
	return nil
}

func (s *authService) Me(ctx context.Context, adminID int32) (*domain.Admin, error) {
	return s.adminRepo.GetByID(ctx, adminID)
}

func (s *authService) UpdateDeviceToken(ctx context.Context, adminID int32, token string) error {
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	admin.DeviceToken = strings.TrimSpace(token)
	return s.adminRepo.Update(ctx, admin)
}

// EnsureBootstrapAdmin creates the first admin account when the admins table is empty
func (s *authService) EnsureBootstrapAdmin(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}

	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}

	admin := &domain.Admin{Username: username, Email: email, Name: username}
	if err := s.Register(ctx, 0, admin, password); err != nil {
		return err
	}
	logger.Info("Bootstrap admin created", "username", username)
	return nil
}

func (s *authService) generateTokens(admin *domain.Admin) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(admin.ID, admin.Username)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
