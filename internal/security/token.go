package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

const issuer = "rentalmotor-auth"

// AdminClaims defines the claims carried by admin tokens
type AdminClaims struct {
	AdminID  int32     `json:"admin_id"`
	Username string    `json:"username,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(adminID int32, username string) (string, error)
	GenerateRefreshToken(adminID int32, username string) (string, error)
	ValidateToken(tokenString string) (*AdminClaims, error)
}

type tokenManager struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewTokenManager(secret string, accessExpiry, refreshExpiry time.Duration) TokenManager {
	return &tokenManager{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

func (m *tokenManager) GenerateAccessToken(adminID int32, username string) (string, error) {
	return m.sign(adminID, username, TokenTypeAccess, m.accessExpiry, "api-access")
}

func (m *tokenManager) GenerateRefreshToken(adminID int32, username string) (string, error) {
	return m.sign(adminID, username, TokenTypeRefresh, m.refreshExpiry, "token-refresh")
}

func (m *tokenManager) sign(adminID int32, username string, typ TokenType, ttl time.Duration, audience string) (string, error) {
	now := m.now()
	claims := AdminClaims{
		AdminID:  adminID,
		Username: username,
		Type:     typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(adminID)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid {
		if claims.AdminID == 0 && claims.Subject != "" {
			id, _ := strconv.Atoi(claims.Subject)
			claims.AdminID = int32(id)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
