package http

import (
	"net/http"
	"strings"
	"time"

	"rentalmotor-backend/internal/config"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/security"

	"github.com/gorilla/mux"
)

// AuthMiddleware enforces the security level configured for each named route
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		routeName := ""
		if route := mux.CurrentRoute(r); route != nil {
			routeName = route.GetName()
		}
		level := config.GetSecurityLevel(routeName)

		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeErrorMessage(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeErrorMessage(w, http.StatusUnauthorized, err.Error())
			return
		}

		switch level {
		case config.SecurityAccess:
			if claims.Type != security.TokenTypeAccess {
				writeErrorMessage(w, http.StatusForbidden, "access token required")
				return
			}
		case config.SecurityRefresh:
			if claims.Type != security.TokenTypeRefresh {
				writeErrorMessage(w, http.StatusForbidden, "refresh token required")
				return
			}
		}

		if rec, ok := w.(*statusRecorder); ok {
			rec.adminID = claims.AdminID
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

func bearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

// statusRecorder also carries the authenticated admin, since claims live on a
// request the access log never sees
type statusRecorder struct {
	http.ResponseWriter
	status  int
	adminID int32
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// accessLog logs every request once it has been served
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		args := []any{}
		if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
			args = append(args, "route", route.GetName())
		}
		if rec.adminID != 0 {
			args = append(args, "adminID", rec.adminID)
		}
		logger.HTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start), args...)
	})
}

// recoverPanics turns a handler panic into a 500 instead of a dropped connection
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Handler panicked", "method", r.Method, "path", r.URL.Path, "panic", rec)
				writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
