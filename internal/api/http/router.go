// Package http exposes the admin REST API over gorilla/mux.
package http

import (
	"context"
	"net/http"

	"rentalmotor-backend/internal/security"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

const apiPrefix = "/api/v1"

// Services bundles what the router needs to serve the API
type Services struct {
	Auth           service.AuthService
	Motor          service.MotorService
	Transaction    service.TransactionService
	Payment        service.PaymentService
	Blog           service.BlogService
	Notification   service.NotificationService
	Upload         service.UploadService
	Tokens         security.TokenManager
	MaxUploadBytes int64
	// HealthCheck reports whether dependencies such as the database are reachable
	HealthCheck func(ctx context.Context) error
}

func NewRouter(s Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(recoverPanics)

	api := router.PathPrefix(apiPrefix).Subrouter()
	api.Use(accessLog)
	api.Use(NewAuthMiddleware(s.Tokens).Handler)

	api.HandleFunc("/healthz", healthz(s.HealthCheck)).Methods(http.MethodGet).Name("healthz")

	NewAuthHandler(s.Auth).Register(api)
	NewMotorHandler(s.Motor).Register(api)
	NewTransactionHandler(s.Transaction, s.Payment).Register(api)
	NewBlogHandler(s.Blog).Register(api)
	NewNotificationHandler(s.Notification).Register(api)
	NewFileHandler(s.Upload, s.MaxUploadBytes).Register(api)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "not found")
	})
	return router
}

func healthz(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
