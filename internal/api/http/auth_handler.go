package http

import (
	"net/http"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost).Name("auth.login")
	r.HandleFunc("/auth/refresh", h.Refresh).Methods(http.MethodPost).Name("auth.refresh")
	r.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet).Name("auth.me")
	r.HandleFunc("/auth/device-token", h.UpdateDeviceToken).Methods(http.MethodPut).Name("auth.deviceToken")
	r.HandleFunc("/admins", h.CreateAdmin).Methods(http.MethodPost).Name("admins.create")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Admin        *domain.Admin `json:"admin,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	admin, access, refresh, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Admin: admin, AccessToken: access, RefreshToken: refresh})
}

// Refresh expects the refresh token as the bearer token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	access, refresh, err := h.svc.RefreshToken(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: access, RefreshToken: refresh})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	admin, err := h.svc.Me(r.Context(), adminID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, admin)
}

func (h *AuthHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	var req struct {
		Token string `json:"token"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.UpdateDeviceToken(r.Context(), adminID, req.Token); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	var req createAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	admin := &domain.Admin{Username: req.Username, Email: req.Email, Name: req.Name}
	if err := h.svc.Register(r.Context(), actorID, admin, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, admin)
}
