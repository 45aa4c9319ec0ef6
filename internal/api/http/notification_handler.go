package http

import (
	"net/http"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Register(r *mux.Router) {
	r.HandleFunc("/notifications", h.List).Methods(http.MethodGet).Name("notifications.list")
	r.HandleFunc("/notifications/{id:[0-9]+}/read", h.MarkAsRead).Methods(http.MethodPost).Name("notifications.read")
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)
	notes, total, err := h.svc.GetNotifications(r.Context(), adminID, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if notes == nil {
		notes = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: notes, Total: total, Page: page, PageSize: pageSize})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkAsRead(r.Context(), adminID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
