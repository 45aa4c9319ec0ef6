package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"
	"rentalmotor-backend/internal/service"
	"rentalmotor-backend/internal/storage"

	"github.com/gorilla/mux"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxJSONBody     = 1 << 20
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// errorStatus maps service and repository errors to HTTP status codes
func errorStatus(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, service.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrUnitNotAvailable),
		errors.Is(err, service.ErrUnitRented),
		errors.Is(err, service.ErrTransactionClosed),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrNothingToPay),
		errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrPaymentNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorMessage(w, status, "internal server error")
		return
	}

	resp := errorResponse{Error: err.Error()}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Message
		resp.Field = verr.Field
	}
	writeJSON(w, status, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// pathID reads a numeric route variable
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		writeErrorMessage(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return int32(id), true
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}

func pagination(r *http.Request) (int32, int32) {
	page := queryInt32(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt32(r, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

type pageResponse struct {
	Items    interface{} `json:"items"`
	Total    int32       `json:"total"`
	Page     int32       `json:"page"`
	PageSize int32       `json:"page_size"`
}

func currentAdmin(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, ok := AdminIDFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "not authenticated")
	}
	return id, ok
}
