package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

// multipart overhead allowed on top of the file itself
const multipartSlack = 1 << 20

// FileHandler accepts uploads and serves stored files back
type FileHandler struct {
	svc      service.UploadService
	maxBytes int64
}

func NewFileHandler(svc service.UploadService, maxBytes int64) *FileHandler {
	return &FileHandler{svc: svc, maxBytes: maxBytes}
}

func (h *FileHandler) Register(r *mux.Router) {
	r.HandleFunc("/uploads", h.Upload).Methods(http.MethodPost).Name("uploads.create")
	r.HandleFunc("/files/{key:.+}", h.Serve).Methods(http.MethodGet).Name("files.serve")
	r.HandleFunc("/files/{key:.+}", h.Delete).Methods(http.MethodDelete).Name("files.delete")
}

// Upload handles a multipart form with a "file" part and an optional "folder" field
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartSlack)
	if err := r.ParseMultipartForm(h.maxBytes + multipartSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, service.ErrFileTooLarge)
			return
		}
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	stored, err := h.svc.Save(r.Context(), r.FormValue("folder"), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	file, err := h.svc.Open(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream file", "key", key, "error", err)
	}
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["key"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func contentTypeFor(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
