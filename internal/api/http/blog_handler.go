package http

import (
	"net/http"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

type BlogHandler struct {
	svc service.BlogService
}

func NewBlogHandler(svc service.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) Register(r *mux.Router) {
	r.HandleFunc("/blogs", h.ListPublished).Methods(http.MethodGet).Name("blogs.list")
	r.HandleFunc("/blogs/{slug}", h.GetPublished).Methods(http.MethodGet).Name("blogs.bySlug")
	r.HandleFunc("/blogs", h.Create).Methods(http.MethodPost).Name("blogs.create")
	r.HandleFunc("/blogs/{id:[0-9]+}", h.Update).Methods(http.MethodPut).Name("blogs.update")
	r.HandleFunc("/blogs/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete).Name("blogs.delete")
	r.HandleFunc("/admin/blogs", h.ListAll).Methods(http.MethodGet).Name("blogs.adminList")
	r.HandleFunc("/admin/blogs/{id:[0-9]+}", h.Get).Methods(http.MethodGet).Name("blogs.adminGet")
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	page, pageSize := pagination(r)
	blogs, total, err := h.svc.ListBlogs(r.Context(), publishedOnly, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if blogs == nil {
		blogs = []domain.Blog{}
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: blogs, Total: total, Page: page, PageSize: pageSize})
}

func (h *BlogHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *BlogHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *BlogHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	blog, err := h.svc.GetBySlug(r.Context(), mux.Vars(r)["slug"], true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	blog, err := h.svc.GetBlog(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	var blog domain.Blog
	if !decodeJSON(w, r, &blog) {
		return
	}
	blog.ID = 0
	if err := h.svc.CreateBlog(r.Context(), adminID, &blog); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var blog domain.Blog
	if !decodeJSON(w, r, &blog) {
		return
	}
	blog.ID = id
	if err := h.svc.UpdateBlog(r.Context(), &blog); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteBlog(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
