package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
	"github.com/launchkit/backend/internal/service"
	"github.com/launchkit/backend/pkg/auth"
)

// PostHandler handles blog post CRUD. Reads are public but restricted to
// published posts unless the request carries a valid admin session; writes
// are admin-gated by middleware.
type PostHandler struct {
	postService   service.PostService
	sessionSecret []byte
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(postService service.PostService, sessionSecret []byte) *PostHandler {
	return &PostHandler{postService: postService, sessionSecret: sessionSecret}
}

// postRequest is the JSON body for POST /api/posts and PUT /api/posts/{id}.
type postRequest struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
	Status     string `json:"status"`
}

func (req postRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&req.Excerpt, validation.RuneLength(0, 500)),
		validation.Field(&req.Content, validation.Required),
		validation.Field(&req.Status, validation.Required,
			validation.In(model.PostStatusDraft, model.PostStatusPublished)),
	)
}

// List handles GET /api/posts. Unauthenticated callers only ever see
// published posts; the status filter is honored for admins.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 20
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	page := 1
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	status := q.Get("status")
	if !auth.IsAdminRequest(r, h.sessionSecret) {
		status = model.PostStatusPublished
	}

	posts, err := h.postService.List(r.Context(), model.PostListOptions{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		slog.Error("post list failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	if posts == nil {
		posts = []*model.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"posts": posts})
}

// Get handles GET /api/posts/{id} where {id} is an ID or a slug.
// Drafts are only visible with an admin session; a draft requested without
// one is reported as not found rather than forbidden.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("id")

	post, err := h.postService.Get(r.Context(), idOrSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("post get failed", "error", err, "id", idOrSlug)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "get_failed"})
		return
	}

	if post.Status != model.PostStatusPublished && !auth.IsAdminRequest(r, h.sessionSecret) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(post)
}

// Create handles POST /api/posts (admin).
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	post, err := h.postService.Create(r.Context(), service.PostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Status:     req.Status,
		AuthorID:   h.resolveAuthor(r),
	})
	if err != nil {
		h.writePostError(w, err, "create")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(post)
}

// Update handles PUT /api/posts/{id} (admin).
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	post, err := h.postService.Update(r.Context(), id, service.PostInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Status:     req.Status,
	})
	if err != nil {
		h.writePostError(w, err, "update")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(post)
}

// Delete handles DELETE /api/posts/{id} (admin). Removal is outright; there
// is no soft delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.postService.Delete(r.Context(), id); err != nil {
		h.writePostError(w, err, "delete")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// resolveAuthor reads the optional user session cookie so posts written by a
// signed-in dashboard user carry their ID. The admin gate alone grants no
// user identity.
func (h *PostHandler) resolveAuthor(r *http.Request) string {
	cookie, err := r.Cookie(auth.SessionCookieName())
	if err != nil {
		return ""
	}
	userID, err := auth.VerifyToken(cookie.Value, h.sessionSecret)
	if err != nil || userID == auth.AdminSubject {
		return ""
	}
	return userID
}

func (h *PostHandler) writePostError(w http.ResponseWriter, err error, op string) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, service.ErrSlugTaken):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "slug_taken"})
	case errors.Is(err, service.ErrInvalidSlug):
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_slug"})
	case errors.Is(err, repository.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
	default:
		slog.Error("post "+op+" failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": op + "_failed"})
	}
}
