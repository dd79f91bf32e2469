package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/launchkit/backend/internal/model"
	"github.com/launchkit/backend/internal/repository"
	"github.com/launchkit/backend/internal/service"
)

const (
	maxNameLength    = 200
	maxEmailLength   = 320
	maxMessageLength = 5000
)

// ContactHandler handles contact form submission and admin triage.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks all three fields declaratively; failures carry per-field
// messages back to the client.
func (req submitRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, maxNameLength)),
		validation.Field(&req.Email, validation.Required, validation.RuneLength(3, maxEmailLength), is.Email),
		validation.Field(&req.Message, validation.Required, validation.RuneLength(1, maxMessageLength)),
	)
}

// Submit handles POST /api/contact. No idempotency key: a double submit
// deliberately creates two records.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
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

	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		slog.Error("contact submit failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(msg)
}

// listResponse is the JSON response for GET /api/contact.
type listResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
	Page     int                     `json:"page"`
	Limit    int                     `json:"limit"`
}

// List handles GET /api/contact (admin).
// Query params: status, search, sortBy, order, page, limit.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	limit := 20
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	opts := model.ContactListOptions{
		Status: q.Get("status"),
		Search: q.Get("search"),
		SortBy: q.Get("sortBy"),
		Order:  q.Get("order"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listResponse{Messages: messages, Page: page, Limit: limit})
}

// updateStatusRequest is the expected JSON body for PATCH /api/contact.
type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/contact (admin). The new status overwrites
// the old one unconditionally; there is no transition table.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if req.ID == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}
	if !model.ValidContactStatus(req.Status) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_status"})
		return
	}

	msg, err := h.contactService.UpdateStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("contact status update failed", "error", err, "id", req.ID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(msg)
}

// writeValidationError renders a declarative validation failure as a 400 with
// per-field messages.
func writeValidationError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if fields, ok := err.(validation.Errors); ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":  "validation_failed",
			"fields": fields,
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "validation_failed"})
}
