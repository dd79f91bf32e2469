package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/launchkit/backend/internal/repository"
	"github.com/launchkit/backend/pkg/auth"
)

// MeHandler returns the current user, including the subscription snapshot.
type MeHandler struct {
	userRepo repository.UserRepository
}

// NewMeHandler creates a MeHandler (DI: UserRepository injected).
func NewMeHandler(userRepo repository.UserRepository) *MeHandler {
	return &MeHandler{userRepo: userRepo}
}

// Me handles GET /api/me. The route is wrapped by auth.RequireUser, so the
// user ID is always on the context here.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "me_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(user)
}
