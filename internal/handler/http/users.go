package http

import (
	"net/http"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// listUsers returns the addresses of every registered account, used by
// clients to pick a share recipient. Nothing beyond the email is exposed.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.AuthService.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	listing := make([]models.UserEmail, 0, len(users))
	for _, user := range users {
		listing = append(listing, models.UserEmail{Email: user.Email})
	}

	utils.WriteJSON(w, listing, http.StatusOK)
}
