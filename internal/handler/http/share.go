package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// shareRequest is the JSON body of the share call. ExpiresAt is optional;
// absent means the grant never expires.
type shareRequest struct {
	NoteID         int64      `json:"note_id"`
	RecipientEmail string     `json:"recipient_email"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

func (h *Handler) shareNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	grant, err := h.services.ShareService.Share(ctx, user.UserID, req.NoteID, req.RecipientEmail, req.ExpiresAt)
	if err != nil {
		log.Err(err).Int64("note_id", req.NoteID).Str("recipient", req.RecipientEmail).Msg("sharing failed")
		utils.WriteJSON(w, models.ShareResponse{Success: false, Message: "sharing failed"}, statusFromError(err))
		return
	}

	log.Debug().
		Int64("note_id", grant.NoteID).
		Int64("recipient_id", grant.RecipientID).
		Msg("note shared")

	utils.WriteJSON(w, models.ShareResponse{Success: true, Message: "note shared"}, http.StatusOK)
}

// sharedNotes lists the notes shared with the caller. The result is
// metadata only and always a JSON array, empty when nothing is shared.
func (h *Handler) sharedNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.ShareService.SharedNotes(ctx, user.UserID)
	if err != nil {
		log.Err(err).Msg("listing shared notes failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	listing := make([]models.NoteResponse, 0, len(notes))
	for _, note := range notes {
		listing = append(listing, models.NoteMetadata(note))
	}

	utils.WriteJSON(w, listing, http.StatusOK)
}
