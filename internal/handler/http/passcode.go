package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// verifyPasscodeRequest is the JSON body of the passcode verification call.
type verifyPasscodeRequest struct {
	NoteID   int64  `json:"note_id"`
	Passcode string `json:"passcode"`
}

func (h *Handler) verifyPasscode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req verifyPasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if req.NoteID == 0 || req.Passcode == "" {
		log.Error().Msg("missing note id or passcode")
		utils.WriteJSON(w, models.PasscodeResponse{Success: false, Message: "note id and passcode are required"}, http.StatusBadRequest)
		return
	}

	err := h.services.PasscodeService.Verify(ctx, user, req.NoteID, req.Passcode)
	if err != nil {
		switch {
		// a caller without owner or grantee standing gets the same answer
		// as a missing note, so the route does not reveal which IDs exist
		case errors.Is(err, store.ErrNoteNotFound), errors.Is(err, service.ErrAccessDenied):
			log.Err(err).Int64("note_id", req.NoteID).Msg("note not found")
			utils.WriteJSON(w, models.PasscodeResponse{Success: false, Message: "note not found"}, http.StatusNotFound)
			return
		case errors.Is(err, service.ErrNotEncrypted):
			log.Err(err).Int64("note_id", req.NoteID).Msg("note is not encrypted")
			utils.WriteJSON(w, models.PasscodeResponse{Success: false, Message: "note is not encrypted"}, http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWrongPasscode):
			log.Err(err).Int64("note_id", req.NoteID).Msg("wrong passcode")
			utils.WriteJSON(w, models.PasscodeResponse{Success: false, Message: "wrong passcode"}, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during passcode verification")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.PasscodeResponse{Success: true}, http.StatusOK)
}
