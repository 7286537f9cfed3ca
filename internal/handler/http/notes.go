package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// passcodeHeader carries the note passcode on content reads. Passcode
// verification is per-request: the server keeps no verified-passcode state
// between calls, so clients re-send it when fetching encrypted content.
const passcodeHeader = "X-Note-Passcode"

// uploadRequest is the JSON body of the upload call.
type uploadRequest struct {
	FileName  string `json:"file_name"`
	Content   string `json:"content"`
	Passcode  string `json:"passcode,omitempty"`
	Shareable bool   `json:"shareable"`
}

// noteIDFromURL parses the {noteID} path parameter.
func noteIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
}

func (h *Handler) uploadNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	note, err := h.services.NoteService.Upload(ctx, user.UserID, req.FileName, req.Content, req.Passcode, req.Shareable)
	if err != nil {
		log.Err(err).Msg("note upload failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.NoteMetadata(note), http.StatusCreated)
}

// listNotes returns the caller's own notes as metadata only; content is
// released solely through the single-note route after an access decision.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.NoteService.List(ctx, user.UserID)
	if err != nil {
		log.Err(err).Msg("listing notes failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	listing := make([]models.NoteResponse, 0, len(notes))
	for _, note := range notes {
		listing = append(listing, models.NoteMetadata(note))
	}

	utils.WriteJSON(w, listing, http.StatusOK)
}

// getNote releases a note's content if the access facade allows it. The
// optional passcode for encrypted notes rides in the X-Note-Passcode header.
func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := noteIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	decision, note, err := h.services.AccessService.CanAccess(ctx, user, noteID, r.Header.Get(passcodeHeader))
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Str("decision", decision.String()).Msg("access check failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Debug().Int64("note_id", noteID).Str("decision", decision.String()).Msg("access granted")
	utils.WriteJSON(w, models.NoteWithContent(note), http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := noteIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid note id")
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Delete(ctx, user.UserID, noteID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "note deleted"}, http.StatusOK)
}
