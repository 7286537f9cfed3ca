package service

import (
	"context"
	"fmt"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// noteService is the concrete implementation of NoteService. The encryption
// invariant is carried by [models.Protection]: a note stores a passcode hash
// exactly when it is encrypted, decided once at upload time.
type noteService struct {
	noteRepository store.NoteRepository
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService backed by the given repository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// Upload persists a new note for ownerID. A non-empty passcode makes the
// note encrypted: the passcode is bcrypt-hashed and only the hash is stored,
// the same one-way scheme used for account passwords.
//
// Returns the persisted note or:
//   - ErrInvalidDataProvided if fileName is empty.
//   - A wrapped hashing or storage error otherwise.
func (n *noteService) Upload(ctx context.Context, ownerID int64, fileName, content, passcode string, shareable bool) (models.Note, error) {
	log := logger.FromContext(ctx)

	if fileName == "" {
		log.Error().Int64("owner_id", ownerID).Msg("upload without a file name")
		return models.Note{}, ErrInvalidDataProvided
	}

	protection := models.PlainProtection()
	if passcode != "" {
		passcodeHash, err := utils.HashSecret(passcode)
		if err != nil {
			log.Err(err).Str("func", "*noteService.Upload").Msg("passcode hashing failed")
			return models.Note{}, fmt.Errorf("passcode hashing failed: %w", err)
		}
		protection, err = models.EncryptedProtection(passcodeHash)
		if err != nil {
			return models.Note{}, err
		}
	}

	createdNote, err := n.noteRepository.CreateNote(ctx, models.Note{
		OwnerID:    ownerID,
		FileName:   fileName,
		Content:    content,
		Protection: protection,
		Shareable:  shareable,
	})
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return createdNote, nil
}

// List returns all notes owned by ownerID, newest first.
func (n *noteService) List(ctx context.Context, ownerID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes, err := n.noteRepository.ListNotesByOwner(ctx, ownerID)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Msg("listing notes failed")
		return nil, fmt.Errorf("listing notes failed: %w", err)
	}

	return notes, nil
}

// Get fetches a note by ID without any access check; gating is the access
// facade's responsibility.
func (n *noteService) Get(ctx context.Context, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := n.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup failed")
		return models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

// Delete removes a note and cascades removal of its share grants. Only the
// owner may delete; any other caller gets ErrNotOwner regardless of whether
// they hold a grant.
func (n *noteService) Delete(ctx context.Context, ownerID, noteID int64) error {
	log := logger.FromContext(ctx)

	note, err := n.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup failed")
		return fmt.Errorf("note lookup failed: %w", err)
	}

	if note.OwnerID != ownerID {
		log.Error().
			Int64("note_id", noteID).
			Int64("caller_id", ownerID).
			Msg("delete attempted by non-owner")
		return ErrNotOwner
	}

	if err := n.noteRepository.DeleteNoteByID(ctx, noteID); err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note deletion ended with error")
		return fmt.Errorf("note deletion ended with error: %w", err)
	}

	return nil
}
