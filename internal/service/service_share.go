package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/models"
)

// shareService manages sharing grants between notes and recipient accounts.
// Expired grants are invalidated lazily: the rows stay in the store but stop
// appearing in lookups and listings.
type shareService struct {
	noteRepository  store.NoteRepository
	userRepository  store.UserRepository
	grantRepository store.GrantRepository
	logger          *logger.Logger
}

// NewShareService constructs a ShareService over the note, user, and grant
// repositories.
func NewShareService(
	noteRepository store.NoteRepository,
	userRepository store.UserRepository,
	grantRepository store.GrantRepository,
	logger *logger.Logger,
) ShareService {
	return &shareService{
		noteRepository:  noteRepository,
		userRepository:  userRepository,
		grantRepository: grantRepository,
		logger:          logger,
	}
}

// Share grants recipientEmail access to the note. Re-sharing an already
// shared (note, recipient) pair refreshes the existing grant instead of
// duplicating it.
//
// Returns the persisted grant or:
//   - A wrapped store.ErrNoteNotFound if the note does not exist.
//   - ErrNotOwner if the caller does not own the note.
//   - ErrNotShareable if the note was uploaded without the shareable flag.
//   - ErrShareWithSelf if recipientEmail resolves to the owner.
//   - ErrInvalidDataProvided if expiresAt is already in the past.
//   - A wrapped store.ErrNoUserWasFound if the recipient is not registered.
func (s *shareService) Share(ctx context.Context, ownerID, noteID int64, recipientEmail string, expiresAt *time.Time) (models.ShareGrant, error) {
	log := logger.FromContext(ctx)

	if recipientEmail == "" {
		return models.ShareGrant{}, ErrInvalidDataProvided
	}
	if expiresAt != nil && !expiresAt.After(time.Now()) {
		return models.ShareGrant{}, ErrInvalidDataProvided
	}

	note, err := s.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup failed")
		return models.ShareGrant{}, fmt.Errorf("note lookup failed: %w", err)
	}

	if note.OwnerID != ownerID {
		log.Error().
			Int64("note_id", noteID).
			Int64("caller_id", ownerID).
			Msg("share attempted by non-owner")
		return models.ShareGrant{}, ErrNotOwner
	}
	if !note.Shareable {
		return models.ShareGrant{}, ErrNotShareable
	}

	recipient, err := s.userRepository.FindUserByEmail(ctx, recipientEmail)
	if err != nil {
		log.Err(err).Str("recipient", recipientEmail).Msg("recipient lookup failed")
		return models.ShareGrant{}, fmt.Errorf("recipient lookup failed: %w", err)
	}
	if recipient.UserID == ownerID {
		return models.ShareGrant{}, ErrShareWithSelf
	}

	grant, err := s.grantRepository.UpsertGrant(ctx, models.ShareGrant{
		NoteID:      noteID,
		RecipientID: recipient.UserID,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("grant upsert ended with error")
		return models.ShareGrant{}, fmt.Errorf("grant upsert ended with error: %w", err)
	}

	return grant, nil
}

// SharedNotes returns the notes currently shared with recipientID. The list
// is re-read from the store on every call; grants whose expiry has passed do
// not appear.
func (s *shareService) SharedNotes(ctx context.Context, recipientID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes, err := s.grantRepository.ListSharedNotes(ctx, recipientID, time.Now())
	if err != nil {
		log.Err(err).Int64("recipient_id", recipientID).Msg("listing shared notes failed")
		return nil, fmt.Errorf("listing shared notes failed: %w", err)
	}

	return notes, nil
}
