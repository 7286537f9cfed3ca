package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// passcodeService verifies supplied passcodes against stored note passcode
// hashes. Verification is per-request: a successful check is not cached or
// turned into a standing grant, so clients re-prove the passcode on each
// access to encrypted content.
type passcodeService struct {
	noteRepository  store.NoteRepository
	grantRepository store.GrantRepository
	logger          *logger.Logger
}

// NewPasscodeService constructs a PasscodeService backed by the given
// note and grant repositories.
func NewPasscodeService(noteRepository store.NoteRepository, grantRepository store.GrantRepository, logger *logger.Logger) PasscodeService {
	return &passcodeService{
		noteRepository:  noteRepository,
		grantRepository: grantRepository,
		logger:          logger,
	}
}

// Verify checks suppliedPasscode against the note's stored passcode hash
// on behalf of user.
//
// The caller must be the note's owner or hold an active grant; anyone else
// fails with ErrAccessDenied before the note's encryption state or the
// passcode comparison is reached, so a stranger cannot probe whether a
// note is encrypted or brute-force its passcode.
//
// An unencrypted note fails with ErrNotEncrypted before the passcode value
// is considered, so the passcode flow does not leak whether a given
// passcode would have matched anything.
//
// Returns nil on a match or:
//   - ErrInvalidDataProvided if suppliedPasscode is empty.
//   - A wrapped store.ErrNoteNotFound if the note does not exist.
//   - ErrAccessDenied if user is neither owner nor active grantee.
//   - ErrNotEncrypted if the note is not passcode-protected.
//   - ErrWrongPasscode if the passcode does not match.
func (p *passcodeService) Verify(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) error {
	log := logger.FromContext(ctx)

	if suppliedPasscode == "" {
		return ErrInvalidDataProvided
	}

	note, err := p.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup failed")
		return fmt.Errorf("note lookup failed: %w", err)
	}

	if note.OwnerID != user.UserID {
		if _, err := p.grantRepository.FindActiveGrant(ctx, noteID, user.UserID, time.Now()); err != nil {
			if errors.Is(err, store.ErrGrantNotFound) {
				log.Info().
					Int64("note_id", noteID).
					Int64("caller_id", user.UserID).
					Msg("passcode check denied: no active grant")
				return ErrAccessDenied
			}
			log.Err(err).Int64("note_id", noteID).Msg("grant lookup failed")
			return fmt.Errorf("grant lookup failed: %w", err)
		}
	}

	passcodeHash, ok := note.Protection.PasscodeHash()
	if !ok {
		return ErrNotEncrypted
	}

	if err := utils.CompareSecret(passcodeHash, suppliedPasscode); err != nil {
		log.Error().Int64("note_id", noteID).Msg("wrong passcode")
		return ErrWrongPasscode
	}

	return nil
}
