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

// accessService answers "may this user read this note, and does it need a
// passcode first?". It composes the note store, the grant lookup, and the
// passcode comparison into a single decision so route handlers never apply
// access rules themselves.
type accessService struct {
	noteRepository  store.NoteRepository
	grantRepository store.GrantRepository
	logger          *logger.Logger
}

// NewAccessService constructs an AccessService over the note and grant
// repositories.
func NewAccessService(noteRepository store.NoteRepository, grantRepository store.GrantRepository, logger *logger.Logger) AccessService {
	return &accessService{
		noteRepository:  noteRepository,
		grantRepository: grantRepository,
		logger:          logger,
	}
}

// CanAccess decides whether user may read the note's content.
//
// The checks run in a fixed order:
//  1. Fetch the note; a missing note fails with store.ErrNoteNotFound.
//  2. The owner is granted unconditionally.
//  3. Anyone else needs a grant that has not expired; without one the
//     outcome is DecisionDenied with ErrAccessDenied.
//  4. A grantee reading an encrypted note must supply the correct passcode:
//     a missing passcode yields DecisionNeedsPasscode with
//     ErrPasscodeRequired, a wrong one DecisionDenied with ErrWrongPasscode.
//     No partial content is ever released.
//
// On an allowing decision the fetched note is returned alongside it, so
// callers do not re-read the store after the check.
func (a *accessService) CanAccess(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) (models.Decision, models.Note, error) {
	log := logger.FromContext(ctx)

	note, err := a.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Msg("note lookup failed")
		return models.DecisionDenied, models.Note{}, fmt.Errorf("note lookup failed: %w", err)
	}

	if note.OwnerID == user.UserID {
		return models.DecisionOwner, note, nil
	}

	if _, err := a.grantRepository.FindActiveGrant(ctx, noteID, user.UserID, time.Now()); err != nil {
		if errors.Is(err, store.ErrGrantNotFound) {
			log.Info().
				Int64("note_id", noteID).
				Int64("caller_id", user.UserID).
				Msg("access denied: no active grant")
			return models.DecisionDenied, models.Note{}, ErrAccessDenied
		}
		log.Err(err).Int64("note_id", noteID).Msg("grant lookup failed")
		return models.DecisionDenied, models.Note{}, fmt.Errorf("grant lookup failed: %w", err)
	}

	passcodeHash, encrypted := note.Protection.PasscodeHash()
	if !encrypted {
		return models.DecisionSharedGrantee, note, nil
	}

	if suppliedPasscode == "" {
		return models.DecisionNeedsPasscode, models.Note{}, ErrPasscodeRequired
	}
	if err := utils.CompareSecret(passcodeHash, suppliedPasscode); err != nil {
		log.Info().
			Int64("note_id", noteID).
			Int64("caller_id", user.UserID).
			Msg("access denied: wrong passcode")
		return models.DecisionDenied, models.Note{}, ErrWrongPasscode
	}

	return models.DecisionSharedGrantee, note, nil
}
