package store

import (
	"context"
	"time"

	"github.com/mkhasanov/secure-note/models"
)

// UserRepository is the persistence contract of the credential store.
type UserRepository interface {
	// CreateUser persists a new account. The email uniqueness invariant is
	// enforced by the storage layer; a duplicate fails with
	// [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account registered under email, or
	// [ErrNoUserWasFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// ListUsers returns every registered account.
	ListUsers(ctx context.Context) ([]models.User, error)
}

// NoteRepository is the persistence contract of the note store.
type NoteRepository interface {
	// CreateNote persists a new note and returns it with server-assigned
	// fields populated.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// GetNoteByID returns the note with the given ID, or [ErrNoteNotFound].
	GetNoteByID(ctx context.Context, noteID int64) (models.Note, error)

	// ListNotesByOwner returns all notes created by the given owner.
	ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.Note, error)

	// DeleteNoteByID removes the note and, in the same transaction, every
	// share grant referencing it. Returns [ErrNoteNotFound] if no note row
	// was deleted.
	DeleteNoteByID(ctx context.Context, noteID int64) error
}

// GrantRepository is the persistence contract of the sharing grant manager.
type GrantRepository interface {
	// UpsertGrant records a share of grant.NoteID to grant.RecipientID.
	// Sharing an already-shared pair updates the existing row (the unique
	// constraint on (note_id, recipient_id) makes this race-safe), so the
	// operation is idempotent.
	UpsertGrant(ctx context.Context, grant models.ShareGrant) (models.ShareGrant, error)

	// FindActiveGrant returns the grant for (noteID, recipientID) if one
	// exists and is still active at now, or [ErrGrantNotFound].
	FindActiveGrant(ctx context.Context, noteID, recipientID int64, now time.Time) (models.ShareGrant, error)

	// ListSharedNotes returns the notes shared with recipientID through
	// grants still active at now. Results are re-read on every call.
	ListSharedNotes(ctx context.Context, recipientID int64, now time.Time) ([]models.Note, error)

	// DeleteGrantsByNote removes every grant referencing the given note.
	DeleteGrantsByNote(ctx context.Context, noteID int64) error
}
