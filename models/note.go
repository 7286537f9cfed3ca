package models

import (
	"errors"
	"time"
)

// ErrInconsistentEncryptionState is returned by [EncryptedProtection] when a
// note is declared encrypted without a passcode hash. The invariant
// "passcode hash exists iff the note is encrypted" is enforced here, at
// construction time, so no other layer needs to re-check it.
var ErrInconsistentEncryptionState = errors.New("encrypted note requires a passcode hash")

// Protection is the tagged encryption state of a note: either plain or
// encrypted behind a passcode. The passcode hash is unexported so the only
// way to obtain an encrypted Protection is through [EncryptedProtection],
// which refuses an empty hash. A zero Protection is a valid plain note.
type Protection struct {
	passcodeHash string
}

// PlainProtection returns the protection state of an unencrypted note.
func PlainProtection() Protection {
	return Protection{}
}

// EncryptedProtection returns the protection state of a passcode-guarded
// note. passcodeHash must be the bcrypt hash of the note's passcode;
// an empty hash fails with [ErrInconsistentEncryptionState].
func EncryptedProtection(passcodeHash string) (Protection, error) {
	if passcodeHash == "" {
		return Protection{}, ErrInconsistentEncryptionState
	}
	return Protection{passcodeHash: passcodeHash}, nil
}

// Encrypted reports whether the note is passcode-protected.
func (p Protection) Encrypted() bool {
	return p.passcodeHash != ""
}

// PasscodeHash returns the stored passcode hash and whether one exists.
// The hash is present exactly when the note is encrypted.
func (p Protection) PasscodeHash() (string, bool) {
	return p.passcodeHash, p.passcodeHash != ""
}

// Note is a stored text artifact owned by a single user, optionally
// passcode-protected and optionally shareable with other users.
type Note struct {
	// NoteID is the internal unique identifier of the note.
	NoteID int64 `json:"note_id"`

	// OwnerID references the user who created the note. Only the owner
	// may delete or share it.
	OwnerID int64 `json:"-"`

	// FileName is the display name shown in listings.
	FileName string `json:"file_name"`

	// Content is the note's text payload.
	Content string `json:"content,omitempty"`

	// Protection carries the encryption state. Excluded from JSON; the
	// derived Encrypted flag is exposed through [NoteResponse].
	Protection Protection `json:"-"`

	// Shareable controls whether the owner may grant other users access.
	Shareable bool `json:"shareable"`

	// CreatedAt is the timestamp when the note was uploaded.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
