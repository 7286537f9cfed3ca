package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// psql is the squirrel statement builder configured for PostgreSQL
// ($1, $2, ... placeholders). Used by the dynamic list queries; simple
// single-row paths use the static consts below.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	createUser = `INSERT INTO users (email, password_hash)
    VALUES ($1, $2)
    RETURNING user_id, email, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	createNote = `INSERT INTO notes (owner_id, file_name, content, encrypted, passcode_hash, shareable)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING note_id, owner_id, file_name, content, encrypted, passcode_hash, shareable, created_at;`

	getNoteByID = `SELECT note_id, owner_id, file_name, content, encrypted, passcode_hash, shareable, created_at
    FROM notes
    WHERE note_id = $1;`

	deleteGrantsByNote = `DELETE FROM share_grants
    WHERE note_id = $1;`

	deleteNoteByID = `DELETE FROM notes
    WHERE note_id = $1;`

	upsertShareGrant = `INSERT INTO share_grants (note_id, recipient_id, expires_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (note_id, recipient_id)
        DO UPDATE SET expires_at = EXCLUDED.expires_at
    RETURNING grant_id, note_id, recipient_id, expires_at, created_at;`

	findActiveGrant = `SELECT grant_id, note_id, recipient_id, expires_at, created_at
    FROM share_grants
    WHERE note_id = $1
      AND recipient_id = $2
      AND (expires_at IS NULL OR expires_at > $3);`
)

// noteColumns is the canonical scan order for note rows, matching scanNote.
var noteColumns = []string{
	"note_id", "owner_id", "file_name", "content",
	"encrypted", "passcode_hash", "shareable", "created_at",
}

// buildListUsersQuery selects every registered account, oldest first.
func buildListUsersQuery() (string, []any, error) {
	return psql.
		Select("user_id", "email", "password_hash", "created_at").
		From("users").
		OrderBy("user_id").
		ToSql()
}

// buildListNotesByOwnerQuery selects all notes created by the given owner,
// newest first.
func buildListNotesByOwnerQuery(ownerID int64) (string, []any, error) {
	return psql.
		Select(noteColumns...).
		From("notes").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC").
		ToSql()
}

// buildListSharedNotesQuery selects the notes shared with the given
// recipient through a grant that is still active at the provided moment.
// Expired grants are filtered here rather than deleted: the rows stay in
// place but stop conveying access.
func buildListSharedNotesQuery(recipientID int64, now time.Time) (string, []any, error) {
	prefixed := make([]string, len(noteColumns))
	for i, col := range noteColumns {
		prefixed[i] = "n." + col
	}

	return psql.
		Select(prefixed...).
		From("notes n").
		Join("share_grants g ON g.note_id = n.note_id").
		Where(sq.Eq{"g.recipient_id": recipientID}).
		Where(sq.Or{
			sq.Eq{"g.expires_at": nil},
			sq.Gt{"g.expires_at": now},
		}).
		OrderBy("n.created_at DESC").
		ToSql()
}
