package models

import "time"

// ShareGrant is a capability record granting one recipient access to one
// note, optionally time-limited. At most one grant exists per
// (note, recipient) pair; re-sharing updates the existing record.
//
// A grant is a weak relation: it conveys read access, not ownership.
// Deleting the note removes all of its grants.
type ShareGrant struct {
	// GrantID is the internal unique identifier of the grant.
	GrantID int64 `json:"-"`

	// NoteID references the shared note.
	NoteID int64 `json:"note_id"`

	// RecipientID references the user the note is shared with.
	RecipientID int64 `json:"-"`

	// ExpiresAt, when non-nil, marks the moment the grant stops conveying
	// access. Expiry is advisory data: the row stays in place and every
	// read path filters it out (lazy invalidation).
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// CreatedAt is the timestamp of the first share for this pair.
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the grant conveys access at the given moment.
func (g ShareGrant) Active(now time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(now)
}

// TableName returns the name of the database table
// associated with the ShareGrant model.
func (g ShareGrant) TableName() string {
	return "share_grants"
}
