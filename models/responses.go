package models

import "time"

// NoteResponse is the external representation of a note. It carries the
// derived encrypted flag instead of the protection state and never includes
// the passcode hash. Content is omitted in listings and withheld until the
// access facade allows it.
type NoteResponse struct {
	NoteID    int64     `json:"note_id"`
	FileName  string    `json:"file_name"`
	Content   string    `json:"content,omitempty"`
	Encrypted bool      `json:"encrypted"`
	Shareable bool      `json:"shareable"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteMetadata converts a note to its listing representation: everything
// except the content payload.
func NoteMetadata(n Note) NoteResponse {
	return NoteResponse{
		NoteID:    n.NoteID,
		FileName:  n.FileName,
		Encrypted: n.Protection.Encrypted(),
		Shareable: n.Shareable,
		CreatedAt: n.CreatedAt,
	}
}

// NoteWithContent converts a note to its full representation, content
// included. Callers must only use it after the access facade has granted
// content access.
func NoteWithContent(n Note) NoteResponse {
	resp := NoteMetadata(n)
	resp.Content = n.Content
	return resp
}

// UserEmail is the reduced user representation returned by the user
// listing endpoint: the address and nothing else.
type UserEmail struct {
	Email string `json:"email"`
}

// MessageResponse is the generic envelope for status messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ShareResponse is returned by the share endpoint.
type ShareResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// PasscodeResponse is returned by the passcode verification endpoint.
type PasscodeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
