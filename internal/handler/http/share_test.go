package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/models"
)

func TestShareNote_Success(t *testing.T) {
	h := newTestHandler(&service.Services{
		ShareService: &mockShareService{
			shareFn: func(_ context.Context, ownerID, noteID int64, recipientEmail string, expiresAt *time.Time) (models.ShareGrant, error) {
				assert.Equal(t, int64(1), ownerID)
				assert.Equal(t, int64(10), noteID)
				assert.Equal(t, "b@x.com", recipientEmail)
				assert.Nil(t, expiresAt)
				return models.ShareGrant{GrantID: 1, NoteID: noteID, RecipientID: 2}, nil
			},
		},
	})

	req := authenticatedRequest(http.MethodPost, "/api/shareFile", "", `{"note_id":10,"recipient_email":"b@x.com"}`)
	rec := httptest.NewRecorder()

	h.shareNote(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"note shared"}`, rec.Body.String())
}

func TestShareNote_WithExpiry(t *testing.T) {
	h := newTestHandler(&service.Services{
		ShareService: &mockShareService{
			shareFn: func(_ context.Context, _, _ int64, _ string, expiresAt *time.Time) (models.ShareGrant, error) {
				require.NotNil(t, expiresAt)
				assert.Equal(t, 2027, expiresAt.Year())
				return models.ShareGrant{GrantID: 1, ExpiresAt: expiresAt}, nil
			},
		},
	})

	req := authenticatedRequest(http.MethodPost, "/api/shareFile", "",
		`{"note_id":10,"recipient_email":"b@x.com","expires_at":"2027-01-01T00:00:00Z"}`)
	rec := httptest.NewRecorder()

	h.shareNote(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShareNote_RecipientNotFound(t *testing.T) {
	h := newTestHandler(&service.Services{
		ShareService: &mockShareService{
			shareFn: func(_ context.Context, _, _ int64, _ string, _ *time.Time) (models.ShareGrant, error) {
				return models.ShareGrant{}, store.ErrNoUserWasFound
			},
		},
	})

	req := authenticatedRequest(http.MethodPost, "/api/shareFile", "", `{"note_id":10,"recipient_email":"missing@x.com"}`)
	rec := httptest.NewRecorder()

	h.shareNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestShareNote_NotOwnerHidesExistence(t *testing.T) {
	h := newTestHandler(&service.Services{
		ShareService: &mockShareService{
			shareFn: func(_ context.Context, _, _ int64, _ string, _ *time.Time) (models.ShareGrant, error) {
				return models.ShareGrant{}, service.ErrNotOwner
			},
		},
	})

	req := authenticatedRequest(http.MethodPost, "/api/shareFile", "", `{"note_id":10,"recipient_email":"b@x.com"}`)
	rec := httptest.NewRecorder()

	h.shareNote(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareNote_NotShareable(t *testing.T) {
	h := newTestHandler(&service.Services{
		ShareService: &mockShareService{
			shareFn: func(_ context.Context, _, _ int64, _ string, _ *time.Time) (models.ShareGrant, error) {
				return models.ShareGrant{}, service.ErrNotShareable
			},
		},
	})

	req := authenticatedRequest(http.MethodPost, "/api/shareFile", "", `{"note_id":10,"recipient_email":"b@x.com"}`)
	rec := httptest.NewRecorder()

	h.shareNote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSharedNotes_EmptyIsArray(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := authenticatedRequest(http.MethodGet, "/api/shared-files", "", "")
	rec := httptest.NewRecorder()

	h.sharedNotes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSharedNotes_ReturnsMetadata(t *testing.T) {
	h := newTestHandler(&service.Services{
		ShareService: &mockShareService{
			sharedNotesFn: func(_ context.Context, recipientID int64) ([]models.Note, error) {
				assert.Equal(t, int64(1), recipientID)
				return []models.Note{{NoteID: 10, FileName: "shared.txt", Content: "secret body"}}, nil
			},
		},
	})

	req := authenticatedRequest(http.MethodGet, "/api/shared-files", "", "")
	rec := httptest.NewRecorder()

	h.sharedNotes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shared.txt")
	assert.NotContains(t, rec.Body.String(), "secret body")
}

func TestListUsers_ReturnsEmails(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			listFn: func(_ context.Context) ([]models.User, error) {
				return []models.User{
					{UserID: 1, Email: "a@x.com", PasswordHash: "$2a$10$hash"},
					{UserID: 2, Email: "b@x.com", PasswordHash: "$2a$10$hash"},
				}, nil
			},
		},
	})

	req := authenticatedRequest(http.MethodGet, "/api/users", "", "")
	rec := httptest.NewRecorder()

	h.listUsers(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"email":"a@x.com"},{"email":"b@x.com"}]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hash", "password hashes must never be serialized")
}
