package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkhasanov/secure-note/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn func(ctx context.Context, user models.User) (models.User, error)
	findFn   func(ctx context.Context, email string) (models.User, error)
	listFn   func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.NoteRepository
// ─────────────────────────────────────────────

type mockNoteRepository struct {
	createFn func(ctx context.Context, note models.Note) (models.Note, error)
	getFn    func(ctx context.Context, noteID int64) (models.Note, error)
	listFn   func(ctx context.Context, ownerID int64) ([]models.Note, error)
	deleteFn func(ctx context.Context, noteID int64) error
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.createFn != nil {
		return m.createFn(ctx, note)
	}
	return note, nil
}

func (m *mockNoteRepository) GetNoteByID(ctx context.Context, noteID int64) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, noteID)
	}
	return models.Note{}, nil
}

func (m *mockNoteRepository) ListNotesByOwner(ctx context.Context, ownerID int64) ([]models.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockNoteRepository) DeleteNoteByID(ctx context.Context, noteID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, noteID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.GrantRepository
// ─────────────────────────────────────────────

type mockGrantRepository struct {
	upsertFn     func(ctx context.Context, grant models.ShareGrant) (models.ShareGrant, error)
	findActiveFn func(ctx context.Context, noteID, recipientID int64, now time.Time) (models.ShareGrant, error)
	listSharedFn func(ctx context.Context, recipientID int64, now time.Time) ([]models.Note, error)
	deleteFn     func(ctx context.Context, noteID int64) error
}

func (m *mockGrantRepository) UpsertGrant(ctx context.Context, grant models.ShareGrant) (models.ShareGrant, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, grant)
	}
	return grant, nil
}

func (m *mockGrantRepository) FindActiveGrant(ctx context.Context, noteID, recipientID int64, now time.Time) (models.ShareGrant, error) {
	if m.findActiveFn != nil {
		return m.findActiveFn(ctx, noteID, recipientID, now)
	}
	return models.ShareGrant{}, nil
}

func (m *mockGrantRepository) ListSharedNotes(ctx context.Context, recipientID int64, now time.Time) ([]models.Note, error) {
	if m.listSharedFn != nil {
		return m.listSharedFn(ctx, recipientID, now)
	}
	return nil, nil
}

func (m *mockGrantRepository) DeleteGrantsByNote(ctx context.Context, noteID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, noteID)
	}
	return nil
}
