package http

import (
	"context"
	"time"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// contextWithUser mimics the auth middleware attaching the authenticated
// account to the request context.
func contextWithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, utils.UserCtxKey, user)
}

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn    func(ctx context.Context, email, password string) (models.User, error)
	loginFn       func(ctx context.Context, email, password string) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
	findFn        func(ctx context.Context, email string) (models.User, error)
	listFn        func(ctx context.Context) ([]models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, email, password)
	}
	return models.User{Email: email}, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return models.User{Email: email}, nil
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed-token", Email: user.Email}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{SignedString: tokenString, Email: "a@x.com"}, nil
}

func (m *mockAuthService) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, email)
	}
	return models.User{UserID: 1, Email: email}, nil
}

func (m *mockAuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.NoteService
// ─────────────────────────────────────────────

type mockNoteService struct {
	uploadFn func(ctx context.Context, ownerID int64, fileName, content, passcode string, shareable bool) (models.Note, error)
	listFn   func(ctx context.Context, ownerID int64) ([]models.Note, error)
	getFn    func(ctx context.Context, noteID int64) (models.Note, error)
	deleteFn func(ctx context.Context, ownerID, noteID int64) error
}

func (m *mockNoteService) Upload(ctx context.Context, ownerID int64, fileName, content, passcode string, shareable bool) (models.Note, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, ownerID, fileName, content, passcode, shareable)
	}
	return models.Note{OwnerID: ownerID, FileName: fileName, Content: content}, nil
}

func (m *mockNoteService) List(ctx context.Context, ownerID int64) ([]models.Note, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockNoteService) Get(ctx context.Context, noteID int64) (models.Note, error) {
	if m.getFn != nil {
		return m.getFn(ctx, noteID)
	}
	return models.Note{NoteID: noteID}, nil
}

func (m *mockNoteService) Delete(ctx context.Context, ownerID, noteID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, noteID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.PasscodeService
// ─────────────────────────────────────────────

type mockPasscodeService struct {
	verifyFn func(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) error
}

func (m *mockPasscodeService) Verify(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) error {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, user, noteID, suppliedPasscode)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.ShareService
// ─────────────────────────────────────────────

type mockShareService struct {
	shareFn       func(ctx context.Context, ownerID, noteID int64, recipientEmail string, expiresAt *time.Time) (models.ShareGrant, error)
	sharedNotesFn func(ctx context.Context, recipientID int64) ([]models.Note, error)
}

func (m *mockShareService) Share(ctx context.Context, ownerID, noteID int64, recipientEmail string, expiresAt *time.Time) (models.ShareGrant, error) {
	if m.shareFn != nil {
		return m.shareFn(ctx, ownerID, noteID, recipientEmail, expiresAt)
	}
	return models.ShareGrant{NoteID: noteID}, nil
}

func (m *mockShareService) SharedNotes(ctx context.Context, recipientID int64) ([]models.Note, error) {
	if m.sharedNotesFn != nil {
		return m.sharedNotesFn(ctx, recipientID)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: service.AccessService
// ─────────────────────────────────────────────

type mockAccessService struct {
	canAccessFn func(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) (models.Decision, models.Note, error)
}

func (m *mockAccessService) CanAccess(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) (models.Decision, models.Note, error) {
	if m.canAccessFn != nil {
		return m.canAccessFn(ctx, user, noteID, suppliedPasscode)
	}
	return models.DecisionOwner, models.Note{NoteID: noteID}, nil
}

// newTestHandler wires a Handler over the given mocks; nil mocks fall back
// to permissive defaults.
func newTestHandler(services *service.Services) *Handler {
	if services.AuthService == nil {
		services.AuthService = &mockAuthService{}
	}
	if services.NoteService == nil {
		services.NoteService = &mockNoteService{}
	}
	if services.PasscodeService == nil {
		services.PasscodeService = &mockPasscodeService{}
	}
	if services.ShareService == nil {
		services.ShareService = &mockShareService{}
	}
	if services.AccessService == nil {
		services.AccessService = &mockAccessService{}
	}
	return NewHandler(services, logger.Nop())
}
