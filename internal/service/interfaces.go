package service

import (
	"context"
	"time"

	"github.com/mkhasanov/secure-note/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type NoteService interface {
	Upload(ctx context.Context, ownerID int64, fileName, content, passcode string, shareable bool) (models.Note, error)
	List(ctx context.Context, ownerID int64) ([]models.Note, error)
	Get(ctx context.Context, noteID int64) (models.Note, error)
	Delete(ctx context.Context, ownerID, noteID int64) error
}

// PasscodeService checks a supplied passcode for a caller that already has
// a relationship with the note (owner or active grantee). Callers with no
// such relationship are denied before the note's encryption state or the
// passcode comparison is reached.
type PasscodeService interface {
	Verify(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) error
}

type ShareService interface {
	Share(ctx context.Context, ownerID, noteID int64, recipientEmail string, expiresAt *time.Time) (models.ShareGrant, error)
	SharedNotes(ctx context.Context, recipientID int64) ([]models.Note, error)
}

// AccessService is the composition point that turns (authenticated user,
// note, optional passcode) into an allow/deny/needs-passcode outcome.
type AccessService interface {
	CanAccess(ctx context.Context, user models.User, noteID int64, suppliedPasscode string) (models.Decision, models.Note, error)
}
