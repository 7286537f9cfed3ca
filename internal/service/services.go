package service

import (
	"github.com/mkhasanov/secure-note/internal/config"
	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/store"
)

type Services struct {
	AuthService     AuthService
	NoteService     NoteService
	PasscodeService PasscodeService
	ShareService    ShareService
	AccessService   AccessService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.Auth, logger),
		NoteService:     NewNoteService(storages.NoteRepository, logger),
		PasscodeService: NewPasscodeService(storages.NoteRepository, storages.GrantRepository, logger),
		ShareService:    NewShareService(storages.NoteRepository, storages.UserRepository, storages.GrantRepository, logger),
		AccessService:   NewAccessService(storages.NoteRepository, storages.GrantRepository, logger),
	}
}
