package http

import (
	"errors"
	"net/http"

	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/store"
)

// errorStatusMap translates typed service and store failures into HTTP
// status codes. Ownership and grant failures map to 404 rather than 403:
// the response must not disclose whether a note the caller cannot access
// exists at all.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidEmailFormat:      http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	service.ErrNotEncrypted:     http.StatusBadRequest,
	service.ErrWrongPasscode:    http.StatusUnauthorized,
	service.ErrPasscodeRequired: http.StatusUnauthorized,

	service.ErrNotShareable:  http.StatusBadRequest,
	service.ErrShareWithSelf: http.StatusBadRequest,
	service.ErrNotOwner:      http.StatusNotFound,
	service.ErrAccessDenied:  http.StatusNotFound,

	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrNoteNotFound:        http.StatusNotFound,
	store.ErrGrantNotFound:       http.StatusNotFound,
	store.ErrInconsistentNoteRow: http.StatusInternalServerError,
	store.ErrGrantNotSaved:       http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrBeginningTransaction:  http.StatusInternalServerError,
	store.ErrCommittingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:    http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
