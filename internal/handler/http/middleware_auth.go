package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based session
// authentication.
//
// It reads the session cookie, validates the JWT it carries via
// [service.AuthService.ParseToken], resolves the token's subject back to a
// full account record, and — on success — stores that record in the request
// context under [utils.UserCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the
// following cases:
//   - The session cookie is absent ([ErrNoSessionCookie]) or empty
//     ([ErrEmptySessionToken]).
//   - The token is expired, mis-issued, or otherwise invalid
//     ([service.ErrTokenIsExpiredOrInvalid]).
//   - The subject no longer resolves to a registered account.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromCookie(r)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
			return
		}

		// a valid token for a since-deleted account must not pass
		user, err := h.services.AuthService.FindUserByEmail(ctx, token.Email)
		if err != nil {
			log.Err(err).Str("email", token.Email).Msg("session subject does not resolve to an account")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated account in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserCtxKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromCookie extracts the session token string from the request's
// session cookie.
//
// It returns the following sentinel errors:
//   - [ErrNoSessionCookie] — if the request carries no session cookie.
//   - [ErrEmptySessionToken] — if the cookie exists but its value is empty.
func getTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNoSessionCookie
		}
		return "", err
	}

	if cookie.Value == "" {
		return "", ErrEmptySessionToken
	}

	return cookie.Value, nil
}
