package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/internal/utils"
	"github.com/mkhasanov/secure-note/models"
)

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "token"

// credentialsRequest is the JSON body of register and login calls.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// setSessionCookie attaches the signed session token to the response.
// HttpOnly keeps it away from page scripts; SameSite=Strict keeps it off
// cross-site requests.
func setSessionCookie(w http.ResponseWriter, token models.Token) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	if token.Token != nil {
		if expiry, err := token.Claims.GetExpirationTime(); err == nil && expiry != nil {
			cookie.Expires = expiry.Time
		}
	}
	http.SetCookie(w, cookie)
}

// clearSessionCookie expires the session cookie on the client.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, credentials.Email, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidEmailFormat):
			log.Err(err).Msg("malformed email")
			http.Error(w, "malformed email", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already exists")
			http.Error(w, "email already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token)
	utils.WriteJSON(w, models.UserEmail{Email: registeredUser.Email}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials.Email, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("no user was found")
			http.Error(w, "user not found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("wrong password")
			http.Error(w, "wrong password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, token)
	utils.WriteJSON(w, models.UserEmail{Email: foundUser.Email}, http.StatusOK)
}

// verifyToken reports whether the caller holds a valid session. It sits on
// the open route group so a client with an expired cookie gets a clean 401
// instead of the auth middleware's error path.
func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tokenString, err := getTokenFromCookie(r)
	if err != nil {
		log.Err(err).Send()
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Msg("session token rejected")
		http.Error(w, service.ErrTokenIsExpiredOrInvalid.Error(), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.UserEmail{Email: token.Email}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// currentUser returns the identity attached by the auth middleware.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.UserEmail{Email: user.Email}, http.StatusOK)
}
