package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhasanov/secure-note/internal/service"
	"github.com/mkhasanov/secure-note/internal/store"
	"github.com/mkhasanov/secure-note/models"
)

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	return nil
}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			registerFn: func(_ context.Context, email, password string) (models.User, error) {
				assert.Equal(t, "a@x.com", email)
				assert.Equal(t, "pw1", password)
				return models.User{UserID: 1, Email: email}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())

	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie, "registration must start a session")
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_MalformedEmail(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			registerFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, service.ErrInvalidEmailFormat
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"email":"not-an-email","password":"pw1"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			registerFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, store.ErrEmailAlreadyExists
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	rec := httptest.NewRecorder()

	h.register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Nil(t, sessionCookieFrom(t, rec), "no session on a failed registration")
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			loginFn: func(_ context.Context, email, password string) (models.User, error) {
				return models.User{UserID: 1, Email: email}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())
	require.NotNil(t, sessionCookieFrom(t, rec))
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			loginFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, store.ErrNoUserWasFound
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"missing@x.com","password":"pw1"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			loginFn: func(_ context.Context, _, _ string) (models.User, error) {
				return models.User{}, service.ErrWrongPassword
			},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	rec := httptest.NewRecorder()

	h.login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookieFrom(t, rec))
}

// ─────────────────────────────────────────────
// verifyToken / logout / currentUser
// ─────────────────────────────────────────────

func TestVerifyToken_ValidSession(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
				assert.Equal(t, "valid-token", tokenString)
				return models.Token{Email: "a@x.com"}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/verify-token", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()

	h.verifyToken(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())
}

func TestVerifyToken_NoCookie(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/verify-token", nil)
	rec := httptest.NewRecorder()

	h.verifyToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyToken_ExpiredToken(t *testing.T) {
	h := newTestHandler(&service.Services{
		AuthService: &mockAuthService{
			parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/verify-token", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "stale-token"})
	rec := httptest.NewRecorder()

	h.verifyToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	rec := httptest.NewRecorder()

	h.logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookieFrom(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestCurrentUser(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/current-user", nil)
	req = req.WithContext(contextWithUser(req.Context(), models.User{UserID: 1, Email: "a@x.com"}))
	rec := httptest.NewRecorder()

	h.currentUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, rec.Body.String())
}

func TestCurrentUser_NoContextUser(t *testing.T) {
	h := newTestHandler(&service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/current-user", nil)
	rec := httptest.NewRecorder()

	h.currentUser(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
