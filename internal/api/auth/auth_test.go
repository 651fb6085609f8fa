package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"wheel_backend/internal/model"
	authService "wheel_backend/internal/service/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	registerErr error
	loginErr    error
	refreshErr  error
	gotSession  string
	gotRefresh  string
	loggedOut   string
}

func (f *fakeAuth) Register(context.Context, *model.User) (*model.AuthData, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &model.AuthData{AccessToken: "access", RefreshToken: "refresh", SessionID: "sid"}, nil
}

func (f *fakeAuth) Login(context.Context, string, string) (*model.AuthData, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &model.AuthData{AccessToken: "access", RefreshToken: "refresh", SessionID: "sid"}, nil
}

func (f *fakeAuth) Refresh(_ context.Context, sessionID, refreshToken string) (string, error) {
	f.gotSession, f.gotRefresh = sessionID, refreshToken
	return "new-access", f.refreshErr
}

func (f *fakeAuth) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = sessionID
	return nil
}

func newHandler(f *fakeAuth) *Handler {
	return NewHandler(HandlerDeps{Serv: f, Log: zap.NewNop(), RefreshDuration: time.Hour})
}

func cookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestRegister(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"name":"Ann","login":"ann","password":"qwerty"}`
	newHandler(&fakeAuth{}).Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"access_token":"access"}`, rec.Body.String())
	c := cookies(rec)
	require.Contains(t, c, "session_id")
	require.Contains(t, c, "refresh_token")
	assert.Equal(t, "sid", c["session_id"].Value)
	assert.Equal(t, "refresh", c["refresh_token"].Value)
	assert.Equal(t, 3600, c["refresh_token"].MaxAge)
	assert.True(t, c["refresh_token"].HttpOnly)
}

func TestRegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		body string
		code int
	}{
		{name: "bad json", body: `{`, code: http.StatusBadRequest},
		{name: "taken", err: authService.ErrLoginTaken, body: `{}`, code: http.StatusConflict},
		{name: "invalid", err: authService.ErrInvalidUser, body: `{}`, code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			newHandler(&fakeAuth{registerErr: tt.err}).Register(rec, r)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestLoginInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"login":"ann","password":"x"}`))
	newHandler(&fakeAuth{loginErr: authService.ErrInvalidCredentials}).Login(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, cookies(rec))
}

func TestRefresh(t *testing.T) {
	f := &fakeAuth{}
	r := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sid"})
	r.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh"})
	rec := httptest.NewRecorder()
	newHandler(f).Refresh(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"new-access"}`, rec.Body.String())
	assert.Equal(t, "sid", f.gotSession)
	assert.Equal(t, "refresh", f.gotRefresh)

	rec = httptest.NewRecorder()
	newHandler(f).Refresh(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.refreshErr = authService.ErrInvalidSession
	rec = httptest.NewRecorder()
	newHandler(f).Refresh(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{}
	r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: "session_id", Value: "sid"})
	rec := httptest.NewRecorder()
	newHandler(f).Logout(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sid", f.loggedOut)
	assert.Equal(t, -1, cookies(rec)["session_id"].MaxAge)
}
