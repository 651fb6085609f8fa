package auth

import (
	"errors"
	"net/http"
	"time"
	dto "wheel_backend/internal/api/dto/auth"
	"wheel_backend/internal/converter"
	"wheel_backend/internal/service"
	authService "wheel_backend/internal/service/auth"
	"wheel_backend/pkg/req"
	"wheel_backend/pkg/resp"

	"go.uber.org/zap"
)

const (
	sessionIDCookie    = "session_id"
	refreshTokenCookie = "refresh_token"
	cookiePath         = "/auth"
)

type HandlerDeps struct {
	Serv            service.AuthService
	Log             *zap.Logger
	RefreshDuration time.Duration // Время жизни cookies
	SecureCookies   bool
}

type Handler struct {
	serv   service.AuthService
	log    *zap.Logger
	maxAge int
	secure bool
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		serv:   deps.Serv,
		log:    deps.Log,
		maxAge: int(deps.RefreshDuration / time.Second),
		secure: deps.SecureCookies,
	}
}

// Register создаёт пользователя, открывает сессию и возвращает access_token.
// session_id и refresh_token выдаются через cookies
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Register(r.Context(), converter.RegisterRequestToUserModel(&requestBody))
	switch {
	case errors.Is(err, authService.ErrInvalidUser):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, authService.ErrLoginTaken):
		resp.WriteError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		h.log.Error("register failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "register failed")
		return
	}

	h.setSessionCookies(w, data.SessionID, data.RefreshToken)
	resp.WriteJSONResponse(w, http.StatusCreated, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Login создаёт сессию и возвращает access_token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Login, requestBody.Password)
	switch {
	case errors.Is(err, authService.ErrInvalidCredentials):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		h.log.Error("login failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.setSessionCookies(w, data.SessionID, data.RefreshToken)
	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: data.AccessToken})
}

// Refresh новый access_token по cookies session_id и refresh_token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}
	refreshToken, err := r.Cookie(refreshTokenCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no refresh_token cookie")
		return
	}

	accessToken, err := h.serv.Refresh(r.Context(), sessionID.Value, refreshToken.Value)
	switch {
	case errors.Is(err, authService.ErrInvalidSession):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		h.log.Error("refresh failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.TokenResponse{AccessToken: accessToken})
}

// Logout закрывает сессию по session_id
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionIDCookie)
	if err != nil {
		resp.WriteError(w, http.StatusUnauthorized, "no session_id cookie")
		return
	}

	if err := h.serv.Logout(r.Context(), c.Value); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, "logout failed")
		return
	}

	h.deleteCookie(w, sessionIDCookie)
	h.deleteCookie(w, refreshTokenCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, sessionID, refreshToken string) {
	for name, value := range map[string]string{
		sessionIDCookie:    sessionID,
		refreshTokenCookie: refreshToken,
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     cookiePath,
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteStrictMode,
			MaxAge:   h.maxAge,
		})
	}
}

func (h *Handler) deleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     cookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
