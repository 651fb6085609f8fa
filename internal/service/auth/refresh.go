package auth

import (
	"context"
	"errors"
	"wheel_backend/internal/repository"
	"wheel_backend/pkg/token"
)

func (s *serv) Refresh(ctx context.Context, sessionID, refreshToken string) (string, error) {
	session, err := s.authRepo.GetSession(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", err
	}

	if session.Expired(s.now()) {
		// Истекшая сессия больше не нужна
		_ = s.authRepo.DeleteSession(ctx, sessionID)
		return "", ErrInvalidSession
	}

	// Верификация переданного refresh токена с хэшем из хранилища
	if !token.VerifyRefreshToken(refreshToken, session.RefreshToken) {
		return "", ErrInvalidSession
	}

	return token.GenerateAccessToken(
		session.UserID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
}
