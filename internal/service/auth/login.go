package auth

import (
	"context"
	"errors"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
	"wheel_backend/pkg/pass"
	"wheel_backend/pkg/token"

	"go.uber.org/zap"
)

func (s *serv) Login(ctx context.Context, login, password string) (*model.AuthData, error) {
	// Получение пользователя из бд по логину
	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	data, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Debug("user logged in", zap.Int("user_id", user.ID))
	return data, nil
}

// openSession создает сессию с новым refresh токеном и выдает access токен
func (s *serv) openSession(ctx context.Context, userID int) (*model.AuthData, error) {
	sessionID := generateSessionID()

	refreshToken, err := token.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	err = s.authRepo.CreateSession(ctx,
		&model.Session{
			ID:           sessionID,
			UserID:       userID,
			RefreshToken: token.HashRefreshToken(refreshToken),
			ExpiresAt:    s.now().Add(s.jwtConfig.RefreshTokenDuration()),
		})
	if err != nil {
		return nil, err
	}

	accessToken, err := token.GenerateAccessToken(
		userID,
		s.jwtConfig.AccessTokenSecretKey(),
		s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	return &model.AuthData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    sessionID,
	}, nil
}
