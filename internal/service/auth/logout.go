package auth

import (
	"context"
)

// Logout закрывает сессию, повторный выход не ошибка
func (s *serv) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	return s.authRepo.DeleteSession(ctx, sessionID)
}
