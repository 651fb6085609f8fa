package auth

import (
	"context"
	"errors"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
	"wheel_backend/pkg/pass"

	"go.uber.org/zap"
)

func (s *serv) Register(ctx context.Context, user *model.User) (*model.AuthData, error) {
	if user.Name == "" || user.Login == "" || user.Password == "" {
		return nil, ErrInvalidUser
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = passwordHash

	var data *model.AuthData

	// Пользователь и сессия создаются в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		user.ID, err = s.userRepo.CreateUser(txCtx, user)
		if err != nil {
			return err
		}

		data, err = s.openSession(txCtx, user.ID)
		return err
	})
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil, ErrLoginTaken
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Int("user_id", user.ID))
	return data, nil
}
