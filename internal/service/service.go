package service

import (
	"context"
	"errors"
	"wheel_backend/internal/model"
)

// ErrUnauthorized в контексте нет пользователя
var ErrUnauthorized = errors.New("user id not found in context")

type WheelService interface {
	State(ctx context.Context) (*model.WheelState, error)
	// SetSegments принимает текст поля ввода, applied=false если разметка не поменялась
	SetSegments(ctx context.Context, text string) (applied bool, state *model.WheelState, err error)
	// Fling отпускание жеста, accepted=false если колесо еще крутится
	Fling(ctx context.Context, fling model.Fling) (accepted bool, state *model.WheelState, err error)
	Subscribe(ctx context.Context) (frames <-chan model.Frame, cancel func(), err error)
	History(ctx context.Context, limit uint64) ([]model.SpinRecord, error)
	Stats() model.WheelStats
	Close()
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, login, password string) (*model.AuthData, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
