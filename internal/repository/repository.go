package repository

import (
	"context"
	"errors"
	"wheel_backend/internal/model"
)

// ErrNotFound запись не найдена
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists нарушено ограничение уникальности
var ErrAlreadyExists = errors.New("already exists")

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	// AddBalance прибавляет amount и возвращает новый баланс
	AddBalance(ctx context.Context, id int, amount int64) (int64, error)
}

type WheelRepository interface {
	InsertSpin(ctx context.Context, spin *model.SpinRecord) (id int64, err error)
	ListSpins(ctx context.Context, userID int, limit uint64) ([]model.SpinRecord, error)
}

type WheelStatsRepository interface {
	Record(value int)
	Stats() model.WheelStats
}
