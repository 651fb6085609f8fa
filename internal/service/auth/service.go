package auth

import (
	"errors"
	"time"
	"wheel_backend/internal/config"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials неверный логин или пароль
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrInvalidSession сессия не найдена, истекла или refresh токен не совпал
	ErrInvalidSession = errors.New("invalid session")
	// ErrLoginTaken логин уже занят
	ErrLoginTaken = errors.New("login already taken")
	// ErrInvalidUser пустые поля при регистрации
	ErrInvalidUser = errors.New("name, login and password are required")
)

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	jwtConfig config.JWTConfig
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	jwtConfig config.JWTConfig,
	log *zap.Logger,
) service.AuthService {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		jwtConfig: jwtConfig,
		log:       log.Named("auth"),
		now:       time.Now,
	}
}

func generateSessionID() string {
	return uuid.NewString()
}
