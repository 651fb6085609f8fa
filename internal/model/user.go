package model

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID       int
	Name     string
	Login    string
	Password string
	Balance  int64
}

// UserClaims claims access токена, id пользователя в Subject
type UserClaims struct {
	jwt.RegisteredClaims
}

// UserID id пользователя из Subject
func (c *UserClaims) UserID() (int, error) {
	return strconv.Atoi(c.Subject)
}

// AuthData результат регистрации и входа
type AuthData struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
}
