package model

import "time"

type Session struct {
	ID           string
	UserID       int
	RefreshToken string // SHA-256 хэш, сам токен не хранится
	ExpiresAt    time.Time
}

// Expired истекла ли сессия к моменту now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
