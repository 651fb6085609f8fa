package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Load подгружает переменные окружения из .env файла
func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type WheelConfig interface {
	DisplayWidth() float64
	InnerRadius() float64
	PadAngle() float64
	PrizeStep() int
	PrizeSteps() int
	DefaultSegments() int
	MaxSegments() int
	Deceleration() float64
	VelocityScale() float64
	FrameInterval() time.Duration
	RestDelta() float64
	SnapDuration() time.Duration
	SettleTimeout() time.Duration
	AnimationWorkers() int
	FrameBuffer() int
	StatsWindow() int
	IdleTTL() time.Duration
}

type HTTPConfig interface {
	Address() string
	ShutdownTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	Dir() string
	File() bool
	App() string
}
