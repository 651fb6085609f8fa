package engine

import (
	"errors"
	"fmt"
	"time"
)

const fullTurn = 360.0

// Config параметры колеса
type Config struct {
	// Геометрия
	DisplayWidth float64 // Ширина экрана, внешний радиус = половина
	InnerRadius  float64
	PadAngle     float64 // Радианы между секторами

	// Призы: step * [1..steps]
	PrizeStep  int
	PrizeSteps int

	// Ограничения ввода
	DefaultSegments int
	MaxSegments     int

	// Физика
	Deceleration  float64       // Коэффициент затухания за мс
	VelocityScale float64       // Делитель скорости жеста -> градусы/мс
	FrameInterval time.Duration // Шаг кадра
	RestDelta     float64       // Смещение за кадр, ниже которого затухание закончено
	SnapDuration  time.Duration
}

// DefaultConfig значения по умолчанию
func DefaultConfig() Config {
	return Config{
		DisplayWidth:    390,
		InnerRadius:     20,
		PadAngle:        0.01,
		PrizeStep:       200,
		PrizeSteps:      11,
		DefaultSegments: 12,
		MaxSegments:     20,
		Deceleration:    0.999,
		VelocityScale:   1000,
		FrameInterval:   time.Second / 60,
		RestDelta:       0.1,
		SnapDuration:    300 * time.Millisecond,
	}
}

// Validate проверяет конфиг
func (c Config) Validate() error {
	var errs []error
	if c.DisplayWidth <= 0 {
		errs = append(errs, errors.New("display width must be positive"))
	}
	if c.InnerRadius < 0 || c.InnerRadius >= c.DisplayWidth/2 {
		errs = append(errs, fmt.Errorf("inner radius %v out of range [0, %v)", c.InnerRadius, c.DisplayWidth/2))
	}
	if c.PadAngle < 0 {
		errs = append(errs, errors.New("pad angle must not be negative"))
	}
	if c.PrizeStep <= 0 || c.PrizeSteps <= 0 {
		errs = append(errs, errors.New("prize step and steps must be positive"))
	}
	if c.MaxSegments <= 0 {
		errs = append(errs, errors.New("max segments must be positive"))
	}
	if c.DefaultSegments <= 0 || c.DefaultSegments > c.MaxSegments {
		errs = append(errs, fmt.Errorf("default segments %d out of range (0, %d]", c.DefaultSegments, c.MaxSegments))
	}
	if c.Deceleration <= 0 || c.Deceleration >= 1 {
		errs = append(errs, errors.New("deceleration must be in (0, 1)"))
	}
	if c.VelocityScale <= 0 {
		errs = append(errs, errors.New("velocity scale must be positive"))
	}
	if c.FrameInterval <= 0 || c.SnapDuration < 0 {
		errs = append(errs, errors.New("frame interval must be positive, snap duration not negative"))
	}
	if c.RestDelta <= 0 {
		errs = append(errs, errors.New("rest delta must be positive"))
	}
	return errors.Join(errs...)
}

// Layout геометрия и призы для генерации секторов
func (c Config) Layout() Layout {
	return Layout{
		OuterRadius: c.DisplayWidth / 2,
		InnerRadius: c.InnerRadius,
		PadAngle:    c.PadAngle,
		PrizeStep:   c.PrizeStep,
		PrizeSteps:  c.PrizeSteps,
	}
}
