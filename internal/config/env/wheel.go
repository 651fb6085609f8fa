package env

import (
	"errors"
	"fmt"
	"os"
	"time"
	"wheel_backend/internal/config"

	"gopkg.in/yaml.v3"
)

type wheelFile struct {
	Wheel wheelYAML `yaml:"wheel"`
}

type wheelYAML struct {
	DisplayWidth float64 `yaml:"display_width"` // Ширина экрана клиента, внешний радиус = половина
	InnerRadius  float64 `yaml:"inner_radius"`
	PadAngle     float64 `yaml:"pad_angle"` // Радианы

	Prize struct {
		Step  int `yaml:"step"`
		Steps int `yaml:"steps"`
	} `yaml:"prize"`

	Segments struct {
		Default int `yaml:"default"`
		Max     int `yaml:"max"`
	} `yaml:"segments"`

	Physics struct {
		Deceleration  float64       `yaml:"deceleration"`
		VelocityScale float64       `yaml:"velocity_scale"`
		FrameInterval time.Duration `yaml:"frame_interval"`
		RestDelta     float64       `yaml:"rest_delta"`
		SnapDuration  time.Duration `yaml:"snap_duration"`
	} `yaml:"physics"`

	SettleTimeout    time.Duration `yaml:"settle_timeout"`    // Запас сверх плановой длительности спина
	AnimationWorkers int           `yaml:"animation_workers"` // Размер пула анимаций
	FrameBuffer      int           `yaml:"frame_buffer"`      // Буфер кадров на подписчика
	StatsWindow      int           `yaml:"stats_window"`      // Окно последних спинов для статистики
	IdleTTL          time.Duration `yaml:"idle_ttl"`          // Колесо без обращений дольше этого выгружается
}

func defaultWheelYAML() wheelYAML {
	var w wheelYAML
	w.DisplayWidth = 390
	w.InnerRadius = 20
	w.PadAngle = 0.01
	w.Prize.Step = 200
	w.Prize.Steps = 11
	w.Segments.Default = 12
	w.Segments.Max = 20
	w.Physics.Deceleration = 0.999
	w.Physics.VelocityScale = 1000
	w.Physics.FrameInterval = time.Second / 60
	w.Physics.RestDelta = 0.1
	w.Physics.SnapDuration = 300 * time.Millisecond
	w.SettleTimeout = 5 * time.Second
	w.AnimationWorkers = 256
	w.FrameBuffer = 32
	w.StatsWindow = 500
	w.IdleTTL = 10 * time.Minute
	return w
}

type wheelConfig struct {
	w wheelYAML
}

// NewWheelConfigFromYAML читает секцию wheel из YAML файла.
// Отсутствующие ключи берутся по умолчанию
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}
	return parseWheelConfig(data)
}

// NewDefaultWheelConfig конфиг без файла
func NewDefaultWheelConfig() config.WheelConfig {
	return &wheelConfig{w: defaultWheelYAML()}
}

func parseWheelConfig(data []byte) (config.WheelConfig, error) {
	file := wheelFile{Wheel: defaultWheelYAML()}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}
	if err := file.Wheel.validate(); err != nil {
		return nil, fmt.Errorf("invalid wheel config: %w", err)
	}
	return &wheelConfig{w: file.Wheel}, nil
}

func (w wheelYAML) validate() error {
	var errs []error
	if w.Segments.Max <= 0 || w.Segments.Default <= 0 || w.Segments.Default > w.Segments.Max {
		errs = append(errs, fmt.Errorf("segments default %d must be in (0, max=%d]", w.Segments.Default, w.Segments.Max))
	}
	if w.Physics.Deceleration <= 0 || w.Physics.Deceleration >= 1 {
		errs = append(errs, errors.New("physics.deceleration must be in (0, 1)"))
	}
	if w.Physics.FrameInterval <= 0 {
		errs = append(errs, errors.New("physics.frame_interval must be positive"))
	}
	if w.SettleTimeout <= 0 {
		errs = append(errs, errors.New("settle_timeout must be positive"))
	}
	if w.AnimationWorkers <= 0 {
		errs = append(errs, errors.New("animation_workers must be positive"))
	}
	if w.IdleTTL <= 0 {
		errs = append(errs, errors.New("idle_ttl must be positive"))
	}
	if w.FrameBuffer <= 0 || w.StatsWindow <= 0 {
		errs = append(errs, errors.New("frame_buffer and stats_window must be positive"))
	}
	return errors.Join(errs...)
}

func (c *wheelConfig) DisplayWidth() float64 {
	return c.w.DisplayWidth
}

func (c *wheelConfig) InnerRadius() float64 {
	return c.w.InnerRadius
}

func (c *wheelConfig) PadAngle() float64 {
	return c.w.PadAngle
}

func (c *wheelConfig) PrizeStep() int {
	return c.w.Prize.Step
}

func (c *wheelConfig) PrizeSteps() int {
	return c.w.Prize.Steps
}

func (c *wheelConfig) DefaultSegments() int {
	return c.w.Segments.Default
}

func (c *wheelConfig) MaxSegments() int {
	return c.w.Segments.Max
}

func (c *wheelConfig) Deceleration() float64 {
	return c.w.Physics.Deceleration
}

func (c *wheelConfig) VelocityScale() float64 {
	return c.w.Physics.VelocityScale
}

func (c *wheelConfig) FrameInterval() time.Duration {
	return c.w.Physics.FrameInterval
}

func (c *wheelConfig) RestDelta() float64 {
	return c.w.Physics.RestDelta
}

func (c *wheelConfig) SnapDuration() time.Duration {
	return c.w.Physics.SnapDuration
}

func (c *wheelConfig) SettleTimeout() time.Duration {
	return c.w.SettleTimeout
}

func (c *wheelConfig) AnimationWorkers() int {
	return c.w.AnimationWorkers
}

func (c *wheelConfig) FrameBuffer() int {
	return c.w.FrameBuffer
}

func (c *wheelConfig) StatsWindow() int {
	return c.w.StatsWindow
}

func (c *wheelConfig) IdleTTL() time.Duration {
	return c.w.IdleTTL
}
