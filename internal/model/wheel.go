package model

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// WheelPhase фаза колеса
type WheelPhase int

const (
	// PhaseIdle колесо стоит, можно крутить
	PhaseIdle WheelPhase = iota
	// PhaseSpinning затухание после жеста
	PhaseSpinning
	// PhaseSettling доводка до границы сектора
	PhaseSettling
)

func (p WheelPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpinning:
		return "spinning"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Slice сектор колеса
type Slice struct {
	Index      int
	Path       Path
	Color      string
	Value      int     // Приз
	Centroid   r2.Vec  // Центр сектора для подписи
	StartAngle float64 // Радианы, по часовой от 12 часов
	EndAngle   float64
}

// WheelState снимок состояния колеса
type WheelState struct {
	ID             string
	InputText      string // Последний введенный текст (эхо)
	Segments       int
	Layout         int // Номер генерации секторов
	AngleBySegment float64
	AngleOffset    float64
	CurrentAngle   float64
	Phase          WheelPhase
	SpinEnabled    bool
	Finished       bool
	Winner         *Slice
	Slices         []Slice
}

// Frame кадр анимации для слоя отображения
type Frame struct {
	WheelID  string
	Seq      uint64
	Layout   int
	Angle    float64
	KnobTilt float64
	Phase    WheelPhase
	Winner   *Slice // Только в кадре остановки
	At       time.Time
}

// Fling отпускание жеста
type Fling struct {
	VelocityX float64
	VelocityY float64
}

// SpinOutcome итог одного спина
type SpinOutcome struct {
	WheelID    string
	Segments   int
	Winner     Slice
	FinalAngle float64
	Velocity   float64 // Скорость жеста по вертикали
	StartedAt  time.Time
	SettledAt  time.Time
}

// SpinRecord сохраненный спин игрока
type SpinRecord struct {
	ID         int64
	UserID     int
	WheelID    string
	Segments   int
	SliceIndex int
	Value      int
	Color      string
	FinalAngle float64
	Velocity   float64
	Balance    int64 // Баланс после начисления
	CreatedAt  time.Time
}

// WheelStats агрегированная статистика призов
type WheelStats struct {
	TotalSpins  int
	TotalPayout int64
	AvgPayout   float64
	MaxPayout   int
	ValueHits   map[int]int // Приз -> сколько раз выпал
	WindowAvg   float64     // Средний приз в окне последних спинов
	WindowSize  int
}
