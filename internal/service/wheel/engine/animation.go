package engine

import (
	"math"
	"time"
)

// Decay экспоненциальное затухание вращения.
// angle(t) = From + V/(1-d) * (1 - e^{-(1-d)t}), t в миллисекундах
type Decay struct {
	From         float64
	Velocity     float64 // Градусы/мс
	Deceleration float64
}

func (d Decay) k() float64 {
	return 1 - d.Deceleration
}

// At угол через elapsed
func (d Decay) At(elapsed time.Duration) float64 {
	k := d.k()
	return d.From + d.Velocity/k*(1-math.Exp(-k*ms(elapsed)))
}

// Distance полный путь до остановки
func (d Decay) Distance() float64 {
	return d.Velocity / d.k()
}

// Duration время, после которого смещение за кадр меньше rest
func (d Decay) Duration(frame time.Duration, rest float64) time.Duration {
	k := d.k()
	// Смещение между кадрами в момент t: |V|/k * e^{-kt} * (e^{k*frame} - 1)
	perFrame := math.Abs(d.Velocity) / k * math.Expm1(k*ms(frame))
	if perFrame < rest {
		return 0
	}
	t := math.Log(perFrame/rest) / k
	return time.Duration(t * float64(time.Millisecond))
}

// Snap ближайшая к angle линия сетки с шагом step
func Snap(angle, step float64) float64 {
	if step <= 0 {
		return angle
	}
	return roundHalfUp(angle/step) * step
}

// NormalizeAngle остаток от деления на полный оборот со знаком делимого
func NormalizeAngle(angle float64) float64 {
	return math.Mod(angle, fullTurn)
}

// Tween переход From -> To за Duration
type Tween struct {
	From     float64
	To       float64
	Duration time.Duration
}

// At значение через elapsed с плавным входом и выходом
func (t Tween) At(elapsed time.Duration) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To
	}
	if elapsed <= 0 {
		return t.From
	}
	p := easeInOut(float64(elapsed) / float64(t.Duration))
	return t.From + (t.To-t.From)*p
}

func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

// Отклонение язычка указателя от фазы внутри сектора
var (
	knobPhases = []float64{-1, -0.5, -0.0001, 0.0001, 0.5, 1}
	knobTilts  = []float64{0, 0, 35, -35, 0, 0}
)

// KnobTilt угол язычка в градусах. Фаза - положение указателя внутри сектора в [0, 1)
func KnobTilt(angle, angleOffset, angleBySegment float64) float64 {
	if angleBySegment <= 0 {
		return 0
	}
	phase := positiveMod(positiveMod(angle-angleOffset, fullTurn)/angleBySegment, 1)
	return interpolate(phase, knobPhases, knobTilts)
}

func positiveMod(a, m float64) float64 {
	return math.Mod(math.Mod(a, m)+m, m)
}

// interpolate кусочно-линейная интерполяция, за краями продолжается крайний отрезок
func interpolate(x float64, in, out []float64) float64 {
	i := 1
	for i < len(in)-1 && x > in[i] {
		i++
	}
	x0, x1 := in[i-1], in[i]
	y0, y1 := out[i-1], out[i]
	if x1 == x0 {
		return y0
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
