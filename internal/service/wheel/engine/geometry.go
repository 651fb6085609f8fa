package engine

import (
	"math"
	"wheel_backend/internal/model"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	epsilon = 1e-12
	tau     = 2 * math.Pi
)

// annulus кольцевой сектор. Углы в радианах по часовой от 12 часов
type annulus struct {
	inner, outer float64
	start, end   float64
	pad          float64
}

// polar точка на окружности радиуса r. Ось y вниз, как в SVG
func polar(r, angle float64) r2.Vec {
	a := angle - math.Pi/2
	return r2.Scale(r, r2.Vec{X: math.Cos(a), Y: math.Sin(a)})
}

func asin(x float64) float64 {
	switch {
	case x >= 1:
		return math.Pi / 2
	case x <= -1:
		return -math.Pi / 2
	default:
		return math.Asin(x)
	}
}

// centroid середина сектора по радиусу и углу. Отступ не учитывается
func (a annulus) centroid() r2.Vec {
	return polar((a.inner+a.outer)/2, (a.start+a.end)/2)
}

// path контур сектора. Отступ между секторами вычитается с каждой стороны
// по радиусу отступа sqrt(r0²+r1²); слишком узкая дуга схлопывается в середину
func (a annulus) path() model.Path {
	r0, r1 := a.inner, a.outer
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	da := math.Abs(a.end - a.start)

	if da > tau-epsilon {
		return ring(r0, r1, a.start)
	}

	a01, a11 := a.start, a.end
	a00, a10 := a.start, a.end
	da0, da1 := da, da

	ap := a.pad / 2
	rp := math.Hypot(r0, r1)
	if ap > epsilon && rp > epsilon {
		mid := (a.start + a.end) / 2
		if r0 > epsilon {
			p0 := asin(rp / r0 * math.Sin(ap))
			if da0 -= p0 * 2; da0 > epsilon {
				a00 += p0
				a10 -= p0
			} else {
				da0 = 0
				a00, a10 = mid, mid
			}
		}
		p1 := asin(rp / r1 * math.Sin(ap))
		if da1 -= p1 * 2; da1 > epsilon {
			a01 += p1
			a11 -= p1
		} else {
			da1 = 0
			a01, a11 = mid, mid
		}
	}

	p := make(model.Path, 0, 5)
	from := polar(r1, a01)
	p = append(p, model.PathCommand{Op: model.OpMoveTo, Args: []float64{from.X, from.Y}})
	if da1 > epsilon {
		to := polar(r1, a11)
		p = append(p, arcTo(r1, da1 > math.Pi, true, to))
	}

	if r0 > epsilon {
		in := polar(r0, a10)
		p = append(p, model.PathCommand{Op: model.OpLineTo, Args: []float64{in.X, in.Y}})
		if da0 > epsilon {
			to := polar(r0, a00)
			p = append(p, arcTo(r0, da0 > math.Pi, false, to))
		}
	} else {
		p = append(p, model.PathCommand{Op: model.OpLineTo, Args: []float64{0, 0}})
	}

	return append(p, model.PathCommand{Op: model.OpClose})
}

// ring полное кольцо: внешний круг по часовой, внутренний против
func ring(r0, r1, start float64) model.Path {
	p := make(model.Path, 0, 7)
	o0, o1 := polar(r1, start), polar(r1, start+math.Pi)
	p = append(p,
		model.PathCommand{Op: model.OpMoveTo, Args: []float64{o0.X, o0.Y}},
		arcTo(r1, true, true, o1),
		arcTo(r1, true, true, o0),
	)
	if r0 > epsilon {
		i0, i1 := polar(r0, start), polar(r0, start+math.Pi)
		p = append(p,
			model.PathCommand{Op: model.OpMoveTo, Args: []float64{i0.X, i0.Y}},
			arcTo(r0, true, false, i1),
			arcTo(r0, true, false, i0),
		)
	}
	return append(p, model.PathCommand{Op: model.OpClose})
}

func arcTo(r float64, large, sweep bool, to r2.Vec) model.PathCommand {
	return model.PathCommand{
		Op:   model.OpArcTo,
		Args: []float64{r, r, 0, flag(large), flag(sweep), to.X, to.Y},
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// contains проверяет, что точка лежит внутри сектора без учета отступа
func (a annulus) contains(pt r2.Vec) bool {
	r := r2.Norm(pt)
	if r <= a.inner || r >= a.outer {
		return false
	}
	angle := math.Atan2(pt.Y, pt.X) + math.Pi/2
	if angle < 0 {
		angle += tau
	}
	return angle > a.start && angle < a.end
}
