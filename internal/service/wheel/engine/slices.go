package engine

import (
	"errors"
	"math/rand/v2"
	"wheel_backend/internal/model"
)

// ErrInvalidSegmentCount количество секторов должно быть положительным
var ErrInvalidSegmentCount = errors.New("segment count must be positive")

// Layout параметры разметки колеса
type Layout struct {
	OuterRadius float64
	InnerRadius float64
	PadAngle    float64
	PrizeStep   int
	PrizeSteps  int
}

// Generate делит круг на segments равных секторов.
// Геометрия зависит только от segments, цвета и призы случайны при каждом вызове
func (l Layout) Generate(segments int, rng *rand.Rand) ([]model.Slice, error) {
	if segments <= 0 {
		return nil, ErrInvalidSegmentCount
	}

	colors := DarkPalette(segments, rng)
	width := tau / float64(segments)
	slices := make([]model.Slice, segments)

	for i := range slices {
		sector := annulus{
			inner: l.InnerRadius,
			outer: l.OuterRadius,
			start: float64(i) * width,
			end:   float64(i+1) * width,
			pad:   l.PadAngle,
		}
		slices[i] = model.Slice{
			Index:      i,
			Path:       sector.path(),
			Color:      colors[i],
			Value:      l.prize(rng),
			Centroid:   sector.centroid(),
			StartAngle: sector.start,
			EndAngle:   sector.end,
		}
	}

	return slices, nil
}

// prize равномерно из {step, 2*step, ..., steps*step}
func (l Layout) prize(rng *rand.Rand) int {
	return (rng.IntN(l.PrizeSteps) + 1) * l.PrizeStep
}

// Prizes все возможные значения призов по возрастанию
func (l Layout) Prizes() []int {
	out := make([]int, l.PrizeSteps)
	for i := range out {
		out[i] = (i + 1) * l.PrizeStep
	}
	return out
}

// GenerateSlices разметка с параметрами по умолчанию и несидированным генератором
func GenerateSlices(segments int) ([]model.Slice, error) {
	return DefaultConfig().Layout().Generate(segments, newRand())
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
