package engine

import (
	"math"
	"wheel_backend/internal/model"
)

// roundHalfUp округление с половиной вверх (-2.5 -> -2)
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// WinnerIndex индекс сектора под указателем для угла angle.
// Для отрицательного угла индекс считается по часовой, для положительного в обратную сторону.
// deg может округлиться до 360, поэтому оба результата берутся по модулю segments
func WinnerIndex(angle float64, segments int) int {
	if segments <= 0 {
		return -1
	}
	angleBySegment := fullTurn / float64(segments)
	deg := math.Abs(roundHalfUp(math.Mod(angle, fullTurn)))
	steps := int(math.Floor(deg / angleBySegment))

	if angle < 0 {
		return steps % segments
	}
	return (segments - steps) % segments
}

// ResolveWinner сектор под указателем. Nil если секторов нет или их число не совпадает
func ResolveWinner(angle float64, segments int, slices []model.Slice) *model.Slice {
	if segments <= 0 || len(slices) != segments {
		return nil
	}
	winner := slices[WinnerIndex(angle, segments)]
	return &winner
}
