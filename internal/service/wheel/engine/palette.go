package engine

import (
	"math"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Диапазоны темной палитры в HSV
const (
	darkSatMin    = 0.55
	darkSatSpan   = 0.45
	darkValMin    = 0.22
	darkValSpan   = 0.20
	hueJitter     = 0.8 // Доля ширины корзины оттенка
	maxColorTries = 64
)

// DarkPalette возвращает count попарно различных темных цветов в hex.
// Круг оттенков делится на count корзин со случайным сдвигом, цвета перемешиваются
func DarkPalette(count int, rng *rand.Rand) []string {
	if count <= 0 {
		return nil
	}

	span := fullTurn / float64(count)
	offset := rng.Float64() * fullTurn
	seen := make(map[string]struct{}, count)
	colors := make([]string, 0, count)

	for bucket := 0; bucket < count; bucket++ {
		var hex string
		for try := 0; try < maxColorTries; try++ {
			h := math.Mod(offset+span*(float64(bucket)+rng.Float64()*hueJitter), fullTurn)
			s := darkSatMin + rng.Float64()*darkSatSpan
			v := darkValMin + rng.Float64()*darkValSpan
			hex = colorful.Hsv(h, s, v).Hex()
			if _, dup := seen[hex]; !dup {
				break
			}
		}
		seen[hex] = struct{}{}
		colors = append(colors, hex)
	}

	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors
}
