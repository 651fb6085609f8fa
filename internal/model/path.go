package model

import (
	"math"
	"strconv"
	"strings"
)

// PathOp команда векторного пути
type PathOp byte

const (
	OpMoveTo PathOp = 'M'
	OpLineTo PathOp = 'L'
	OpArcTo  PathOp = 'A' // rx ry rotation large-arc sweep x y
	OpClose  PathOp = 'Z'
)

// PathCommand одна команда отрисовки
type PathCommand struct {
	Op   PathOp
	Args []float64
}

// Path контур сектора
type Path []PathCommand

// String возвращает путь в синтаксисе SVG, координаты округлены до тысячных
func (p Path) String() string {
	var sb strings.Builder
	for _, cmd := range p {
		sb.WriteByte(byte(cmd.Op))
		for i, a := range cmd.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.FormatFloat(math.Round(a*1000)/1000, 'f', -1, 64))
		}
	}
	return sb.String()
}
