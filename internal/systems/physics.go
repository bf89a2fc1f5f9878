package systems

import (
	"umbrella-rogue/internal/domain"
)

// walkLine проходит клетки отрезка p1 -> p2 алгоритмом Брезенхэма (только целочисленная арифметика).
// Стартовая клетка пропускается. Обход прекращается, как только visit вернёт false.
func walkLine(p1, p2 domain.Position, visit func(p domain.Position) bool) {
	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)

	err := dx - dy

	for x0 != x1 || y0 != y1 {
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}

		if !visit(domain.Position{X: x0, Y: y0}) {
			return
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
