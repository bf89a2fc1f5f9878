package systems

import (
	"math"

	"umbrella-rogue/internal/domain"
)

// Move сдвигает сущность на (dx, dy), если клетка назначения свободна.
// Любое изменение позиции проходит через GameWorld.IsBlocked.
func Move(w *domain.GameWorld, e *domain.Entity, dx, dy int) bool {
	target := e.Pos.Shift(dx, dy)
	if w.IsBlocked(target.X, target.Y) {
		return false
	}
	e.Pos = target
	return true
}

// MoveTowards делает один шаг в сторону цели по одному из 8 направлений
func MoveTowards(w *domain.GameWorld, e *domain.Entity, target domain.Position) bool {
	dx, dy := StepTowards(e.Pos, target)
	if dx == 0 && dy == 0 {
		return false
	}
	return Move(w, e, dx, dy)
}

// StepTowards нормирует вектор from -> to и округляет компоненты до ближайшего направления
func StepTowards(from, to domain.Position) (int, int) {
	dist := from.DistanceTo(to)
	if dist == 0 {
		return 0, 0
	}
	dx := int(math.Round(float64(to.X-from.X) / dist))
	dy := int(math.Round(float64(to.Y-from.Y) / dist))
	return dx, dy
}
