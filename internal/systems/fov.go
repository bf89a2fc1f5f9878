package systems

import (
	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// FOVAlgorithm - алгоритм расчёта поля зрения
type FOVAlgorithm string

const (
	// FOVBasic - лучи из центра до каждой клетки границы радиуса
	FOVBasic FOVAlgorithm = "BASIC"
	// FOVShadow - рекурсивный shadowcasting по 8 октантам
	FOVShadow FOVAlgorithm = "SHADOW"
)

// TileState - как клиент должен рисовать клетку
type TileState uint8

const (
	TileUnknown TileState = iota
	TileRemembered
	TileVisible
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeFOV возвращает множество клеток, видимых из origin.
// Клетки за пределами карты не видны никогда. Стены попадают в множество только при lightWalls,
// и свет сквозь них не проходит. Монстры обзор не перекрывают.
func ComputeFOV(m *domain.GameMap, origin domain.Position, radius int, algo FOVAlgorithm, lightWalls bool) mapset.Set[domain.Position] {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
		"algorithm":    algo,
	})

	visible := mapset.New[domain.Position]()
	if !m.InBounds(origin.X, origin.Y) || radius <= 0 {
		fovLogger.Warn("FOV calculation skipped: observer outside map or blind.")
		return visible
	}

	// Центр всегда виден
	visible.Put(origin)

	mark := func(x, y int) {
		if !m.InBounds(x, y) {
			return
		}
		if m.BlocksSight(x, y) && !lightWalls {
			return
		}
		visible.Put(domain.Position{X: x, Y: y})
	}

	switch algo {
	case FOVShadow:
		for i := 0; i < 8; i++ {
			castLight(m, origin.X, origin.Y, 1, 1.0, 0.0, radius,
				multipliers[0][i], multipliers[1][i],
				multipliers[2][i], multipliers[3][i], mark)
		}
	default:
		castRays(m, origin, radius, mark)
	}

	fovLogger.WithFields(logrus.Fields{
		"radius":        radius,
		"visible_tiles": visible.Size(),
	}).Debug("FOV calculation complete.")

	return visible
}

// castRays пускает луч к каждой клетке периметра квадрата радиуса.
// Луч обрывается на первой непрозрачной клетке или за пределами окружности.
func castRays(m *domain.GameMap, origin domain.Position, radius int, mark func(x, y int)) {
	radiusSq := radius * radius
	ray := func(target domain.Position) {
		walkLine(origin, target, func(p domain.Position) bool {
			if !m.InBounds(p.X, p.Y) || origin.DistanceSquaredTo(p) > radiusSq {
				return false
			}
			mark(p.X, p.Y)
			return !m.BlocksSight(p.X, p.Y)
		})
	}

	for d := -radius; d <= radius; d++ {
		ray(domain.Position{X: origin.X + d, Y: origin.Y - radius})
		ray(domain.Position{X: origin.X + d, Y: origin.Y + radius})
		ray(domain.Position{X: origin.X - radius, Y: origin.Y + d})
		ray(domain.Position{X: origin.X + radius, Y: origin.Y + d})
	}
}

func castLight(m *domain.GameMap, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, mark func(x, y int)) {
	if start < end {
		return
	}

	radiusSq := radius * radius

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Наклоны (slopes) краёв клетки
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if dx*dx+dy*dy <= radiusSq {
				mark(X, Y)
			}

			if blocked {
				// Идём вдоль стены
				if m.BlocksSight(X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if m.BlocksSight(X, Y) && j < radius {
				// Наткнулись на стену: сканируем следующий ряд до её края
				blocked = true
				castLight(m, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, mark)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// Visibility хранит текущее видимое множество игрока.
// Пересчитывается только после MarkDirty (игрок сдвинулся или телепортировался).
type Visibility struct {
	Radius     int
	Algorithm  FOVAlgorithm
	LightWalls bool

	visible mapset.Set[domain.Position]
	dirty   bool
}

func NewVisibility(cfg config.FOVConfig) *Visibility {
	return &Visibility{
		Radius:     cfg.Radius,
		Algorithm:  FOVAlgorithm(cfg.Algorithm),
		LightWalls: cfg.LightWalls,
		visible:    mapset.New[domain.Position](),
		dirty:      true,
	}
}

// MarkDirty требует пересчёта перед следующей отрисовкой
func (v *Visibility) MarkDirty() {
	v.dirty = true
}

func (v *Visibility) IsDirty() bool {
	return v.dirty
}

// Recompute пересчитывает поле зрения, если оно устарело. Возвращает true, если пересчёт был.
// Все попавшие в поле зрения клетки навсегда помечаются как исследованные.
func (v *Visibility) Recompute(m *domain.GameMap, viewer domain.Position) bool {
	if !v.dirty {
		return false
	}
	v.visible = ComputeFOV(m, viewer, v.Radius, v.Algorithm, v.LightWalls)
	v.visible.Each(func(p domain.Position) {
		m.Tiles[p.Y][p.X].Explored = true
	})
	v.dirty = false
	return true
}

// IsVisible - клетка сейчас в поле зрения игрока
func (v *Visibility) IsVisible(p domain.Position) bool {
	return v.visible.Has(p)
}

// Count - размер видимого множества
func (v *Visibility) Count() int {
	return v.visible.Size()
}

// TileState выводит одно из трёх состояний клетки для рендера
func (v *Visibility) TileState(m *domain.GameMap, x, y int) TileState {
	if v.visible.Has(domain.Position{X: x, Y: y}) {
		return TileVisible
	}
	if t := m.At(x, y); t != nil && t.Explored {
		return TileRemembered
	}
	return TileUnknown
}
