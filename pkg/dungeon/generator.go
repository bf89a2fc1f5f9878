package dungeon

import (
	"math/rand"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Rect - комната на время генерации: (X1,Y1) и (X2,Y2) - углы её стен.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect строит комнату по левому верхнему углу и размерам
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center - целочисленная середина комнаты
func (r Rect) Center() domain.Position {
	return domain.Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects - замкнутые интервалы пересекаются по обеим осям.
// Касающиеся комнаты тоже считаются пересекающимися.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Params - размеры карты и комнат
type Params struct {
	Width       int
	Height      int
	MaxRooms    int
	RoomMinSize int
	RoomMaxSize int
}

func ParamsFromConfig(c config.MapConfig) Params {
	return Params{
		Width:       c.Width,
		Height:      c.Height,
		MaxRooms:    c.MaxRooms,
		RoomMinSize: c.RoomMinSize,
		RoomMaxSize: c.RoomMaxSize,
	}
}

// RoomFunc вызывается сразу после принятия комнаты. index == 0 - первая (стартовая) комната.
type RoomFunc func(room Rect, index int)

// Layout - итог генерации
type Layout struct {
	Rooms     []Rect
	Corridors int
	Start     domain.Position
}

// Generate вырезает комнаты и L-образные коридоры в карте m (ожидается сплошной камень).
// Делает ровно p.MaxRooms попыток; комнат может получиться меньше, это не ошибка.
// Первая попытка принимается всегда, так что стартовая комната есть всегда.
func Generate(m *domain.GameMap, p Params, rng *rand.Rand, onRoom RoomFunc) Layout {
	var layout Layout

	for i := 0; i < p.MaxRooms; i++ {
		w := randRange(rng, p.RoomMinSize, p.RoomMaxSize)
		h := randRange(rng, p.RoomMinSize, p.RoomMaxSize)
		x := randRange(rng, 0, p.Width-w-1)
		y := randRange(rng, 0, p.Height-h-1)

		newRoom := NewRect(x, y, w, h)

		failed := false
		for _, other := range layout.Rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(m, newRoom)
		center := newRoom.Center()

		if len(layout.Rooms) == 0 {
			layout.Start = center
		} else {
			prev := layout.Rooms[len(layout.Rooms)-1].Center()
			if rng.Intn(2) == 0 {
				createHCorridor(m, prev.X, center.X, prev.Y)
				createVCorridor(m, prev.Y, center.Y, center.X)
			} else {
				createVCorridor(m, prev.Y, center.Y, prev.X)
				createHCorridor(m, prev.X, center.X, center.Y)
			}
			layout.Corridors++
		}

		layout.Rooms = append(layout.Rooms, newRoom)
		if onRoom != nil {
			onRoom(newRoom, len(layout.Rooms)-1)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_generator",
		"attempts":  p.MaxRooms,
		"rooms":     len(layout.Rooms),
		"start":     layout.Start,
	}).Info("Dungeon generated.")

	return layout
}

// --- Вспомогательные функции ---

// createRoom вырезает внутренность комнаты, не трогая её стены
func createRoom(m *domain.GameMap, room Rect) {
	for y := room.Y1 + 1; y < room.Y2; y++ {
		for x := room.X1 + 1; x < room.X2; x++ {
			m.Carve(x, y)
		}
	}
}

func createHCorridor(m *domain.GameMap, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		m.Carve(x, y)
	}
}

func createVCorridor(m *domain.GameMap, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		m.Carve(x, y)
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
