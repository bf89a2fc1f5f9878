package domain

// Tile - одна клетка карты.
// После генерации меняются только флаги, количество и расположение клеток фиксированы.
type Tile struct {
	Blocked    bool `json:"blocked"`
	BlockSight bool `json:"blockSight"`
	Explored   bool `json:"explored"`
}

// NewTile создаёт клетку, которая закрывает обзор тогда же, когда и проход.
func NewTile(blocked bool) Tile {
	return Tile{Blocked: blocked, BlockSight: blocked}
}

// NewTileWithSight создаёт клетку с явно заданной прозрачностью (стекло, туман).
func NewTileWithSight(blocked, blockSight bool) Tile {
	return Tile{Blocked: blocked, BlockSight: blockSight}
}

// GameMap - сетка клеток. Доступ строго Tiles[y][x].
type GameMap struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"`
}

// NewGameMap создаёт карту, полностью залитую камнем.
func NewGameMap(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		row := make([]Tile, width)
		for x := range row {
			row[x] = NewTile(true)
		}
		tiles[y] = row
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds проверяет, лежит ли клетка внутри карты
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At возвращает клетку или nil за пределами карты
func (m *GameMap) At(x, y int) *Tile {
	if !m.InBounds(x, y) {
		return nil
	}
	return &m.Tiles[y][x]
}

// Carve делает клетку проходимой и прозрачной
func (m *GameMap) Carve(x, y int) {
	if t := m.At(x, y); t != nil {
		t.Blocked = false
		t.BlockSight = false
	}
}

// IsWall - клетка непроходима (или вне карты)
func (m *GameMap) IsWall(x, y int) bool {
	t := m.At(x, y)
	return t == nil || t.Blocked
}

// BlocksSight - клетка закрывает обзор (вне карты тоже)
func (m *GameMap) BlocksSight(x, y int) bool {
	t := m.At(x, y)
	return t == nil || t.Blocked || t.BlockSight
}
