package dungeon

import (
	"math/rand"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LevelBuilder предоставляет fluent API для создания уровня
type LevelBuilder struct {
	params      Params
	rng         *rand.Rand
	tables      *Tables
	maxMonsters int
	maxItems    int
	logCapacity int
	player      *domain.Entity
}

// NewLevel создаёт builder для уровня
func NewLevel(params Params, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		params:      params,
		rng:         rng,
		logCapacity: 1,
	}
}

// WithPopulation включает заселение комнат монстрами и предметами
func (b *LevelBuilder) WithPopulation(tables *Tables, maxMonsters, maxItems int) *LevelBuilder {
	b.tables = tables
	b.maxMonsters = maxMonsters
	b.maxItems = maxItems
	return b
}

// WithPlayer задаёт игрока, который появится в центре первой комнаты
func (b *LevelBuilder) WithPlayer(player *domain.Entity) *LevelBuilder {
	b.player = player
	return b
}

// WithMessageLog задаёт вместимость журнала сообщений
func (b *LevelBuilder) WithMessageLog(capacity int) *LevelBuilder {
	b.logCapacity = capacity
	return b
}

// Build генерирует карту и заселяет её комната за комнатой.
// Игрок ставится до заселения первой комнаты, чтобы монстры не появились на его клетке.
func (b *LevelBuilder) Build() (*domain.GameWorld, Layout) {
	world := &domain.GameWorld{
		Map:      domain.NewGameMap(b.params.Width, b.params.Height),
		Entities: domain.NewRegistry(),
		Log:      domain.NewMessageLog(b.logCapacity),
	}

	monsters, items := 0, 0
	layout := Generate(world.Map, b.params, b.rng, func(room Rect, index int) {
		if index == 0 && b.player != nil {
			spawn := room.Center()
			b.player.Pos = spawn
			b.player.Spawn = &spawn
			world.Entities.Add(b.player)
			world.PlayerID = b.player.ID
		}
		if b.tables == nil {
			return
		}
		monsters += PlaceMonsters(world, room, b.maxMonsters, b.tables, b.rng)
		items += PlaceItems(world, room, b.maxItems, b.tables, b.rng)
	})

	logger.Log.WithFields(logrus.Fields{
		"component": "level_builder",
		"rooms":     len(layout.Rooms),
		"monsters":  monsters,
		"items":     items,
	}).Info("Level populated.")

	return world, layout
}
