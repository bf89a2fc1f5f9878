package storage

import (
	"umbrella-rogue/internal/domain"
)

// Snapshot - логическое содержимое слота сохранения.
// Инвентарь и точка появления лежат внутри сущности игрока.
type Snapshot struct {
	Map         *domain.GameMap   `json:"map"`
	Entities    []*domain.Entity  `json:"entities"`
	PlayerIndex int               `json:"playerIndex"`
	Messages    []domain.LogEntry `json:"messages"`
	LogCapacity int               `json:"logCapacity"`
	State       string            `json:"state"`
	SavedAt     int64             `json:"-"`
}

// Player возвращает сущность игрока по сохранённому индексу
func (s *Snapshot) Player() *domain.Entity {
	if s.PlayerIndex < 0 || s.PlayerIndex >= len(s.Entities) {
		return nil
	}
	return s.Entities[s.PlayerIndex]
}
