package domain

import (
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GameWorld - всё изменяемое состояние уровня, которое передаётся через системы явно.
type GameWorld struct {
	Map      *GameMap
	Entities *Registry
	Log      *MessageLog
	PlayerID EntityID
}

// Player возвращает сущность игрока
func (w *GameWorld) Player() *Entity {
	return w.Entities.Get(w.PlayerID)
}

// IsPlayer проверяет, что сущность - игрок
func (w *GameWorld) IsPlayer(e *Entity) bool {
	return e != nil && e.ID == w.PlayerID
}

// IsBlocked - единая точка проверки проходимости.
// Клетка занята, если она вне карты, это стена или в ней стоит блокирующая сущность.
func (w *GameWorld) IsBlocked(x, y int) bool {
	if w.Map.IsWall(x, y) {
		return true
	}
	return w.Entities.BlockingAt(Position{X: x, Y: y}) != nil
}

// AddMessage пишет строку в журнал игрока и дублирует её в серверный лог
func (w *GameWorld) AddMessage(text string, typ MessageType) {
	w.Log.Add(text, typ)
	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  typ,
	}).Info(text)
}
