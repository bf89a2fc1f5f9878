package handlers

import (
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/systems"
)

// Context передает хендлеру состояние мира и системы, через которые его можно менять.
type Context struct {
	World  *domain.GameWorld
	Actor  *domain.Entity // Тот, кто выполняет намерение (игрок)
	Combat *systems.CombatResolver
	Vis    *systems.Visibility
	Spells *systems.SpellBook
}

// Result - итог обработки намерения.
// Хендлер не трогает состояние сессии: переходы делает сессия по Result.
type Result struct {
	// TookTurn - действие потратило ход, после него ходят монстры
	TookTurn bool

	// Target - предмету нужна цель; сессия переходит в выбор цели
	Target *systems.TargetRequest
}

// HandlerFunc - контракт для любого намерения в режиме игры (MOVE, WAIT, PICKUP).
type HandlerFunc func(ctx Context, in domain.Intent) (Result, error)

// EmptyResult - действие ничего не потратило
func EmptyResult() Result {
	return Result{}
}

// TurnResult - действие потратило ход
func TurnResult() Result {
	return Result{TookTurn: true}
}
