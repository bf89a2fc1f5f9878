package actions

import (
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine/handlers"
)

// HandleWait - пропуск хода
func HandleWait(_ handlers.Context, _ domain.Intent) (handlers.Result, error) {
	return handlers.TurnResult(), nil
}
