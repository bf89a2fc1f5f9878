package actions

import (
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine/handlers"
	"umbrella-rogue/internal/systems"
)

// HandleDrop выкладывает предмет из слота in.Index. Неверный слот - domain.ErrInvalidMenuSelection.
func HandleDrop(ctx handlers.Context, in domain.Intent) (handlers.Result, error) {
	if err := systems.Drop(ctx.World, ctx.Actor, in.Index); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.TurnResult(), nil
}
