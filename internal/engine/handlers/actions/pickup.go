package actions

import (
	"errors"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine/handlers"
	"umbrella-rogue/internal/systems"
)

// HandlePickup подбирает предмет из-под ног. Ход тратится только при успехе.
// Полный инвентарь и пустая клетка уже отражены в журнале и ошибкой не считаются.
func HandlePickup(ctx handlers.Context, _ domain.Intent) (handlers.Result, error) {
	err := systems.PickUp(ctx.World, ctx.Actor)
	switch {
	case err == nil:
		return handlers.TurnResult(), nil
	case errors.Is(err, domain.ErrInventoryFull), errors.Is(err, systems.ErrNothingHere):
		return handlers.EmptyResult(), nil
	default:
		return handlers.EmptyResult(), err
	}
}
