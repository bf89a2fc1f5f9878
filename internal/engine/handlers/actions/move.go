package actions

import (
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine/handlers"
)

// HandleMove - шаг или атака по направлению. Ход тратится даже при упоре в стену.
func HandleMove(ctx handlers.Context, in domain.Intent) (handlers.Result, error) {
	if in.DX == 0 && in.DY == 0 {
		return HandleWait(ctx, in)
	}

	if ctx.Combat.MoveOrAttack(ctx.Actor, in.DX, in.DY) {
		ctx.Vis.MarkDirty()
	}
	return handlers.TurnResult(), nil
}
