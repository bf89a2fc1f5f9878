package actions

import (
	"fmt"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine/handlers"
	"umbrella-rogue/internal/systems"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HandleUse применяет предмет из слота in.Index.
// Если эффекту нужна цель, ничего не происходит: в Result.Target возвращается запрос цели,
// а применение завершает FinishUse, когда сессия выбора цели разрешится.
func HandleUse(ctx handlers.Context, in domain.Intent) (handlers.Result, error) {
	item, err := ctx.Actor.Inventory.Get(in.Index)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	if item.Item == nil {
		ctx.World.AddMessage(fmt.Sprintf("%s нельзя использовать.", item.Name), domain.MsgWarning)
		return handlers.EmptyResult(), nil
	}

	if req, ok := ctx.Spells.Targeting(item.Item.Effect); ok {
		ctx.World.AddMessage("Выберите цель и подтвердите, или отмените выбор.", domain.MsgInfo)
		return handlers.Result{Target: &req}, nil
	}

	return FinishUse(ctx, in.Index, nil)
}

// FinishUse применяет эффект предмета из слота index с уже выбранной целью.
// Предмет расходуется и ход тратится, только если эффект сработал.
func FinishUse(ctx handlers.Context, index int, target *systems.TargetingSession) (handlers.Result, error) {
	actor := ctx.Actor
	item, err := actor.Inventory.Get(index)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"component": "use_handler",
		"actor_id":  actor.ID,
		"item_id":   item.ID,
		"item_name": item.Name,
	})

	outcome := ctx.Spells.Cast(item.Item.Effect, actor, target)
	if outcome == systems.OutcomeCancelled {
		log.Debug("Item kept: effect cancelled.")
		return handlers.EmptyResult(), nil
	}

	actor.Inventory.RemoveItem(item.ID)
	log.Info("Item used successfully")
	return handlers.TurnResult(), nil
}
