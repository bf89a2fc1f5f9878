package systems

import (
	"errors"
	"fmt"

	"umbrella-rogue/internal/domain"
)

// ErrNothingHere - в клетке актёра нет предмета
var ErrNothingHere = errors.New("nothing to pick up")

// --- PICKUP ---

// PickUp поднимает верхний предмет из клетки актёра.
// При полном инвентаре предмет остаётся на карте.
func PickUp(w *domain.GameWorld, actor *domain.Entity) error {
	if actor.Inventory == nil {
		return fmt.Errorf("%s не может иметь инвентарь", actor.Name)
	}

	item := w.Entities.ItemAt(actor.Pos)
	if item == nil {
		w.AddMessage("Здесь нечего подобрать.", domain.MsgWarning)
		return ErrNothingHere
	}

	if err := actor.Inventory.AddItem(item); err != nil {
		if errors.Is(err, domain.ErrInventoryFull) {
			w.AddMessage(fmt.Sprintf("Инвентарь полон, %s не помещается.", item.Name), domain.MsgWarning)
		}
		return err
	}

	w.Entities.Remove(item.ID)
	w.AddMessage(fmt.Sprintf("Вы подбираете %s!", item.Name), domain.MsgInfo)
	return nil
}

// --- DROP ---

// Drop выкладывает предмет из инвентаря под ноги актёру, под остальные сущности
func Drop(w *domain.GameWorld, actor *domain.Entity, index int) error {
	if actor.Inventory == nil {
		return fmt.Errorf("%s не может иметь инвентарь", actor.Name)
	}

	item, err := actor.Inventory.Get(index)
	if err != nil {
		return err
	}

	actor.Inventory.RemoveItem(item.ID)
	item.Pos = actor.Pos
	w.Entities.InsertAtBack(item)
	w.AddMessage(fmt.Sprintf("Вы выбрасываете %s.", item.Name), domain.MsgInfo)
	return nil
}
