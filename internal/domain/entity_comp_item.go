package domain

import "fmt"

// ItemEffect - идентификатор эффекта предмета
type ItemEffect string

const (
	EffectHeal      ItemEffect = "heal"
	EffectLightning ItemEffect = "lightning"
	EffectFireball  ItemEffect = "fireball"
	EffectConfuse   ItemEffect = "confuse"
	EffectTeleport  ItemEffect = "teleport"
)

// ParseItemEffect проверяет имя эффекта из таблиц шаблонов
func ParseItemEffect(s string) (ItemEffect, error) {
	switch e := ItemEffect(s); e {
	case EffectHeal, EffectLightning, EffectFireball, EffectConfuse, EffectTeleport:
		return e, nil
	}
	return "", fmt.Errorf("unknown item effect %q", s)
}

// ItemComponent - сущность можно подобрать и использовать
type ItemComponent struct {
	Owner  EntityID   `json:"-"`
	Effect ItemEffect `json:"effect"`
}

// InventoryComponent - упорядоченный список предметов игрока
type InventoryComponent struct {
	Capacity int       `json:"capacity"`
	Items    []*Entity `json:"items"`
}

func NewInventory(capacity int) *InventoryComponent {
	return &InventoryComponent{Capacity: capacity, Items: make([]*Entity, 0, capacity)}
}

// IsFull - свободных слотов нет
func (inv *InventoryComponent) IsFull() bool {
	return len(inv.Items) >= inv.Capacity
}

// AddItem кладёт предмет в конец списка
func (inv *InventoryComponent) AddItem(item *Entity) error {
	if item == nil || item.Item == nil {
		return fmt.Errorf("entity is not an item")
	}
	if inv.IsFull() {
		return ErrInventoryFull
	}
	inv.Items = append(inv.Items, item)
	return nil
}

// Get возвращает предмет по индексу меню
func (inv *InventoryComponent) Get(index int) (*Entity, error) {
	if index < 0 || index >= len(inv.Items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidMenuSelection, index, len(inv.Items))
	}
	return inv.Items[index], nil
}

// RemoveItem убирает предмет по ID, сохраняя порядок остальных
func (inv *InventoryComponent) RemoveItem(id EntityID) *Entity {
	for i, it := range inv.Items {
		if it.ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return it
		}
	}
	return nil
}
