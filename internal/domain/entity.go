package domain

// Entity - любой объект на карте: игрок, монстр, предмет, останки.
// Поведение определяется набором компонентов (nil = компонента нет).
type Entity struct {
	ID             EntityID `json:"id"`
	Name           string   `json:"name"`
	Glyph          string   `json:"glyph"`
	Color          string   `json:"color"`
	Pos            Position `json:"pos"`
	BlocksMovement bool     `json:"blocksMovement"`

	// --- КОМПОНЕНТЫ ---
	Fighter *FighterComponent `json:"fighter,omitempty"`
	AI      *AIComponent      `json:"ai,omitempty"`
	Item    *ItemComponent    `json:"item,omitempty"`

	// Только у игрока
	Inventory *InventoryComponent `json:"inventory,omitempty"`
	Spawn     *Position           `json:"spawn,omitempty"`
}

// AttachFighter вешает боевой компонент и делает сущность его владельцем
func (e *Entity) AttachFighter(f *FighterComponent) *Entity {
	e.Fighter = f
	e.relink()
	return e
}

// AttachAI вешает поведение
func (e *Entity) AttachAI(ai *AIComponent) *Entity {
	e.AI = ai
	e.relink()
	return e
}

// AttachItem вешает поведение предмета. У предметов нет ни Fighter, ни AI.
func (e *Entity) AttachItem(item *ItemComponent) *Entity {
	e.Item = item
	e.Fighter = nil
	e.AI = nil
	e.relink()
	return e
}

// IsAlive - у сущности есть Fighter с положительным HP
func (e *Entity) IsAlive() bool {
	return e.Fighter != nil && e.Fighter.HP > 0
}

// relink восстанавливает обратные ссылки компонентов на текущий ID.
// Нужен после выдачи ID реестром и после загрузки сохранения.
func (e *Entity) relink() {
	if e.Fighter != nil {
		e.Fighter.Owner = e.ID
	}
	for ai := e.AI; ai != nil; ai = ai.Previous {
		ai.Owner = e.ID
	}
	if e.Item != nil {
		e.Item.Owner = e.ID
	}
}
