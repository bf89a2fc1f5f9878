package domain

// Registry владеет всеми сущностями уровня.
// Порядок среза - порядок отрисовки: индекс 0 рисуется первым (то есть "под" остальными).
type Registry struct {
	order  []*Entity
	nextID EntityID
}

func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Add выдаёт сущности ID (если его ещё нет) и ставит её в конец порядка отрисовки.
func (r *Registry) Add(e *Entity) *Entity {
	r.assignID(e)
	r.order = append(r.order, e)
	return e
}

// InsertAtBack ставит сущность в начало порядка - она будет нарисована под всеми.
func (r *Registry) InsertAtBack(e *Entity) *Entity {
	r.assignID(e)
	r.order = append([]*Entity{e}, r.order...)
	return e
}

// Remove убирает сущность из реестра. Её ID остаётся занятым.
func (r *Registry) Remove(id EntityID) *Entity {
	i := r.IndexOf(id)
	if i < 0 {
		return nil
	}
	e := r.order[i]
	r.order = append(r.order[:i], r.order[i+1:]...)
	return e
}

// SendToBack переносит сущность в начало порядка отрисовки
func (r *Registry) SendToBack(id EntityID) {
	if e := r.Remove(id); e != nil {
		r.order = append([]*Entity{e}, r.order...)
	}
}

func (r *Registry) Get(id EntityID) *Entity {
	if i := r.IndexOf(id); i >= 0 {
		return r.order[i]
	}
	return nil
}

// IndexOf возвращает позицию в порядке отрисовки или -1
func (r *Registry) IndexOf(id EntityID) int {
	for i, e := range r.order {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// At возвращает сущность по индексу порядка или nil
func (r *Registry) At(index int) *Entity {
	if index < 0 || index >= len(r.order) {
		return nil
	}
	return r.order[index]
}

func (r *Registry) Len() int {
	return len(r.order)
}

// All возвращает копию порядка отрисовки: её можно обходить, пока реестр меняется.
func (r *Registry) All() []*Entity {
	out := make([]*Entity, len(r.order))
	copy(out, r.order)
	return out
}

// EntitiesAt - все сущности в клетке, в порядке отрисовки
func (r *Registry) EntitiesAt(pos Position) []*Entity {
	var out []*Entity
	for _, e := range r.order {
		if e.Pos == pos {
			out = append(out, e)
		}
	}
	return out
}

// BlockingAt возвращает сущность, перекрывающую проход в клетке
func (r *Registry) BlockingAt(pos Position) *Entity {
	for _, e := range r.order {
		if e.BlocksMovement && e.Pos == pos {
			return e
		}
	}
	return nil
}

// FighterAt возвращает сущность с компонентом Fighter в клетке
func (r *Registry) FighterAt(pos Position) *Entity {
	for _, e := range r.order {
		if e.Fighter != nil && e.Pos == pos {
			return e
		}
	}
	return nil
}

// ItemAt возвращает верхний (последний нарисованный) предмет в клетке
func (r *Registry) ItemAt(pos Position) *Entity {
	for i := len(r.order) - 1; i >= 0; i-- {
		if e := r.order[i]; e.Item != nil && e.Pos == pos {
			return e
		}
	}
	return nil
}

// Reserve помечает ID занятым. Нужен для предметов, которые живут в инвентаре, а не в реестре.
func (r *Registry) Reserve(id EntityID) {
	if id >= r.nextID {
		r.nextID = id + 1
	}
}

// Adopt выдаёт ID сущности, которая живёт вне порядка отрисовки (предмет в инвентаре),
// и восстанавливает ссылки её компонентов.
func (r *Registry) Adopt(e *Entity) *Entity {
	r.assignID(e)
	return e
}

// NextID выдаёт свежий ID, не добавляя сущность в реестр
func (r *Registry) NextID() EntityID {
	id := r.nextID
	r.nextID++
	return id
}

func (r *Registry) assignID(e *Entity) {
	if e.ID == NoEntity {
		e.ID = r.NextID()
	} else {
		r.Reserve(e.ID)
	}
	e.relink()
}
