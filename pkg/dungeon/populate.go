package dungeon

import (
	"math/rand"

	"umbrella-rogue/internal/domain"
)

// PlaceMonsters расставляет в комнате от 0 до maxCount монстров.
// Если выпавшая клетка занята (стена, блокирующая сущность или уже что-то лежит), попытка пропускается.
func PlaceMonsters(w *domain.GameWorld, room Rect, maxCount int, tables *Tables, rng *rand.Rand) int {
	placed := 0
	count := randRange(rng, 0, maxCount)
	for i := 0; i < count; i++ {
		pos := randomInteriorCell(room, rng)
		if !isFree(w, pos) {
			continue
		}
		w.Entities.Add(tables.PickMonster(rng).Spawn(pos))
		placed++
	}
	return placed
}

// PlaceItems раскладывает от 0 до maxCount предметов. Предметы ставятся в начало порядка отрисовки.
func PlaceItems(w *domain.GameWorld, room Rect, maxCount int, tables *Tables, rng *rand.Rand) int {
	placed := 0
	count := randRange(rng, 0, maxCount)
	for i := 0; i < count; i++ {
		pos := randomInteriorCell(room, rng)
		if !isFree(w, pos) {
			continue
		}
		w.Entities.InsertAtBack(tables.PickItem(rng).Spawn(pos))
		placed++
	}
	return placed
}

func randomInteriorCell(room Rect, rng *rand.Rand) domain.Position {
	return domain.Position{
		X: randRange(rng, room.X1+1, room.X2-1),
		Y: randRange(rng, room.Y1+1, room.Y2-1),
	}
}

func isFree(w *domain.GameWorld, pos domain.Position) bool {
	return !w.IsBlocked(pos.X, pos.Y) && len(w.Entities.EntitiesAt(pos)) == 0
}
