package engine

import (
	"fmt"
	"math/rand"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/infrastructure/storage"
)

// Snapshot снимает сохраняемое состояние. Меню и выбор цели не сохраняются:
// живая сессия записывается как playing.
func (s *Session) Snapshot() *storage.Snapshot {
	state := StatePlaying
	if s.machine.Is(StateDead) {
		state = StateDead
	}

	return &storage.Snapshot{
		Map:         s.World.Map,
		Entities:    s.World.Entities.All(),
		PlayerIndex: s.World.Entities.IndexOf(s.World.PlayerID),
		Messages:    s.World.Log.Entries(),
		LogCapacity: s.World.Log.Capacity(),
		State:       state,
	}
}

// Restore собирает сессию из снимка. Сначала восстанавливаются все сущности,
// и только потом по сохранённому индексу находится игрок.
func Restore(cfg *config.Config, snap *storage.Snapshot, rng *rand.Rand, renderer Renderer) (*Session, error) {
	if snap.State != StatePlaying && snap.State != StateDead {
		return nil, fmt.Errorf("%w: unknown state %q", domain.ErrSaveCorrupt, snap.State)
	}

	world := &domain.GameWorld{
		Map:      snap.Map,
		Entities: domain.NewRegistry(),
		Log:      domain.NewMessageLog(snap.LogCapacity),
	}

	for _, e := range snap.Entities {
		if !world.Map.InBounds(e.Pos.X, e.Pos.Y) {
			return nil, fmt.Errorf("%w: %s %s outside the map at %s", domain.ErrSaveCorrupt, e.Name, e.ID, e.Pos)
		}
		world.Entities.Add(e)
	}

	player := world.Entities.At(snap.PlayerIndex)
	if player == nil || player.Fighter == nil || player.Inventory == nil {
		return nil, fmt.Errorf("%w: player index %d", domain.ErrSaveCorrupt, snap.PlayerIndex)
	}
	world.PlayerID = player.ID

	// Предметы в инвентаре не участвуют в отрисовке, но их ID заняты
	for _, it := range player.Inventory.Items {
		world.Entities.Adopt(it)
	}

	for _, entry := range snap.Messages {
		world.Log.Add(entry.Text, entry.Type)
	}

	return newSession(cfg, world, rng, renderer, snap.State), nil
}
