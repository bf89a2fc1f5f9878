package engine

import (
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/systems"
	"umbrella-rogue/pkg/api"
)

// BuildState создает "снимок" мира для клиента: видимые и запомненные клетки,
// видимые сущности в порядке отрисовки, панель игрока и журнал.
func (s *Session) BuildState() *api.GameState {
	world := s.World
	player := world.Player()

	// 1. Формирование карты (Map DTO). Неизвестные клетки не отправляются.
	mapDTO := make([]api.TileView, 0, s.Vis.Count())
	for y := 0; y < world.Map.Height; y++ {
		for x := 0; x < world.Map.Width; x++ {
			var state string
			switch s.Vis.TileState(world.Map, x, y) {
			case systems.TileVisible:
				state = api.TileVisible
			case systems.TileRemembered:
				state = api.TileRemembered
			default:
				continue
			}
			mapDTO = append(mapDTO, api.TileView{
				X: x, Y: y,
				IsWall: world.Map.Tiles[y][x].Blocked,
				State:  state,
			})
		}
	}

	// 2. Сущности: себя видим всегда, остальных - если они в поле зрения
	var viewEntities []api.EntityView
	for _, e := range world.Entities.All() {
		if world.IsPlayer(e) || s.Vis.IsVisible(e.Pos) {
			viewEntities = append(viewEntities, toEntityView(e))
		}
	}

	// 3. Журнал
	entries := world.Log.Entries()
	logs := make([]api.LogEntry, len(entries))
	for i, entry := range entries {
		logs[i] = api.LogEntry{Text: entry.Text, Type: string(entry.Type)}
	}

	state := &api.GameState{
		State:      s.State(),
		Grid:       &api.GridMeta{Width: world.Map.Width, Height: world.Map.Height},
		Map:        mapDTO,
		Entities:   viewEntities,
		Player:     toPlayerView(player),
		Logs:       logs,
		Fullscreen: s.fullscreen,
	}

	if s.machine.Is(StateShowInventory) || s.machine.Is(StateDropInventory) {
		state.Menu = make([]string, 0, len(player.Inventory.Items))
		for _, it := range player.Inventory.Items {
			state.Menu = append(state.Menu, it.Name)
		}
	}

	if t := s.targeting; t != nil && t.IsAwaiting() {
		mode := "TILE"
		if t.Request.Mode == systems.TargetMonster {
			mode = "MONSTER"
		}
		state.Targeting = &api.TargetingView{
			Mode:     mode,
			CursorX:  t.Cursor.X,
			CursorY:  t.Cursor.Y,
			MaxRange: t.Request.MaxRange,
		}
	}

	return state
}

// toEntityView конвертирует доменную сущность в DTO для отправки клиенту.
func toEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:     uint32(e.ID),
		Name:   e.Name,
		Symbol: e.Glyph,
		Color:  e.Color,
		X:      e.Pos.X,
		Y:      e.Pos.Y,
	}
	if e.IsAlive() {
		view.Stats = &api.StatsView{HP: e.Fighter.HP, MaxHP: e.Fighter.MaxHP}
	}
	return view
}

func toPlayerView(p *domain.Entity) api.PlayerView {
	view := api.PlayerView{
		ID:     uint32(p.ID),
		X:      p.Pos.X,
		Y:      p.Pos.Y,
		IsDead: !p.IsAlive(),
	}
	if p.Fighter != nil {
		// В сообщениях и на панели HP не уходит в минус
		view.HP = max(p.Fighter.HP, 0)
		view.MaxHP = p.Fighter.MaxHP
		view.Defense = p.Fighter.Defense
		view.Power = p.Fighter.Power
	}
	if p.Inventory != nil {
		view.MaxSlots = p.Inventory.Capacity
		view.Inventory = make([]api.ItemView, 0, len(p.Inventory.Items))
		for _, it := range p.Inventory.Items {
			item := api.ItemView{ID: uint32(it.ID), Name: it.Name, Symbol: it.Glyph, Color: it.Color}
			if it.Item != nil {
				item.Effect = string(it.Item.Effect)
			}
			view.Inventory = append(view.Inventory, item)
		}
	}
	return view
}
