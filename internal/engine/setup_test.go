package engine

import (
	"os"
	"testing"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/api"
	"umbrella-rogue/pkg/dungeon"
	"umbrella-rogue/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// frameRecorder запоминает все кадры, которые сессия отдала рендеру
type frameRecorder struct {
	frames []api.ServerResponse
}

func (r *frameRecorder) Render(resp api.ServerResponse) {
	r.frames = append(r.frames, resp)
}

func (r *frameRecorder) last(t *testing.T) api.ServerResponse {
	t.Helper()
	if len(r.frames) == 0 {
		t.Fatal("nothing was rendered")
	}
	return r.frames[len(r.frames)-1]
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.FOV.Radius = 8
	return cfg
}

// newTestSession - открытая комната 20x10 без стен внутри, игрок в (2,2)
func newTestSession(t *testing.T) (*Session, *frameRecorder) {
	t.Helper()

	m := domain.NewGameMap(20, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 19; x++ {
			m.Carve(x, y)
		}
	}
	world := &domain.GameWorld{Map: m, Entities: domain.NewRegistry(), Log: domain.NewMessageLog(20)}

	player := dungeon.NewPlayer(PlayerName, 26)
	player.Pos = domain.Position{X: 2, Y: 2}
	spawn := player.Pos
	player.Spawn = &spawn
	world.Entities.Add(player)
	world.PlayerID = player.ID

	rec := &frameRecorder{}
	return newSession(testConfig(), world, NewRng(1), rec, StatePlaying), rec
}

func addMonster(s *Session, name string, x, y, hp, defense, power int) *domain.Entity {
	e := &domain.Entity{Name: name, Glyph: "o", Pos: domain.Position{X: x, Y: y}, BlocksMovement: true}
	e.AttachFighter(domain.NewFighter(hp, defense, power, domain.DeathMonster)).AttachAI(domain.NewBasicAI())
	return s.World.Entities.Add(e)
}

func giveItem(s *Session, name string, effect domain.ItemEffect) *domain.Entity {
	item := (&domain.Entity{Name: name, Glyph: "#"}).AttachItem(&domain.ItemComponent{Effect: effect})
	s.World.Entities.Adopt(item)
	s.Player().Inventory.Items = append(s.Player().Inventory.Items, item)
	return item
}

func hasMessage(w *domain.GameWorld, text string) bool {
	for _, e := range w.Log.Entries() {
		if e.Text == text {
			return true
		}
	}
	return false
}
