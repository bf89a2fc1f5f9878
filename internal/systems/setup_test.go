package systems

import (
	"math/rand"
	"os"
	"testing"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// createTestWorld - открытая карта без стен, стены тесты ставят сами
func createTestWorld(w, h int) *domain.GameWorld {
	m := domain.NewGameMap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Carve(x, y)
		}
	}
	return &domain.GameWorld{Map: m, Entities: domain.NewRegistry(), Log: domain.NewMessageLog(10)}
}

func placeWall(w *domain.GameWorld, x, y int) {
	w.Map.Tiles[y][x] = domain.NewTile(true)
}

func addPlayer(w *domain.GameWorld, pos domain.Position) *domain.Entity {
	spawn := pos
	p := &domain.Entity{
		Name:           "Игрок",
		Glyph:          "@",
		Pos:            pos,
		BlocksMovement: true,
		Inventory:      domain.NewInventory(26),
		Spawn:          &spawn,
	}
	p.AttachFighter(domain.NewFighter(30, 2, 5, domain.DeathPlayer))
	w.Entities.Add(p)
	w.PlayerID = p.ID
	return p
}

func addMonster(w *domain.GameWorld, name string, pos domain.Position, hp, defense, power int) *domain.Entity {
	e := &domain.Entity{Name: name, Glyph: "o", Pos: pos, BlocksMovement: true}
	e.AttachFighter(domain.NewFighter(hp, defense, power, domain.DeathMonster)).AttachAI(domain.NewBasicAI())
	return w.Entities.Add(e)
}

func testFOVConfig() config.FOVConfig {
	return config.FOVConfig{Algorithm: string(FOVBasic), LightWalls: true, Radius: 8}
}

func testRng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func lastMessage(t *testing.T, w *domain.GameWorld) string {
	t.Helper()
	entry, ok := w.Log.Last()
	if !ok {
		t.Fatal("message log is empty")
	}
	return entry.Text
}
