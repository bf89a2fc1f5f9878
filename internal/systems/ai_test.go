package systems

import (
	"testing"

	"umbrella-rogue/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func newScheduler(w *domain.GameWorld, player *domain.Entity) (*AIScheduler, *Visibility) {
	vis := NewVisibility(testFOVConfig())
	vis.Recompute(w.Map, player.Pos)
	return NewAIScheduler(w, NewCombatResolver(w, nil), vis, testRng()), vis
}

func TestAIScheduler_Basic(t *testing.T) {
	t.Run("Out of sight monster waits", func(t *testing.T) {
		w := createTestWorld(30, 5)
		player := addPlayer(w, domain.Position{X: 1, Y: 2})
		orc := addMonster(w, "орк", domain.Position{X: 25, Y: 2}, 10, 0, 3)
		s, _ := newScheduler(w, player)

		s.RunTurn()

		if orc.Pos != (domain.Position{X: 25, Y: 2}) {
			t.Errorf("unseen monster moved to %v", orc.Pos)
		}
	})

	t.Run("Visible monster steps closer", func(t *testing.T) {
		w := createTestWorld(20, 20)
		player := addPlayer(w, domain.Position{X: 5, Y: 5})
		orc := addMonster(w, "орк", domain.Position{X: 9, Y: 9}, 10, 0, 3)
		s, _ := newScheduler(w, player)

		s.RunTurn()

		if orc.Pos != (domain.Position{X: 8, Y: 8}) {
			t.Errorf("orc at %v, want (8,8)", orc.Pos)
		}
		if player.Fighter.HP != 30 {
			t.Error("monster at distance must not attack")
		}
	})

	t.Run("Adjacent monster attacks", func(t *testing.T) {
		w := createTestWorld(10, 10)
		player := addPlayer(w, domain.Position{X: 5, Y: 5})
		addMonster(w, "тролль", domain.Position{X: 6, Y: 6}, 16, 1, 4)
		s, _ := newScheduler(w, player)

		s.RunTurn()

		// power 4 - defense 2
		if player.Fighter.HP != 28 {
			t.Errorf("player hp = %d, want 28", player.Fighter.HP)
		}
	})

	t.Run("Dead player is left alone", func(t *testing.T) {
		w := createTestWorld(10, 10)
		player := addPlayer(w, domain.Position{X: 5, Y: 5})
		addMonster(w, "тролль", domain.Position{X: 6, Y: 5}, 16, 1, 4)
		s, _ := newScheduler(w, player)
		player.Fighter.HP = 0
		before := w.Log.Len()

		s.RunTurn()

		if player.Fighter.HP != 0 || w.Log.Len() != before {
			t.Error("monster must not attack a dead player")
		}
	})

	t.Run("Remains do not act", func(t *testing.T) {
		w := createTestWorld(10, 10)
		player := addPlayer(w, domain.Position{X: 5, Y: 5})
		orc := addMonster(w, "орк", domain.Position{X: 6, Y: 5}, 1, 0, 3)
		s, _ := newScheduler(w, player)
		s.combat.ApplyDamage(orc, 5)

		s.RunTurn()

		if player.Fighter.HP != 30 {
			t.Error("dead monster attacked")
		}
	})
}

func TestAIScheduler_ConfusionExpiresExactly(t *testing.T) {
	w := createTestWorld(20, 20)
	player := addPlayer(w, domain.Position{X: 1, Y: 1})
	orc := addMonster(w, "орк", domain.Position{X: 15, Y: 15}, 10, 0, 3)
	s, _ := newScheduler(w, player)

	original := *orc.AI
	orc.AI = orc.AI.Confuse(10)

	for pass := 1; pass <= 9; pass++ {
		s.RunTurn()
		if orc.AI.Kind != domain.AIConfused {
			t.Fatalf("confusion ended early after %d passes", pass)
		}
		if orc.AI.RemainingTurns != 10-pass {
			t.Fatalf("pass %d: remaining = %d", pass, orc.AI.RemainingTurns)
		}
	}

	s.RunTurn()
	if diff := cmp.Diff(original, *orc.AI); diff != "" {
		t.Errorf("AI not restored after 10 passes (-want +got):\n%s", diff)
	}

	entry, _ := w.Log.Last()
	if entry.Text != "орк больше не в замешательстве!" {
		t.Errorf("unexpected message %q", entry.Text)
	}

	// Переход одноразовый: дальше моб ведёт себя как обычно и сообщение не повторяется
	before := w.Log.Len()
	s.RunTurn()
	if w.Log.Len() != before {
		t.Error("recovery message repeated")
	}
}

func TestAIScheduler_ConfusedStaysInBounds(t *testing.T) {
	w := createTestWorld(3, 3)
	player := addPlayer(w, domain.Position{X: 0, Y: 0})
	orc := addMonster(w, "орк", domain.Position{X: 2, Y: 2}, 10, 0, 3)
	s, _ := newScheduler(w, player)
	orc.AI = orc.AI.Confuse(50)

	for i := 0; i < 50; i++ {
		s.RunTurn()
		if !w.Map.InBounds(orc.Pos.X, orc.Pos.Y) || orc.Pos == player.Pos {
			t.Fatalf("confused monster escaped to %v", orc.Pos)
		}
	}
}
