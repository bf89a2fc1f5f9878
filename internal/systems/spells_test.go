package systems

import (
	"context"
	"testing"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
)

type spellFixture struct {
	w       *domain.GameWorld
	player  *domain.Entity
	vis     *Visibility
	book    *SpellBook
	renders int
}

func newSpellFixture(t *testing.T) *spellFixture {
	t.Helper()
	f := &spellFixture{w: createTestWorld(20, 20)}
	f.player = addPlayer(f.w, domain.Position{X: 5, Y: 5})
	f.vis = NewVisibility(testFOVConfig())
	f.vis.Recompute(f.w.Map, f.player.Pos)
	f.book = NewSpellBook(config.Default().Spells, f.w, NewCombatResolver(f.w, nil), f.vis, func() { f.renders++ })
	return f
}

func (f *spellFixture) resolve(t *testing.T, effect domain.ItemEffect, at domain.Position) *TargetingSession {
	t.Helper()
	req, ok := f.book.Targeting(effect)
	if !ok {
		t.Fatalf("%s must require a target", effect)
	}
	s := NewTargetingSession(f.player.Pos, req)
	s.Hover(at)
	if err := s.Confirm(context.Background(), f.w, f.vis); err != nil {
		t.Fatalf("Confirm(%v) error = %v", at, err)
	}
	return s
}

func TestHeal(t *testing.T) {
	f := newSpellFixture(t)

	if got := f.book.Cast(domain.EffectHeal, f.player, nil); got != OutcomeCancelled {
		t.Errorf("healing at full hp: got %v, want cancelled", got)
	}
	if f.player.Fighter.HP != 30 {
		t.Errorf("hp changed: %d", f.player.Fighter.HP)
	}

	f.player.Fighter.HP = 28
	if got := f.book.Cast(domain.EffectHeal, f.player, nil); got != OutcomeApplied {
		t.Errorf("got %v, want applied", got)
	}
	if f.player.Fighter.HP != 30 {
		t.Errorf("heal must clamp to max, hp = %d", f.player.Fighter.HP)
	}
}

func TestLightning(t *testing.T) {
	f := newSpellFixture(t)
	troll := addMonster(f.w, "тролль", domain.Position{X: 8, Y: 5}, 30, 5, 4)

	if got := f.book.Cast(domain.EffectLightning, f.player, nil); got != OutcomeCancelled {
		t.Errorf("no target: got %v", got)
	}

	s := f.resolve(t, domain.EffectLightning, troll.Pos)
	if got := f.book.Cast(domain.EffectLightning, f.player, s); got != OutcomeApplied {
		t.Fatalf("got %v, want applied", got)
	}
	// Урон идёт мимо защиты
	if troll.Fighter.HP != 10 {
		t.Errorf("troll hp = %d, want 10", troll.Fighter.HP)
	}
}

func TestFireball_HitsEveryoneInRadius(t *testing.T) {
	f := newSpellFixture(t)
	near := addMonster(f.w, "орк", domain.Position{X: 7, Y: 5}, 20, 0, 3)
	far := addMonster(f.w, "тролль", domain.Position{X: 12, Y: 5}, 20, 0, 3)

	s := f.resolve(t, domain.EffectFireball, domain.Position{X: 6, Y: 5})
	if got := f.book.Cast(domain.EffectFireball, f.player, s); got != OutcomeApplied {
		t.Fatalf("got %v", got)
	}

	dmg := config.Default().Spells.FireballDamage
	if near.Fighter.HP != 20-dmg {
		t.Errorf("near hp = %d", near.Fighter.HP)
	}
	if far.Fighter.HP != 20 {
		t.Errorf("far monster must be untouched, hp = %d", far.Fighter.HP)
	}
	if f.player.Fighter.HP != 30-dmg {
		t.Errorf("caster inside the blast must be hurt, hp = %d", f.player.Fighter.HP)
	}
}

func TestConfuse(t *testing.T) {
	f := newSpellFixture(t)
	orc := addMonster(f.w, "орк", domain.Position{X: 7, Y: 7}, 10, 0, 3)
	before := orc.AI

	s := f.resolve(t, domain.EffectConfuse, orc.Pos)
	if got := f.book.Cast(domain.EffectConfuse, f.player, s); got != OutcomeApplied {
		t.Fatalf("got %v", got)
	}
	if orc.AI.Kind != domain.AIConfused || orc.AI.Previous != before || orc.AI.RemainingTurns != 10 {
		t.Errorf("unexpected AI %+v", orc.AI)
	}
}

func TestTeleport(t *testing.T) {
	t.Run("Returns home", func(t *testing.T) {
		f := newSpellFixture(t)
		f.player.Pos = domain.Position{X: 15, Y: 15}

		if got := f.book.Cast(domain.EffectTeleport, f.player, nil); got != OutcomeApplied {
			t.Fatalf("got %v", got)
		}
		if f.player.Pos != *f.player.Spawn {
			t.Errorf("player at %v, want spawn %v", f.player.Pos, *f.player.Spawn)
		}
		if !f.vis.IsDirty() {
			t.Error("visibility must be marked dirty")
		}
		if f.renders != 1 {
			t.Errorf("forced renders = %d, want 1", f.renders)
		}
	})

	t.Run("Occupied spawn cancels", func(t *testing.T) {
		f := newSpellFixture(t)
		f.player.Pos = domain.Position{X: 15, Y: 15}
		addMonster(f.w, "орк", *f.player.Spawn, 10, 0, 3)

		if got := f.book.Cast(domain.EffectTeleport, f.player, nil); got != OutcomeCancelled {
			t.Errorf("got %v, want cancelled", got)
		}
		if f.player.Pos != (domain.Position{X: 15, Y: 15}) || f.renders != 0 {
			t.Error("cancelled teleport must not change anything")
		}
	})
}
