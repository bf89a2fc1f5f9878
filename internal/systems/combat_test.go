package systems

import (
	"strings"
	"testing"

	"umbrella-rogue/internal/domain"
)

func TestAttack_Damage(t *testing.T) {
	tests := []struct {
		name       string
		power      int
		defense    int
		wantHP     int
		wantDamage int
		wantInMsg  string
	}{
		{"power beats defense", 5, 3, 8, 2, "2"},
		{"defense absorbs everything", 3, 5, 10, 0, "не имеет эффекта"},
		{"equal stats", 4, 4, 10, 0, "не имеет эффекта"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestWorld(5, 5)
			attacker := addMonster(w, "Герой", domain.Position{X: 1, Y: 1}, 10, 2, tt.power)
			defender := addMonster(w, "Орк", domain.Position{X: 2, Y: 1}, 10, tt.defense, 1)
			c := NewCombatResolver(w, nil)

			got := c.Attack(attacker, defender)

			if got != tt.wantDamage {
				t.Errorf("damage = %d, want %d", got, tt.wantDamage)
			}
			if defender.Fighter.HP != tt.wantHP {
				t.Errorf("hp = %d, want %d", defender.Fighter.HP, tt.wantHP)
			}
			if msg := lastMessage(t, w); !strings.Contains(msg, tt.wantInMsg) {
				t.Errorf("message %q does not contain %q", msg, tt.wantInMsg)
			}
		})
	}
}

func TestAttack_MonsterBecomesRemains(t *testing.T) {
	w := createTestWorld(5, 5)
	player := addPlayer(w, domain.Position{X: 1, Y: 1})
	orc := addMonster(w, "орк", domain.Position{X: 2, Y: 1}, 3, 0, 3)
	c := NewCombatResolver(w, nil)

	c.Attack(player, orc)

	if orc.Glyph != "%" || orc.Name != "останки орк" {
		t.Errorf("corpse not marked: glyph=%q name=%q", orc.Glyph, orc.Name)
	}
	if orc.BlocksMovement || orc.Fighter != nil || orc.AI != nil {
		t.Errorf("corpse must be inert: %+v", orc)
	}
	if w.Entities.IndexOf(orc.ID) != 0 {
		t.Errorf("corpse must be sent to back, index = %d", w.Entities.IndexOf(orc.ID))
	}
	if w.IsBlocked(2, 1) {
		t.Error("corpse must not block movement")
	}
}

func TestApplyDamage_PlayerDeathFiresOnce(t *testing.T) {
	w := createTestWorld(5, 5)
	player := addPlayer(w, domain.Position{X: 1, Y: 1})

	deaths := 0
	c := NewCombatResolver(w, func(p *domain.Entity) {
		if p != player {
			t.Errorf("hook got wrong entity %v", p.Name)
		}
		deaths++
	})

	if c.ApplyDamage(player, 10) {
		t.Fatal("player should survive 10 damage")
	}
	if !c.ApplyDamage(player, 25) {
		t.Fatal("player should die")
	}
	c.ApplyDamage(player, 5)
	c.ApplyDamage(player, 5)

	if deaths != 1 {
		t.Errorf("death hook fired %d times, want 1", deaths)
	}
	if player.Glyph != "%" {
		t.Errorf("player corpse glyph = %q", player.Glyph)
	}
}

func TestMoveOrAttack(t *testing.T) {
	w := createTestWorld(5, 5)
	placeWall(w, 0, 2)
	player := addPlayer(w, domain.Position{X: 1, Y: 1})
	orc := addMonster(w, "орк", domain.Position{X: 2, Y: 1}, 10, 0, 3)
	c := NewCombatResolver(w, nil)

	if c.MoveOrAttack(player, 1, 0) {
		t.Error("bumping a fighter must not move")
	}
	if orc.Fighter.HP != 5 {
		t.Errorf("bump must attack: orc hp = %d, want 5", orc.Fighter.HP)
	}

	if !c.MoveOrAttack(player, 0, 1) {
		t.Error("move into floor must succeed")
	}
	if player.Pos != (domain.Position{X: 1, Y: 2}) {
		t.Errorf("player pos = %v", player.Pos)
	}

	if c.MoveOrAttack(player, -1, 0) {
		t.Error("move into wall must fail")
	}
	if c.MoveOrAttack(player, 0, 5) {
		t.Error("move out of bounds must fail")
	}
}
