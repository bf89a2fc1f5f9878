package systems

import (
	"fmt"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Outcome - итог применения предмета
type Outcome uint8

const (
	// OutcomeApplied - эффект сработал, предмет расходуется
	OutcomeApplied Outcome = iota
	// OutcomeCancelled - эффект не сработал, предмет остаётся в инвентаре
	OutcomeCancelled
)

func (o Outcome) String() string {
	if o == OutcomeApplied {
		return "applied"
	}
	return "cancelled"
}

// SpellBook - каталог эффектов предметов поверх CombatResolver и TargetingSession.
type SpellBook struct {
	cfg    config.SpellsConfig
	world  *domain.GameWorld
	combat *CombatResolver
	vis    *Visibility
	// render - внеочередная отрисовка (после телепорта)
	render func()
}

func NewSpellBook(cfg config.SpellsConfig, w *domain.GameWorld, combat *CombatResolver, vis *Visibility, render func()) *SpellBook {
	return &SpellBook{cfg: cfg, world: w, combat: combat, vis: vis, render: render}
}

// Targeting сообщает, нужна ли эффекту цель, и с какими ограничениями
func (b *SpellBook) Targeting(effect domain.ItemEffect) (TargetRequest, bool) {
	switch effect {
	case domain.EffectLightning:
		return TargetRequest{Mode: TargetMonster, MaxRange: b.cfg.LightningRange}, true
	case domain.EffectConfuse:
		return TargetRequest{Mode: TargetMonster, MaxRange: b.cfg.ConfuseRange}, true
	case domain.EffectFireball:
		return TargetRequest{Mode: TargetTile, MaxRange: b.cfg.FireballRange}, true
	}
	return TargetRequest{}, false
}

// Cast применяет эффект. Для эффектов с целью target должен быть разрешённой сессией,
// иначе результат - OutcomeCancelled без изменений мира.
func (b *SpellBook) Cast(effect domain.ItemEffect, caster *domain.Entity, target *TargetingSession) Outcome {
	spellLogger := logger.Log.WithFields(logrus.Fields{
		"component": "spell_system",
		"effect":    effect,
		"caster_id": caster.ID,
	})

	var outcome Outcome
	switch effect {
	case domain.EffectHeal:
		outcome = b.heal(caster)
	case domain.EffectLightning:
		outcome = b.lightning(target)
	case domain.EffectFireball:
		outcome = b.fireball(target)
	case domain.EffectConfuse:
		outcome = b.confuse(target)
	case domain.EffectTeleport:
		outcome = b.teleport(caster)
	default:
		spellLogger.Warn("Unknown item effect.")
		b.world.AddMessage("Этот предмет нельзя использовать.", domain.MsgWarning)
		outcome = OutcomeCancelled
	}

	spellLogger.WithField("outcome", outcome).Info("Item effect resolved.")
	return outcome
}

func (b *SpellBook) heal(caster *domain.Entity) Outcome {
	if caster.Fighter == nil {
		return OutcomeCancelled
	}
	if caster.Fighter.IsFullHealth() {
		b.world.AddMessage("Вы уже полностью здоровы.", domain.MsgWarning)
		return OutcomeCancelled
	}
	caster.Fighter.Heal(b.cfg.HealAmount)
	b.world.AddMessage("Ваши раны затягиваются!", domain.MsgInfo)
	return OutcomeApplied
}

func (b *SpellBook) lightning(target *TargetingSession) Outcome {
	victim := b.resolvedMonster(target)
	if victim == nil {
		return OutcomeCancelled
	}
	b.world.AddMessage(fmt.Sprintf("Молния бьёт %s с оглушительным громом! Урон: %d.", victim.Name, b.cfg.LightningDamage), domain.MsgCombat)
	b.combat.ApplyDamage(victim, b.cfg.LightningDamage)
	return OutcomeApplied
}

func (b *SpellBook) fireball(target *TargetingSession) Outcome {
	if target == nil {
		return OutcomeCancelled
	}
	center, _, ok := target.Target()
	if !ok {
		return OutcomeCancelled
	}

	b.world.AddMessage(fmt.Sprintf("Огненный шар взрывается, обжигая всё в радиусе %d клеток!", b.cfg.FireballRadius), domain.MsgCombat)
	radius := float64(b.cfg.FireballRadius)
	for _, e := range b.world.Entities.All() {
		if e.Fighter == nil || e.Pos.DistanceTo(center) > radius {
			continue
		}
		b.world.AddMessage(fmt.Sprintf("%s получает %d урона от огня.", e.Name, b.cfg.FireballDamage), domain.MsgCombat)
		b.combat.ApplyDamage(e, b.cfg.FireballDamage)
	}
	return OutcomeApplied
}

func (b *SpellBook) confuse(target *TargetingSession) Outcome {
	victim := b.resolvedMonster(target)
	if victim == nil || victim.AI == nil {
		return OutcomeCancelled
	}
	victim.AI = victim.AI.Confuse(b.cfg.ConfuseTurns)
	b.world.AddMessage(fmt.Sprintf("Взгляд %s стекленеет, он начинает бесцельно бродить!", victim.Name), domain.MsgInfo)
	return OutcomeApplied
}

// teleport возвращает игрока в точку появления
func (b *SpellBook) teleport(caster *domain.Entity) Outcome {
	if caster.Spawn == nil {
		return OutcomeCancelled
	}
	home := *caster.Spawn
	if home == caster.Pos {
		b.world.AddMessage("Вы уже дома.", domain.MsgWarning)
		return OutcomeCancelled
	}
	if b.cfg.TeleportRange > 0 && caster.Pos.DistanceTo(home) > float64(b.cfg.TeleportRange) {
		b.world.AddMessage("Точка возвращения слишком далеко.", domain.MsgWarning)
		return OutcomeCancelled
	}
	if b.world.IsBlocked(home.X, home.Y) {
		b.world.AddMessage("Точка возвращения занята.", domain.MsgWarning)
		return OutcomeCancelled
	}

	caster.Pos = home
	b.vis.MarkDirty()
	b.world.AddMessage("Пространство сворачивается, и вы оказываетесь у входа.", domain.MsgInfo)
	if b.render != nil {
		b.render()
	}
	return OutcomeApplied
}

// resolvedMonster достаёт живую цель из разрешённой сессии
func (b *SpellBook) resolvedMonster(target *TargetingSession) *domain.Entity {
	if target == nil {
		return nil
	}
	_, id, ok := target.Target()
	if !ok {
		return nil
	}
	victim := b.world.Entities.Get(id)
	if victim == nil || victim.Fighter == nil || b.world.IsPlayer(victim) {
		return nil
	}
	return victim
}
