package systems

import (
	"fmt"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

const corpseGlyph = "%"
const corpseColor = "dark_red"

// CombatResolver считает и применяет урон, а также обрабатывает гибель.
type CombatResolver struct {
	world *domain.GameWorld
	// onPlayerDeath вызывается один раз, когда погибает игрок (сессия переходит в Dead)
	onPlayerDeath func(player *domain.Entity)
}

func NewCombatResolver(w *domain.GameWorld, onPlayerDeath func(player *domain.Entity)) *CombatResolver {
	return &CombatResolver{world: w, onPlayerDeath: onPlayerDeath}
}

// Attack - ближний бой: урон = сила атакующего минус защита цели.
// Возвращает фактически нанесённый урон (0, если атака не пробила защиту).
func (c *CombatResolver) Attack(attacker, defender *domain.Entity) int {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     defender.ID,
		"target_name":   defender.Name,
	})

	if attacker.Fighter == nil || defender.Fighter == nil {
		combatLogger.Warn("Attack skipped: one of the sides has no FighterComponent.")
		return 0
	}

	damage := attacker.Fighter.Power - defender.Fighter.Defense

	combatLogger.WithFields(logrus.Fields{
		"power":   attacker.Fighter.Power,
		"defense": defender.Fighter.Defense,
		"damage":  damage,
	}).Info("Attack resolved.")

	if damage <= 0 {
		c.world.AddMessage(fmt.Sprintf("%s атакует %s, но это не имеет эффекта.", attacker.Name, defender.Name), domain.MsgCombat)
		return 0
	}

	c.world.AddMessage(fmt.Sprintf("%s атакует %s и наносит %d урона.", attacker.Name, defender.Name, damage), domain.MsgCombat)
	c.ApplyDamage(defender, damage)
	return damage
}

// ApplyDamage - прямой урон в обход защиты (заклинания).
// Смерть срабатывает ровно один раз. Возвращает true, если цель погибла от этого удара.
func (c *CombatResolver) ApplyDamage(target *domain.Entity, amount int) bool {
	if target.Fighter == nil {
		return false
	}
	if !target.Fighter.TakeDamage(amount) {
		return false
	}
	c.kill(target)
	return true
}

// MoveOrAttack: если в клетке назначения есть боец - атакуем его, иначе шагаем (с проверкой IsBlocked).
// Возвращает true, если позиция актёра изменилась.
func (c *CombatResolver) MoveOrAttack(actor *domain.Entity, dx, dy int) bool {
	dest := actor.Pos.Shift(dx, dy)
	if target := c.world.Entities.FighterAt(dest); target != nil && target != actor {
		c.Attack(actor, target)
		return false
	}
	return Move(c.world, actor, dx, dy)
}

// kill применяет эффект гибели, выбранный данными сущности
func (c *CombatResolver) kill(e *domain.Entity) {
	logger.Log.WithFields(logrus.Fields{
		"component":    "combat_system",
		"entity_id":    e.ID,
		"entity_name":  e.Name,
		"death_effect": e.Fighter.Death,
	}).Info("Entity died.")

	switch e.Fighter.Death {
	case domain.DeathPlayer:
		c.world.AddMessage("Вы погибли!", domain.MsgDeath)
		e.Glyph = corpseGlyph
		e.Color = corpseColor
		e.Name = "ваши останки"
		if c.onPlayerDeath != nil {
			c.onPlayerDeath(e)
		}

	case domain.DeathMonster:
		c.world.AddMessage(fmt.Sprintf("%s погибает!", e.Name), domain.MsgDeath)
		e.Glyph = corpseGlyph
		e.Color = corpseColor
		e.BlocksMovement = false
		e.Fighter = nil
		e.AI = nil
		e.Name = "останки " + e.Name
		c.world.Entities.SendToBack(e.ID)

	case domain.DeathNone:

	default:
		logger.Log.WithFields(logrus.Fields{
			"component":    "combat_system",
			"entity_id":    e.ID,
			"death_effect": e.Fighter.Death,
		}).Warn("Unknown death effect, entity stays on the map.")
	}
}
