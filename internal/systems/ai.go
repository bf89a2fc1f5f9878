package systems

import (
	"fmt"
	"math/rand"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// AIScheduler делает по одному шагу поведения за каждый завершённый ход игрока.
type AIScheduler struct {
	world  *domain.GameWorld
	combat *CombatResolver
	vis    *Visibility
	rng    *rand.Rand
}

func NewAIScheduler(w *domain.GameWorld, combat *CombatResolver, vis *Visibility, rng *rand.Rand) *AIScheduler {
	return &AIScheduler{world: w, combat: combat, vis: vis, rng: rng}
}

// RunTurn обходит сущности в порядке реестра.
// Снимок порядка берётся заранее; AI проверяется в момент хода, поэтому погибшие в этом ходу не действуют.
func (s *AIScheduler) RunTurn() {
	for _, e := range s.world.Entities.All() {
		if e.AI == nil || s.world.IsPlayer(e) {
			continue
		}
		s.takeTurn(e)
	}
}

func (s *AIScheduler) takeTurn(e *domain.Entity) {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"entity_id": e.ID,
		"name":      e.Name,
		"ai_kind":   e.AI.Kind,
	})

	switch e.AI.Kind {
	case domain.AIConfused:
		s.confusedTurn(e, aiLogger)
	default:
		s.basicTurn(e, aiLogger)
	}
}

// basicTurn: видимость симметрична - моб действует, если его клетка в поле зрения игрока
func (s *AIScheduler) basicTurn(e *domain.Entity, aiLogger *logrus.Entry) {
	player := s.world.Player()
	if player == nil || !s.vis.IsVisible(e.Pos) {
		return
	}

	dist := e.Pos.DistanceTo(player.Pos)
	if dist >= 2 {
		moved := MoveTowards(s.world, e, player.Pos)
		aiLogger.WithFields(logrus.Fields{"distance": dist, "moved": moved}).Debug("Chasing player.")
		return
	}

	if player.IsAlive() {
		aiLogger.Debug("Attacking player.")
		s.combat.Attack(e, player)
	}
}

// confusedTurn: случайный шаг (включая стояние на месте), по истечении ходов - возврат прежнего поведения
func (s *AIScheduler) confusedTurn(e *domain.Entity, aiLogger *logrus.Entry) {
	ai := e.AI
	if ai.RemainingTurns > 0 {
		dx := s.rng.Intn(3) - 1
		dy := s.rng.Intn(3) - 1
		if dx != 0 || dy != 0 {
			Move(s.world, e, dx, dy)
		}
		ai.RemainingTurns--
		aiLogger.WithField("remaining_turns", ai.RemainingTurns).Debug("Stumbling around.")
	}

	if ai.RemainingTurns <= 0 {
		e.AI = ai.Previous
		if e.AI == nil {
			e.AI = domain.NewBasicAI()
			e.AI.Owner = e.ID
		}
		s.world.AddMessage(fmt.Sprintf("%s больше не в замешательстве!", e.Name), domain.MsgInfo)
	}
}
