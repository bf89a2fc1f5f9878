package systems

import (
	"context"
	"fmt"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Состояния сессии выбора цели
const (
	TargetAwaiting  = "awaiting_input"
	TargetResolved  = "resolved"
	TargetCancelled = "cancelled"
)

const (
	eventResolve = "resolve"
	eventCancel  = "cancel"
)

// TargetMode - что именно выбирает игрок
type TargetMode uint8

const (
	// TargetTile - любая видимая клетка в пределах дальности
	TargetTile TargetMode = iota
	// TargetMonster - клетка должна содержать бойца, который не является игроком
	TargetMonster
)

// TargetRequest - ограничения выбора. MaxRange == 0 означает "без ограничения".
type TargetRequest struct {
	Mode     TargetMode
	MaxRange int
}

// TargetingSession - приостанавливаемый выбор цели.
// Живёт между интентами: Hover двигает курсор, Confirm пытается разрешить, Cancel отменяет.
// Пока сессия не разрешена, состояние мира не меняется.
type TargetingSession struct {
	Request TargetRequest
	Origin  domain.Position
	Cursor  domain.Position

	target   domain.Position
	targetID domain.EntityID
	reason   error
	machine  *fsm.FSM
}

func NewTargetingSession(origin domain.Position, req TargetRequest) *TargetingSession {
	s := &TargetingSession{Request: req, Origin: origin, Cursor: origin}
	s.machine = fsm.NewFSM(
		TargetAwaiting,
		fsm.Events{
			{Name: eventResolve, Src: []string{TargetAwaiting}, Dst: TargetResolved},
			{Name: eventCancel, Src: []string{TargetAwaiting}, Dst: TargetCancelled},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{
					"component": "targeting",
					"from":      e.Src,
					"to":        e.Dst,
					"cursor":    s.Cursor,
				}).Debug("Targeting state changed.")
			},
		},
	)
	return s
}

func (s *TargetingSession) State() string {
	return s.machine.Current()
}

func (s *TargetingSession) IsAwaiting() bool {
	return s.machine.Is(TargetAwaiting)
}

// Target возвращает выбранную клетку и (в режиме монстра) ID цели
func (s *TargetingSession) Target() (domain.Position, domain.EntityID, bool) {
	if !s.machine.Is(TargetResolved) {
		return domain.Position{}, domain.NoEntity, false
	}
	return s.target, s.targetID, true
}

// Reason - почему сессия отменена: ErrTargetCancelled или ErrTargetOutOfRange
func (s *TargetingSession) Reason() error {
	return s.reason
}

// Hover перемещает курсор
func (s *TargetingSession) Hover(p domain.Position) {
	if s.IsAwaiting() {
		s.Cursor = p
	}
}

// Confirm пытается выбрать клетку под курсором.
// Клетка вне поля зрения или дальше MaxRange отменяет сессию с ErrTargetOutOfRange.
// В режиме монстра пустая клетка не отменяет сессию: возвращается ErrNoTarget и выбор продолжается.
func (s *TargetingSession) Confirm(ctx context.Context, w *domain.GameWorld, vis *Visibility) error {
	if !s.IsAwaiting() {
		return fmt.Errorf("targeting session is %s", s.State())
	}

	p := s.Cursor
	outOfRange := s.Request.MaxRange > 0 && s.Origin.DistanceTo(p) > float64(s.Request.MaxRange)
	if !vis.IsVisible(p) || outOfRange {
		s.reason = domain.ErrTargetOutOfRange
		if err := s.machine.Event(ctx, eventCancel); err != nil {
			return err
		}
		return domain.ErrTargetOutOfRange
	}

	var id domain.EntityID
	if s.Request.Mode == TargetMonster {
		target := w.Entities.FighterAt(p)
		if target == nil || w.IsPlayer(target) {
			return domain.ErrNoTarget
		}
		id = target.ID
	}

	s.target = p
	s.targetID = id
	return s.machine.Event(ctx, eventResolve)
}

// Cancel прерывает выбор без каких-либо изменений мира
func (s *TargetingSession) Cancel(ctx context.Context) error {
	if !s.IsAwaiting() {
		return nil
	}
	s.reason = domain.ErrTargetCancelled
	return s.machine.Event(ctx, eventCancel)
}
