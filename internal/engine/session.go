package engine

import (
	"context"
	"errors"
	"math/rand"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/engine/handlers"
	"umbrella-rogue/internal/engine/handlers/actions"
	"umbrella-rogue/internal/systems"
	"umbrella-rogue/pkg/api"
	"umbrella-rogue/pkg/dungeon"
	"umbrella-rogue/pkg/logger"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Состояния игровой сессии
const (
	StatePlaying        = "playing"
	StateShowInventory  = "show_inventory"
	StateDropInventory  = "drop_inventory"
	StateAwaitingTarget = "awaiting_target"
	StateDead           = "dead"
)

const (
	eventOpenInventory = "open_inventory"
	eventOpenDrop      = "open_drop"
	eventCloseMenu     = "close_menu"
	eventRequestTarget = "request_target"
	eventTargetDone    = "target_done"
	eventDie           = "die"
)

// PlayerName - имя героя в журнале
const PlayerName = "Игрок"

// Renderer получает кадр после каждого шага. Вызывается синхронно, в горутине владельца сессии.
type Renderer interface {
	Render(resp api.ServerResponse)
}

// RendererFunc позволяет использовать обычную функцию как Renderer
type RendererFunc func(resp api.ServerResponse)

func (f RendererFunc) Render(resp api.ServerResponse) {
	f(resp)
}

// StepResult - что произошло за один шаг
type StepResult struct {
	TookTurn         bool
	Exit             bool
	ToggleFullscreen bool
}

// Session - одна партия. Владелец вызывает Step из одной горутины; блокировок нет.
type Session struct {
	cfg   *config.Config
	World *domain.GameWorld
	Vis   *systems.Visibility

	combat *systems.CombatResolver
	ai     *systems.AIScheduler
	spells *systems.SpellBook
	rng    *rand.Rand

	machine  *fsm.FSM
	handlers map[domain.IntentKind]handlers.HandlerFunc
	renderer Renderer

	// Выбор цели: слот предмета и сессия, пока машина в awaiting_target
	pendingItem int
	targeting   *systems.TargetingSession

	fullscreen  bool
	forcedFrame bool
}

// NewSession генерирует новый уровень и ставит на него игрока
func NewSession(cfg *config.Config, tables *dungeon.Tables, rng *rand.Rand, renderer Renderer) *Session {
	player := dungeon.NewPlayer(PlayerName, cfg.UI.InventoryCapacity)
	world, _ := dungeon.NewLevel(dungeon.ParamsFromConfig(cfg.Map), rng).
		WithPopulation(tables, cfg.Population.MaxRoomMonsters, cfg.Population.MaxRoomItems).
		WithPlayer(player).
		WithMessageLog(cfg.MessageLogCapacity()).
		Build()

	world.AddMessage("Добро пожаловать, путник! Приготовься сгинуть в Гробницах Древних Королей.", domain.MsgWarning)
	return newSession(cfg, world, rng, renderer, StatePlaying)
}

// newSession собирает системы вокруг готового мира (нового или загруженного)
func newSession(cfg *config.Config, world *domain.GameWorld, rng *rand.Rand, renderer Renderer, state string) *Session {
	s := &Session{
		cfg:         cfg,
		World:       world,
		Vis:         systems.NewVisibility(cfg.FOV),
		rng:         rng,
		renderer:    renderer,
		pendingItem: -1,
		handlers:    make(map[domain.IntentKind]handlers.HandlerFunc),
	}
	s.combat = systems.NewCombatResolver(world, s.onPlayerDeath)
	s.ai = systems.NewAIScheduler(world, s.combat, s.Vis, rng)
	s.spells = systems.NewSpellBook(cfg.Spells, world, s.combat, s.Vis, s.forceRender)

	live := []string{StatePlaying, StateShowInventory, StateDropInventory, StateAwaitingTarget}
	s.machine = fsm.NewFSM(
		state,
		fsm.Events{
			{Name: eventOpenInventory, Src: []string{StatePlaying}, Dst: StateShowInventory},
			{Name: eventOpenDrop, Src: []string{StatePlaying}, Dst: StateDropInventory},
			{Name: eventCloseMenu, Src: []string{StateShowInventory, StateDropInventory}, Dst: StatePlaying},
			{Name: eventRequestTarget, Src: []string{StateShowInventory}, Dst: StateAwaitingTarget},
			{Name: eventTargetDone, Src: []string{StateAwaitingTarget}, Dst: StatePlaying},
			{Name: eventDie, Src: live, Dst: StateDead},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Log.WithFields(logrus.Fields{
					"component": "game_session",
					"from":      e.Src,
					"to":        e.Dst,
				}).Debug("Session state changed.")
			},
		},
	)

	s.registerHandlers()
	s.Vis.Recompute(world.Map, world.Player().Pos)
	return s
}

func (s *Session) registerHandlers() {
	s.handlers[domain.IntentMove] = actions.HandleMove
	s.handlers[domain.IntentWait] = actions.HandleWait
	s.handlers[domain.IntentPickUp] = actions.HandlePickup
}

// State - текущее состояние машины
func (s *Session) State() string {
	return s.machine.Current()
}

// Player - сущность игрока
func (s *Session) Player() *domain.Entity {
	return s.World.Player()
}

// Targeting - активная сессия выбора цели или nil
func (s *Session) Targeting() *systems.TargetingSession {
	return s.targeting
}

func (s *Session) Fullscreen() bool {
	return s.fullscreen
}

// Step обрабатывает одно намерение игрока.
// Порядок: действие игрока, пересчёт поля зрения (если устарело), ходы монстров (если ход потрачен), отрисовка.
// Возвращаемые ошибки относятся к вводу игрока (неверный пункт меню, нет цели) и не ломают сессию.
func (s *Session) Step(ctx context.Context, in domain.Intent) (StepResult, error) {
	var (
		res StepResult
		err error
	)

	switch {
	case in.Kind == domain.IntentToggleFullscreen:
		s.fullscreen = !s.fullscreen
		res.ToggleFullscreen = true
	case s.machine.Is(StateDead):
		// Смерть терминальна: всё кроме выхода только перерисовывает экран
		res.Exit = in.Kind == domain.IntentExit
	case s.machine.Is(StatePlaying):
		res, err = s.stepPlaying(ctx, in)
	case s.machine.Is(StateShowInventory), s.machine.Is(StateDropInventory):
		res, err = s.stepMenu(ctx, in)
	case s.machine.Is(StateAwaitingTarget):
		res, err = s.stepTargeting(ctx, in)
	}

	s.flushForcedFrame()

	player := s.World.Player()
	s.Vis.Recompute(s.World.Map, player.Pos)

	if res.TookTurn && player.IsAlive() && !s.machine.Is(StateDead) {
		s.ai.RunTurn()
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "game_session",
		"intent":    in.Kind,
		"state":     s.State(),
		"took_turn": res.TookTurn,
	}).Debug("Intent processed.")

	s.render()
	return res, err
}

func (s *Session) stepPlaying(ctx context.Context, in domain.Intent) (StepResult, error) {
	switch in.Kind {
	case domain.IntentExit:
		return StepResult{Exit: true}, nil
	case domain.IntentOpenInventory:
		return StepResult{}, s.machine.Event(ctx, eventOpenInventory)
	case domain.IntentDrop:
		return StepResult{}, s.machine.Event(ctx, eventOpenDrop)
	}

	h, ok := s.handlers[in.Kind]
	if !ok {
		return StepResult{}, nil
	}
	r, err := h(s.handlerContext(), in)
	return StepResult{TookTurn: r.TookTurn}, err
}

// stepMenu - открыт инвентарь (использовать) или меню выброса
func (s *Session) stepMenu(ctx context.Context, in domain.Intent) (StepResult, error) {
	switch in.Kind {
	case domain.IntentCancel, domain.IntentExit, domain.IntentOpenInventory, domain.IntentDrop:
		return StepResult{}, s.machine.Event(ctx, eventCloseMenu)
	case domain.IntentSelect:
	default:
		return StepResult{}, nil
	}

	hctx := s.handlerContext()
	if s.machine.Is(StateDropInventory) {
		r, err := actions.HandleDrop(hctx, in)
		if err != nil {
			return StepResult{}, s.rejectSelection(err)
		}
		return StepResult{TookTurn: r.TookTurn}, s.machine.Event(ctx, eventCloseMenu)
	}

	r, err := actions.HandleUse(hctx, in)
	if err != nil {
		return StepResult{}, s.rejectSelection(err)
	}

	if r.Target != nil {
		s.pendingItem = in.Index
		s.targeting = systems.NewTargetingSession(hctx.Actor.Pos, *r.Target)
		return StepResult{}, s.machine.Event(ctx, eventRequestTarget)
	}

	if s.machine.Is(StateShowInventory) {
		if err := s.machine.Event(ctx, eventCloseMenu); err != nil {
			return StepResult{TookTurn: r.TookTurn}, err
		}
	}
	return StepResult{TookTurn: r.TookTurn}, nil
}

// stepTargeting кормит сессию выбора цели одним намерением.
// Любой исход, кроме "здесь нет цели", завершает выбор и возвращает управление предмету.
func (s *Session) stepTargeting(ctx context.Context, in domain.Intent) (StepResult, error) {
	var reason error

	switch in.Kind {
	case domain.IntentHover:
		s.targeting.Hover(in.Pos)
		return StepResult{}, nil
	case domain.IntentMove:
		s.targeting.Hover(s.targeting.Cursor.Shift(in.DX, in.DY))
		return StepResult{}, nil
	case domain.IntentConfirm:
		err := s.targeting.Confirm(ctx, s.World, s.Vis)
		switch {
		case errors.Is(err, domain.ErrNoTarget):
			s.World.AddMessage("Здесь нет цели.", domain.MsgWarning)
			return StepResult{}, err
		case errors.Is(err, domain.ErrTargetOutOfRange):
			s.World.AddMessage("Цель вне досягаемости.", domain.MsgWarning)
			reason = err
		case err != nil:
			return StepResult{}, err
		}
	case domain.IntentCancel, domain.IntentExit:
		if err := s.targeting.Cancel(ctx); err != nil {
			return StepResult{}, err
		}
		s.World.AddMessage("Выбор цели отменён.", domain.MsgInfo)
	default:
		return StepResult{}, nil
	}

	r, err := actions.FinishUse(s.handlerContext(), s.pendingItem, s.targeting)
	s.targeting = nil
	s.pendingItem = -1

	// Огненный шар мог убить самого игрока
	if s.machine.Is(StateAwaitingTarget) {
		if evErr := s.machine.Event(ctx, eventTargetDone); evErr != nil {
			return StepResult{TookTurn: r.TookTurn}, evErr
		}
	}
	if err != nil {
		return StepResult{TookTurn: r.TookTurn}, err
	}
	return StepResult{TookTurn: r.TookTurn}, reason
}

func (s *Session) rejectSelection(err error) error {
	if errors.Is(err, domain.ErrInvalidMenuSelection) {
		s.World.AddMessage("Такого пункта нет.", domain.MsgWarning)
	}
	return err
}

func (s *Session) handlerContext() handlers.Context {
	return handlers.Context{
		World:  s.World,
		Actor:  s.World.Player(),
		Combat: s.combat,
		Vis:    s.Vis,
		Spells: s.spells,
	}
}

// onPlayerDeath - хук CombatResolver: сессия становится терминальной
func (s *Session) onPlayerDeath(player *domain.Entity) {
	if err := s.machine.Event(context.Background(), eventDie); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "game_session",
			"player_id": player.ID,
		}).WithError(err).Error("Failed to enter dead state.")
	}
}

// forceRender заказывает внеочередной кадр посреди хода (телепорт).
// Кадр уходит после действия игрока, когда меню уже закрыто и предмет списан, но до ходов монстров.
func (s *Session) forceRender() {
	s.forcedFrame = true
}

func (s *Session) flushForcedFrame() {
	if !s.forcedFrame {
		return
	}
	s.forcedFrame = false
	s.Vis.Recompute(s.World.Map, s.World.Player().Pos)
	s.render()
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.Render(api.ServerResponse{Type: api.ResponseGame, Game: s.BuildState()})
}
