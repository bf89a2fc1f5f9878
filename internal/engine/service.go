package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"umbrella-rogue/internal/config"
	"umbrella-rogue/internal/domain"
	"umbrella-rogue/internal/infrastructure/storage"
	"umbrella-rogue/pkg/api"
	"umbrella-rogue/pkg/dungeon"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Пункты главного меню
const (
	MenuNewGame = iota
	MenuContinue
	MenuQuit
)

var menuOptions = []string{"Новая игра", "Продолжить", "Выход"}

const menuTitle = "ГРОБНИЦЫ ДРЕВНИХ КОРОЛЕЙ"

// GameService - главное меню и слот сохранения вокруг одной сессии.
// Пока сессии нет, сервис находится в главном меню.
type GameService struct {
	cfg      *config.Config
	store    storage.SlotStore
	tables   *dungeon.Tables
	rng      *rand.Rand
	renderer Renderer

	session *Session
	notice  string
}

func NewService(cfg *config.Config, store storage.SlotStore, tables *dungeon.Tables, rng *rand.Rand, renderer Renderer) *GameService {
	return &GameService{
		cfg:      cfg,
		store:    store,
		tables:   tables,
		rng:      rng,
		renderer: renderer,
	}
}

// Session - текущая партия или nil (главное меню)
func (s *GameService) Session() *Session {
	return s.session
}

func (s *GameService) InMenu() bool {
	return s.session == nil
}

// Start показывает главное меню
func (s *GameService) Start() {
	s.renderMenu()
}

// Handle принимает намерение из внешнего мира. quit = клиент выбрал выход из игры.
func (s *GameService) Handle(ctx context.Context, in domain.Intent) (quit bool, err error) {
	if s.session == nil {
		switch in.Kind {
		case domain.IntentSelect:
			return s.SelectMenu(ctx, in.Index)
		case domain.IntentExit:
			return true, nil
		}
		s.renderMenu()
		return false, nil
	}

	res, err := s.session.Step(ctx, in)
	if res.Exit {
		if saveErr := s.Save(ctx); saveErr != nil {
			s.notice = "Не удалось сохранить игру."
			err = errors.Join(err, saveErr)
		}
		s.session = nil
		s.renderMenu()
	}
	return false, err
}

// SelectMenu выполняет пункт главного меню.
// Ошибки загрузки оставляют сервис в меню с сообщением.
func (s *GameService) SelectMenu(ctx context.Context, option int) (quit bool, err error) {
	switch option {
	case MenuNewGame:
		s.session = NewSession(s.cfg, s.tables, s.rng, s.renderer)
		s.notice = ""
		s.session.render()
		return false, nil

	case MenuContinue:
		if err := s.Load(ctx); err != nil {
			switch {
			case errors.Is(err, domain.ErrNoSave):
				s.notice = "Сохранённая игра не найдена."
			case errors.Is(err, domain.ErrSaveCorrupt):
				s.notice = "Сохранение повреждено."
			default:
				s.notice = "Не удалось загрузить игру."
			}
			s.renderMenu()
			return false, err
		}
		s.notice = ""
		s.session.render()
		return false, nil

	case MenuQuit:
		return true, nil
	}

	s.renderMenu()
	return false, fmt.Errorf("%w: %d", domain.ErrInvalidMenuSelection, option)
}

// Save записывает текущую сессию в слот из конфигурации
func (s *GameService) Save(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	data, err := storage.Encode(s.session.Snapshot())
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.cfg.Storage.Slot, data); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"slot":      s.cfg.Storage.Slot,
		"bytes":     len(data),
	}).Info("Game saved.")
	return nil
}

// Load заменяет текущую сессию сохранённой. При ошибке текущее состояние не меняется.
func (s *GameService) Load(ctx context.Context) error {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "game_service",
		"slot":      s.cfg.Storage.Slot,
	})

	data, err := s.store.Load(ctx, s.cfg.Storage.Slot)
	if err != nil {
		log.WithError(err).Warn("Load failed.")
		return err
	}
	snap, err := storage.Decode(data)
	if err != nil {
		log.WithError(err).Warn("Save slot is corrupt.")
		return err
	}
	session, err := Restore(s.cfg, snap, s.rng, s.renderer)
	if err != nil {
		log.WithError(err).Warn("Save slot is corrupt.")
		return err
	}

	s.session = session
	log.WithField("state", session.State()).Info("Game loaded.")
	return nil
}

func (s *GameService) renderMenu() {
	if s.renderer == nil {
		return
	}
	s.renderer.Render(api.ServerResponse{
		Type: api.ResponseMenu,
		Menu: &api.MenuState{
			Title:   menuTitle,
			Options: menuOptions,
			Notice:  s.notice,
		},
	})
}
