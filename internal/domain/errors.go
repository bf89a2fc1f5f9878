package domain

import "errors"

// Ошибки, которые видит игрок. Все они восстанавливаются на месте и пишутся в журнал сообщений.
var (
	ErrInvalidMenuSelection = errors.New("invalid menu selection")
	ErrTargetOutOfRange     = errors.New("target out of range")
	ErrTargetCancelled      = errors.New("targeting cancelled")
	ErrInventoryFull        = errors.New("inventory full")
	ErrNoTarget             = errors.New("no valid target")

	// Ошибки слота сохранения: "сохранения нет" и "сохранение битое" различаются.
	ErrNoSave      = errors.New("no saved game")
	ErrSaveCorrupt = errors.New("saved game is corrupt")
)
