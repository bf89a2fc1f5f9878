package storage

import (
	"context"
	"fmt"

	"umbrella-rogue/internal/config"
)

// SlotStore хранит байты именованных слотов сохранения.
// Save перезаписывает слот целиком; Load на пустом слоте возвращает domain.ErrNoSave.
type SlotStore interface {
	Save(ctx context.Context, slot string, data []byte) error
	Load(ctx context.Context, slot string) ([]byte, error)
	Close() error
}

// Open выбирает хранилище по конфигурации
func Open(ctx context.Context, cfg config.StorageConfig) (SlotStore, error) {
	switch cfg.Driver {
	case config.StorageBolt:
		return OpenBolt(cfg.Path)
	case config.StorageSQLite:
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
