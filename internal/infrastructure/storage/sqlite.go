package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteStore - хранилище слотов в таблице save_slots
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite открывает базу и накатывает встроенные миграции
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"component": "storage", "driver": "sqlite", "path": path}).Info("Slot store opened.")
	return &SQLiteStore{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save перезаписывает слот (upsert)
func (s *SQLiteStore) Save(ctx context.Context, slot string, data []byte) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO save_slots (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		slot, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save slot %q: %w", slot, err)
	}
	return nil
}

// Load читает слот. Отсутствующая строка - domain.ErrNoSave.
func (s *SQLiteStore) Load(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM save_slots WHERE name = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", slot, err)
	}
	return data, nil
}
