package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/logger"

	"github.com/sirupsen/logrus"
	"go.etcd.io/bbolt"
)

const slotBucket = "slots"

// BoltStore - хранилище слотов в одном файле BoltDB
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt открывает (или создаёт) файл BoltDB
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &BoltStore{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"component": "storage", "driver": "bolt", "path": path}).Info("Slot store opened.")
	return store, nil
}

func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save перезаписывает слот
func (s *BoltStore) Save(ctx context.Context, slot string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		return bucket.Put([]byte(slot), data)
	})
}

// Load читает слот. Пустой слот - domain.ErrNoSave.
func (s *BoltStore) Load(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(slotBucket))
		if bucket == nil {
			return fmt.Errorf("slot bucket is missing")
		}
		payload := bucket.Get([]byte(slot))
		if payload == nil {
			return domain.ErrNoSave
		}
		// Память bbolt действительна только внутри транзакции
		data = append([]byte(nil), payload...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *BoltStore) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(slotBucket)); err != nil {
			return fmt.Errorf("create slot bucket: %w", err)
		}
		return nil
	})
}
