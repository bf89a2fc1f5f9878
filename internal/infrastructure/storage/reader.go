package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"umbrella-rogue/internal/domain"
)

// Decode разбирает байты слота. Любая ошибка формата оборачивает domain.ErrSaveCorrupt.
func Decode(data []byte) (*Snapshot, error) {
	r := bytes.NewReader(data)

	var header SlotHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", domain.ErrSaveCorrupt, err)
	}
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", domain.ErrSaveCorrupt)
	}
	if int64(header.PayloadLen) != int64(r.Len()) {
		return nil, fmt.Errorf("%w: payload length %d, got %d", domain.ErrSaveCorrupt, header.PayloadLen, r.Len())
	}

	dec := json.NewDecoder(io.LimitReader(r, int64(header.PayloadLen)))
	dec.DisallowUnknownFields()

	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSaveCorrupt, err)
	}
	s.SavedAt = header.SavedAt

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSaveCorrupt, err)
	}
	return &s, nil
}

// validate проверяет структуру до того, как по ней будет собрана сессия
func (s *Snapshot) validate() error {
	if s.Map == nil {
		return fmt.Errorf("map is missing")
	}
	if s.Map.Width <= 0 || s.Map.Height <= 0 || len(s.Map.Tiles) != s.Map.Height {
		return fmt.Errorf("map is %dx%d with %d rows", s.Map.Width, s.Map.Height, len(s.Map.Tiles))
	}
	for y, row := range s.Map.Tiles {
		if len(row) != s.Map.Width {
			return fmt.Errorf("row %d has %d tiles, want %d", y, len(row), s.Map.Width)
		}
	}

	seen := make(map[domain.EntityID]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e == nil {
			return fmt.Errorf("entity %d is null", i)
		}
		if e.ID == domain.NoEntity || seen[e.ID] {
			return fmt.Errorf("entity %d has missing or duplicate id %s", i, e.ID)
		}
		seen[e.ID] = true
		if err := validateComponents(e); err != nil {
			return fmt.Errorf("entity %s: %w", e.ID, err)
		}
	}

	player := s.Player()
	if player == nil {
		return fmt.Errorf("player index %d out of %d entities", s.PlayerIndex, len(s.Entities))
	}
	if player.Fighter == nil || player.Inventory == nil {
		return fmt.Errorf("player entity lacks fighter or inventory")
	}
	// Предметы в рюкзаке делят пространство ID с картой: после выброса они снова в реестре
	for i, it := range player.Inventory.Items {
		if it == nil || it.Item == nil {
			return fmt.Errorf("inventory slot %d is not an item", i)
		}
		if it.ID == domain.NoEntity || seen[it.ID] {
			return fmt.Errorf("inventory slot %d has missing or duplicate id %s", i, it.ID)
		}
		seen[it.ID] = true
		if err := validateComponents(it); err != nil {
			return fmt.Errorf("inventory slot %d: %w", i, err)
		}
	}

	if s.LogCapacity < 1 {
		return fmt.Errorf("message log capacity %d", s.LogCapacity)
	}
	if s.State == "" {
		return fmt.Errorf("game state is missing")
	}
	return nil
}

// validateComponents отсекает значения перечислений, которых эта версия не знает
func validateComponents(e *domain.Entity) error {
	if e.Fighter != nil && !e.Fighter.Death.Valid() {
		return fmt.Errorf("unknown death effect %q", e.Fighter.Death)
	}
	if e.AI != nil {
		if err := e.AI.Validate(); err != nil {
			return err
		}
	}
	if e.Item != nil {
		if _, err := domain.ParseItemEffect(string(e.Item.Effect)); err != nil {
			return err
		}
	}
	return nil
}
