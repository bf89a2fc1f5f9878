package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const MagicHeader string = `URSV` // 4 байта

// SlotHeader - фиксированный заголовок слота. За ним идёт JSON-тело длиной PayloadLen.
type SlotHeader struct {
	Magic      [4]byte // 4 байта
	SavedAt    int64   // 8 байт
	PayloadLen uint32  // 4 байта
}

// Encode упаковывает снимок в байты слота: заголовок + JSON
func Encode(s *Snapshot) ([]byte, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if uint64(len(body)) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot too large: %d", len(body))
	}

	savedAt := s.SavedAt
	if savedAt == 0 {
		savedAt = time.Now().Unix()
	}
	header := SlotHeader{
		SavedAt:    savedAt,
		PayloadLen: uint32(len(body)),
	}
	copy(header.Magic[:], MagicHeader)

	var buf bytes.Buffer
	buf.Grow(binary.Size(header) + len(body))
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}
