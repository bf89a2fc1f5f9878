package engine

import (
	"math/rand"
	"time"
)

// ResolveSeed возвращает мастер-сид: 0 из конфига означает "взять от времени".
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// NewRng создаёт локальный генератор. Один генератор на сессию, чтобы игра воспроизводилась по сиду.
func NewRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
