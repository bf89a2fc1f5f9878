package domain

import "strconv"

// EntityID - стабильный хэндл сущности внутри реестра.
// Компоненты ссылаются на владельца через него, а не через указатель.
type EntityID uint32

// NoEntity - нулевой хэндл, "ни на кого не указывает".
const NoEntity EntityID = 0

func (id EntityID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}
