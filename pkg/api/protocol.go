package api

import (
	"encoding/json"
)

// Типы сообщений сервера
const (
	ResponseGame  = "GAME"
	ResponseMenu  = "MENU"
	ResponseError = "ERROR"
	ResponseBye   = "BYE"
)

// Состояния клетки для клиента
const (
	TileVisible    = "VISIBLE"
	TileRemembered = "REMEMBERED"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Отправляется после каждого обработанного намерения игрока.
type ServerResponse struct {
	// Type - GAME (кадр игры), MENU (главное меню), ERROR, BYE (сервер закрывает сессию).
	Type string `json:"type"`

	Game  *GameState `json:"game,omitempty"`
	Menu  *MenuState `json:"menu,omitempty"`
	Error string     `json:"error,omitempty"`
}

// GameState - один кадр игры
type GameState struct {
	// State состояние сессии: playing, show_inventory, drop_inventory, awaiting_target, dead.
	State string `json:"state"`

	Grid *GridMeta `json:"grid"`

	// Map содержит только видимые и запомненные клетки. Отсутствующая клетка - неизвестна.
	Map []TileView `json:"map"`

	// Entities - видимые сущности в порядке отрисовки (первая рисуется снизу).
	Entities []EntityView `json:"entities"`

	Player PlayerView `json:"player"`

	// Logs - весь журнал сообщений, от старых к новым.
	Logs []LogEntry `json:"logs"`

	// Menu - список предметов, если открыт инвентарь или меню выброса.
	Menu []string `json:"menu,omitempty"`

	Targeting *TargetingView `json:"targeting,omitempty"`

	Fullscreen bool `json:"fullscreen,omitempty"`
}

// GridMeta содержит общие размеры карты
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одной клетки карты.
type TileView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsWall bool   `json:"isWall"`
	State  string `json:"state"` // VISIBLE или REMEMBERED
}

// EntityView это DTO для сущности на карте
type EntityView struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
	X      int    `json:"x"`
	Y      int    `json:"y"`

	// Stats есть только у живых бойцов
	Stats *StatsView `json:"stats,omitempty"`
}

// StatsView - здоровье бойца
type StatsView struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
}

// PlayerView - панель игрока
type PlayerView struct {
	ID        uint32     `json:"id"`
	HP        int        `json:"hp"`
	MaxHP     int        `json:"maxHp"`
	Defense   int        `json:"defense"`
	Power     int        `json:"power"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Inventory []ItemView `json:"inventory"`
	MaxSlots  int        `json:"maxSlots"`
	IsDead    bool       `json:"isDead"`
}

// ItemView представляет предмет в инвентаре
type ItemView struct {
	ID     uint32 `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
	Effect string `json:"effect"`
}

// TargetingView - курсор выбора цели
type TargetingView struct {
	Mode     string `json:"mode"` // TILE или MONSTER
	CursorX  int    `json:"cursorX"`
	CursorY  int    `json:"cursorY"`
	MaxRange int    `json:"maxRange,omitempty"`
}

// LogEntry представляет одну запись в журнале сообщений.
type LogEntry struct {
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, WARNING, DEATH
}

// MenuState - главное меню
type MenuState struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
	// Notice - последнее сообщение меню (например, "сохранение не найдено")
	Notice string `json:"notice,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название намерения: MOVE, WAIT, PICKUP, OPEN_INVENTORY, DROP, SELECT,
	// HOVER, CONFIRM, CANCEL, TOGGLE_FULLSCREEN, EXIT.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для HOVER (курсор выбора цели).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SelectPayload используется для SELECT: пункт главного меню или слот инвентаря.
type SelectPayload struct {
	Index int `json:"index"`
}
