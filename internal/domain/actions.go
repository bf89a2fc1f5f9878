package domain

import "strings"

// IntentKind - намерение игрока, уже отвязанное от клавиатуры и мыши
type IntentKind uint8

const (
	IntentUnknown IntentKind = iota
	IntentMove
	IntentWait
	IntentPickUp
	IntentOpenInventory
	IntentDrop
	IntentSelect
	IntentHover
	IntentConfirm
	IntentCancel
	IntentToggleFullscreen
	IntentExit
)

// Маппинг для конвертации JSON -> Domain
var intentStringToKind = map[string]IntentKind{
	"MOVE":              IntentMove,
	"WAIT":              IntentWait,
	"PICKUP":            IntentPickUp,
	"OPEN_INVENTORY":    IntentOpenInventory,
	"DROP":              IntentDrop,
	"SELECT":            IntentSelect,
	"HOVER":             IntentHover,
	"CONFIRM":           IntentConfirm,
	"CANCEL":            IntentCancel,
	"TOGGLE_FULLSCREEN": IntentToggleFullscreen,
	"EXIT":              IntentExit,
}

// Маппинг для логов Domain -> String
var intentKindToString = map[IntentKind]string{
	IntentMove:             "MOVE",
	IntentWait:             "WAIT",
	IntentPickUp:           "PICKUP",
	IntentOpenInventory:    "OPEN_INVENTORY",
	IntentDrop:             "DROP",
	IntentSelect:           "SELECT",
	IntentHover:            "HOVER",
	IntentConfirm:          "CONFIRM",
	IntentCancel:           "CANCEL",
	IntentToggleFullscreen: "TOGGLE_FULLSCREEN",
	IntentExit:             "EXIT",
}

// ParseIntentKind конвертирует строку из JSON в IntentKind
func ParseIntentKind(s string) IntentKind {
	upper := strings.ToUpper(s)
	if val, ok := intentStringToKind[upper]; ok {
		return val
	}
	return IntentUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k IntentKind) String() string {
	if val, ok := intentKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Intent - одно действие игрока. Поля используются в зависимости от Kind:
// DX/DY для Move, Index для Select, Pos для Hover.
type Intent struct {
	Kind  IntentKind
	DX    int
	DY    int
	Index int
	Pos   Position
}

func Move(dx, dy int) Intent { return Intent{Kind: IntentMove, DX: dx, DY: dy} }
func Select(index int) Intent { return Intent{Kind: IntentSelect, Index: index} }
func Hover(x, y int) Intent { return Intent{Kind: IntentHover, Pos: Position{X: x, Y: y}} }
func Simple(kind IntentKind) Intent { return Intent{Kind: kind} }
