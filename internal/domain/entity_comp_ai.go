package domain

import "fmt"

// AIKind - вариант поведения
type AIKind string

const (
	AIBasic    AIKind = "basic"
	AIConfused AIKind = "confused"
)

// AIComponent - текущее поведение моба.
// Confused всегда оборачивает ровно одно предыдущее состояние, которое вернётся по истечении ходов.
type AIComponent struct {
	Owner          EntityID     `json:"-"`
	Kind           AIKind       `json:"kind"`
	RemainingTurns int          `json:"remainingTurns,omitempty"`
	Previous       *AIComponent `json:"previous,omitempty"`
}

// Validate проверяет всю цепочку поведений: известные виды,
// и у каждого Confused есть что восстановить.
func (a *AIComponent) Validate() error {
	for ai := a; ai != nil; ai = ai.Previous {
		switch ai.Kind {
		case AIBasic:
		case AIConfused:
			if ai.Previous == nil {
				return fmt.Errorf("confused ai without previous behaviour")
			}
		default:
			return fmt.Errorf("unknown ai kind %q", ai.Kind)
		}
	}
	return nil
}

// NewBasicAI - обычный моб: видит игрока - идёт к нему и бьёт
func NewBasicAI() *AIComponent {
	return &AIComponent{Kind: AIBasic}
}

// Confuse оборачивает текущее поведение в Confused на turns ходов
func (a *AIComponent) Confuse(turns int) *AIComponent {
	return &AIComponent{
		Owner:          a.Owner,
		Kind:           AIConfused,
		RemainingTurns: turns,
		Previous:       a,
	}
}
