package domain

// DeathEffect - что происходит с сущностью в момент гибели.
// Хранится как данные, а не как функция, чтобы спокойно сериализоваться.
type DeathEffect string

const (
	DeathNone    DeathEffect = "none"
	DeathPlayer  DeathEffect = "player"
	DeathMonster DeathEffect = "monster"
)

// Valid - эффект входит в известный набор
func (d DeathEffect) Valid() bool {
	switch d {
	case DeathNone, DeathPlayer, DeathMonster:
		return true
	}
	return false
}

// FighterComponent - способность сражаться
type FighterComponent struct {
	Owner   EntityID    `json:"-"`
	HP      int         `json:"hp"`
	MaxHP   int         `json:"maxHp"`
	Defense int         `json:"defense"`
	Power   int         `json:"power"`
	Death   DeathEffect `json:"death"`
}

// NewFighter создаёт бойца с полным здоровьем
func NewFighter(hp, defense, power int, death DeathEffect) *FighterComponent {
	return &FighterComponent{HP: hp, MaxHP: hp, Defense: defense, Power: power, Death: death}
}

// TakeDamage наносит урон. Возвращает true ровно один раз - в момент перехода hp>0 -> hp<=0.
// HP может уйти в минус, но повторный урон по трупу смерть не вызывает.
func (f *FighterComponent) TakeDamage(amount int) bool {
	if amount <= 0 {
		return false
	}
	wasAlive := f.HP > 0
	f.HP -= amount
	return wasAlive && f.HP <= 0
}

// Heal лечит, не превышая MaxHP. Возвращает фактически восстановленное количество.
func (f *FighterComponent) Heal(amount int) int {
	if f.HP <= 0 || amount <= 0 {
		return 0 // Не лечим трупы
	}
	before := f.HP
	f.HP += amount
	if f.HP > f.MaxHP {
		f.HP = f.MaxHP
	}
	return f.HP - before
}

// IsFullHealth - лечить нечего
func (f *FighterComponent) IsFullHealth() bool {
	return f.HP >= f.MaxHP
}
