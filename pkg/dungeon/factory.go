package dungeon

import (
	"umbrella-rogue/internal/domain"
)

// Характеристики героя
const (
	PlayerHP      = 30
	PlayerDefense = 2
	PlayerPower   = 5
)

// NewPlayer создаёт игрока с пустым инвентарём. Позиция и точка появления задаются при генерации.
func NewPlayer(name string, inventoryCapacity int) *domain.Entity {
	p := &domain.Entity{
		Name:           name,
		Glyph:          "@",
		Color:          "white",
		BlocksMovement: true,
		Inventory:      domain.NewInventory(inventoryCapacity),
	}
	return p.AttachFighter(domain.NewFighter(PlayerHP, PlayerDefense, PlayerPower, domain.DeathPlayer))
}
