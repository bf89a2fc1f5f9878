package dungeon

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"umbrella-rogue/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// MonsterTemplate - строка таблицы монстров
type MonsterTemplate struct {
	Name    string `yaml:"name"`
	Glyph   string `yaml:"glyph"`
	Color   string `yaml:"color"`
	HP      int    `yaml:"hp"`
	Defense int    `yaml:"defense"`
	Power   int    `yaml:"power"`
	Weight  int    `yaml:"weight"`
}

// ItemTemplate - строка таблицы предметов
type ItemTemplate struct {
	Name   string            `yaml:"name"`
	Glyph  string            `yaml:"glyph"`
	Color  string            `yaml:"color"`
	Effect domain.ItemEffect `yaml:"effect"`
	Weight int               `yaml:"weight"`
}

// Tables - взвешенные таблицы появления
type Tables struct {
	Monsters []MonsterTemplate `yaml:"monsters"`
	Items    []ItemTemplate    `yaml:"items"`
}

// DefaultTables возвращает встроенные таблицы (орк 80 / тролль 20, зелья чаще свитков)
func DefaultTables() (*Tables, error) {
	return ParseTables(defaultTemplates)
}

// LoadTables читает таблицы из YAML-файла. Пустой путь - встроенные таблицы.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return ParseTables(data)
}

// ParseTables разбирает и проверяет таблицы
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid templates: %w", err)
	}
	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.Monsters) == 0 || len(t.Items) == 0 {
		return errors.New("monster and item tables must not be empty")
	}
	for _, m := range t.Monsters {
		if m.Weight <= 0 || m.HP <= 0 {
			return fmt.Errorf("monster %q: weight and hp must be positive", m.Name)
		}
	}
	for _, it := range t.Items {
		if it.Weight <= 0 {
			return fmt.Errorf("item %q: weight must be positive", it.Name)
		}
		if _, err := domain.ParseItemEffect(string(it.Effect)); err != nil {
			return fmt.Errorf("item %q: %w", it.Name, err)
		}
	}
	return nil
}

// PickMonster выбирает шаблон монстра с учётом весов
func (t *Tables) PickMonster(rng *rand.Rand) MonsterTemplate {
	weights := make([]int, len(t.Monsters))
	for i, m := range t.Monsters {
		weights[i] = m.Weight
	}
	return t.Monsters[pickWeighted(rng, weights)]
}

// PickItem выбирает шаблон предмета с учётом весов
func (t *Tables) PickItem(rng *rand.Rand) ItemTemplate {
	weights := make([]int, len(t.Items))
	for i, it := range t.Items {
		weights[i] = it.Weight
	}
	return t.Items[pickWeighted(rng, weights)]
}

// Spawn создаёт монстра: блокирующий боец с обычным AI
func (m MonsterTemplate) Spawn(pos domain.Position) *domain.Entity {
	e := &domain.Entity{
		Name:           m.Name,
		Glyph:          m.Glyph,
		Color:          m.Color,
		Pos:            pos,
		BlocksMovement: true,
	}
	return e.AttachFighter(domain.NewFighter(m.HP, m.Defense, m.Power, domain.DeathMonster)).
		AttachAI(domain.NewBasicAI())
}

// Spawn создаёт предмет на полу
func (it ItemTemplate) Spawn(pos domain.Position) *domain.Entity {
	e := &domain.Entity{
		Name:  it.Name,
		Glyph: it.Glyph,
		Color: it.Color,
		Pos:   pos,
	}
	return e.AttachItem(&domain.ItemComponent{Effect: it.Effect})
}

func pickWeighted(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	roll := rng.Intn(total)
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return len(weights) - 1
}
