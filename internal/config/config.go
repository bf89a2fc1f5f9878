package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix - префикс переменных окружения, переопределяющих файл конфигурации.
const EnvPrefix = "UMBRELLA_"

// Config - все настраиваемые параметры ядра и обвязки.
type Config struct {
	// Seed - мастер-сид генерации. 0 означает "взять от времени".
	Seed       int64            `toml:"seed" env:"SEED"`
	Map        MapConfig        `toml:"map" envPrefix:"MAP_"`
	Population PopulationConfig `toml:"population" envPrefix:"POPULATION_"`
	FOV        FOVConfig        `toml:"fov" envPrefix:"FOV_"`
	Spells     SpellsConfig     `toml:"spells" envPrefix:"SPELLS_"`
	UI         UIConfig         `toml:"ui" envPrefix:"UI_"`
	Storage    StorageConfig    `toml:"storage" envPrefix:"STORAGE_"`
	Server     ServerConfig     `toml:"server" envPrefix:"SERVER_"`
	Logging    LoggingConfig    `toml:"logging" envPrefix:"LOG_"`
}

type MapConfig struct {
	Width       int `toml:"width" env:"WIDTH"`
	Height      int `toml:"height" env:"HEIGHT"`
	MaxRooms    int `toml:"max_rooms" env:"MAX_ROOMS"`
	RoomMinSize int `toml:"room_min_size" env:"ROOM_MIN_SIZE"`
	RoomMaxSize int `toml:"room_max_size" env:"ROOM_MAX_SIZE"`
}

type PopulationConfig struct {
	MaxRoomMonsters int `toml:"max_room_monsters" env:"MAX_ROOM_MONSTERS"`
	MaxRoomItems    int `toml:"max_room_items" env:"MAX_ROOM_ITEMS"`
	// Templates - путь к YAML с таблицами монстров и предметов. Пусто = встроенные таблицы.
	Templates string `toml:"templates" env:"TEMPLATES"`
}

type FOVConfig struct {
	Algorithm  string `toml:"algorithm" env:"ALGORITHM"` // "BASIC" или "SHADOW"
	LightWalls bool   `toml:"light_walls" env:"LIGHT_WALLS"`
	Radius     int    `toml:"radius" env:"RADIUS"`
}

// SpellsConfig - именованный набор параметров эффектов предметов.
type SpellsConfig struct {
	HealAmount      int `toml:"heal_amount" env:"HEAL_AMOUNT"`
	LightningDamage int `toml:"lightning_damage" env:"LIGHTNING_DAMAGE"`
	LightningRange  int `toml:"lightning_range" env:"LIGHTNING_RANGE"`
	FireballDamage  int `toml:"fireball_damage" env:"FIREBALL_DAMAGE"`
	FireballRadius  int `toml:"fireball_radius" env:"FIREBALL_RADIUS"`
	FireballRange   int `toml:"fireball_range" env:"FIREBALL_RANGE"` // 0 = без ограничения
	ConfuseTurns    int `toml:"confuse_turns" env:"CONFUSE_TURNS"`
	ConfuseRange    int `toml:"confuse_range" env:"CONFUSE_RANGE"`
	TeleportRange   int `toml:"teleport_range" env:"TELEPORT_RANGE"` // 0 = без ограничения
}

type UIConfig struct {
	PanelHeight       int `toml:"panel_height" env:"PANEL_HEIGHT"`
	InventoryCapacity int `toml:"inventory_capacity" env:"INVENTORY_CAPACITY"`
}

// Драйверы хранилища слотов
const (
	StorageBolt   = "bolt"
	StorageSQLite = "sqlite"
)

type StorageConfig struct {
	Driver string `toml:"driver" env:"DRIVER"`
	Path   string `toml:"path" env:"PATH"`
	Slot   string `toml:"slot" env:"SLOT"`
}

type ServerConfig struct {
	Port            string        `toml:"port" env:"PORT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"` // "json" или "text"
}

// MessageLogCapacity - вместимость журнала сообщений: высота панели минус строка заголовка.
func (c *Config) MessageLogCapacity() int {
	return c.UI.PanelHeight - 1
}

// Load собирает конфиг: значения по умолчанию, затем TOML-файл (если указан), затем окружение.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.FOV.Algorithm = strings.ToUpper(cfg.FOV.Algorithm)
	cfg.Storage.Driver = strings.ToLower(cfg.Storage.Driver)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает настройки классического туториала.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Width:       80,
			Height:      43,
			MaxRooms:    30,
			RoomMinSize: 6,
			RoomMaxSize: 10,
		},
		Population: PopulationConfig{
			MaxRoomMonsters: 3,
			MaxRoomItems:    2,
		},
		FOV: FOVConfig{
			Algorithm:  "BASIC",
			LightWalls: true,
			Radius:     10,
		},
		Spells: SpellsConfig{
			HealAmount:      4,
			LightningDamage: 20,
			LightningRange:  5,
			FireballDamage:  12,
			FireballRadius:  3,
			ConfuseTurns:    10,
			ConfuseRange:    8,
		},
		UI: UIConfig{
			PanelHeight:       7,
			InventoryCapacity: 26,
		},
		Storage: StorageConfig{
			Driver: StorageBolt,
			Path:   "savegame.db",
			Slot:   "savegame",
		},
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate отсекает конфигурации, при которых генерация или бой не имеют смысла.
// Ошибка здесь - ошибка программиста/оператора, а не игрока.
func (c *Config) Validate() error {
	var errs []error

	m := c.Map
	if m.RoomMinSize < 3 || m.RoomMaxSize < m.RoomMinSize {
		errs = append(errs, fmt.Errorf("map: invalid room size range [%d, %d]", m.RoomMinSize, m.RoomMaxSize))
	}
	if m.Width <= m.RoomMaxSize+1 || m.Height <= m.RoomMaxSize+1 {
		errs = append(errs, fmt.Errorf("map: %dx%d too small for rooms up to %d", m.Width, m.Height, m.RoomMaxSize))
	}
	if m.MaxRooms < 1 {
		errs = append(errs, errors.New("map: max_rooms must be positive"))
	}

	if c.Population.MaxRoomMonsters < 0 || c.Population.MaxRoomItems < 0 {
		errs = append(errs, errors.New("population: bounds must not be negative"))
	}

	switch c.FOV.Algorithm {
	case "BASIC", "SHADOW":
	default:
		errs = append(errs, fmt.Errorf("fov: unknown algorithm %q", c.FOV.Algorithm))
	}
	if c.FOV.Radius < 1 {
		errs = append(errs, errors.New("fov: radius must be positive"))
	}

	s := c.Spells
	if s.HealAmount < 1 || s.LightningDamage < 1 || s.FireballDamage < 1 || s.ConfuseTurns < 1 {
		errs = append(errs, errors.New("spells: amounts and durations must be positive"))
	}
	if s.LightningRange < 1 || s.ConfuseRange < 1 || s.FireballRadius < 0 || s.FireballRange < 0 || s.TeleportRange < 0 {
		errs = append(errs, errors.New("spells: invalid range or radius"))
	}

	if c.UI.PanelHeight < 2 {
		errs = append(errs, errors.New("ui: panel_height must leave room for at least one message"))
	}
	if c.UI.InventoryCapacity < 1 {
		errs = append(errs, errors.New("ui: inventory_capacity must be positive"))
	}

	switch c.Storage.Driver {
	case StorageBolt, StorageSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage: unknown driver %q", c.Storage.Driver))
	}
	if strings.TrimSpace(c.Storage.Slot) == "" {
		errs = append(errs, errors.New("storage: slot name is required"))
	}

	return errors.Join(errs...)
}
