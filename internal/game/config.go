package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"arena/internal/world"
)

// Session defaults.
const (
	DefaultAmmo        = 20
	DefaultTimeLimit   = 300 // seconds
	DefaultSensitivity = 0.002
	DefaultVolume      = 0.58
	DefaultPlayerName  = "Player"
)

// Config holds every tunable of a session.
type Config struct {
	Seed             uint64 // 0 derives a seed from the clock
	PlayerName       string
	Ammo             int
	TimeLimit        int // seconds
	Targets          int
	Objects          int
	AreaSize         float64
	MouseSensitivity float64 // radians per pointer pixel
	Volume           float64
	Debug            bool
	Fullscreen       bool
}

func DefaultConfig() Config {
	return Config{
		PlayerName:       DefaultPlayerName,
		Ammo:             DefaultAmmo,
		TimeLimit:        DefaultTimeLimit,
		Targets:          world.TargetCount,
		Objects:          world.ObjectCount,
		AreaSize:         world.AreaSize,
		MouseSensitivity: DefaultSensitivity,
		Volume:           DefaultVolume,
	}
}

// Environment variables recognised by LoadConfig.
const (
	EnvSeed        = "ARENA_SEED"
	EnvPlayer      = "ARENA_PLAYER"
	EnvAmmo        = "ARENA_AMMO"
	EnvTimeLimit   = "ARENA_TIME_LIMIT"
	EnvTargets     = "ARENA_TARGETS"
	EnvObjects     = "ARENA_OBJECTS"
	EnvArea        = "ARENA_AREA"
	EnvSensitivity = "ARENA_SENSITIVITY"
	EnvVolume      = "ARENA_VOLUME"
	EnvDebug       = "ARENA_DEBUG"
	EnvFullscreen  = "ARENA_FULLSCREEN"
)

// LoadConfig starts from DefaultConfig, applies the dotenv file at path (a
// missing file is fine) and then the process environment. Non-empty
// environment values win over the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	if err := cfg.apply(lookup); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	integer := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = f
		return nil
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}

	str(EnvPlayer, &c.PlayerName)
	if v, ok := lookup(EnvSeed); ok && v != "" {
		s, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = s
	}
	return errors.Join(
		integer(EnvAmmo, &c.Ammo),
		integer(EnvTimeLimit, &c.TimeLimit),
		integer(EnvTargets, &c.Targets),
		integer(EnvObjects, &c.Objects),
		float(EnvArea, &c.AreaSize),
		float(EnvSensitivity, &c.MouseSensitivity),
		float(EnvVolume, &c.Volume),
		boolean(EnvDebug, &c.Debug),
		boolean(EnvFullscreen, &c.Fullscreen),
	)
}

// Validate reports the first setting that cannot produce a playable session.
func (c Config) Validate() error {
	switch {
	case c.Ammo < 0:
		return fmt.Errorf("ammo %d is negative", c.Ammo)
	case c.TimeLimit <= 0:
		return fmt.Errorf("time limit %ds must be positive", c.TimeLimit)
	case c.Objects <= 0:
		return fmt.Errorf("object count %d must be positive", c.Objects)
	case c.Targets <= 0:
		return fmt.Errorf("target count %d must be positive", c.Targets)
	case c.Targets > c.Objects:
		return fmt.Errorf("target count %d exceeds object count %d", c.Targets, c.Objects)
	case c.AreaSize <= 0:
		return fmt.Errorf("area size %.1f must be positive", c.AreaSize)
	case c.MouseSensitivity <= 0:
		return fmt.Errorf("mouse sensitivity %g must be positive", c.MouseSensitivity)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("volume %.2f outside [0,1]", c.Volume)
	}
	return nil
}

// ResolveSeed returns Seed, or a clock-derived seed when it is zero.
func (c Config) ResolveSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// WorldParams maps the config onto generator parameters.
func (c Config) WorldParams() world.Params {
	p := world.DefaultParams()
	p.Objects = c.Objects
	p.Targets = c.Targets
	p.AreaSize = c.AreaSize
	return p
}
