package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/inkbeat/beat"
	"github.com/lixenwraith/inkbeat/logger"
	"github.com/lixenwraith/inkbeat/parameter"
)

// EnvPrefix prefixes every environment key
const EnvPrefix = "INKBEAT_"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the prototype
type Config struct {
	AudioPath string
	BeatsPath string // Empty derives <audio>.beats.json

	TickRate int // Simulation ticks per second
	Wave     string

	Debug    bool
	LogLevel string
	LogFile  string

	AudioEnabled bool
	Volume       int // 0-100
	Metronome    bool

	QuillSpeed         float64
	InkLifetimeBeats   int
	EnemyLifetimeBeats int
	EnemySpawnEvery    int
	InkOnBeat          bool

	Watch bool // Hot-reload the beats document on change
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		TickRate:           parameter.DefaultTickRate,
		Wave:               "triangle",
		LogLevel:           "debug",
		LogFile:            logger.DefaultLogPath,
		AudioEnabled:       true,
		Volume:             parameter.DefaultVolume,
		Metronome:          false,
		QuillSpeed:         parameter.QuillSpeed,
		InkLifetimeBeats:   parameter.InkLifetimeBeats,
		EnemyLifetimeBeats: parameter.EnemyLifetimeBeats,
		EnemySpawnEvery:    parameter.EnemySpawnEvery,
	}
}

// Load returns defaults overlaid with an optional .env file and INKBEAT_* variables
// Existing environment variables take precedence over .env entries
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.AudioPath = getEnv("AUDIO_PATH", c.AudioPath)
	c.BeatsPath = getEnv("BEATS_PATH", c.BeatsPath)
	c.TickRate = getEnvInt("TICK_RATE", c.TickRate)
	c.Wave = getEnv("WAVE", c.Wave)
	c.Debug = getEnvBool("DEBUG", c.Debug)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.AudioEnabled = getEnvBool("AUDIO_ENABLED", c.AudioEnabled)
	c.Volume = getEnvInt("VOLUME", c.Volume)
	c.Metronome = getEnvBool("METRONOME", c.Metronome)
	c.QuillSpeed = getEnvFloat("QUILL_SPEED", c.QuillSpeed)
	c.InkLifetimeBeats = getEnvInt("INK_LIFETIME_BEATS", c.InkLifetimeBeats)
	c.EnemyLifetimeBeats = getEnvInt("ENEMY_LIFETIME_BEATS", c.EnemyLifetimeBeats)
	c.EnemySpawnEvery = getEnvInt("ENEMY_SPAWN_EVERY", c.EnemySpawnEvery)
	c.InkOnBeat = getEnvBool("INK_ON_BEAT", c.InkOnBeat)
	c.Watch = getEnvBool("WATCH", c.Watch)
}

// Validate checks ranges and resolves names
func (c *Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick rate %d out of range 1-1000", c.TickRate))
	}
	if _, err := beat.WaveByName(c.Wave); err != nil {
		errs = append(errs, err)
	}
	if c.Volume < 0 || c.Volume > 100 {
		errs = append(errs, fmt.Errorf("volume %d out of range 0-100", c.Volume))
	}
	if c.QuillSpeed <= 0 || c.QuillSpeed > 1 {
		errs = append(errs, fmt.Errorf("quill speed %.3f out of range (0,1]", c.QuillSpeed))
	}
	if c.InkLifetimeBeats < 1 || c.EnemyLifetimeBeats < 1 {
		errs = append(errs, errors.New("lifetimes must be at least one beat"))
	}
	if c.EnemySpawnEvery < 1 {
		errs = append(errs, fmt.Errorf("enemy spawn interval %d must be positive", c.EnemySpawnEvery))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// TickInterval returns the fixed simulation step
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / parameter.DefaultTickRate
	}
	return time.Second / time.Duration(c.TickRate)
}

// WaveFunc resolves the configured wave, falling back to triangle
func (c *Config) WaveFunc() beat.Wave {
	if w, err := beat.WaveByName(c.Wave); err == nil {
		return w
	}
	return beat.Triangle
}

// VolumeFraction returns volume as 0.0-1.0
func (c *Config) VolumeFraction() float64 {
	return float64(c.Volume) / 100.0
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return v
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		if v, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return v
		}
	}
	return fallback
}
