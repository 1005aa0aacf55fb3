package config

import (
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/protector/internal/game"
)

// Environment variables read by the binaries.
const (
	EnvFieldWidth         = "PROTECTOR_FIELD_WIDTH"
	EnvFieldHeight        = "PROTECTOR_FIELD_HEIGHT"
	EnvSpawnInterval      = "PROTECTOR_SPAWN_INTERVAL"
	EnvProjectileDuration = "PROTECTOR_PROJECTILE_DURATION"
	EnvDragBand           = "PROTECTOR_DRAG_BAND"
	EnvPrecisionBand      = "PROTECTOR_PRECISION_BAND"
	EnvSeed               = "PROTECTOR_SEED"
	EnvLogLevel           = "PROTECTOR_LOG_LEVEL"
	EnvLogFile            = "PROTECTOR_LOG_FILE"
	EnvSound              = "PROTECTOR_SOUND"
)

// GameConfig returns game.DefaultConfig with environment overrides applied
// and validated.
func GameConfig() (game.Config, error) {
	cfg := game.DefaultConfig()

	var errs []error
	float := func(key string, dst *float64) {
		v, err := GetEnvFloat(key, *dst)
		errs = append(errs, err)
		*dst = v
	}
	duration := func(key string, dst *time.Duration) {
		v, err := GetEnvDuration(key, *dst)
		errs = append(errs, err)
		*dst = v
	}

	float(EnvFieldWidth, &cfg.FieldWidth)
	float(EnvFieldHeight, &cfg.FieldHeight)
	duration(EnvSpawnInterval, &cfg.SpawnInterval)
	duration(EnvProjectileDuration, &cfg.ProjectileDuration)
	float(EnvDragBand, &cfg.DragBandFraction)
	float(EnvPrecisionBand, &cfg.PrecisionBand)

	if err := errors.Join(errs...); err != nil {
		return game.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Rand returns a PCG source seeded from PROTECTOR_SEED, or nil when the seed
// is unset so the caller keeps its own default.
func Rand() (*rand.Rand, error) {
	seed, ok, err := GetEnvUint(EnvSeed)
	if err != nil || !ok {
		return nil, err
	}
	return rand.New(rand.NewPCG(seed, seed)), nil
}

// EffectRand is Rand for visual effects. It shares the seed but runs its own
// stream, so effects never shift the spawn sequence.
func EffectRand() (*rand.Rand, error) {
	seed, ok, err := GetEnvUint(EnvSeed)
	if err != nil || !ok {
		return nil, err
	}
	return rand.New(rand.NewPCG(seed, ^seed)), nil
}

// SoundEnabled reports whether PROTECTOR_SOUND allows audio. Default is on.
func SoundEnabled() (bool, error) {
	return GetEnvBool(EnvSound, true)
}

// Logger builds a logger at PROTECTOR_LOG_LEVEL (default info) writing to
// PROTECTOR_LOG_FILE when set and to fallback otherwise. The returned closer
// releases the log file.
func Logger(prefix string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(GetEnv(EnvLogLevel, "info"))
	if err != nil {
		return nil, nil, err
	}

	w, closer := fallback, io.Closer(nopCloser{})
	if path := GetEnv(EnvLogFile, ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
