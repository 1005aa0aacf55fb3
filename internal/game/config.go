// Package game is the simulation core: configuration, precision scoring,
// the per-session tick driver and the scene controller hosts attach to.
package game

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tomz197/protector/internal/object"
	"github.com/tomz197/protector/internal/physics"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds every tunable of a session. Use DefaultConfig as a base.
// Positions are in field units with y growing upward.
type Config struct {
	FieldWidth  float64
	FieldHeight float64

	TurretYFraction  float64 // Turret centre height as a share of FieldHeight
	DragBandFraction float64 // Drags move the turret only below this share of FieldHeight
	TurretSize       physics.Size

	TargetSize        physics.Size
	SpawnInterval     time.Duration
	SpawnYMin         float64 // Share of FieldHeight
	SpawnYMax         float64 // Share of FieldHeight
	TargetDurationMin time.Duration
	TargetDurationMax time.Duration

	ProjectileSize     physics.Size
	ProjectileDuration time.Duration

	PrecisionBand float64 // Half-width of the precise zone as a share of target width

	HitLabelLifetime time.Duration // How long hosts show "+1"/"+2" feedback
}

// DefaultConfig returns the stock game tuning.
func DefaultConfig() Config {
	return Config{
		FieldWidth:         400,
		FieldHeight:        600,
		TurretYFraction:    0.1,
		DragBandFraction:   0.2,
		TurretSize:         physics.Size{W: 32, H: 48},
		TargetSize:         physics.Size{W: 64, H: 32},
		SpawnInterval:      time.Second,
		SpawnYMin:          0.2,
		SpawnYMax:          0.9,
		TargetDurationMin:  2 * time.Second,
		TargetDurationMax:  4 * time.Second,
		ProjectileSize:     physics.Size{W: 8, H: 16},
		ProjectileDuration: 500 * time.Millisecond,
		PrecisionBand:      0.25,
		HitLabelLifetime:   400 * time.Millisecond,
	}
}

// Field returns the field dimensions.
func (c Config) Field() physics.Size {
	return physics.Size{W: c.FieldWidth, H: c.FieldHeight}
}

// Validate reports the first setting that would break the simulation.
func (c Config) Validate() error {
	switch {
	case !finitePositive(c.FieldWidth) || !finitePositive(c.FieldHeight):
		return invalid("field size %vx%v must be positive and finite", c.FieldWidth, c.FieldHeight)
	case !positive(c.TurretSize), !positive(c.TargetSize), !positive(c.ProjectileSize):
		return invalid("entity sizes must be positive")
	case c.TurretSize.W > c.FieldWidth:
		return invalid("turret width %v exceeds field width %v", c.TurretSize.W, c.FieldWidth)
	case !fraction(c.TurretYFraction):
		return invalid("turret y fraction %v outside [0,1]", c.TurretYFraction)
	case !fraction(c.DragBandFraction):
		return invalid("drag band fraction %v outside [0,1]", c.DragBandFraction)
	case !fraction(c.SpawnYMin) || !fraction(c.SpawnYMax) || c.SpawnYMin > c.SpawnYMax:
		return invalid("spawn y range [%v,%v] invalid", c.SpawnYMin, c.SpawnYMax)
	case c.SpawnInterval <= 0:
		return invalid("spawn interval %v must be positive", c.SpawnInterval)
	case c.TargetDurationMin <= 0 || c.TargetDurationMin > c.TargetDurationMax:
		return invalid("target duration range [%v,%v] invalid", c.TargetDurationMin, c.TargetDurationMax)
	case c.ProjectileDuration <= 0:
		return invalid("projectile duration %v must be positive", c.ProjectileDuration)
	case !(c.PrecisionBand >= 0 && c.PrecisionBand <= 0.5):
		return invalid("precision band %v outside [0,0.5]", c.PrecisionBand)
	case c.HitLabelLifetime < 0:
		return invalid("hit label lifetime %v must not be negative", c.HitLabelLifetime)
	}
	return nil
}

// spawnSettings converts the spawn shares into absolute field heights.
func (c Config) spawnSettings() object.SpawnSettings {
	return object.SpawnSettings{
		Interval:    c.SpawnInterval,
		MinY:        c.SpawnYMin * c.FieldHeight,
		MaxY:        c.SpawnYMax * c.FieldHeight,
		MinDuration: c.TargetDurationMin,
		MaxDuration: c.TargetDurationMax,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

func positive(s physics.Size) bool {
	return finitePositive(s.W) && finitePositive(s.H)
}

// finitePositive is false for NaN and both infinities.
func finitePositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

// fraction is false for NaN since every comparison with NaN fails.
func fraction(f float64) bool {
	return f >= 0 && f <= 1
}
