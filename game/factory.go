package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pthm-cable/cyberfield/config"
	"github.com/pthm-cable/cyberfield/systems"
)

// Seed offsets keep each system on its own random stream, so the field's
// sequence does not depend on which effects are enabled.
const (
	fieldSeedOffset = iota
	rainSeedOffset
	iconSeedOffset
)

// FieldOptions maps the field and background config sections to field options.
func FieldOptions(cfg *config.Config) systems.FieldOptions {
	f := cfg.Field
	return systems.FieldOptions{
		ConnectionDistance:     f.ConnectionDistance,
		ConnectionOpacityScale: f.ConnectionOpacityScale,
		ConnectionWidth:        f.ConnectionWidth,
		ConnectionColor:        cfg.Derived.ConnectionColor,
		SpeedFactor:            f.SpeedFactor,
		OpacityRange:           systems.Range(f.OpacityRange),
		PulseSpeedRange:        systems.Range(f.PulseSpeedRange),
		RadiusRange:            systems.Range(f.RadiusRange),
		Glow:                   f.Glow,
		Background: systems.Background{
			Inner: cfg.Derived.BackgroundInner,
			Outer: cfg.Derived.BackgroundOuter,
		},
	}
}

// RainOptions maps the rain config section.
func RainOptions(cfg *config.Config) systems.RainOptions {
	r := cfg.Rain
	return systems.RainOptions{
		ColumnWidth:    r.ColumnWidth,
		FontSize:       r.FontSize,
		ResetThreshold: r.ResetThreshold,
		FadeAlpha:      r.FadeAlpha,
		Color:          cfg.Derived.RainColor,
		Charset:        r.Charset,
	}
}

// IconOptions maps the icons config section.
func IconOptions(cfg *config.Config) systems.IconOptions {
	i := cfg.Icons
	return systems.IconOptions{
		Shields:        i.Shields,
		Locks:          i.Locks,
		Codes:          i.Codes,
		CodeSnippets:   i.CodeSnippets,
		Emblems:        i.Emblems,
		EmblemInterval: i.EmblemInterval,
		EmblemLifetime: i.EmblemLifetime,
		EmblemSize:     i.EmblemSize,
	}
}

// TypingTimings maps the typing delays from milliseconds.
func TypingTimings(cfg *config.Config) systems.TypingTimings {
	t := cfg.Typing
	return systems.TypingTimings{
		Type:   time.Duration(t.TypeMS) * time.Millisecond,
		Delete: time.Duration(t.DeleteMS) * time.Millisecond,
		Hold:   time.Duration(t.HoldMS) * time.Millisecond,
		Next:   time.Duration(t.NextMS) * time.Millisecond,
	}
}

// SentinelOptions maps the sentinel config section.
func SentinelOptions(cfg *config.Config) systems.SentinelOptions {
	s := cfg.Sentinel
	return systems.SentinelOptions{
		Width:          s.Width,
		Height:         s.Height,
		MarginRight:    s.MarginRight,
		MarginBottom:   s.MarginBottom,
		MaxPupilOffset: s.MaxPupilOffset,
		PupilDivisor:   s.PupilDivisor,
		Reaction:       seconds(s.ReactionSec),
		Antenna:        seconds(s.AntennaSec),
		Fade:           seconds(s.FadeSec),
		Wave:           seconds(s.WaveSec),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func seededRand(seed int64, offset int) *rand.Rand {
	return rand.New(rand.NewSource(seed + int64(offset)))
}

// NewField creates the particle field described by cfg.
// A zero particle count yields a nil field, which draws nothing.
func NewField(cfg *config.Config, bounds systems.Bounds, seed int64) (*systems.ParticleField, error) {
	if cfg.Field.Count == 0 {
		return nil, nil
	}
	f, err := systems.NewParticleField(cfg.Field.Count, bounds, cfg.Derived.Palette, FieldOptions(cfg), seededRand(seed, fieldSeedOffset))
	if err != nil {
		return nil, fmt.Errorf("creating particle field: %w", err)
	}
	return f, nil
}

// NewRain creates the digital rain, or nil when it is disabled.
func NewRain(cfg *config.Config, bounds systems.Bounds, seed int64) (*systems.MatrixRain, error) {
	if !cfg.Rain.Enabled {
		return nil, nil
	}
	r, err := systems.NewMatrixRain(bounds, RainOptions(cfg), seededRand(seed, rainSeedOffset))
	if err != nil {
		return nil, fmt.Errorf("creating rain: %w", err)
	}
	return r, nil
}

// newEffects creates the icons, typing line and sentinel.
func newEffects(cfg *config.Config, bounds systems.Bounds, seed int64) (*systems.IconSystem, *systems.TypingEffect, *systems.Sentinel, error) {
	icons := systems.NewIconSystem(bounds, IconOptions(cfg), seededRand(seed, iconSeedOffset))

	var typing *systems.TypingEffect
	if len(cfg.Typing.Phrases) > 0 {
		var err error
		if typing, err = systems.NewTypingEffect(cfg.Typing.Phrases, TypingTimings(cfg)); err != nil {
			return nil, nil, nil, fmt.Errorf("creating typing effect: %w", err)
		}
	}

	var sentinel *systems.Sentinel
	if cfg.Sentinel.Enabled {
		sentinel = systems.NewSentinel(bounds, SentinelOptions(cfg))
	}
	return icons, typing, sentinel, nil
}
