package systems

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
)

var (
	// ErrInvalidCount is returned when a field is created with a non-positive particle count.
	ErrInvalidCount = errors.New("particle count must be positive")
	// ErrInvalidBounds is returned for bounds with zero or negative area.
	ErrInvalidBounds = errors.New("bounds must have positive width and height")
	// ErrEmptyPalette is returned when no colours are available for particles.
	ErrEmptyPalette = errors.New("palette must not be empty")
	// ErrInvalidOptions is returned for unusable FieldOptions.
	ErrInvalidOptions = errors.New("invalid field options")
)

// FieldOptions configures a ParticleField.
type FieldOptions struct {
	ConnectionDistance     float64 // Max centre distance for a connection
	ConnectionOpacityScale float64 // Connection alpha at zero distance
	ConnectionWidth        float64
	ConnectionColor        color.RGBA
	SpeedFactor            float64 // Velocity components in [-2, 2] * SpeedFactor
	OpacityRange           Range   // Pulse bounds
	PulseSpeedRange        Range   // Per-particle pulse step, sampled once
	RadiusRange            Range
	Glow                   float64 // Halo radius as a multiple of the particle radius (0 = off)
	Background             Background
}

// DefaultFieldOptions returns the options of the standalone page field.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{
		ConnectionDistance:     120,
		ConnectionOpacityScale: 0.3,
		ConnectionWidth:        0.5,
		ConnectionColor:        color.RGBA{R: 0, G: 255, B: 255, A: 255},
		SpeedFactor:            0.5,
		OpacityRange:           Range{Min: 0.2, Max: 1},
		PulseSpeedRange:        Range{Min: 0.02, Max: 0.05},
		RadiusRange:            Range{Min: 1, Max: 3},
		Glow:                   3,
		Background: Background{
			Inner: color.RGBA{R: 0, G: 20, B: 40, A: 26},
			Outer: color.RGBA{R: 0, G: 0, B: 0, A: 77},
		},
	}
}

func (o FieldOptions) validate() error {
	switch {
	case !(o.ConnectionDistance > 0):
		return fmt.Errorf("%w: connection distance %g", ErrInvalidOptions, o.ConnectionDistance)
	case o.ConnectionOpacityScale < 0:
		return fmt.Errorf("%w: connection opacity scale %g", ErrInvalidOptions, o.ConnectionOpacityScale)
	case o.SpeedFactor < 0:
		return fmt.Errorf("%w: speed factor %g", ErrInvalidOptions, o.SpeedFactor)
	case !o.OpacityRange.Valid():
		return fmt.Errorf("%w: opacity range [%g, %g]", ErrInvalidOptions, o.OpacityRange.Min, o.OpacityRange.Max)
	case !o.PulseSpeedRange.Valid() || o.PulseSpeedRange.Min < 0:
		return fmt.Errorf("%w: pulse speed range [%g, %g]", ErrInvalidOptions, o.PulseSpeedRange.Min, o.PulseSpeedRange.Max)
	case !o.RadiusRange.Valid() || o.RadiusRange.Min <= 0:
		return fmt.Errorf("%w: radius range [%g, %g]", ErrInvalidOptions, o.RadiusRange.Min, o.RadiusRange.Max)
	}
	return nil
}

// Particle is a single moving point.
type Particle struct {
	Pos        Vec2
	Vel        Vec2
	Radius     float64
	Color      color.RGBA
	Opacity    float64
	PulseDir   float64 // +1 or -1
	PulseSpeed float64
}

// step advances the particle by one frame inside b.
func (p *Particle) step(b Bounds, opacity Range) {
	// Reflect before crossing an edge
	if nx := p.Pos.X + p.Vel.X; nx < 0 || nx > b.Width {
		p.Vel.X = -p.Vel.X
	}
	if ny := p.Pos.Y + p.Vel.Y; ny < 0 || ny > b.Height {
		p.Vel.Y = -p.Vel.Y
	}
	p.Pos = b.Clamp(p.Pos.Add(p.Vel))

	// Ping-pong pulse; a one-frame overshoot past the range is allowed
	p.Opacity += p.PulseDir * p.PulseSpeed
	if p.Opacity <= opacity.Min || p.Opacity >= opacity.Max {
		p.PulseDir = -p.PulseDir
	}
}

// Connection is a pair of particles closer than the connection distance.
type Connection struct {
	I, J     int
	A, B     Vec2
	Distance float64
	Alpha    float64
}

// ConnectionAlpha returns the line alpha for two particles distance apart.
// It falls linearly from scale at distance 0 to 0 at threshold.
func ConnectionAlpha(distance, threshold, scale float64) float64 {
	if threshold <= 0 || distance >= threshold {
		return 0
	}
	return (threshold - distance) / threshold * scale
}

// ParticleField owns a fixed population of particles, advances them once per
// frame and renders them with proximity connections.
//
// A nil *ParticleField is a valid empty field: every method is a no-op.
type ParticleField struct {
	particles []Particle
	links     []Connection
	bounds    Bounds
	palette   []color.RGBA
	opts      FieldOptions
	rng       *rand.Rand
	ticks     int64
}

// NewParticleField creates count particles spread uniformly over bounds.
// rng drives every random choice; a nil rng uses a fixed seed.
func NewParticleField(count int, bounds Bounds, palette []color.RGBA, opts FieldOptions, rng *rand.Rand) (*ParticleField, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidBounds, bounds.Width, bounds.Height)
	}
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	f := &ParticleField{
		particles: make([]Particle, count),
		links:     make([]Connection, 0, count),
		bounds:    bounds,
		palette:   append([]color.RGBA(nil), palette...),
		opts:      opts,
		rng:       rng,
	}
	for i := range f.particles {
		f.particles[i] = f.spawn()
	}
	f.computeConnections()
	return f, nil
}

// spawn returns a fresh random particle inside the current bounds.
func (f *ParticleField) spawn() Particle {
	speed := Range{Min: -2 * f.opts.SpeedFactor, Max: 2 * f.opts.SpeedFactor}
	dir := -1.0
	if f.rng.Float64() > 0.5 {
		dir = 1
	}
	return Particle{
		Pos:        Vec2{f.rng.Float64() * f.bounds.Width, f.rng.Float64() * f.bounds.Height},
		Vel:        Vec2{speed.Sample(f.rng), speed.Sample(f.rng)},
		Radius:     f.opts.RadiusRange.Sample(f.rng),
		Color:      f.palette[f.rng.Intn(len(f.palette))],
		Opacity:    f.opts.OpacityRange.Sample(f.rng),
		PulseDir:   dir,
		PulseSpeed: f.opts.PulseSpeedRange.Sample(f.rng),
	}
}

// Tick advances every particle by one frame and recomputes connections.
// It has no side effects outside the field.
func (f *ParticleField) Tick() {
	if f == nil {
		return
	}
	for i := range f.particles {
		f.particles[i].step(f.bounds, f.opts.OpacityRange)
	}
	f.computeConnections()
	f.ticks++
}

// computeConnections runs the all-pairs distance scan.
func (f *ParticleField) computeConnections() {
	f.links = f.links[:0]
	threshold := f.opts.ConnectionDistance
	thresholdSq := threshold * threshold

	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i].Pos
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j].Pos
			dx := a.X - b.X
			dy := a.Y - b.Y
			distSq := dx*dx + dy*dy
			if distSq >= thresholdSq {
				continue
			}
			dist := math.Sqrt(distSq)
			f.links = append(f.links, Connection{
				I:        i,
				J:        j,
				A:        a,
				B:        b,
				Distance: dist,
				Alpha:    ConnectionAlpha(dist, threshold, f.opts.ConnectionOpacityScale),
			})
		}
	}
}

// Render draws the background, then connections, then particles, so lines
// never cover a particle. Render does not modify the field.
func (f *ParticleField) Render(s Surface) {
	if f == nil || len(f.particles) == 0 {
		return
	}

	s.PaintBackground(f.bounds, f.opts.Background)

	for _, c := range f.links {
		s.DrawLine(c.A, c.B, f.opts.ConnectionColor, c.Alpha, f.opts.ConnectionWidth)
	}

	glow, hasGlow := s.(GlowSurface)
	hasGlow = hasGlow && f.opts.Glow > 0
	for i := range f.particles {
		p := &f.particles[i]
		opacity := clamp01(p.Opacity)
		if hasGlow {
			glow.DrawGlow(p.Pos, p.Radius*f.opts.Glow, p.Color, opacity)
		}
		s.DrawCircle(p.Pos, p.Radius, p.Color, opacity)
	}
}

// Resize changes the bounds. Particles keep their velocities; any particle
// now outside is clamped to the nearest edge.
func (f *ParticleField) Resize(b Bounds) error {
	if f == nil {
		return nil
	}
	if !b.Valid() {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidBounds, b.Width, b.Height)
	}
	f.bounds = b
	for i := range f.particles {
		f.particles[i].Pos = b.Clamp(f.particles[i].Pos)
	}
	return nil
}

// Reset replaces every particle with a fresh random one. The count is unchanged.
func (f *ParticleField) Reset() {
	if f == nil {
		return
	}
	for i := range f.particles {
		f.particles[i] = f.spawn()
	}
	f.computeConnections()
}

// Restore replaces the particles with ps, which must hold exactly Count
// particles. Positions are clamped into the current bounds.
func (f *ParticleField) Restore(ps []Particle) error {
	if f == nil {
		return nil
	}
	if len(ps) != len(f.particles) {
		return fmt.Errorf("%w: restoring %d particles into a field of %d", ErrInvalidCount, len(ps), len(f.particles))
	}
	copy(f.particles, ps)
	for i := range f.particles {
		f.particles[i].Pos = f.bounds.Clamp(f.particles[i].Pos)
	}
	f.computeConnections()
	return nil
}

// Nearest returns the index of the particle closest to p within maxDist.
func (f *ParticleField) Nearest(p Vec2, maxDist float64) (int, bool) {
	if f == nil {
		return -1, false
	}
	best := -1
	bestSq := maxDist * maxDist
	for i := range f.particles {
		d := f.particles[i].Pos.Sub(p)
		if sq := d.X*d.X + d.Y*d.Y; sq <= bestSq {
			best, bestSq = i, sq
		}
	}
	return best, best >= 0
}

// At returns a copy of particle i.
func (f *ParticleField) At(i int) (Particle, bool) {
	if f == nil || i < 0 || i >= len(f.particles) {
		return Particle{}, false
	}
	return f.particles[i], true
}

// Degree returns how many connections particle i has.
func (f *ParticleField) Degree(i int) int {
	if f == nil {
		return 0
	}
	n := 0
	for _, c := range f.links {
		if c.I == i || c.J == i {
			n++
		}
	}
	return n
}

// Count returns the number of particles.
func (f *ParticleField) Count() int {
	if f == nil {
		return 0
	}
	return len(f.particles)
}

// Bounds returns the current bounds.
func (f *ParticleField) Bounds() Bounds {
	if f == nil {
		return Bounds{}
	}
	return f.bounds
}

// Options returns the field's options.
func (f *ParticleField) Options() FieldOptions {
	if f == nil {
		return FieldOptions{}
	}
	return f.opts
}

// Ticks returns the number of frames advanced so far.
func (f *ParticleField) Ticks() int64 {
	if f == nil {
		return 0
	}
	return f.ticks
}

// Particles appends a copy of every particle to dst and returns it.
func (f *ParticleField) Particles(dst []Particle) []Particle {
	if f == nil {
		return dst
	}
	return append(dst, f.particles...)
}

// Connections returns the connections found by the last Tick.
// The slice is owned by the field and is overwritten on the next Tick.
func (f *ParticleField) Connections() []Connection {
	if f == nil {
		return nil
	}
	return f.links
}
