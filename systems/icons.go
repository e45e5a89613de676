package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cyberfield/components"
)

// Icon colours.
var (
	ShieldOuterColor = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	ShieldInnerColor = color.RGBA{R: 0, G: 136, B: 255, A: 255}
	LockedColor      = color.RGBA{R: 255, G: 0, B: 102, A: 255}
	UnlockedColor    = color.RGBA{R: 0, G: 255, B: 136, A: 255}
	CodeColor        = color.RGBA{R: 0, G: 255, B: 136, A: 255}
	EmblemColor      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
)

// IconOptions configures an IconSystem.
type IconOptions struct {
	Shields        int
	Locks          int
	Codes          int
	CodeSnippets   []string
	Emblems        []string
	EmblemInterval float64 // seconds between spawns (0 = none)
	EmblemLifetime float64 // seconds to cross the screen
	EmblemSize     float64
}

// DefaultIconOptions returns the standard icon mix.
func DefaultIconOptions() IconOptions {
	return IconOptions{
		Shields:        5,
		Locks:          8,
		Codes:          20,
		CodeSnippets:   []string{"01", "10", "11", "00", "SEC", "CTF", "SOC"},
		Emblems:        []string{"SHIELD", "LOCK", "BOLT", "SCAN", "TERM"},
		EmblemInterval: 3,
		EmblemLifetime: 8,
		EmblemSize:     20,
	}
}

// emblemStart is how far left of the surface emblems spawn.
const emblemStart = 50

// IconSurface is what icons need to draw.
type IconSurface interface {
	ShapeSurface
	TextSurface
}

// IconSystem owns the shields, locks, code glyphs and emblems as ECS entities.
// Spin and code drift are frame-locked; emblems move in real time.
type IconSystem struct {
	world *ecs.World
	rng   *rand.Rand
	opts  IconOptions

	spinMapper   *ecs.Map3[components.Position, components.Spin, components.Icon]
	codeMapper   *ecs.Map4[components.Position, components.Velocity, components.Icon, components.Wrap]
	emblemMapper *ecs.Map4[components.Position, components.Velocity, components.Icon, components.Lifetime]

	spinFilter   *ecs.Filter2[components.Spin, components.Icon]
	wrapFilter   *ecs.Filter3[components.Position, components.Velocity, components.Wrap]
	emblemFilter *ecs.Filter3[components.Position, components.Velocity, components.Lifetime]
	drawFilter   *ecs.Filter2[components.Position, components.Icon]

	bounds      Bounds
	spawnTimer  float64
	deadBuf     []ecs.Entity
	pointBuf    []Vec2
	emblemCount int
	spawned     int64
}

// NewIconSystem creates the static icon population inside bounds.
func NewIconSystem(bounds Bounds, opts IconOptions, rng *rand.Rand) *IconSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	world := ecs.NewWorld()

	s := &IconSystem{
		world:        world,
		rng:          rng,
		opts:         opts,
		bounds:       bounds,
		spinMapper:   ecs.NewMap3[components.Position, components.Spin, components.Icon](world),
		codeMapper:   ecs.NewMap4[components.Position, components.Velocity, components.Icon, components.Wrap](world),
		emblemMapper: ecs.NewMap4[components.Position, components.Velocity, components.Icon, components.Lifetime](world),
		spinFilter:   ecs.NewFilter2[components.Spin, components.Icon](world),
		wrapFilter:   ecs.NewFilter3[components.Position, components.Velocity, components.Wrap](world),
		emblemFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Lifetime](world),
		drawFilter:   ecs.NewFilter2[components.Position, components.Icon](world),
	}

	for i := 0; i < opts.Shields; i++ {
		s.spawnShield()
	}
	for i := 0; i < opts.Locks; i++ {
		s.spawnLock()
	}
	if len(opts.CodeSnippets) > 0 {
		for i := 0; i < opts.Codes; i++ {
			s.spawnCode()
		}
	}
	return s
}

func (s *IconSystem) randomPosition() components.Position {
	return components.Position{X: s.rng.Float64() * s.bounds.Width, Y: s.rng.Float64() * s.bounds.Height}
}

func (s *IconSystem) spawnShield() ecs.Entity {
	pos := s.randomPosition()
	spin := components.Spin{Speed: s.rng.Float64()*0.02 + 0.01}
	icon := components.Icon{
		Kind:    components.KindShield,
		Size:    s.rng.Float64()*40 + 30,
		Opacity: s.rng.Float64()*0.3 + 0.1,
	}
	return s.spinMapper.NewEntity(&pos, &spin, &icon)
}

func (s *IconSystem) spawnLock() ecs.Entity {
	pos := s.randomPosition()
	spin := components.Spin{Speed: s.rng.Float64()*0.03 + 0.01}
	icon := components.Icon{
		Kind:    components.KindLock,
		Size:    s.rng.Float64()*25 + 15,
		Opacity: s.rng.Float64()*0.3 + 0.1,
		Locked:  s.rng.Float64() > 0.5,
	}
	return s.spinMapper.NewEntity(&pos, &spin, &icon)
}

func (s *IconSystem) spawnCode() ecs.Entity {
	pos := s.randomPosition()
	vel := components.Velocity{X: s.rng.Float64() - 0.5, Y: s.rng.Float64() - 0.5}
	icon := components.Icon{
		Kind:    components.KindCode,
		Size:    s.rng.Float64()*16 + 12,
		Opacity: s.rng.Float64()*0.4 + 0.2,
		Text:    s.opts.CodeSnippets[s.rng.Intn(len(s.opts.CodeSnippets))],
	}
	return s.codeMapper.NewEntity(&pos, &vel, &icon, &components.Wrap{})
}

// SpawnEmblem launches an emblem from the left edge at a random height.
func (s *IconSystem) SpawnEmblem() ecs.Entity {
	label := "*"
	if len(s.opts.Emblems) > 0 {
		label = s.opts.Emblems[s.rng.Intn(len(s.opts.Emblems))]
	}
	lifetime := s.opts.EmblemLifetime
	if lifetime <= 0 {
		lifetime = 8
	}
	pos := components.Position{X: -emblemStart, Y: s.rng.Float64() * s.bounds.Height}
	// Crosses from -50 to width+50 over its lifetime, in pixels per second
	vel := components.Velocity{X: (s.bounds.Width + 2*emblemStart) / lifetime}
	icon := components.Icon{
		Kind:    components.KindEmblem,
		Size:    s.opts.EmblemSize,
		Opacity: 1,
		Text:    label,
	}
	life := components.Lifetime{Max: lifetime}
	s.emblemCount++
	s.spawned++
	return s.emblemMapper.NewEntity(&pos, &vel, &icon, &life)
}

// Tick advances every icon by one frame of dt seconds.
func (s *IconSystem) Tick(dt float64) {
	if s == nil {
		return
	}

	spins := s.spinFilter.Query()
	for spins.Next() {
		spin, icon := spins.Get()
		icon.Angle = math.Mod(icon.Angle+spin.Speed, 2*math.Pi)
	}

	codes := s.wrapFilter.Query()
	for codes.Next() {
		pos, vel, _ := codes.Get()
		pos.X = wrap(pos.X+vel.X, s.bounds.Width)
		pos.Y = wrap(pos.Y+vel.Y, s.bounds.Height)
	}

	// Collect expired emblems; the world is locked while querying
	s.deadBuf = s.deadBuf[:0]
	emblems := s.emblemFilter.Query()
	for emblems.Next() {
		pos, vel, life := emblems.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		life.Age += dt
		if life.Age >= life.Max {
			s.deadBuf = append(s.deadBuf, emblems.Entity())
		}
	}
	for _, e := range s.deadBuf {
		s.world.RemoveEntity(e)
		s.emblemCount--
	}

	if s.opts.EmblemInterval > 0 {
		s.spawnTimer += dt
		for s.spawnTimer >= s.opts.EmblemInterval {
			s.spawnTimer -= s.opts.EmblemInterval
			s.SpawnEmblem()
		}
	}
}

// Resize updates the bounds icons wrap and spawn within. Shields, locks and
// codes outside the new bounds are clamped to the nearest edge; emblems keep
// their course.
func (s *IconSystem) Resize(b Bounds) {
	if s == nil || !b.Valid() {
		return
	}
	s.bounds = b
	query := s.drawFilter.Query()
	for query.Next() {
		pos, icon := query.Get()
		if icon.Kind == components.KindEmblem {
			continue
		}
		p := b.Clamp(Vec2{pos.X, pos.Y})
		pos.X, pos.Y = p.X, p.Y
	}
}

// Render draws every icon.
func (s *IconSystem) Render(surf IconSurface) {
	if s == nil {
		return
	}
	query := s.drawFilter.Query()
	for query.Next() {
		pos, icon := query.Get()
		center := Vec2{pos.X, pos.Y}
		switch icon.Kind {
		case components.KindShield:
			s.pointBuf = ShieldOutline(s.pointBuf[:0], center, icon.Size, icon.Angle)
			surf.DrawPolyline(s.pointBuf, true, ShieldOuterColor, icon.Opacity, 2)
			surf.DrawPolyline(s.pointBuf, true, ShieldInnerColor, icon.Opacity, 1)
		case components.KindLock:
			s.drawLock(surf, center, icon)
		case components.KindCode:
			surf.DrawText(icon.Text, center, icon.Size, CodeColor, icon.Opacity)
		case components.KindEmblem:
			surf.DrawText(icon.Text, center, icon.Size, EmblemColor, icon.Opacity)
		}
	}
}

func (s *IconSystem) drawLock(surf IconSurface, center Vec2, icon *components.Icon) {
	c := UnlockedColor
	if icon.Locked {
		c = LockedColor
	}
	size := icon.Size

	s.pointBuf = transformed(s.pointBuf[:0], []Vec2{
		{-size * 0.4, 0}, {size * 0.4, 0}, {size * 0.4, size * 0.6}, {-size * 0.4, size * 0.6},
	}, center, icon.Angle)
	surf.DrawPolyline(s.pointBuf, true, c, icon.Opacity, 2)

	s.pointBuf = LockShackle(s.pointBuf[:0], center, size, icon.Angle)
	surf.DrawPolyline(s.pointBuf, false, c, icon.Opacity, 2)

	if icon.Locked {
		s.pointBuf = transformed(s.pointBuf[:0], []Vec2{
			{-size * 0.1, size * 0.1}, {size * 0.1, size * 0.1}, {size * 0.1, size * 0.4}, {-size * 0.1, size * 0.4},
		}, center, icon.Angle)
		surf.FillPolygon(s.pointBuf, c, icon.Opacity)
	}
}

// ShieldOutline appends the six corners of a shield of the given size,
// rotated by angle around center.
func ShieldOutline(dst []Vec2, center Vec2, size, angle float64) []Vec2 {
	return transformed(dst, []Vec2{
		{0, -size},
		{size * 0.6, -size * 0.3},
		{size * 0.6, size * 0.3},
		{0, size},
		{-size * 0.6, size * 0.3},
		{-size * 0.6, -size * 0.3},
	}, center, angle)
}

// shackleSegments is the number of segments approximating the shackle arc.
const shackleSegments = 12

// LockShackle appends the upper half circle above a lock body.
func LockShackle(dst []Vec2, center Vec2, size, angle float64) []Vec2 {
	hub := Vec2{0, -size * 0.2}
	r := size * 0.3
	for i := 0; i <= shackleSegments; i++ {
		// From pi to 2pi sweeps over the top in screen coordinates
		a := math.Pi + math.Pi*float64(i)/shackleSegments
		p := hub.Add(Vec2{math.Cos(a) * r, math.Sin(a) * r})
		dst = append(dst, p.Rotate(angle).Add(center))
	}
	return dst
}

func transformed(dst, local []Vec2, center Vec2, angle float64) []Vec2 {
	for _, p := range local {
		dst = append(dst, p.Rotate(angle).Add(center))
	}
	return dst
}

// IconCounts tallies the live icons by kind.
type IconCounts struct {
	Shields, Locks, Codes, Emblems int
}

// Total returns the number of live icons of all kinds.
func (c IconCounts) Total() int {
	return c.Shields + c.Locks + c.Codes + c.Emblems
}

// Counts returns the number of live icons of each kind.
func (s *IconSystem) Counts() IconCounts {
	var c IconCounts
	if s == nil {
		return c
	}
	query := s.drawFilter.Query()
	for query.Next() {
		_, icon := query.Get()
		switch icon.Kind {
		case components.KindShield:
			c.Shields++
		case components.KindLock:
			c.Locks++
		case components.KindCode:
			c.Codes++
		case components.KindEmblem:
			c.Emblems++
		}
	}
	return c
}

// Emblems returns the number of live emblems.
func (s *IconSystem) Emblems() int {
	if s == nil {
		return 0
	}
	return s.emblemCount
}

// Spawned returns the number of emblems launched so far.
func (s *IconSystem) Spawned() int64 {
	if s == nil {
		return 0
	}
	return s.spawned
}

// ForEach calls fn with every icon's position and state.
// fn must not retain the pointers.
func (s *IconSystem) ForEach(fn func(pos Vec2, icon *components.Icon)) {
	if s == nil {
		return
	}
	query := s.drawFilter.Query()
	for query.Next() {
		pos, icon := query.Get()
		fn(Vec2{pos.X, pos.Y}, icon)
	}
}
