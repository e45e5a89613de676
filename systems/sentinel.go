package systems

import (
	"math"
	"time"
)

// SentinelOptions configures the mouse-tracked figure.
type SentinelOptions struct {
	Width, Height  float64
	MarginRight    float64
	MarginBottom   float64
	MaxPupilOffset float64
	PupilDivisor   float64 // Pupil travel is cursor distance / this, capped at MaxPupilOffset
	Reaction       time.Duration
	Antenna        time.Duration
	Fade           time.Duration
	Wave           time.Duration
}

// DefaultSentinelOptions returns the figure's standard geometry and timings.
func DefaultSentinelOptions() SentinelOptions {
	return SentinelOptions{
		Width:          200,
		Height:         250,
		MarginRight:    30,
		MarginBottom:   50,
		MaxPupilOffset: 8,
		PupilDivisor:   20,
		Reaction:       time.Second,
		Antenna:        500 * time.Millisecond,
		Fade:           300 * time.Millisecond,
		Wave:           2 * time.Second,
	}
}

// PupilOffset returns how far the pupils move from their rest position so
// they look from center toward mouse.
func PupilOffset(mouse, center Vec2, maxOffset, divisor float64) Vec2 {
	d := mouse.Sub(center)
	dist := d.Len()
	if dist == 0 || divisor <= 0 {
		return Vec2{}
	}
	angle := math.Atan2(d.Y, d.X)
	travel := math.Min(maxOffset, dist/divisor)
	return Vec2{math.Cos(angle) * travel, math.Sin(angle) * travel}
}

// SentinelState is a snapshot of everything needed to draw the figure.
type SentinelState struct {
	Box        Vec2    // Top-left corner
	Size       Vec2    // Width, height
	EyeCenter  Vec2    // Horizontal centre, one third down the box
	Pupil      Vec2    // Offset applied to both pupils
	Opacity    float64 // 0 when hidden
	Scale      float64 // 0.8 when hidden, 1 when shown
	Excited    bool    // Click reaction in progress
	AntennaLit bool    // Scroll flash in progress
	Wave       float64 // Sound wave progress in [0, 1), negative when inactive
	Bob        float64 // Idle float offset in pixels
}

// Sentinel is a small figure anchored to the bottom-right corner whose eyes
// follow the cursor. It reacts to clicks and scrolls and fades in only while
// the home view is active.
type Sentinel struct {
	opts    SentinelOptions
	bounds  Bounds
	mouse   Vec2
	pupil   Vec2
	active  bool
	visible float64 // Fade progress in [0, 1]
	excited time.Duration
	antenna time.Duration
	wave    time.Duration // Remaining wave time, 0 when inactive
	clock   time.Duration
}

// NewSentinel returns a hidden sentinel placed inside bounds.
func NewSentinel(bounds Bounds, opts SentinelOptions) *Sentinel {
	s := &Sentinel{opts: opts}
	s.Place(bounds)
	return s
}

// Place re-anchors the figure for new surface bounds.
func (s *Sentinel) Place(b Bounds) {
	if s == nil || !b.Valid() {
		return
	}
	s.bounds = b
	s.pupil = PupilOffset(s.mouse, s.eyeCenter(), s.opts.MaxPupilOffset, s.opts.PupilDivisor)
}

func (s *Sentinel) box() Vec2 {
	return Vec2{
		s.bounds.Width - s.opts.MarginRight - s.opts.Width,
		s.bounds.Height - s.opts.MarginBottom - s.opts.Height,
	}
}

func (s *Sentinel) eyeCenter() Vec2 {
	return s.box().Add(Vec2{s.opts.Width / 2, s.opts.Height / 3})
}

// Track updates the cursor position the eyes follow.
func (s *Sentinel) Track(mouse Vec2) {
	if s == nil {
		return
	}
	s.mouse = mouse
	s.pupil = PupilOffset(mouse, s.eyeCenter(), s.opts.MaxPupilOffset, s.opts.PupilDivisor)
}

// Click starts the excited reaction.
func (s *Sentinel) Click() {
	if s == nil {
		return
	}
	s.excited = s.opts.Reaction
}

// Scroll flashes the antenna.
func (s *Sentinel) Scroll() {
	if s == nil {
		return
	}
	s.antenna = s.opts.Antenna
}

// SetHomeActive shows the figure when the home view becomes active and hides
// it otherwise. Showing plays the welcome reaction and a sound wave.
func (s *Sentinel) SetHomeActive(active bool) {
	if s == nil || s.active == active {
		return
	}
	s.active = active
	if active {
		s.excited = 2 * s.opts.Reaction
		s.wave = s.opts.Wave
	}
}

// Active reports whether the figure is shown or fading in.
func (s *Sentinel) Active() bool {
	return s != nil && s.active
}

// Update advances timers and the fade by dt.
func (s *Sentinel) Update(dt time.Duration) {
	if s == nil || dt <= 0 {
		return
	}
	s.clock += dt
	s.excited = countdown(s.excited, dt)
	s.antenna = countdown(s.antenna, dt)
	s.wave = countdown(s.wave, dt)

	step := 1.0
	if s.opts.Fade > 0 {
		step = float64(dt) / float64(s.opts.Fade)
	}
	if s.active {
		s.visible = math.Min(1, s.visible+step)
	} else {
		s.visible = math.Max(0, s.visible-step)
	}
}

func countdown(d, dt time.Duration) time.Duration {
	if d <= dt {
		return 0
	}
	return d - dt
}

// State returns the figure's current drawable state.
func (s *Sentinel) State() SentinelState {
	if s == nil {
		return SentinelState{Wave: -1}
	}
	st := SentinelState{
		Box:        s.box(),
		Size:       Vec2{s.opts.Width, s.opts.Height},
		EyeCenter:  s.eyeCenter(),
		Pupil:      s.pupil,
		Opacity:    s.visible,
		Scale:      0.8 + 0.2*s.visible,
		Excited:    s.excited > 0,
		AntennaLit: s.antenna > 0,
		Wave:       -1,
		Bob:        6 * math.Sin(2*math.Pi*s.clock.Seconds()/4),
	}
	if s.wave > 0 && s.opts.Wave > 0 {
		st.Wave = 1 - float64(s.wave)/float64(s.opts.Wave)
	}
	return st
}
