package renderer

import (
	"image/color"
	"math"

	"github.com/pthm-cable/cyberfield/systems"
)

// Sentinel colours.
var (
	sentinelShell   = color.RGBA{R: 26, G: 42, B: 58, A: 255}
	sentinelEdge    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	sentinelEye     = color.RGBA{R: 10, G: 16, B: 24, A: 255}
	sentinelPupil   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	sentinelMouth   = color.RGBA{R: 0, G: 255, B: 136, A: 255}
	sentinelExcited = color.RGBA{R: 255, G: 107, B: 107, A: 255}
	antennaIdle     = color.RGBA{R: 255, G: 0, B: 102, A: 255}
	antennaLit      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	statusLights    = [...]color.RGBA{
		{R: 0, G: 255, B: 136, A: 255},
		{R: 0, G: 136, B: 255, A: 255},
		{R: 255, G: 153, B: 0, A: 255},
	}
)

// sentinelPalette groups the colours a SentinelRenderer uses.
type sentinelPalette struct {
	shell, edge, eye, pupil color.RGBA
}

// SentinelRenderer draws the mouse-tracked figure from its state.
type SentinelRenderer struct {
	pal sentinelPalette
	buf []systems.Vec2
}

// NewSentinelRenderer creates a sentinel renderer.
func NewSentinelRenderer() *SentinelRenderer {
	return &SentinelRenderer{pal: sentinelPalette{
		shell: sentinelShell,
		edge:  sentinelEdge,
		eye:   sentinelEye,
		pupil: sentinelPupil,
	}}
}

// Draw renders the figure. Nothing is drawn while it is fully hidden.
func (r *SentinelRenderer) Draw(c systems.Canvas, st systems.SentinelState) {
	if st.Opacity <= 0 {
		return
	}
	op := st.Opacity
	w, h := st.Size.X*st.Scale, st.Size.Y*st.Scale

	// Scale around the box centre, then bob
	origin := st.Box.Add(systems.Vec2{X: (st.Size.X - w) / 2, Y: (st.Size.Y-h)/2 + st.Bob})
	if st.Excited {
		origin.Y -= 4 * math.Abs(math.Sin(st.Bob))
	}
	at := func(fx, fy float64) systems.Vec2 {
		return origin.Add(systems.Vec2{X: fx * w, Y: fy * h})
	}

	// Head
	head := r.rect(at(0.2, 0.08), at(0.8, 0.45))
	c.FillPolygon(head, r.pal.shell, op)
	c.DrawPolyline(head, true, r.pal.edge, op, 2)

	// Antenna
	c.DrawLine(at(0.5, 0.08), at(0.5, 0.0), r.pal.edge, op, 2)
	light := antennaIdle
	if st.AntennaLit {
		light = antennaLit
	}
	c.DrawCircle(at(0.5, 0.0), 0.025*w+2, light, op)

	// Eyes: pupils share the tracked offset
	eyeR := 0.07 * w
	pupilR := 0.035 * w
	for _, fx := range [2]float64{0.37, 0.63} {
		center := at(fx, 0.25)
		c.DrawCircle(center, eyeR, r.pal.eye, op)
		c.DrawCircle(center.Add(st.Pupil.Scale(st.Scale)), pupilR, r.pal.pupil, op)
	}

	// Mouth turns red and round while excited
	mouthColor := sentinelMouth
	if st.Excited {
		mouthColor = sentinelExcited
		c.DrawCircle(at(0.5, 0.37), 0.05*w, mouthColor, op)
	} else {
		c.FillPolygon(r.rect(at(0.4, 0.35), at(0.6, 0.39)), mouthColor, op)
	}

	// Neck and body
	c.FillPolygon(r.rect(at(0.45, 0.45), at(0.55, 0.5)), r.pal.shell, op)
	body := r.rect(at(0.25, 0.5), at(0.75, 0.82))
	c.FillPolygon(body, r.pal.shell, op)
	c.DrawPolyline(body, true, r.pal.edge, op, 2)
	for i, lc := range statusLights {
		c.DrawCircle(at(0.4+0.1*float64(i), 0.6), 0.02*w+1, lc, op)
	}

	// Arms and legs
	c.DrawLine(at(0.25, 0.55), at(0.12, 0.75), r.pal.edge, op, 3)
	c.DrawLine(at(0.75, 0.55), at(0.88, 0.75), r.pal.edge, op, 3)
	c.DrawLine(at(0.4, 0.82), at(0.4, 0.97), r.pal.edge, op, 3)
	c.DrawLine(at(0.6, 0.82), at(0.6, 0.97), r.pal.edge, op, 3)

	// Sound wave ring expands and fades
	if st.Wave >= 0 {
		r.buf = ring(r.buf[:0], at(0.5, 0.5), 50+100*st.Wave, 32)
		c.DrawPolyline(r.buf, true, sentinelEdge, op*(1-st.Wave), 2)
	}
}

func (r *SentinelRenderer) rect(min, max systems.Vec2) []systems.Vec2 {
	r.buf = append(r.buf[:0],
		min,
		systems.Vec2{X: max.X, Y: min.Y},
		max,
		systems.Vec2{X: min.X, Y: max.Y},
	)
	return r.buf
}

func ring(dst []systems.Vec2, center systems.Vec2, radius float64, segments int) []systems.Vec2 {
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		dst = append(dst, center.Add(systems.Vec2{X: math.Cos(a) * radius, Y: math.Sin(a) * radius}))
	}
	return dst
}
