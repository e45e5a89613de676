package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cyberfield/systems"
)

// RainLayer keeps the digital rain on its own render texture so the trails
// persist between frames, then composites it at a fixed opacity.
type RainLayer struct {
	target      rl.RenderTexture2D
	canvas      *RaylibCanvas
	opacity     float32
	w, h        int32
	initialized bool
}

// NewRainLayer creates a rain layer composited at opacity.
func NewRainLayer(screenW, screenH int32, opacity float64) *RainLayer {
	return &RainLayer{
		canvas:  NewRaylibCanvas(screenW, screenH),
		opacity: float32(opacity),
		w:       screenW,
		h:       screenH,
	}
}

// Init allocates the render texture (must be called after raylib window is created).
func (l *RainLayer) Init() {
	if l.initialized {
		return
	}
	l.target = rl.LoadRenderTexture(l.w, l.h)
	rl.BeginTextureMode(l.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
	l.initialized = true
}

// Resize reallocates the texture. The old trails are dropped.
func (l *RainLayer) Resize(screenW, screenH int32) {
	l.w, l.h = screenW, screenH
	l.canvas.Resize(screenW, screenH)
	if l.initialized {
		rl.UnloadRenderTexture(l.target)
		l.initialized = false
		l.Init()
	}
}

// Update draws this frame's rain into the layer.
// Must be called outside BeginDrawing/EndDrawing.
func (l *RainLayer) Update(rain *systems.MatrixRain) {
	if !l.initialized {
		l.Init()
	}
	rl.BeginTextureMode(l.target)
	rain.Render(l.canvas)
	rl.EndTextureMode()
}

// Draw composites the layer onto the screen.
func (l *RainLayer) Draw() {
	if !l.initialized {
		return
	}
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(l.w), Height: -float32(l.h)}
	tint := rl.Fade(rl.White, l.opacity)
	rl.DrawTextureRec(l.target.Texture, src, rl.Vector2{}, tint)
}

// DrawCalls returns the number of primitives drawn into the layer.
func (l *RainLayer) DrawCalls() int {
	return l.canvas.DrawCalls()
}

// ResetDrawCalls zeroes the layer's draw counter.
func (l *RainLayer) ResetDrawCalls() {
	l.canvas.ResetDrawCalls()
}

// Unload frees resources.
func (l *RainLayer) Unload() {
	if l.initialized {
		rl.UnloadRenderTexture(l.target)
		l.initialized = false
	}
	l.canvas.Unload()
}
