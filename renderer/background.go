package renderer

import (
	_ "embed"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed shaders/background.fs
var backgroundShader string

// BackgroundRenderer paints a radial gradient from the screen centre to the
// farthest corner. Colours with alpha below 255 blend over the previous frame.
type BackgroundRenderer struct {
	shader        rl.Shader
	resolutionLoc int32
	innerLoc      int32
	outerLoc      int32

	screenW, screenH float32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", backgroundShader)
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.innerLoc = rl.GetShaderLocation(b.shader, "innerColor")
	b.outerLoc = rl.GetShaderLocation(b.shader, "outerColor")

	b.setResolution()
	b.initialized = true
}

func (b *BackgroundRenderer) setResolution() {
	resolution := []float32{b.screenW, b.screenH}
	rl.SetShaderValue(b.shader, b.resolutionLoc, resolution, rl.ShaderUniformVec2)
}

// Resize updates the gradient's extent.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = float32(screenW)
	b.screenH = float32(screenH)
	if b.initialized {
		b.setResolution()
	}
}

// Draw paints the gradient over the whole screen.
func (b *BackgroundRenderer) Draw(inner, outer color.RGBA) {
	if !b.initialized {
		b.Init()
	}

	rl.SetShaderValue(b.shader, b.innerLoc, normalized(inner), rl.ShaderUniformVec4)
	rl.SetShaderValue(b.shader, b.outerLoc, normalized(outer), rl.ShaderUniformVec4)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}

func normalized(c color.RGBA) []float32 {
	return []float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
		float32(c.A) / 255.0,
	}
}
