// Package renderer draws the cell grid.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agelife/summary"
)

// Palette maps each color class to a pixel color.
type Palette [summary.NumClasses]color.RGBA

// DefaultPalette is black for dead cells, then white to warm to deep red as
// cells age.
func DefaultPalette() Palette {
	return Palette{
		summary.ClassDead:    {R: 0, G: 0, B: 0, A: 255},
		summary.ClassYoung:   {R: 255, G: 255, B: 255, A: 255},
		summary.ClassMiddle:  {R: 255, G: 200, B: 80, A: 255},
		summary.ClassOld:     {R: 230, G: 90, B: 40, A: 255},
		summary.ClassDeepOld: {R: 140, G: 20, B: 30, A: 255},
	}
}

// Color returns the color for class c. Unknown classes draw as dead.
func (p *Palette) Color(c summary.ColorClass) color.RGBA {
	if int(c) >= len(p) {
		return p[summary.ClassDead]
	}
	return p[c]
}

// Paint writes one pixel per class into pixels. It returns false if the
// lengths differ.
func (p *Palette) Paint(pixels []color.RGBA, classes []summary.ColorClass) bool {
	if len(pixels) != len(classes) {
		return false
	}
	for i, c := range classes {
		pixels[i] = p.Color(c)
	}
	return true
}

// CellRenderer holds the grid as a side x side texture, one texel per cell,
// scaled up with point filtering.
type CellRenderer struct {
	Palette Palette

	tex     rl.Texture2D
	side    int
	pixels  []color.RGBA
	screenW float32
	screenH float32

	initialized bool
}

// NewCellRenderer creates a renderer drawing into a size x size square.
func NewCellRenderer(size int32) *CellRenderer {
	return &CellRenderer{
		Palette: DefaultPalette(),
		screenW: float32(size),
		screenH: float32(size),
	}
}

// Init creates the texture (must be called after raylib window is created).
// Calling it again with a new side replaces the texture.
func (r *CellRenderer) Init(side int) {
	if r.initialized && r.side == side {
		return
	}
	if r.initialized {
		rl.UnloadTexture(r.tex)
	}

	r.side = side
	r.pixels = make([]color.RGBA, side*side)

	img := rl.GenImageColor(side, side, rl.Black)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.initialized = true
}

// Update uploads new color classes. classes must hold side*side entries.
func (r *CellRenderer) Update(classes []summary.ColorClass, side int) {
	r.Init(side)
	if !r.Palette.Paint(r.pixels, classes) {
		return
	}
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the region (x, y, w, h), in cells, into the square at the
// top-left corner.
func (r *CellRenderer) Draw(x, y, w, h float32) {
	if !r.initialized {
		return
	}
	src := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
	dst := rl.Rectangle{X: 0, Y: 0, Width: r.screenW, Height: r.screenH}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (r *CellRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
