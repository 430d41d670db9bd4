// Package render is a software drawing surface with canvas-style helpers.
//
// A Canvas owns its pixels and its drawing state (fill and stroke colour,
// line width, transform). Drawing calls update that state and it stays in
// effect until changed, like a CanvasRenderingContext2D. A Canvas is not
// safe for concurrent use.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/faiface/pixel"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/vector"

	"github.com/supermuesli/poly"
)

// ErrInvalidSize is returned for surface dimensions that are not positive.
var ErrInvalidSize = errors.New("render: invalid surface size")

// Canvas is a drawing surface together with its drawing state.
type Canvas struct {
	img *image.RGBA

	fill      color.Color
	stroke    color.Color
	lineWidth float64
	matrix    pixel.Matrix
	stack     []pixel.Matrix

	smoothing bool
	style     Style
	face      font.Face

	z vector.Rasterizer
}

// NewCanvas prepares a transparent surface of width×height pixels.
func NewCanvas(width, height int, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		matrix:    pixel.IM,
		smoothing: o.smoothing,
		face:      o.face,
	}
	if c.face == nil {
		c.face = basicfont.Face7x13
	}
	c.SetStyle(o.style)
	if err := c.SetSize(width, height); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSize replaces the surface with a transparent one of the given size and
// resets the transform. Paint settings are kept.
func (c *Canvas) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.matrix = pixel.IM
	c.stack = c.stack[:0]
	poly.Logger().Debug("render: surface resized", "width", width, "height", height)
	return nil
}

// Size returns the surface dimensions.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the surface rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// BeginDraw starts a frame: the transform goes back to identity and any
// unbalanced Save is discarded.
func (c *Canvas) BeginDraw() {
	c.matrix = pixel.IM
	c.stack = c.stack[:0]
}

// SetSmoothing selects bilinear (true) or nearest-neighbour (false)
// sampling for scaled images.
func (c *Canvas) SetSmoothing(on bool) { c.smoothing = on }

// Smoothing reports the image sampling mode.
func (c *Canvas) Smoothing() bool { return c.smoothing }

// SetFillColor sets the colour used by fills.
func (c *Canvas) SetFillColor(col color.Color) { c.fill = col }

// FillColor returns the current fill colour.
func (c *Canvas) FillColor() color.Color { return c.fill }

// SetStrokeColor sets the colour used by lines and outlines.
func (c *Canvas) SetStrokeColor(col color.Color) { c.stroke = col }

// StrokeColor returns the current stroke colour.
func (c *Canvas) StrokeColor() color.Color { return c.stroke }

// SetLineWidth sets the stroke thickness. Zero, negative, infinite and NaN
// widths are ignored and the previous width stays.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 1) {
		c.lineWidth = w
	}
}

// LineWidth returns the stroke thickness.
func (c *Canvas) LineWidth() float64 { return c.lineWidth }

// Clear fills the whole surface with col, replacing what was there. The
// transform does not apply.
func (c *Canvas) Clear(col color.Color) {
	c.fill = col
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Pixel sets the single pixel containing the transformed point (x, y).
func (c *Canvas) Pixel(x, y float64, col color.Color) {
	c.fill = col
	p := c.matrix.Project(pixel.V(x, y))
	c.img.Set(int(math.Floor(p.X)), int(math.Floor(p.Y)), col)
}

// FillRect fills the rectangle at (x, y) of size w×h. Negative sizes extend
// left or up.
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	c.fill = col
	r := pixel.R(x, y, x+w, y+h).Norm()
	c.fillContours(c.fill, rectContour(r, false))
}

// Line strokes a segment from (x1, y1) to (x2, y2) with butt caps.
func (c *Canvas) Line(x1, y1, x2, y2 float64, col color.Color, thickness float64) {
	c.stroke = col
	c.SetLineWidth(thickness)

	a, b := pixel.V(x1, y1), pixel.V(x2, y2)
	d := b.Sub(a)
	if d.Len() == 0 {
		return
	}
	n := d.Normal().Unit().Scaled(c.lineWidth / 2)
	c.fillContours(c.stroke, []pixel.Vec{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
}

// LineDelta is Line with the end point given as an offset from the start.
func (c *Canvas) LineDelta(x, y, dx, dy float64, col color.Color, thickness float64) {
	c.Line(x, y, x+dx, y+dy, col, thickness)
}

// StrokeRect outlines the rectangle at (x, y) of size w×h. The outline is
// centred on the edges.
func (c *Canvas) StrokeRect(x, y, w, h float64, col color.Color, thickness float64) {
	c.stroke = col
	c.SetLineWidth(thickness)

	r := pixel.R(x, y, x+w, y+h).Norm()
	half := c.lineWidth / 2
	outer := pixel.R(r.Min.X-half, r.Min.Y-half, r.Max.X+half, r.Max.Y+half)
	if r.W() <= c.lineWidth || r.H() <= c.lineWidth {
		c.fillContours(c.stroke, rectContour(outer, false))
		return
	}
	inner := pixel.R(r.Min.X+half, r.Min.Y+half, r.Max.X-half, r.Max.Y-half)
	c.fillContours(c.stroke, rectContour(outer, false), rectContour(inner, true))
}

// fillContours projects the contours through the transform and fills them.
func (c *Canvas) fillContours(col color.Color, contours ...[]pixel.Vec) {
	projected := make([][]pixel.Vec, len(contours))
	for i, contour := range contours {
		pts := make([]pixel.Vec, len(contour))
		for j, p := range contour {
			pts[j] = c.matrix.Project(p)
		}
		projected[i] = pts
	}
	rasterize(&c.z, c.img, image.NewUniform(col), draw.Over, projected...)
}

// Translate moves the origin to (dx, dy) in the current frame.
func (c *Canvas) Translate(dx, dy float64) {
	c.matrix = pixel.IM.Moved(pixel.V(dx, dy)).Chained(c.matrix)
}

// Rotate turns the current frame by angle radians, clockwise on screen.
func (c *Canvas) Rotate(angle float64) {
	c.matrix = pixel.IM.Rotated(pixel.ZV, angle).Chained(c.matrix)
}

// Scale scales the current frame.
func (c *Canvas) Scale(sx, sy float64) {
	c.matrix = pixel.IM.ScaledXY(pixel.ZV, pixel.V(sx, sy)).Chained(c.matrix)
}

// Transform returns the current transform, mapping user space to pixels.
func (c *Canvas) Transform() pixel.Matrix { return c.matrix }

// ResetTransform sets the transform to identity.
func (c *Canvas) ResetTransform() { c.matrix = pixel.IM }

// Save snapshots the transform and returns the function restoring it.
// Restoring also drops any Save nested inside, so
//
//	defer c.Save()()
//
// leaves the transform as it found it on every return path.
func (c *Canvas) Save() (restore func()) {
	depth := len(c.stack)
	c.stack = append(c.stack, c.matrix)
	return func() {
		if depth >= len(c.stack) {
			return
		}
		c.matrix = c.stack[depth]
		c.stack = c.stack[:depth]
	}
}

// At returns the colour of the pixel at (x, y).
func (c *Canvas) At(x, y int) color.Color { return c.img.At(x, y) }

// Image returns the live surface. Callers must not keep it across frames.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Snapshot returns a copy of the surface.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

// EncodePNG writes the surface as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the surface to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return f.Close()
}
