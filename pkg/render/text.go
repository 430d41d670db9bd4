package render

import (
	"image"
	"image/color"

	"github.com/faiface/pixel"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// SetFace sets the face used by Text. A nil face is ignored.
func (c *Canvas) SetFace(f font.Face) {
	if f != nil {
		c.face = f
	}
}

// Face returns the face used by Text.
func (c *Canvas) Face() font.Face { return c.face }

// Text draws s with its baseline starting at (x, y). Only the translation
// part of the transform applies; glyphs are never rotated or scaled.
func (c *Canvas) Text(s string, x, y float64, col color.Color) {
	c.fill = col
	p := c.matrix.Project(pixel.V(x, y))
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)},
	}
	d.DrawString(s)
}

// MeasureText returns the advance width of s in pixels.
func (c *Canvas) MeasureText(s string) float64 {
	return float64(font.MeasureString(c.face, s)) / 64
}
