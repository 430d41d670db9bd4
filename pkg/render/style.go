package render

import (
	"image"
	"image/color"
	"math"

	"github.com/faiface/pixel"
	"golang.org/x/image/draw"
)

// Filter is how the surface is scaled up for display.
type Filter int

const (
	// FilterPixelated keeps pixels sharp when scaled.
	FilterPixelated Filter = iota
	// FilterSmooth interpolates when scaled.
	FilterSmooth
)

func (f Filter) String() string {
	if f == FilterSmooth {
		return "smooth"
	}
	return "pixelated"
}

// Style is the chrome drawn around the surface when it is presented.
type Style struct {
	BorderWidth  float64
	CornerRadius float64
	BorderColor  color.Color
	Filter       Filter
}

// DefaultStyle has no border and pixelated scaling.
func DefaultStyle() Style {
	return Style{BorderColor: color.Black}
}

// Inset returns the whole-pixel border thickness around the surface.
func (s Style) Inset() int {
	if s.BorderWidth <= 0 {
		return 0
	}
	return int(math.Ceil(s.BorderWidth))
}

// SetStyle sets the chrome used by Compose.
func (c *Canvas) SetStyle(s Style) {
	if s.BorderColor == nil {
		s.BorderColor = color.Black
	}
	c.style = s
}

// Style returns the chrome settings.
func (c *Canvas) Style() Style { return c.style }

// Compose returns a new image of the surface inside its chrome: a border
// ring of Style.BorderWidth pixels and corners rounded by
// Style.CornerRadius. Pixels outside the rounded outline are transparent.
func (c *Canvas) Compose() *image.RGBA {
	inset := c.style.Inset()
	sb := c.img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, sb.Dx()+2*inset, sb.Dy()+2*inset))

	outer := pixel.R(0, 0, float64(out.Bounds().Dx()), float64(out.Bounds().Dy()))
	inner := pixel.R(float64(inset), float64(inset), outer.Max.X-float64(inset), outer.Max.Y-float64(inset))
	innerRadius := math.Max(c.style.CornerRadius-float64(inset), 0)

	dr := image.Rect(inset, inset, inset+sb.Dx(), inset+sb.Dy())
	if innerRadius == 0 {
		draw.Draw(out, dr, c.img, sb.Min, draw.Src)
	} else {
		mask := image.NewAlpha(out.Bounds())
		rasterize(&c.z, mask, image.Opaque, draw.Over, roundedRectContour(inner, innerRadius, false))
		draw.DrawMask(out, dr, c.img, sb.Min, mask, dr.Min, draw.Src)
	}

	// ring last, over the inner corners the mask left empty
	if inset > 0 {
		rasterize(&c.z, out, image.NewUniform(c.style.BorderColor), draw.Over,
			roundedRectContour(outer, c.style.CornerRadius, false),
			roundedRectContour(inner, innerRadius, true),
		)
	}
	return out
}
