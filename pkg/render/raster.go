package render

import (
	"image"
	"math"

	"github.com/faiface/pixel"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// arcSteps is the number of segments approximating a quarter circle.
const arcSteps = 8

// rasterize fills the closed device-space contours with src. Contours wound
// in opposite directions cut holes into each other.
func rasterize(z *vector.Rasterizer, dst draw.Image, src image.Image, op draw.Op, contours ...[]pixel.Vec) {
	r, ok := contourBounds(contours, dst.Bounds())
	if !ok {
		return
	}

	z.Reset(r.Dx(), r.Dy())
	z.DrawOp = op
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, contour := range contours {
		if len(contour) < 3 {
			continue
		}
		z.MoveTo(float32(contour[0].X-ox), float32(contour[0].Y-oy))
		for _, p := range contour[1:] {
			z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(dst, r, src, r.Min)
}

// contourBounds returns the pixel box covering the contours, clipped to clip.
func contourBounds(contours [][]pixel.Vec, clip image.Rectangle) (image.Rectangle, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, contour := range contours {
		for _, p := range contour {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				return image.Rectangle{}, false
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if minX > maxX || minY > maxY {
		return image.Rectangle{}, false
	}

	r := image.Rect(
		int(math.Floor(math.Max(minX, float64(clip.Min.X)))),
		int(math.Floor(math.Max(minY, float64(clip.Min.Y)))),
		int(math.Ceil(math.Min(maxX, float64(clip.Max.X)))),
		int(math.Ceil(math.Min(maxY, float64(clip.Max.Y)))),
	).Intersect(clip)
	return r, !r.Empty()
}

// rectContour returns the corners of r, clockwise on screen, or
// anticlockwise when reverse is set.
func rectContour(r pixel.Rect, reverse bool) []pixel.Vec {
	pts := []pixel.Vec{
		r.Min,
		pixel.V(r.Max.X, r.Min.Y),
		r.Max,
		pixel.V(r.Min.X, r.Max.Y),
	}
	if reverse {
		reverseContour(pts)
	}
	return pts
}

// roundedRectContour is rectContour with corners rounded by radius. The
// radius is clamped to half the shorter side.
func roundedRectContour(r pixel.Rect, radius float64, reverse bool) []pixel.Vec {
	radius = math.Min(radius, math.Min(r.W(), r.H())/2)
	if radius <= 0 {
		return rectContour(r, reverse)
	}

	corners := []struct {
		center pixel.Vec
		start  float64
	}{
		{pixel.V(r.Max.X-radius, r.Min.Y+radius), -math.Pi / 2},
		{pixel.V(r.Max.X-radius, r.Max.Y-radius), 0},
		{pixel.V(r.Min.X+radius, r.Max.Y-radius), math.Pi / 2},
		{pixel.V(r.Min.X+radius, r.Min.Y+radius), math.Pi},
	}
	pts := make([]pixel.Vec, 0, len(corners)*(arcSteps+1))
	for _, corner := range corners {
		for i := 0; i <= arcSteps; i++ {
			a := corner.start + float64(i)*(math.Pi/2)/arcSteps
			pts = append(pts, corner.center.Add(pixel.Unit(a).Scaled(radius)))
		}
	}
	if reverse {
		reverseContour(pts)
	}
	return pts
}

func reverseContour(pts []pixel.Vec) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
