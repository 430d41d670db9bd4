package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/faiface/pixel"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	green = color.RGBA{0, 255, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// sameColor compares colours allowing one step of rounding per channel.
func sameColor(a, b color.Color) bool {
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	d := func(x, y uint8) bool { return int(x)-int(y) <= 1 && int(y)-int(x) <= 1 }
	return d(ca.R, cb.R) && d(ca.G, cb.G) && d(ca.B, cb.B) && d(ca.A, cb.A)
}

func newTestCanvas(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h, opts...)
	if err != nil {
		t.Fatalf("NewCanvas(%d, %d): %v", w, h, err)
	}
	return c
}

// checkRegion asserts that pixels inside r have color in and the rest have out.
func checkRegion(t *testing.T, c *Canvas, r image.Rectangle, in, out color.Color) {
	t.Helper()
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := out
			if image.Pt(x, y).In(r) {
				want = in
			}
			if got := c.At(x, y); !sameColor(got, want) {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func isIdentity(m pixel.Matrix) bool {
	for i := range m {
		if math.Abs(m[i]-pixel.IM[i]) > 1e-12 {
			return false
		}
	}
	return true
}

func TestNewCanvasInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewCanvas(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewCanvas(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestNewCanvasDefaults(t *testing.T) {
	c := newTestCanvas(t, 4, 3)
	if w, h := c.Size(); w != 4 || h != 3 {
		t.Errorf("Size() = %d, %d", w, h)
	}
	if !c.Smoothing() {
		t.Error("smoothing should default to on")
	}
	if c.LineWidth() != 1 {
		t.Errorf("LineWidth() = %v, want 1", c.LineWidth())
	}
	if !isIdentity(c.Transform()) {
		t.Errorf("Transform() = %v, want identity", c.Transform())
	}
	if c.Style().Filter != FilterPixelated {
		t.Errorf("default filter = %v, want pixelated", c.Style().Filter)
	}
	checkRegion(t, c, image.Rectangle{}, color.Transparent, color.Transparent)
}

func TestClearCoversSurface(t *testing.T) {
	for _, col := range []color.Color{red, blue, color.NRGBA{10, 20, 30, 255}} {
		c := newTestCanvas(t, 7, 5)
		c.FillRect(1, 1, 3, 3, green)
		c.Translate(2, 2)
		c.Rotate(0.4)
		c.Clear(col)
		checkRegion(t, c, image.Rectangle{}, col, col)
	}
}

func TestClearReplacesTranslucent(t *testing.T) {
	c := newTestCanvas(t, 3, 3)
	c.Clear(red)
	half := color.NRGBA{0, 0, 255, 128}
	c.Clear(half)
	if got := c.At(1, 1); !sameColor(got, half) {
		t.Errorf("At(1, 1) = %v, want %v", got, half)
	}
}

func TestPixelTouchesOneUnit(t *testing.T) {
	c := newTestCanvas(t, 6, 6)
	c.Clear(black)
	c.Pixel(3, 2, red)
	checkRegion(t, c, image.Rect(3, 2, 4, 3), red, black)
}

func TestPixelFollowsTransform(t *testing.T) {
	c := newTestCanvas(t, 6, 6)
	c.Clear(black)
	c.Translate(2, 1)
	c.Pixel(1.5, 0.25, red)
	checkRegion(t, c, image.Rect(3, 1, 4, 2), red, black)
}

func TestFillRect(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		want       image.Rectangle
	}{
		{"positive", 2, 3, 4, 5, image.Rect(2, 3, 6, 8)},
		{"negative size", 6, 8, -4, -5, image.Rect(2, 3, 6, 8)},
		{"clipped", -3, -3, 5, 5, image.Rect(0, 0, 2, 2)},
		{"outside", 20, 20, 5, 5, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t, 10, 10)
			c.Clear(black)
			c.FillRect(tt.x, tt.y, tt.w, tt.h, red)
			checkRegion(t, c, tt.want, red, black)
			if c.FillColor() != color.Color(red) {
				t.Errorf("FillColor() = %v, want %v", c.FillColor(), red)
			}
		})
	}
}

func TestLine(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Clear(black)
	c.Line(1, 5, 9, 5, red, 2)
	checkRegion(t, c, image.Rect(1, 4, 9, 6), red, black)

	if c.StrokeColor() != color.Color(red) || c.LineWidth() != 2 {
		t.Errorf("paint state = %v, %v; want red, 2", c.StrokeColor(), c.LineWidth())
	}
}

func TestLineVertical(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Clear(black)
	c.Line(3, 8, 3, 2, blue, 2)
	checkRegion(t, c, image.Rect(2, 2, 4, 8), blue, black)
}

func TestLineDeltaMatchesLine(t *testing.T) {
	a := newTestCanvas(t, 16, 16)
	b := newTestCanvas(t, 16, 16)
	a.Line(2, 3, 13, 11, red, 3)
	b.LineDelta(2, 3, 11, 8, red, 3)
	if !bytes.Equal(a.Image().Pix, b.Image().Pix) {
		t.Error("LineDelta drew different pixels than Line")
	}
}

func TestLineZeroLength(t *testing.T) {
	c := newTestCanvas(t, 5, 5)
	c.Clear(black)
	c.Line(2, 2, 2, 2, red, 3)
	checkRegion(t, c, image.Rectangle{}, black, black)
}

func TestLineWidthInvalidKeepsPrevious(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.SetLineWidth(2)
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c.SetLineWidth(w)
		if c.LineWidth() != 2 {
			t.Fatalf("SetLineWidth(%v) changed width to %v", w, c.LineWidth())
		}
	}

	c.Clear(black)
	c.Line(1, 5, 9, 5, red, 0)
	checkRegion(t, c, image.Rect(1, 4, 9, 6), red, black)
}

func TestStrokeRect(t *testing.T) {
	c := newTestCanvas(t, 12, 12)
	c.Clear(black)
	c.StrokeRect(2, 2, 6, 6, red, 2)

	for _, p := range []image.Point{{1, 1}, {8, 8}, {2, 5}, {5, 1}, {8, 4}} {
		if got := c.At(p.X, p.Y); !sameColor(got, red) {
			t.Errorf("outline pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range []image.Point{{0, 0}, {3, 3}, {5, 5}, {6, 6}, {9, 9}, {10, 5}} {
		if got := c.At(p.X, p.Y); !sameColor(got, black) {
			t.Errorf("pixel %v = %v, want black", p, got)
		}
	}
}

func TestStrokeRectThinFills(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Clear(black)
	c.StrokeRect(3, 3, 2, 4, red, 2)
	checkRegion(t, c, image.Rect(2, 2, 6, 8), red, black)
}

func TestSaveRestore(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.Translate(3, 4)
	before := c.Transform()

	restore := c.Save()
	c.Rotate(1)
	inner := c.Save()
	c.Scale(2, 3)
	inner()
	c.Translate(5, 5)
	restore()

	if c.Transform() != before {
		t.Errorf("Transform() = %v, want %v", c.Transform(), before)
	}

	// restoring twice is harmless
	restore()
	if c.Transform() != before {
		t.Errorf("second restore changed transform to %v", c.Transform())
	}
}

func TestSaveRestoreDropsNested(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	restore := c.Save()
	c.Translate(1, 1)
	_ = c.Save() // never restored
	c.Rotate(2)
	restore()
	if !isIdentity(c.Transform()) {
		t.Errorf("Transform() = %v, want identity", c.Transform())
	}
	if len(c.stack) != 0 {
		t.Errorf("stack depth = %d, want 0", len(c.stack))
	}
}

func TestBeginDrawResetsTransform(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.Save()
	c.Translate(2, 2)
	c.Rotate(0.3)
	c.BeginDraw()
	if !isIdentity(c.Transform()) || len(c.stack) != 0 {
		t.Errorf("after BeginDraw transform = %v, stack = %d", c.Transform(), len(c.stack))
	}
}

func TestTransformHelpers(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.Translate(10, 0)
	c.Rotate(math.Pi / 2)
	c.Scale(2, 2)

	// (1, 0) -> scaled (2, 0) -> rotated (0, 2) -> translated (10, 2)
	got := c.Transform().Project(pixel.V(1, 0))
	if math.Abs(got.X-10) > 1e-9 || math.Abs(got.Y-2) > 1e-9 {
		t.Errorf("Project(1, 0) = %v, want (10, 2)", got)
	}

	c.ResetTransform()
	if !isIdentity(c.Transform()) {
		t.Errorf("ResetTransform left %v", c.Transform())
	}
}

func TestFillRectUnderRotation(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Clear(black)
	// quarter turn about (5, 5): the rect (5, 1)-(7, 3) lands on (7, 5)-(9, 7)
	c.Translate(5, 5)
	c.Rotate(math.Pi / 2)
	c.Translate(-5, -5)
	c.FillRect(5, 1, 2, 2, red)

	for _, p := range []image.Point{{7, 5}, {8, 6}} {
		if got := c.At(p.X, p.Y); !sameColor(got, red) {
			t.Errorf("pixel %v = %v, want red", p, got)
		}
	}
	for _, p := range []image.Point{{5, 1}, {6, 2}} {
		if got := c.At(p.X, p.Y); !sameColor(got, black) {
			t.Errorf("pixel %v = %v, want black", p, got)
		}
	}
}

func TestSetSize(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.Clear(red)
	c.Translate(1, 1)
	if err := c.SetSize(8, 2); err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != 8 || h != 2 {
		t.Errorf("Size() = %d, %d; want 8, 2", w, h)
	}
	if !isIdentity(c.Transform()) {
		t.Error("SetSize should reset the transform")
	}
	checkRegion(t, c, image.Rectangle{}, color.Transparent, color.Transparent)

	if err := c.SetSize(0, 2); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("SetSize(0, 2) error = %v, want ErrInvalidSize", err)
	}
	if w, h := c.Size(); w != 8 || h != 2 {
		t.Error("failed SetSize must keep the old surface")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := newTestCanvas(t, 3, 3)
	c.Clear(red)
	snap := c.Snapshot()
	c.Clear(blue)
	if got := snap.At(1, 1); !sameColor(got, red) {
		t.Errorf("snapshot pixel = %v, want red", got)
	}
}

func TestPNG(t *testing.T) {
	c := newTestCanvas(t, 5, 4)
	c.Clear(green)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := c.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}
