// Package window shows a render.Canvas in an OpenGL window and reports
// keyboard events to an input.Tracker.
//
// Every function here must run on the main thread, inside Run.
package window

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/faiface/pixel/text"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/supermuesli/poly"
	"github.com/supermuesli/poly/pkg/input"
	"github.com/supermuesli/poly/pkg/render"
)

// ErrInvalidConfig is returned by New for unusable configurations.
var ErrInvalidConfig = errors.New("window: invalid config")

// Config describes the window.
type Config struct {
	Title string

	// Width and Height are the surface size in pixels, without chrome.
	Width, Height int

	// Scale is the on-screen size of one surface pixel. Zero means 1.
	Scale float64

	VSync bool

	// Style is the chrome around the surface. Filter picks smooth or
	// pixelated upscaling.
	Style render.Style
}

// Window is an open pixelgl window presenting composed frames.
type Window struct {
	win    *pixelgl.Window
	canvas *pixelgl.Canvas
	keys   *input.Tracker
	scale  float64
	buf    []uint8

	// status line drawn over the frame in window coordinates
	status     *text.Text
	statusLine string
}

// Run runs fn on the main thread with the windowing system initialised. It
// must be called from main and returns when fn does.
func Run(fn func()) {
	pixelgl.Run(fn)
}

// New opens a window sized for the surface and its chrome. Key events go to
// keys, which may be nil.
func New(cfg Config, keys *input.Tracker) (*Window, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if cfg.Scale < 0 {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidConfig, cfg.Scale)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	if keys == nil {
		keys = input.NewTracker()
	}

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: frameBounds(cfg),
		VSync:  cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("window: open: %w", err)
	}

	smooth := cfg.Style.Filter == render.FilterSmooth
	win.SetSmooth(smooth)
	inset := cfg.Style.Inset()
	canvas := pixelgl.NewCanvas(pixel.R(0, 0, float64(cfg.Width+2*inset), float64(cfg.Height+2*inset)))
	canvas.SetSmooth(smooth)

	status := text.New(pixel.V(6, 6), text.NewAtlas(basicfont.Face7x13, text.ASCII))
	status.Color = colornames.Lightgray

	poly.Logger().Debug("window: opened", "title", cfg.Title, "bounds", win.Bounds(), "filter", cfg.Style.Filter)
	return &Window{
		win:    win,
		canvas: canvas,
		keys:   keys,
		scale:  cfg.Scale,
		status: status,
	}, nil
}

// frameBounds is the window size for cfg: surface plus chrome, scaled.
func frameBounds(cfg Config) pixel.Rect {
	inset := cfg.Style.Inset()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return pixel.R(0, 0,
		float64(cfg.Width+2*inset)*scale,
		float64(cfg.Height+2*inset)*scale,
	)
}

// Keys returns the tracker fed by Poll.
func (w *Window) Keys() *input.Tracker { return w.keys }

// Poll forwards key transitions seen by the last Present to the tracker and
// returns them. Losing focus releases every key.
func (w *Window) Poll() []input.Event {
	if !w.win.Focused() {
		if len(w.keys.PressedKeys()) > 0 {
			w.keys.Reset()
		}
		return nil
	}
	return pollKeys(w.win, w.keys)
}

// Present shows img, typically from render.Canvas.Compose, scaled to the
// window, and processes window events.
func (w *Window) Present(img *image.RGBA) {
	b := img.Bounds()
	if cb := w.canvas.Bounds(); int(cb.W()) != b.Dx() || int(cb.H()) != b.Dy() {
		w.canvas.SetBounds(pixel.R(0, 0, float64(b.Dx()), float64(b.Dy())))
	}
	w.buf = flipRows(w.buf, img)
	w.canvas.SetPixels(w.buf)

	w.win.Clear(color.Black)
	w.canvas.Draw(w.win, pixel.IM.Scaled(pixel.ZV, w.scale).Moved(w.win.Bounds().Center()))
	if w.statusLine != "" {
		w.status.Clear()
		w.status.WriteString(w.statusLine)
		w.status.Draw(w.win, pixel.IM)
	}
	w.win.Update()
}

// flipRows copies img into dst bottom row first, the order OpenGL expects.
func flipRows(dst []uint8, img *image.RGBA) []uint8 {
	b := img.Bounds()
	rowLen := 4 * b.Dx()
	n := rowLen * b.Dy()
	if cap(dst) < n {
		dst = make([]uint8, n)
	}
	dst = dst[:n]
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Max.Y-1-y):]
		copy(dst[y*rowLen:(y+1)*rowLen], src[:rowLen])
	}
	return dst
}

// SetStatus sets a line of text shown unscaled in the bottom left corner of
// the window, over the frame. An empty string hides it.
func (w *Window) SetStatus(s string) { w.statusLine = s }

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

// Closed reports whether the user or Close asked the window to close.
func (w *Window) Closed() bool { return w.win.Closed() }

// Close asks the window to close; Closed reports true afterwards.
func (w *Window) Close() { w.win.SetClosed(true) }

// Destroy releases the window. It must not be used afterwards.
func (w *Window) Destroy() { w.win.Destroy() }
