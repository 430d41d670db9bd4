package render

import "golang.org/x/image/font"

// Option configures a Canvas at construction.
type Option func(*options)

type options struct {
	smoothing bool
	style     Style
	face      font.Face
}

func defaultOptions() options {
	return options{
		smoothing: true,
		style:     DefaultStyle(),
	}
}

// WithSmoothing sets whether scaled images are interpolated. The default is
// true, as in an HTML canvas.
func WithSmoothing(on bool) Option {
	return func(o *options) {
		o.smoothing = on
	}
}

// WithStyle sets the surface chrome used by Compose.
func WithStyle(s Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// WithFace sets the face used by Text. The default is basicfont.Face7x13.
func WithFace(f font.Face) Option {
	return func(o *options) {
		o.face = f
	}
}
