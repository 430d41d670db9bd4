package render

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/faiface/pixel"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/supermuesli/poly"
)

var (
	// ErrImageNotFound is returned by Images.Lookup for unknown identifiers.
	ErrImageNotFound = errors.New("render: image not found")

	// ErrDecodeImage is returned when image data cannot be decoded.
	ErrDecodeImage = errors.New("render: cannot decode image")
)

// Image is a decoded picture ready for drawing. It never changes after
// creation.
type Image struct {
	id  string
	src image.Image
}

// NewImage wraps src under the identifier id.
func NewImage(id string, src image.Image) *Image {
	return &Image{id: id, src: src}
}

// ID returns the identifier the image was created with.
func (i *Image) ID() string { return i.id }

// Size returns the source dimensions in pixels.
func (i *Image) Size() (width, height int) {
	b := i.src.Bounds()
	return b.Dx(), b.Dy()
}

// Source returns the decoded picture.
func (i *Image) Source() image.Image { return i.src }

// AssetFunc loads the raw bytes of a named asset. The Asset function
// generated by go-bindata has this signature.
type AssetFunc func(name string) ([]byte, error)

// assetExts are tried in order when a name has no extension of its own.
var assetExts = []string{"", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// FSAssets loads assets from fsys. An identifier may omit the file
// extension: "ship" finds "ship.png".
func FSAssets(fsys fs.FS) AssetFunc {
	return func(name string) ([]byte, error) {
		for _, ext := range assetExts {
			data, err := fs.ReadFile(fsys, name+ext)
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			if path.Ext(name) != "" {
				break
			}
		}
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
}

// DirAssets loads assets from the directory dir.
func DirAssets(dir string) AssetFunc {
	return FSAssets(os.DirFS(dir))
}

// Images is a registry of pictures by identifier, the equivalent of the
// <img> elements declared in a page. Identifiers not yet registered are
// loaded through the AssetFunc, if any, on first lookup. Images is safe for
// concurrent use.
type Images struct {
	mu     sync.Mutex
	load   AssetFunc
	images map[string]*Image
}

// NewImages returns an empty registry. load may be nil.
func NewImages(load AssetFunc) *Images {
	return &Images{
		load:   load,
		images: make(map[string]*Image),
	}
}

// Register stores src under id, replacing any previous image.
func (s *Images) Register(id string, src image.Image) *Image {
	img := NewImage(id, src)
	s.mu.Lock()
	s.images[id] = img
	s.mu.Unlock()
	return img
}

// Decode decodes data (PNG, JPEG, GIF, BMP or WebP) and registers it as id.
func (s *Images) Decode(id string, data []byte) (*Image, error) {
	src, err := loadPicture(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrDecodeImage, id, err)
	}
	return s.Register(id, src), nil
}

// Lookup returns the image registered as id, loading it if needed.
func (s *Images) Lookup(id string) (*Image, error) {
	s.mu.Lock()
	img, ok := s.images[id]
	load := s.load
	s.mu.Unlock()
	if ok {
		return img, nil
	}
	if load == nil {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, id)
	}

	data, err := load(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrImageNotFound, id, err)
	}
	img, err = s.Decode(id, data)
	if err != nil {
		return nil, err
	}
	poly.Logger().Debug("render: image loaded", "id", id, "bytes", len(data))
	return img, nil
}

// DrawImage draws img scaled to w×h with its top-left corner at (x, y).
// A nil image is ignored.
func (c *Canvas) DrawImage(img *Image, x, y, w, h float64) {
	if img == nil {
		poly.Logger().Warn("render: draw of missing image ignored")
		return
	}
	sr := img.src.Bounds()
	if sr.Empty() || w == 0 || h == 0 {
		return
	}

	// source pixels -> user space -> device pixels
	sx, sy := w/float64(sr.Dx()), h/float64(sr.Dy())
	place := pixel.Matrix{sx, 0, 0, sy, x - float64(sr.Min.X)*sx, y - float64(sr.Min.Y)*sy}
	m := place.Chained(c.matrix)

	c.interpolator().Transform(c.img, f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}, img.src, sr, draw.Over, nil)
}

// DrawRotatedImage draws img like DrawImage, turned by angle radians
// (clockwise on screen) about the centre of the destination rectangle.
// The transform is the same after the call as before it.
func (c *Canvas) DrawRotatedImage(img *Image, x, y, w, h, angle float64) {
	defer c.Save()()

	cx, cy := x+w/2, y+h/2
	c.Translate(cx, cy)
	c.Rotate(angle)
	c.Translate(-cx, -cy)
	c.DrawImage(img, x, y, w, h)
}

func (c *Canvas) interpolator() draw.Interpolator {
	if c.smoothing {
		return draw.ApproxBiLinear
	}
	return draw.NearestNeighbor
}
