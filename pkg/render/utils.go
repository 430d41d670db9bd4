package render

import (
	"bytes"
	"fmt"
	"image"

	// Decoders available to Images.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

func loadPicture(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadFont parses a TrueType font and returns a face of the given size in
// points (at 72 DPI, so one point is one pixel).
func LoadFont(data []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size: size,
	}), nil
}
