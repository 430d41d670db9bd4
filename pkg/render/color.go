package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for strings it cannot read.
var ErrInvalidColor = errors.New("render: invalid color")

// ParseColor reads a CSS-style colour: a name such as "red" or "gray", the
// word "transparent", or a hex form "#rgb", "#rgba", "#rrggbb" or
// "#rrggbbaa".
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "transparent" {
		return color.Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		if c, ok := parseHex(name[1:]); ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustColor is ParseColor that panics on error. Use it for literals.
func MustColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (color.NRGBA, bool) {
	switch len(h) {
	case 3, 4:
		// each digit doubles: "f" is "ff"
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}
