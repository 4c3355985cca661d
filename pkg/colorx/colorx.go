// Package colorx implements the color-space math used across Chromia:
// hex parsing, RGB/HSL conversion, channel mixing and harmony generation.
// All functions are pure and allocation-free.
package colorx

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// ErrInvalidHex is returned when a string is not a #RGB or #RRGGBB color.
var ErrInvalidHex = errors.New("colorx: invalid hex color")

// RGB is a 24-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in degrees [0, 360) and saturation/lightness as
// fractions in [0, 1].
type HSL struct {
	H, S, L float64
}

// ParseHex parses "#RRGGBB" or the shorthand "#RGB", case-insensitively.
// Shorthand digits are doubled, so "#1AF" means "#11AAFF".
func ParseHex(s string) (RGB, error) {
	if !strings.HasPrefix(s, "#") {
		return RGB{}, ErrInvalidHex
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, ErrInvalidHex
	}

	var c RGB
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		hi, ok1 := nibble(hex[i*2])
		lo, ok2 := nibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return RGB{}, ErrInvalidHex
		}
		*dst = hi<<4 | lo
	}
	return c, nil
}

func nibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// IsValidHex reports whether s parses as a hex color.
func IsValidHex(s string) bool {
	_, err := ParseHex(s)
	return err == nil
}

// Hex renders the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSL converts the color to hue/saturation/lightness.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	if max == min {
		return HSL{H: 0, S: 0, L: l}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	return HSL{H: h * 360, S: s, L: l}
}

// RGB converts back to a 24-bit color. Round-tripping through HSL is
// accurate to within one step per channel.
func (h HSL) RGB() RGB {
	hue := math.Mod(math.Mod(h.H, 360)+360, 360)
	c := (1 - math.Abs(2*h.L-1)) * h.S
	x := c * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := h.L - c/2

	var r, g, b float64
	switch {
	case hue < 60:
		r, g, b = c, x, 0
	case hue < 120:
		r, g, b = x, c, 0
	case hue < 180:
		r, g, b = 0, c, x
	case hue < 240:
		r, g, b = 0, x, c
	case hue < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}

// Hex renders the HSL color as lowercase "#rrggbb".
func (h HSL) Hex() string {
	return h.RGB().Hex()
}

// Mix blends two colors by rounding the per-channel mean, so mixing
// black and white yields #808080.
func Mix(a, b RGB) RGB {
	avg := func(x, y uint8) uint8 {
		return uint8(math.Round((float64(x) + float64(y)) / 2))
	}
	return RGB{R: avg(a.R, b.R), G: avg(a.G, b.G), B: avg(a.B, b.B)}
}

// Random returns a uniformly distributed 24-bit color.
func Random() RGB {
	n := rand.Uint32N(1 << 24)
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}
}
