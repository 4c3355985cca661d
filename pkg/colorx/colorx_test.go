package colorx

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	t.Parallel()

	t.Run("six digit", func(t *testing.T) {
		c, err := ParseHex("#1a2b3c")
		require.NoError(t, err)
		require.Equal(t, RGB{R: 0x1a, G: 0x2b, B: 0x3c}, c)
	})

	t.Run("uppercase", func(t *testing.T) {
		c, err := ParseHex("#FF8000")
		require.NoError(t, err)
		require.Equal(t, RGB{R: 0xff, G: 0x80, B: 0x00}, c)
	})

	t.Run("shorthand doubles digits", func(t *testing.T) {
		c, err := ParseHex("#1AF")
		require.NoError(t, err)
		require.Equal(t, RGB{R: 0x11, G: 0xaa, B: 0xff}, c)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, bad := range []string{"", "ffffff", "#fffff", "#fffffff", "#gggggg", "#12 456", "#ff"} {
			_, err := ParseHex(bad)
			require.ErrorIs(t, err, ErrInvalidHex, "input %q", bad)
		}
	})
}

func TestHexRendersLowercase(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#1a2b3c", RGB{R: 0x1a, G: 0x2b, B: 0x3c}.Hex())
	require.Equal(t, "#000000", RGB{}.Hex())
	require.Equal(t, "#ffffff", RGB{R: 255, G: 255, B: 255}.Hex())
}

func TestRGBToHSL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hex     string
		h, s, l float64
	}{
		{"#000000", 0, 0, 0},
		{"#ffffff", 0, 0, 1},
		{"#ff0000", 0, 1, 0.5},
		{"#00ff00", 120, 1, 0.5},
		{"#0000ff", 240, 1, 0.5},
		{"#808080", 0, 0, 0.502},
	}
	for _, tc := range cases {
		t.Run(tc.hex, func(t *testing.T) {
			c, err := ParseHex(tc.hex)
			require.NoError(t, err)
			hsl := c.HSL()
			require.InDelta(t, tc.h, hsl.H, 0.01)
			require.InDelta(t, tc.s, hsl.S, 0.01)
			require.InDelta(t, tc.l, hsl.L, 0.01)
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	t.Parallel()

	// Every channel must survive RGB -> HSL -> RGB within one step.
	for _, hex := range []string{
		"#000000", "#ffffff", "#ff0000", "#00ff00", "#0000ff",
		"#1a2b3c", "#abcdef", "#f0e68c", "#7f7f7f", "#123456",
	} {
		c, err := ParseHex(hex)
		require.NoError(t, err)
		got := c.HSL().RGB()
		require.LessOrEqual(t, chanDiff(c.R, got.R), 1, "red of %s", hex)
		require.LessOrEqual(t, chanDiff(c.G, got.G), 1, "green of %s", hex)
		require.LessOrEqual(t, chanDiff(c.B, got.B), 1, "blue of %s", hex)
	}
}

func chanDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

func TestMix(t *testing.T) {
	t.Parallel()

	t.Run("black and white make mid gray", func(t *testing.T) {
		got := Mix(RGB{}, RGB{R: 255, G: 255, B: 255})
		require.Equal(t, RGB{R: 0x80, G: 0x80, B: 0x80}, got)
	})

	t.Run("commutative", func(t *testing.T) {
		a := RGB{R: 0x12, G: 0xa4, B: 0xff}
		b := RGB{R: 0xee, G: 0x07, B: 0x31}
		require.Equal(t, Mix(a, b), Mix(b, a))
	})

	t.Run("mixing a color with itself is identity", func(t *testing.T) {
		c := RGB{R: 0x3c, G: 0x91, B: 0xe8}
		require.Equal(t, c, Mix(c, c))
	})
}

func TestRandom(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for range 64 {
		c := Random()
		require.True(t, IsValidHex(c.Hex()))
		seen[c.Hex()] = true
	}
	// 64 draws from 16.7M values collide with negligible probability.
	require.Greater(t, len(seen), 1)
}

func TestHarmonize(t *testing.T) {
	t.Parallel()

	red := RGB{R: 255}

	t.Run("complementary rotates 180", func(t *testing.T) {
		got := red.Harmonize(HarmonyComplementary)
		require.Equal(t, []RGB{red, {G: 255, B: 255}}, got)
	})

	t.Run("triadic rotates 120 and 240", func(t *testing.T) {
		got := red.Harmonize(HarmonyTriadic)
		require.Equal(t, []RGB{red, {G: 255}, {B: 255}}, got)
	})

	t.Run("analogous keeps base centered", func(t *testing.T) {
		got := red.Harmonize(HarmonyAnalogous)
		require.Len(t, got, 3)
		require.Equal(t, red, got[1])
		require.Equal(t, "#ff0080", got[0].Hex())
		require.Equal(t, "#ff8000", got[2].Hex())
	})

	t.Run("monochromatic ramps lightness around base", func(t *testing.T) {
		got := red.Harmonize(HarmonyMonochromatic)
		require.Len(t, got, 5)
		require.Equal(t, red, got[2])
		prev := -1.0
		for i, c := range got {
			hsl := c.HSL()
			require.GreaterOrEqual(t, hsl.L, prev, "step %d", i)
			prev = hsl.L
			if hsl.S != 0 { // hue is meaningless for the clamped extremes
				require.InDelta(t, 0, math.Min(hsl.H, 360-hsl.H), 1)
			}
		}
	})

	t.Run("monochromatic clamps at the extremes", func(t *testing.T) {
		white := RGB{R: 255, G: 255, B: 255}
		got := white.Harmonize(HarmonyMonochromatic)
		require.Equal(t, white, got[3])
		require.Equal(t, white, got[4])
	})

	t.Run("unknown scheme yields the base", func(t *testing.T) {
		require.Equal(t, []RGB{red}, red.Harmonize(Harmony("tetradic")))
	})
}

func ExampleMix() {
	a, _ := ParseHex("#000000")
	b, _ := ParseHex("#ffffff")
	fmt.Println(Mix(a, b).Hex())
	// Output: #808080
}
