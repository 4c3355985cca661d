package colorx

// Harmony names a hue-relationship scheme derived from a base color.
type Harmony string

const (
	HarmonyComplementary Harmony = "complementary"
	HarmonyTriadic       Harmony = "triadic"
	HarmonyAnalogous     Harmony = "analogous"
	HarmonyMonochromatic Harmony = "monochromatic"
)

// Harmonize returns the harmony set for the base color, base included.
// Complementary rotates hue by 180 degrees, triadic by 120 and 240,
// analogous spans 30 degrees either side of the base, and monochromatic
// ramps lightness in 0.15 steps clamped to [0, 1]. An unknown scheme
// yields just the base color.
func (c RGB) Harmonize(kind Harmony) []RGB {
	hsl := c.HSL()
	rotate := func(deg float64) RGB {
		return HSL{H: hsl.H + deg, S: hsl.S, L: hsl.L}.RGB()
	}
	lighten := func(delta float64) RGB {
		l := hsl.L + delta
		if l < 0 {
			l = 0
		} else if l > 1 {
			l = 1
		}
		return HSL{H: hsl.H, S: hsl.S, L: l}.RGB()
	}

	switch kind {
	case HarmonyComplementary:
		return []RGB{c, rotate(180)}
	case HarmonyTriadic:
		return []RGB{c, rotate(120), rotate(240)}
	case HarmonyAnalogous:
		return []RGB{rotate(-30), c, rotate(30)}
	case HarmonyMonochromatic:
		return []RGB{lighten(-0.3), lighten(-0.15), c, lighten(0.15), lighten(0.3)}
	default:
		return []RGB{c}
	}
}
