// Package colors implements shade/tint derivation used for email theme
// recoloring. A single brand color is blended toward white, black or an
// arbitrary mix target to produce the derived palette tones.
package colors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ContrastSentinel is accepted as a mix target and means "use the default
// target for the blend direction" (white when lightening, black when
// darkening).
const ContrastSentinel = "c"

var rgbRegexp = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9]*\.?[0-9]+)\s*)?\)$`)

// color holds parsed channel values. r, g, b are in [0,255]; a is in [0,1]
// or -1 when the source carried no alpha channel.
type color struct {
	r, g, b float64
	a       float64
	rgb     bool // true when parsed from rgb()/rgba() syntax
}

// Derive blends base by ratio and returns the derived color, formatted in
// the same family as the base (hex in, hex out; rgb in, rgb out).
//
// ratio must be in [-1,1]. A positive ratio blends toward target (white when
// target is empty or the contrast sentinel); a negative ratio blends toward
// black unless an explicit target is given. The linear flag selects direct
// channel interpolation; otherwise channels are blended in squared space,
// which reads as more perceptually even for darkening.
//
// Malformed input returns an empty string and an error; callers keep their
// original color in that case.
func Derive(ratio float64, base string, target string, linear bool) (string, error) {
	if math.IsNaN(ratio) || ratio < -1 || ratio > 1 {
		return "", fmt.Errorf("colors: ratio %v out of range [-1,1]", ratio)
	}

	from, err := parse(base)
	if err != nil {
		return "", err
	}

	p := ratio
	darken := p < 0
	if darken {
		p = -p
	}

	var to color
	if target != "" && target != ContrastSentinel {
		to, err = parse(target)
		if err != nil {
			return "", err
		}
	} else if darken {
		to = color{r: 0, g: 0, b: 0, a: -1}
	} else {
		to = color{r: 255, g: 255, b: 255, a: -1}
	}

	blend := func(f, t float64) float64 {
		var v float64
		if linear {
			v = math.Round((t-f)*p + f)
		} else {
			v = math.Round(math.Sqrt((t*t-f*f)*p + f*f))
		}
		return math.Min(255, math.Max(0, v))
	}

	out := color{
		r:   blend(from.r, to.r),
		g:   blend(from.g, to.g),
		b:   blend(from.b, to.b),
		a:   blendAlpha(from.a, to.a, p),
		rgb: from.rgb,
	}
	return format(out), nil
}

// blendAlpha returns -1 (opaque, no alpha channel) when neither side
// carries alpha, otherwise the weighted blend clamped to [0,1].
func blendAlpha(f, t, p float64) float64 {
	if f < 0 && t < 0 {
		return -1
	}
	if f < 0 {
		return clamp01(t)
	}
	if t < 0 {
		return clamp01(f)
	}
	return clamp01(f*(1-p) + t*p)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func parse(s string) (color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color{}, fmt.Errorf("colors: empty color")
	}

	if strings.HasPrefix(strings.ToLower(s), "rgb") {
		return parseRGB(s)
	}
	return parseHex(s)
}

func parseRGB(s string) (color, error) {
	m := rgbRegexp.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return color{}, fmt.Errorf("colors: malformed rgb color %q", s)
	}

	c := color{a: -1, rgb: true}
	channels := []*float64{&c.r, &c.g, &c.b}
	for i, dst := range channels {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil || v > 255 {
			return color{}, fmt.Errorf("colors: channel out of range in %q", s)
		}
		*dst = v
	}
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil || a > 1 {
			return color{}, fmt.Errorf("colors: alpha out of range in %q", s)
		}
		c.a = a
	}
	return c, nil
}

func parseHex(s string) (color, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3, 4:
		// Expand shorthand: #abc -> #aabbcc
		var expanded strings.Builder
		for _, r := range h {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		h = expanded.String()
	case 6, 8:
	default:
		return color{}, fmt.Errorf("colors: malformed hex color %q", s)
	}

	n, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return color{}, fmt.Errorf("colors: malformed hex color %q", s)
	}

	c := color{a: -1}
	if len(h) == 8 {
		c.a = float64(n&0xff) / 255
		n >>= 8
	}
	c.b = float64(n & 0xff)
	c.g = float64(n >> 8 & 0xff)
	c.r = float64(n >> 16 & 0xff)
	return c, nil
}

func format(c color) string {
	r, g, b := int(c.r), int(c.g), int(c.b)
	if c.rgb {
		if c.a >= 0 {
			return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(c.a))
		}
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	if c.a >= 0 {
		return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, int(math.Round(c.a*255)))
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Triplet returns the "R, G, B" decimal form of a color, the way design
// literals appear inside rgba() expressions in template CSS.
func Triplet(s string) (string, error) {
	c, err := parse(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d, %d, %d", int(c.r), int(c.g), int(c.b)), nil
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(math.Round(a*1000)/1000, 'f', -1, 64)
}
