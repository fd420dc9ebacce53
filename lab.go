package epicharts

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// SimilarThreshold is the Lab distance under which two colors are
// considered the same by a reader.
const SimilarThreshold = 20.0

var ErrInvalidHex = errors.New("invalid hex color")

var whitePoint = [3]float64{0.95047, 1.0, 1.08883}

type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseHex parses colors written as #rrggbb.
func ParseHex(str string) (RGB, error) {
	if len(str) != 7 || str[0] != '#' {
		return RGB{}, fmt.Errorf("%q: %w", str, ErrInvalidHex)
	}
	for i := 1; i < len(str); i++ {
		if !isHex(str[i]) {
			return RGB{}, fmt.Errorf("%q: %w", str, ErrInvalidHex)
		}
	}
	c, err := colorful.Hex(str)
	if err != nil {
		return RGB{}, fmt.Errorf("%q: %w", str, ErrInvalidHex)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func MustParseHex(str string) RGB {
	c, err := ParseHex(str)
	if err != nil {
		panic(err)
	}
	return c
}

func (c RGB) Color() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func (c RGB) Hex() string {
	return c.Color().Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

type Lab struct {
	L float64
	A float64
	B float64
}

// Lab converts c to CIE Lab under the D65 white point.
func (c RGB) Lab() Lab {
	var (
		r = gamma(float64(c.R) / 255)
		g = gamma(float64(c.G) / 255)
		b = gamma(float64(c.B) / 255)
	)
	xyz := [3]float64{
		r*0.4124 + g*0.3576 + b*0.1805,
		r*0.2126 + g*0.7152 + b*0.0722,
		r*0.0193 + g*0.1192 + b*0.9505,
	}
	for i := range xyz {
		xyz[i] = pivot(xyz[i] / whitePoint[i])
	}
	return Lab{
		L: 116*xyz[1] - 16,
		A: 500 * (xyz[0] - xyz[1]),
		B: 200 * (xyz[1] - xyz[2]),
	}
}

func (a Lab) Distance(b Lab) float64 {
	var (
		dl = a.L - b.L
		da = a.A - b.A
		db = a.B - b.B
	)
	return math.Sqrt(dl*dl + da*da + db*db)
}

func gamma(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func pivot(v float64) float64 {
	if v > 0.008856 {
		return math.Cbrt(v)
	}
	return 7.787*v + 16.0/116.0
}

// Interpolate mixes a and b channel by channel. factor is clamped to [0, 1],
// 0 gives a and 1 gives b.
func Interpolate(a, b RGB, factor float64) RGB {
	factor = math.Max(0, math.Min(1, factor))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round((1-factor)*float64(x) + factor*float64(y)))
	}
	return RGB{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
	}
}

// Mix returns the hex color found at factor between c1 and c2.
func Mix(c1, c2 string, factor float64) (string, error) {
	a, err := ParseHex(c1)
	if err != nil {
		return "", err
	}
	b, err := ParseHex(c2)
	if err != nil {
		return "", err
	}
	return Interpolate(a, b, factor).Hex(), nil
}

// Distance returns the euclidean distance between c1 and c2 in Lab space.
func Distance(c1, c2 string) (float64, error) {
	a, err := ParseHex(c1)
	if err != nil {
		return 0, err
	}
	b, err := ParseHex(c2)
	if err != nil {
		return 0, err
	}
	return a.Lab().Distance(b.Lab()), nil
}

func Similar(c1, c2 string) (bool, error) {
	d, err := Distance(c1, c2)
	if err != nil {
		return false, err
	}
	return d < SimilarThreshold, nil
}

// Gradient returns n colors evenly spread from c1 to c2, both included.
func Gradient(c1, c2 string, n int) ([]string, error) {
	a, err := ParseHex(c1)
	if err != nil {
		return nil, err
	}
	b, err := ParseHex(c2)
	if err != nil {
		return nil, err
	}
	switch {
	case n <= 0:
		return nil, nil
	case n == 1:
		return []string{a.Hex()}, nil
	}
	list := make([]string, n)
	for i := range list {
		list[i] = Interpolate(a, b, float64(i)/float64(n-1)).Hex()
	}
	return list, nil
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
