package panel

import (
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Shade prefixes of the named palette, lightest first.
var shades = []string{"super-light-", "light-", "", "semi-dark-", "dark-"}

// palette lists each hue from lightest to darkest shade.
var palette = map[string][5]string{
	"red":    {"#FFA6B0", "#FF7383", "#F2495C", "#E02F44", "#C4162A"},
	"orange": {"#FFCB7D", "#FFB357", "#FF9830", "#FA6400", "#E55400"},
	"yellow": {"#FFF899", "#FFEE52", "#FADE2A", "#F2CC0C", "#E0B400"},
	"green":  {"#C8F2C2", "#96D98D", "#73BF69", "#56A64B", "#37872D"},
	"blue":   {"#C0D8FF", "#8AB8FF", "#5794F2", "#3274D9", "#1F60C4"},
	"purple": {"#DEB6F2", "#CA95E5", "#B877D9", "#A352CC", "#8F3BB8"},
}

var named = buildNamed()

func buildNamed() map[string]string {
	m := map[string]string{"transparent": "transparent"}
	for hue, values := range palette {
		for i, prefix := range shades {
			m[prefix+hue] = values[i]
		}
	}
	return m
}

// ResolveColor turns a palette name into a concrete color value.
func ResolveColor(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if v, ok := named[key]; ok {
		return v
	}
	if c, err := colorful.Hex(key); err == nil {
		return c.Hex()
	}
	return name
}

// PaletteNames returns every resolvable palette name, sorted.
func PaletteNames() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ContrastText returns a text color that stays readable on top of color.
// Unparseable colors get black text.
func ContrastText(color string) string {
	c, err := colorful.Hex(ResolveColor(color))
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l < 0.6 {
		return "#FFFFFF"
	}
	return "#000000"
}
