package sim

import (
	"errors"
	"image/color"
	"strconv"
)

// Themes is the palette a host cycles through.
var Themes = []string{"#00ff41", "#00e5ff", "#ffdf00", "#ff4500"}

// NextTheme returns the palette entry after tag, wrapping around. Unknown tags
// restart at the first entry.
func NextTheme(tag string) string {
	for i, t := range Themes {
		if t == tag {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ParseHexColor decodes a "#rrggbb" tag.
func ParseHexColor(tag string) (color.RGBA, error) {
	if len(tag) != 7 || tag[0] != '#' {
		return color.RGBA{}, errors.New("want #rrggbb")
	}
	v, err := strconv.ParseUint(tag[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, err
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
