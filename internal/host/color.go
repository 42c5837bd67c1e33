package host

import (
	"fmt"
	"strings"
)

// Color is an entry of the device's 64-color palette. The zero value is
// ColorClear.
type Color uint8

// Palette entries used by watchfaces in this repository.
const (
	ColorClear Color = iota
	ColorBlack
	ColorWhite
	ColorLightGray
	ColorDarkGray
	ColorMidnightGreen
	ColorCadetBlue
	ColorSpringBud
	ColorOrange
	ColorRed
	ColorYellow
	ColorBlue
	ColorJaegerGreen
	ColorVividCerulean
)

type colorInfo struct {
	name string
	hex  string
}

var palette = map[Color]colorInfo{
	ColorClear:         {"clear", ""},
	ColorBlack:         {"black", "#000000"},
	ColorWhite:         {"white", "#FFFFFF"},
	ColorLightGray:     {"light_gray", "#AAAAAA"},
	ColorDarkGray:      {"dark_gray", "#555555"},
	ColorMidnightGreen: {"midnight_green", "#005555"},
	ColorCadetBlue:     {"cadet_blue", "#55AAAA"},
	ColorSpringBud:     {"spring_bud", "#AAFF00"},
	ColorOrange:        {"orange", "#FF5500"},
	ColorRed:           {"red", "#FF0000"},
	ColorYellow:        {"yellow", "#FFFF00"},
	ColorBlue:          {"blue", "#0000FF"},
	ColorJaegerGreen:   {"jaeger_green", "#00AA55"},
	ColorVividCerulean: {"vivid_cerulean", "#00AAFF"},
}

// Hex returns the color as "#RRGGBB", or "" for ColorClear.
func (c Color) Hex() string {
	return palette[c].hex
}

// IsClear reports whether the color is fully transparent.
func (c Color) IsClear() bool {
	return c == ColorClear
}

// String returns the palette name (e.g. "spring_bud").
func (c Color) String() string {
	if info, ok := palette[c]; ok {
		return info.name
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ParseColor looks up a palette entry by name. Names are case-insensitive
// and accept spaces, dashes or underscores between words.
func ParseColor(name string) (Color, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	for c, info := range palette {
		if info.name == norm || strings.ReplaceAll(info.name, "_", "") == norm {
			return c, nil
		}
	}
	return ColorClear, fmt.Errorf("unknown color %q", name)
}
