package host

// Font keys for the built-in system fonts.
const (
	FontKeyGothic14     = "GOTHIC_14"
	FontKeyGothic18Bold = "GOTHIC_18_BOLD"
	FontKeyGothic24Bold = "GOTHIC_24_BOLD"
	FontKeyBitham42Bold = "BITHAM_42_BOLD"
)

// Font describes a system font. Height is the nominal cap height in pixels.
type Font struct {
	Key    string
	Height int
	Bold   bool
	// Numeric fonts only carry digits and a few separators; the renderer
	// draws them with a block glyph set.
	Numeric bool
}

var systemFonts = map[string]Font{
	FontKeyGothic14:     {Key: FontKeyGothic14, Height: 14},
	FontKeyGothic18Bold: {Key: FontKeyGothic18Bold, Height: 18, Bold: true},
	FontKeyGothic24Bold: {Key: FontKeyGothic24Bold, Height: 24, Bold: true},
	FontKeyBitham42Bold: {Key: FontKeyBitham42Bold, Height: 42, Bold: true, Numeric: true},
}

// SystemFont returns the font registered under key. Unknown keys fall back
// to Gothic 14, which is what the device firmware does.
func SystemFont(key string) Font {
	if f, ok := systemFonts[key]; ok {
		return f
	}
	return systemFonts[FontKeyGothic14]
}
