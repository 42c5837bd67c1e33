package render

// blockGlyphs maps digits and separators to a 3-row half-block form.
// Digits are 3 cells wide; separators are 1.
var blockGlyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", "▀▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {"▀", " ", "▀"},
	'.': {" ", " ", "▀"},
	'-': {" ", "▀", " "},
	' ': {" ", " ", " "},
}

// blockText lays s out as three rows of block glyphs separated by one
// blank column. Characters without a glyph are skipped.
func blockText(s string) [3][]rune {
	var rows [3][]rune
	first := true
	for _, ch := range s {
		g, ok := blockGlyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i] = append(rows[i], ' ')
			}
			rows[i] = append(rows[i], []rune(g[i])...)
		}
		first = false
	}
	return rows
}
