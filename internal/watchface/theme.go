package watchface

import "github.com/muurk/simplr/internal/host"

// Theme holds the colors a user may override.
type Theme struct {
	Background        host.Color
	TimeBackground    host.Color
	StepsBackground   host.Color
	ConnectedColor    host.Color
	DisconnectedColor host.Color
}

// DefaultTheme is the stock simplr palette.
func DefaultTheme() Theme {
	return Theme{
		Background:        host.ColorBlack,
		TimeBackground:    host.ColorMidnightGreen,
		StepsBackground:   host.ColorCadetBlue,
		ConnectedColor:    host.ColorSpringBud,
		DisconnectedColor: host.ColorOrange,
	}
}

// ConnectionColor returns the text color for the given link state.
func (t Theme) ConnectionColor(connected bool) host.Color {
	if connected {
		return t.ConnectedColor
	}
	return t.DisconnectedColor
}
