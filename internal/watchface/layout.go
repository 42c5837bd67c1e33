package watchface

import "github.com/muurk/simplr/internal/host"

// padding is the horizontal inset of the top status row.
const padding = 2

// Region names, in the order they are attached to the window.
const (
	RegionTime       = "time"
	RegionDate       = "date"
	RegionConnection = "connection"
	RegionBattery    = "battery"
	RegionSteps      = "steps"
)

type regions struct {
	time       *host.TextLayer
	date       *host.TextLayer
	battery    *host.TextLayer
	connection *host.TextLayer
	steps      *host.TextLayer
}

type regionStyle struct {
	frame      host.Rect
	font       string
	text       host.Color
	background host.Color
	align      host.TextAlignment
	initial    string
}

func newRegion(s regionStyle) *host.TextLayer {
	l := host.NewTextLayer(s.frame)
	l.SetTextColor(s.text)
	l.SetBackgroundColor(s.background)
	l.SetFont(host.SystemFont(s.font))
	l.SetTextAlignment(s.align)
	l.SetText(s.initial)
	return l
}

// buildRegions lays out the five regions inside bounds. The battery and date
// share the top row, aligned to opposite edges.
func buildRegions(bounds host.Rect, theme Theme) regions {
	w := bounds.Size.W
	return regions{
		battery: newRegion(regionStyle{
			frame:      host.NewRect(padding, -2, w-2*padding, 20),
			font:       host.FontKeyGothic18Bold,
			text:       host.ColorWhite,
			background: host.ColorClear,
			align:      host.AlignRight,
			initial:    "100%",
		}),
		date: newRegion(regionStyle{
			frame:      host.NewRect(padding, -2, w-2*padding, 20),
			font:       host.FontKeyGothic18Bold,
			text:       host.ColorWhite,
			background: host.ColorClear,
			align:      host.AlignLeft,
			initial:    "Jan 1",
		}),
		time: newRegion(regionStyle{
			frame:      host.NewRect(0, 48, w, 56),
			font:       host.FontKeyBitham42Bold,
			text:       host.ColorWhite,
			background: theme.TimeBackground,
			align:      host.AlignCenter,
		}),
		steps: newRegion(regionStyle{
			frame:      host.NewRect(0, 100, w, 32),
			font:       host.FontKeyGothic24Bold,
			text:       host.ColorBlack,
			background: theme.StepsBackground,
			align:      host.AlignCenter,
			initial:    "0 steps",
		}),
		connection: newRegion(regionStyle{
			frame:      host.NewRect(0, 144, w, 20),
			font:       host.FontKeyGothic18Bold,
			text:       host.ColorWhite,
			background: host.ColorClear,
			align:      host.AlignCenter,
		}),
	}
}

// attach adds the regions to w in paint order.
func (r regions) attach(w *host.Window) {
	w.AddChild(r.time)
	w.AddChild(r.date)
	w.AddChild(r.connection)
	w.AddChild(r.battery)
	w.AddChild(r.steps)
}

func (r regions) destroy() {
	for _, l := range []*host.TextLayer{r.time, r.date, r.connection, r.battery, r.steps} {
		if l != nil {
			l.Destroy()
		}
	}
}
