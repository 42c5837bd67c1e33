package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/muurk/simplr/internal/host"
	"github.com/muurk/simplr/internal/watchface"
)

func scenarioWindow(t *testing.T) *host.Window {
	t.Helper()
	clock := time.Date(2024, 3, 3, 9, 5, 0, 0, time.UTC)
	dev := host.NewDevice(
		host.WithClock(func() time.Time { return clock }),
		host.WithBattery(host.ChargeState{ChargePercent: 57}),
		host.WithConnected(true),
	)
	face := watchface.New(watchface.DeviceServices(dev))
	win := host.NewWindow()
	win.SetHandlers(face.Handlers())
	host.NewWindowStack().Push(win)
	return win
}

func TestDrawScenario(t *testing.T) {
	cv := Draw(scenarioWindow(t))
	cols, rows := cv.Size()
	if cols != 36 || rows != 21 {
		t.Fatalf("Size() = %dx%d, want 36x21", cols, rows)
	}
	lines := cv.Lines()

	tests := []struct {
		name string
		row  int
		want string
	}{
		{"date and battery", 1, "Mar 03" + strings.Repeat(" ", 27) + "57%"},
		{"clock top", 8, strings.Repeat(" ", 9) + "█▀█ █▀█ ▀ █▀█ █▀▀" + strings.Repeat(" ", 10)},
		{"steps", 14, strings.Repeat(" ", 14) + "0 steps" + strings.Repeat(" ", 15)},
		{"connection", 19, strings.Repeat(" ", 13) + "connected" + strings.Repeat(" ", 14)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if lines[tt.row] != tt.want {
				t.Errorf("row %d = %q, want %q", tt.row, lines[tt.row], tt.want)
			}
		})
	}
}

func TestDrawColors(t *testing.T) {
	cv := Draw(scenarioWindow(t))

	if c := cv.At(0, 0); c.BG != host.ColorBlack {
		t.Errorf("window background cell = %+v, want black", c)
	}
	if c := cv.At(0, 7); c.BG != host.ColorMidnightGreen {
		t.Errorf("time region cell = %+v, want midnight green", c)
	}
	if c := cv.At(0, 12); c.BG != host.ColorCadetBlue {
		t.Errorf("steps region paints over time region, got %+v", c)
	}
	if c := cv.At(13, 19); c.Rune != 'c' || c.FG != host.ColorSpringBud || c.BG != host.ColorBlack {
		t.Errorf("connection text cell = %+v", c)
	}
	if c := cv.At(14, 14); c.FG != host.ColorBlack || !c.Bold {
		t.Errorf("steps text cell = %+v", c)
	}
}

func TestAlignmentAndClipping(t *testing.T) {
	win := host.NewWindow()
	win.SetBackgroundColor(host.ColorBlack)

	left := host.NewTextLayer(host.NewRect(0, 0, 40, 8))
	left.SetText("abcdefghijklmnop")
	left.SetBackgroundColor(host.ColorClear)
	win.AddChild(left)

	right := host.NewTextLayer(host.NewRect(0, 8, 144, 8))
	right.SetTextAlignment(host.AlignRight)
	right.SetText("end")
	win.AddChild(right)

	offscreen := host.NewTextLayer(host.NewRect(0, 400, 144, 20))
	offscreen.SetText("never")
	win.AddChild(offscreen)

	lines := Draw(win).Lines()
	if got := lines[0][:10]; got != "abcdefghij" {
		t.Errorf("clipped text = %q", got)
	}
	if strings.TrimSpace(lines[0]) != "abcdefghij" {
		t.Errorf("text leaked past its frame: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "end") {
		t.Errorf("right-aligned row = %q", lines[1])
	}
	for _, l := range lines {
		if strings.Contains(l, "never") {
			t.Error("off-screen layer was drawn")
		}
	}
}

func TestBlockText(t *testing.T) {
	rows := blockText("1:2x")
	if got := string(rows[0]); got != "▀█  ▀ ▀▀█" {
		t.Errorf("row 0 = %q", got)
	}
	for i := range rows {
		if len(rows[i]) != 9 {
			t.Errorf("row %d width = %d, want 9", i, len(rows[i]))
		}
	}
}

func TestViewMatchesLines(t *testing.T) {
	cv := Draw(scenarioWindow(t))
	view := strings.Split(cv.View(), "\n")
	lines := cv.Lines()
	if len(view) != len(lines) {
		t.Fatalf("View() has %d rows, want %d", len(view), len(lines))
	}
	for i := range lines {
		plain := ansi.Strip(view[i])
		if plain != lines[i] {
			t.Errorf("row %d = %q, want %q", i, plain, lines[i])
		}
		if w := ansi.StringWidth(view[i]); w != 36 {
			t.Errorf("row %d width = %d, want 36", i, w)
		}
	}
}
