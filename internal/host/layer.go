package host

// TextAlignment controls horizontal placement of text inside a layer.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
)

// String implements fmt.Stringer
func (a TextAlignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// TextLayer is a positioned region showing a single line of styled text.
//
// Layers are created with NewTextLayer and released with Destroy. Setters
// on a destroyed layer are ignored.
type TextLayer struct {
	frame      Rect
	text       string
	textColor  Color
	background Color
	font       Font
	alignment  TextAlignment
	destroyed  bool
	parent     *Window
}

// NewTextLayer creates a layer with the framework defaults: black text on a
// white background, Gothic 14, left aligned.
func NewTextLayer(frame Rect) *TextLayer {
	return &TextLayer{
		frame:      frame,
		textColor:  ColorBlack,
		background: ColorWhite,
		font:       SystemFont(FontKeyGothic14),
		alignment:  AlignLeft,
	}
}

// SetText replaces the layer's text.
func (l *TextLayer) SetText(s string) {
	if l.destroyed {
		return
	}
	l.text = s
}

// SetTextColor sets the foreground color.
func (l *TextLayer) SetTextColor(c Color) {
	if l.destroyed {
		return
	}
	l.textColor = c
}

// SetBackgroundColor sets the fill color. ColorClear shows what is beneath.
func (l *TextLayer) SetBackgroundColor(c Color) {
	if l.destroyed {
		return
	}
	l.background = c
}

// SetFont sets the font used for the text.
func (l *TextLayer) SetFont(f Font) {
	if l.destroyed {
		return
	}
	l.font = f
}

// SetTextAlignment sets horizontal alignment.
func (l *TextLayer) SetTextAlignment(a TextAlignment) {
	if l.destroyed {
		return
	}
	l.alignment = a
}

// Frame returns the layer's position and size.
func (l *TextLayer) Frame() Rect { return l.frame }

// Text returns the current text.
func (l *TextLayer) Text() string { return l.text }

// TextColor returns the foreground color.
func (l *TextLayer) TextColor() Color { return l.textColor }

// BackgroundColor returns the fill color.
func (l *TextLayer) BackgroundColor() Color { return l.background }

// Font returns the font used for the text.
func (l *TextLayer) Font() Font { return l.font }

// TextAlignment returns the horizontal alignment.
func (l *TextLayer) TextAlignment() TextAlignment { return l.alignment }

// Destroyed reports whether Destroy has been called.
func (l *TextLayer) Destroyed() bool { return l.destroyed }

// Destroy releases the layer. A layer still attached to a window is
// detached first.
func (l *TextLayer) Destroy() {
	if l.destroyed {
		return
	}
	if l.parent != nil {
		l.parent.RemoveChild(l)
	}
	l.destroyed = true
	l.text = ""
}
