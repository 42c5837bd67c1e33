package host

// WindowHandlers are invoked by the WindowStack when a window is shown and
// hidden.
type WindowHandlers struct {
	Load   func(w *Window)
	Unload func(w *Window)
}

// Window is a full-screen container of text layers.
type Window struct {
	bounds     Rect
	background Color
	children   []*TextLayer
	handlers   WindowHandlers
	loaded     bool
}

// NewWindow creates a screen-sized window with a white background.
func NewWindow() *Window {
	return &Window{
		bounds:     NewRect(0, 0, ScreenWidth, ScreenHeight),
		background: ColorWhite,
	}
}

// Bounds returns the frame of the window's root layer.
func (w *Window) Bounds() Rect { return w.bounds }

// SetBackgroundColor sets the color drawn behind all layers.
func (w *Window) SetBackgroundColor(c Color) { w.background = c }

// BackgroundColor returns the window fill color.
func (w *Window) BackgroundColor() Color { return w.background }

// SetHandlers installs the load and unload callbacks.
func (w *Window) SetHandlers(h WindowHandlers) { w.handlers = h }

// Loaded reports whether the window is currently on screen.
func (w *Window) Loaded() bool { return w.loaded }

// AddChild attaches l above all existing children. Adding a layer that is
// already attached moves it to the top.
func (w *Window) AddChild(l *TextLayer) {
	if l == nil || l.destroyed {
		return
	}
	if l.parent != nil {
		l.parent.RemoveChild(l)
	}
	l.parent = w
	w.children = append(w.children, l)
}

// RemoveChild detaches l. Removing a layer that is not attached is a no-op.
func (w *Window) RemoveChild(l *TextLayer) {
	for i, c := range w.children {
		if c == l {
			w.children = append(w.children[:i], w.children[i+1:]...)
			l.parent = nil
			return
		}
	}
}

// Children returns the attached layers in paint order (bottom first).
func (w *Window) Children() []*TextLayer {
	out := make([]*TextLayer, len(w.children))
	copy(out, w.children)
	return out
}

func (w *Window) load() {
	if w.loaded {
		return
	}
	w.loaded = true
	if w.handlers.Load != nil {
		w.handlers.Load(w)
	}
}

func (w *Window) unload() {
	if !w.loaded {
		return
	}
	if w.handlers.Unload != nil {
		w.handlers.Unload(w)
	}
	w.loaded = false
}

// WindowStack holds the windows of the running application. Only the top
// window is loaded.
type WindowStack struct {
	windows []*Window
}

// NewWindowStack creates an empty stack.
func NewWindowStack() *WindowStack {
	return &WindowStack{}
}

// Push unloads the current top window, if any, and loads w.
func (s *WindowStack) Push(w *Window) {
	if top := s.Top(); top != nil {
		top.unload()
	}
	s.windows = append(s.windows, w)
	w.load()
}

// Pop unloads and removes the top window, then reloads the one beneath.
// It returns the removed window, or nil when the stack is empty.
func (s *WindowStack) Pop() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	top := s.windows[len(s.windows)-1]
	s.windows = s.windows[:len(s.windows)-1]
	top.unload()
	if next := s.Top(); next != nil {
		next.load()
	}
	return top
}

// Top returns the visible window or nil.
func (s *WindowStack) Top() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[len(s.windows)-1]
}

// PopAll unloads every window, top first.
func (s *WindowStack) PopAll() {
	for s.Pop() != nil {
	}
}
