package tui

import (
	"os"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/encoding"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

func (c Color) style() tcell.Color {
	if c <= colDefault {
		return tcell.ColorDefault
	}
	return tcell.Color(c)
}

// TcellRenderer draws on a tcell.Screen
type TcellRenderer struct {
	screen tcell.Screen
	theme  *ColorTheme
	pairs  map[ColorPair]colorPair
	maxX   int
	maxY   int
	lastX  int
	lastY  int
}

// NewTcellRenderer returns a renderer drawing on the given screen. When
// screen is nil, a screen for the controlling terminal is created on Init.
// A nil theme renders in black and white.
func NewTcellRenderer(screen tcell.Screen, theme *ColorTheme) *TcellRenderer {
	return &TcellRenderer{screen: screen, theme: theme}
}

// Init initializes the screen and the color pairs
func (r *TcellRenderer) Init() error {
	if os.Getenv("TERM") == "cygwin" {
		os.Setenv("TERM", "")
	}
	encoding.Register()

	if r.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return errors.Wrap(err, "failed to create screen")
		}
		r.screen = s
	}
	if err := r.screen.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize screen")
	}
	r.screen.DisableMouse()

	if r.theme != nil {
		baseTheme := Default16
		if r.screen.Colors() >= 256 {
			baseTheme = Dark256
		}
		override(baseTheme, r.theme)
		r.pairs = r.theme.pairs()
	}
	r.Resize()
	return nil
}

// Close restores the terminal
func (r *TcellRenderer) Close() {
	r.screen.Fini()
}

// MaxX returns the number of columns
func (r *TcellRenderer) MaxX() int {
	return r.maxX
}

// MaxY returns the number of lines
func (r *TcellRenderer) MaxY() int {
	return r.maxY
}

// Resize queries the screen size again
func (r *TcellRenderer) Resize() {
	r.maxX, r.maxY = r.screen.Size()
}

// Clear erases the screen
func (r *TcellRenderer) Clear() {
	r.screen.Clear()
	r.lastX = 0
	r.lastY = 0
}

// Move moves the draw cursor
func (r *TcellRenderer) Move(y int, x int) {
	r.lastY = y
	r.lastX = x
}

// X returns the column of the draw cursor
func (r *TcellRenderer) X() int {
	return r.lastX
}

// Y returns the line of the draw cursor
func (r *TcellRenderer) Y() int {
	return r.lastY
}

func (r *TcellRenderer) style(pair ColorPair, bold bool) tcell.Style {
	style := tcell.StyleDefault
	if r.pairs != nil {
		p := r.pairs[pair]
		style = style.Foreground(p.fg.style()).Background(p.bg.style())
	} else {
		style = style.
			Reverse(pair == ColCurrent && bold || pair == ColCurrentMatch).
			Underline(pair == ColMatch || pair == ColCurrentMatch)
	}
	return style.Bold(bold)
}

// AddChar draws a glyph at the draw cursor and advances it by the width of
// the glyph. Glyphs beyond the right edge are dropped.
func (r *TcellRenderer) AddChar(ch rune, pair ColorPair, bold bool) {
	if ch < ' ' {
		return
	}
	if r.lastX < r.maxX && r.lastY < r.maxY {
		r.screen.SetContent(r.lastX, r.lastY, ch, nil, r.style(pair, bold))
	}
	r.lastX += runewidth.RuneWidth(ch)
}

// CPrint draws a string with the given style
func (r *TcellRenderer) CPrint(pair ColorPair, bold bool, text string) {
	for _, ch := range text {
		r.AddChar(ch, pair, bold)
	}
}

// Refresh shows the pending changes
func (r *TcellRenderer) Refresh() {
	r.screen.ShowCursor(r.lastX, r.lastY)
	r.screen.Show()
}

// GetChar blocks until the next key press or resize
func (r *TcellRenderer) GetChar() Event {
	ev := r.screen.PollEvent()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Event{Resize, 0}
	case *tcell.EventKey:
		return keyEvent(ev)
	}
	return Event{Invalid, 0}
}

func keyEvent(ev *tcell.EventKey) Event {
	alt := (ev.Modifiers() & tcell.ModAlt) > 0
	shift := (ev.Modifiers() & tcell.ModShift) > 0
	switch ev.Key() {
	case tcell.KeyCtrlA, tcell.KeyCtrlB, tcell.KeyCtrlC, tcell.KeyCtrlD,
		tcell.KeyCtrlE, tcell.KeyCtrlF, tcell.KeyCtrlG, tcell.KeyCtrlJ,
		tcell.KeyCtrlK, tcell.KeyCtrlL, tcell.KeyCtrlN, tcell.KeyCtrlO,
		tcell.KeyCtrlP, tcell.KeyCtrlQ, tcell.KeyCtrlR, tcell.KeyCtrlS,
		tcell.KeyCtrlT, tcell.KeyCtrlU, tcell.KeyCtrlV, tcell.KeyCtrlW,
		tcell.KeyCtrlX, tcell.KeyCtrlY, tcell.KeyCtrlZ:
		return Event{CtrlA + EventType(ev.Key()-tcell.KeyCtrlA), 0}
	case tcell.KeyCtrlH, tcell.KeyBackspace2:
		if alt {
			return Event{AltBS, 0}
		}
		return Event{BSpace, 0}
	case tcell.KeyTab:
		return Event{Tab, 0}
	case tcell.KeyBacktab:
		return Event{BTab, 0}
	case tcell.KeyEnter:
		if alt {
			return Event{AltEnter, 0}
		}
		return Event{CtrlM, 0}
	case tcell.KeyCtrlSpace:
		return Event{CtrlSpace, 0}
	case tcell.KeyEsc:
		return Event{ESC, 0}

	case tcell.KeyUp:
		return Event{Up, 0}
	case tcell.KeyDown:
		return Event{Down, 0}
	case tcell.KeyLeft:
		if shift {
			return Event{SLeft, 0}
		}
		return Event{Left, 0}
	case tcell.KeyRight:
		if shift {
			return Event{SRight, 0}
		}
		return Event{Right, 0}
	case tcell.KeyHome:
		return Event{Home, 0}
	case tcell.KeyEnd:
		return Event{End, 0}
	case tcell.KeyDelete:
		return Event{Del, 0}
	case tcell.KeyPgUp:
		return Event{PgUp, 0}
	case tcell.KeyPgDn:
		return Event{PgDn, 0}

	case tcell.KeyF1, tcell.KeyF2, tcell.KeyF3, tcell.KeyF4,
		tcell.KeyF5, tcell.KeyF6, tcell.KeyF7, tcell.KeyF8,
		tcell.KeyF9, tcell.KeyF10, tcell.KeyF11, tcell.KeyF12:
		return Event{F1 + EventType(ev.Key()-tcell.KeyF1), 0}

	case tcell.KeyRune:
		r := ev.Rune()
		if alt {
			switch {
			case r == ' ':
				return Event{AltSpace, 0}
			case r == '/':
				return Event{AltSlash, 0}
			case r >= 'a' && r <= 'z':
				return Event{AltA + EventType(r-'a'), 0}
			case r >= '0' && r <= '9':
				return Event{Alt0 + EventType(r-'0'), 0}
			}
		}
		return Event{Rune, r}
	}
	return Event{Invalid, 0}
}
