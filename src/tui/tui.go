package tui

// EventType is the type of user action
type EventType int

// Types of user action
const (
	Rune EventType = iota

	CtrlA
	CtrlB
	CtrlC
	CtrlD
	CtrlE
	CtrlF
	CtrlG
	CtrlH
	Tab
	CtrlJ
	CtrlK
	CtrlL
	CtrlM
	CtrlN
	CtrlO
	CtrlP
	CtrlQ
	CtrlR
	CtrlS
	CtrlT
	CtrlU
	CtrlV
	CtrlW
	CtrlX
	CtrlY
	CtrlZ
	ESC
	CtrlSpace

	Invalid
	Resize

	BTab
	BSpace

	Del
	PgUp
	PgDn

	Up
	Down
	Left
	Right
	Home
	End

	SLeft
	SRight

	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	AltEnter
	AltSpace
	AltSlash
	AltBS

	Alt0
)

// Alt-digit events span Alt0 to Alt0+9, Alt-letter events AltA to AltZ
const (
	AltA = Alt0 + 10
	AltZ = AltA + 'z' - 'a'
)

// Event is a key press or a terminal notification such as a resize
type Event struct {
	Type EventType
	Char rune
}

// Key returns the event of a printable character
func Key(r rune) Event {
	return Event{Rune, r}
}

// Color is a terminal color. Negative values select the terminal default.
type Color int16

const (
	colUndefined Color = -2
	colDefault   Color = -1
)

const (
	colBlack Color = iota
	colRed
	colGreen
	colYellow
	colBlue
	colMagenta
	colCyan
	colWhite
)

// ColorPair identifies the style of a glyph: a foreground/background
// combination taken from the active ColorTheme
type ColorPair int16

// Palette
const (
	_ ColorPair = iota
	ColNormal
	ColPrompt
	ColMatch
	ColCurrent
	ColCurrentMatch
	ColSpinner
	ColInfo
	ColCursor
	ColSelected
)

// ColorTheme assigns colors to each ColorPair
type ColorTheme struct {
	Fg           Color
	Bg           Color
	DarkBg       Color
	Prompt       Color
	Match        Color
	Current      Color
	CurrentMatch Color
	Spinner      Color
	Info         Color
	Cursor       Color
	Selected     Color
}

// Predefined themes
var (
	Default16 *ColorTheme
	Dark256   *ColorTheme
	Light256  *ColorTheme
)

func init() {
	Default16 = &ColorTheme{
		Fg:           colDefault,
		Bg:           colDefault,
		DarkBg:       colBlack,
		Prompt:       colBlue,
		Match:        colGreen,
		Current:      colYellow,
		CurrentMatch: colGreen,
		Spinner:      colGreen,
		Info:         colWhite,
		Cursor:       colRed,
		Selected:     colMagenta}
	Dark256 = &ColorTheme{
		Fg:           colDefault,
		Bg:           colDefault,
		DarkBg:       236,
		Prompt:       110,
		Match:        108,
		Current:      254,
		CurrentMatch: 151,
		Spinner:      148,
		Info:         144,
		Cursor:       161,
		Selected:     168}
	Light256 = &ColorTheme{
		Fg:           colDefault,
		Bg:           colDefault,
		DarkBg:       251,
		Prompt:       25,
		Match:        66,
		Current:      237,
		CurrentMatch: 23,
		Spinner:      65,
		Info:         101,
		Cursor:       161,
		Selected:     168}
}

// EmptyTheme returns a theme whose colors are all undefined so that they
// can be filled in from a base theme
func EmptyTheme() *ColorTheme {
	return &ColorTheme{
		Fg:           colUndefined,
		Bg:           colUndefined,
		DarkBg:       colUndefined,
		Prompt:       colUndefined,
		Match:        colUndefined,
		Current:      colUndefined,
		CurrentMatch: colUndefined,
		Spinner:      colUndefined,
		Info:         colUndefined,
		Cursor:       colUndefined,
		Selected:     colUndefined}
}

func override(baseTheme *ColorTheme, theme *ColorTheme) {
	o := func(a Color, b Color) Color {
		if b == colUndefined {
			return a
		}
		return b
	}
	theme.Fg = o(baseTheme.Fg, theme.Fg)
	theme.Bg = o(baseTheme.Bg, theme.Bg)
	theme.DarkBg = o(baseTheme.DarkBg, theme.DarkBg)
	theme.Prompt = o(baseTheme.Prompt, theme.Prompt)
	theme.Match = o(baseTheme.Match, theme.Match)
	theme.Current = o(baseTheme.Current, theme.Current)
	theme.CurrentMatch = o(baseTheme.CurrentMatch, theme.CurrentMatch)
	theme.Spinner = o(baseTheme.Spinner, theme.Spinner)
	theme.Info = o(baseTheme.Info, theme.Info)
	theme.Cursor = o(baseTheme.Cursor, theme.Cursor)
	theme.Selected = o(baseTheme.Selected, theme.Selected)
}

type colorPair struct {
	fg Color
	bg Color
}

// pairs resolves the theme into the foreground/background of every pair
func (theme *ColorTheme) pairs() map[ColorPair]colorPair {
	return map[ColorPair]colorPair{
		ColNormal:       {theme.Fg, theme.Bg},
		ColPrompt:       {theme.Prompt, theme.Bg},
		ColMatch:        {theme.Match, theme.Bg},
		ColCurrent:      {theme.Current, theme.DarkBg},
		ColCurrentMatch: {theme.CurrentMatch, theme.DarkBg},
		ColSpinner:      {theme.Spinner, theme.Bg},
		ColInfo:         {theme.Info, theme.Bg},
		ColCursor:       {theme.Cursor, theme.DarkBg},
		ColSelected:     {theme.Selected, theme.DarkBg}}
}

// Renderer is the terminal driver. Coordinates are (row, column) with the
// origin at the top-left corner of the screen.
type Renderer interface {
	Init() error
	Close()

	MaxX() int
	MaxY() int
	// Resize discards the cached geometry and queries the terminal again
	Resize()

	Clear()
	Move(y int, x int)
	X() int
	Y() int
	AddChar(r rune, pair ColorPair, bold bool)
	CPrint(pair ColorPair, bold bool, text string)
	// Refresh flushes the pending output and leaves the physical cursor
	// at the position of the last Move
	Refresh()

	GetChar() Event
}
