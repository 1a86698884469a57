package skimmer

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/skimmer/skimmer/src/tui"
)

type actionType int

const (
	actIgnore actionType = iota
	actAddChar
	actAbort
	actAccept
	actBackwardChar
	actBackwardDeleteChar
	actBackwardKillWord
	actBackwardWord
	actBeginningOfLine
	actDeleteChar
	actDeselect
	actDeselectAll
	actDown
	actEndOfLine
	actForwardChar
	actForwardWord
	actKillLine
	actKillWord
	actNextHistory
	actPageDown
	actPageUp
	actPreviousHistory
	actScrollLeft
	actScrollRight
	actSelect
	actSelectAll
	actToggle
	actToggleAll
	actToggleDown
	actToggleUp
	actUnixLineDiscard
	actUp
	actYank
)

var actionNames = map[string]actionType{
	"ignore":               actIgnore,
	"abort":                actAbort,
	"accept":               actAccept,
	"backward-char":        actBackwardChar,
	"backward-delete-char": actBackwardDeleteChar,
	"backward-kill-word":   actBackwardKillWord,
	"backward-word":        actBackwardWord,
	"beginning-of-line":    actBeginningOfLine,
	"delete-char":          actDeleteChar,
	"deselect":             actDeselect,
	"deselect-all":         actDeselectAll,
	"down":                 actDown,
	"end-of-line":          actEndOfLine,
	"forward-char":         actForwardChar,
	"forward-word":         actForwardWord,
	"kill-line":            actKillLine,
	"kill-word":            actKillWord,
	"next-history":         actNextHistory,
	"page-down":            actPageDown,
	"page-up":              actPageUp,
	"previous-history":     actPreviousHistory,
	"scroll-left":          actScrollLeft,
	"scroll-right":         actScrollRight,
	"select":               actSelect,
	"select-all":           actSelectAll,
	"toggle":               actToggle,
	"toggle-all":           actToggleAll,
	"toggle-down":          actToggleDown,
	"toggle-up":            actToggleUp,
	"unix-line-discard":    actUnixLineDiscard,
	"up":                   actUp,
	"yank":                 actYank,
}

// keyChord identifies a key. Char is only set for printable characters.
type keyChord struct {
	typ  tui.EventType
	char rune
}

func chordOf(event tui.Event) keyChord {
	if event.Type == tui.Rune {
		return keyChord{tui.Rune, event.Char}
	}
	return keyChord{typ: event.Type}
}

func keyOf(typ tui.EventType) keyChord {
	return keyChord{typ: typ}
}

func defaultKeymap() map[keyChord][]actionType {
	keymap := make(map[keyChord][]actionType)
	bind := func(k keyChord, actions ...actionType) {
		keymap[k] = actions
	}

	bind(keyOf(tui.Invalid), actIgnore)
	bind(keyOf(tui.CtrlA), actBeginningOfLine)
	bind(keyOf(tui.CtrlB), actBackwardChar)
	bind(keyOf(tui.CtrlC), actAbort)
	bind(keyOf(tui.CtrlG), actAbort)
	bind(keyOf(tui.CtrlQ), actAbort)
	bind(keyOf(tui.ESC), actAbort)
	bind(keyOf(tui.CtrlD), actDeleteChar)
	bind(keyOf(tui.CtrlE), actEndOfLine)
	bind(keyOf(tui.CtrlF), actForwardChar)
	bind(keyOf(tui.CtrlH), actBackwardDeleteChar)
	bind(keyOf(tui.BSpace), actBackwardDeleteChar)
	bind(keyOf(tui.Tab), actToggleUp)
	bind(keyOf(tui.BTab), actToggleDown)
	bind(keyOf(tui.CtrlJ), actDown)
	bind(keyOf(tui.CtrlK), actUp)
	bind(keyOf(tui.CtrlM), actAccept)
	bind(keyOf(tui.CtrlN), actDown)
	bind(keyOf(tui.CtrlP), actUp)
	bind(keyOf(tui.CtrlU), actUnixLineDiscard)
	bind(keyOf(tui.CtrlW), actBackwardKillWord)
	bind(keyOf(tui.CtrlY), actYank)
	bind(keyOf(tui.AltBS), actBackwardKillWord)

	bind(keyOf(tui.AltA+'b'-'a'), actBackwardWord)
	bind(keyOf(tui.SLeft), actBackwardWord)
	bind(keyOf(tui.AltA+'f'-'a'), actForwardWord)
	bind(keyOf(tui.SRight), actForwardWord)
	bind(keyOf(tui.AltA+'d'-'a'), actKillWord)
	bind(keyOf(tui.AltA+'h'-'a'), actScrollLeft)
	bind(keyOf(tui.AltA+'l'-'a'), actScrollRight)

	bind(keyOf(tui.Up), actUp)
	bind(keyOf(tui.Down), actDown)
	bind(keyOf(tui.Left), actBackwardChar)
	bind(keyOf(tui.Right), actForwardChar)

	bind(keyOf(tui.Home), actBeginningOfLine)
	bind(keyOf(tui.End), actEndOfLine)
	bind(keyOf(tui.Del), actDeleteChar)
	bind(keyOf(tui.PgUp), actPageUp)
	bind(keyOf(tui.PgDn), actPageDown)
	return keymap
}

// historyKeymap rebinds the vertical keys that are usually taken by
// history navigation
func historyKeymap(keymap map[keyChord][]actionType) {
	keymap[keyOf(tui.CtrlN)] = []actionType{actNextHistory}
	keymap[keyOf(tui.CtrlP)] = []actionType{actPreviousHistory}
}

func isAlphabet(char uint8) bool {
	return char >= 'a' && char <= 'z'
}

func isNumeric(char uint8) bool {
	return char >= '0' && char <= '9'
}

func parseKeyChord(key string) (keyChord, error) {
	lkey := strings.ToLower(key)
	switch lkey {
	case "up":
		return keyChord{typ: tui.Up}, nil
	case "down":
		return keyChord{typ: tui.Down}, nil
	case "left":
		return keyChord{typ: tui.Left}, nil
	case "right":
		return keyChord{typ: tui.Right}, nil
	case "enter", "return":
		return keyChord{typ: tui.CtrlM}, nil
	case "space":
		return keyChord{tui.Rune, ' '}, nil
	case "bspace", "bs":
		return keyChord{typ: tui.BSpace}, nil
	case "ctrl-space":
		return keyChord{typ: tui.CtrlSpace}, nil
	case "alt-enter", "alt-return":
		return keyChord{typ: tui.AltEnter}, nil
	case "alt-space":
		return keyChord{typ: tui.AltSpace}, nil
	case "alt-/":
		return keyChord{typ: tui.AltSlash}, nil
	case "alt-bs", "alt-bspace":
		return keyChord{typ: tui.AltBS}, nil
	case "tab":
		return keyChord{typ: tui.Tab}, nil
	case "btab", "shift-tab":
		return keyChord{typ: tui.BTab}, nil
	case "esc":
		return keyChord{typ: tui.ESC}, nil
	case "del":
		return keyChord{typ: tui.Del}, nil
	case "home":
		return keyChord{typ: tui.Home}, nil
	case "end":
		return keyChord{typ: tui.End}, nil
	case "pgup", "page-up":
		return keyChord{typ: tui.PgUp}, nil
	case "pgdn", "page-down":
		return keyChord{typ: tui.PgDn}, nil
	case "shift-left":
		return keyChord{typ: tui.SLeft}, nil
	case "shift-right":
		return keyChord{typ: tui.SRight}, nil
	case "f10":
		return keyChord{typ: tui.F10}, nil
	case "f11":
		return keyChord{typ: tui.F11}, nil
	case "f12":
		return keyChord{typ: tui.F12}, nil
	}
	switch {
	case len(key) == 6 && strings.HasPrefix(lkey, "ctrl-") && isAlphabet(lkey[5]):
		return keyChord{typ: tui.CtrlA + tui.EventType(lkey[5]-'a')}, nil
	case len(key) == 5 && strings.HasPrefix(lkey, "alt-") && isAlphabet(lkey[4]):
		return keyChord{typ: tui.AltA + tui.EventType(lkey[4]-'a')}, nil
	case len(key) == 5 && strings.HasPrefix(lkey, "alt-") && isNumeric(lkey[4]):
		return keyChord{typ: tui.Alt0 + tui.EventType(lkey[4]-'0')}, nil
	case len(key) == 2 && lkey[0] == 'f' && key[1] >= '1' && key[1] <= '9':
		return keyChord{typ: tui.F1 + tui.EventType(key[1]-'1')}, nil
	case utf8.RuneCountInString(key) == 1:
		return keyChord{tui.Rune, []rune(key)[0]}, nil
	}
	return keyChord{}, errors.Errorf("unsupported key: %s", key)
}

// parseKeymap applies a comma-separated list of KEY:ACTION[+ACTION...]
// bindings. A colon or a comma can be bound as the key itself.
func parseKeymap(keymap map[keyChord][]actionType, str string) error {
	for len(str) > 0 {
		// Searching from the second byte lets ':' and ',' act as keys
		sep := strings.Index(str[1:], ":")
		if sep < 0 {
			return errors.Errorf("bind action not specified: %s", str)
		}
		keyStr, rest := str[:sep+1], str[sep+2:]
		specs := rest
		str = ""
		if comma := strings.Index(rest, ","); comma >= 0 {
			specs, str = rest[:comma], rest[comma+1:]
		}

		chord, err := parseKeyChord(keyStr)
		if err != nil {
			return err
		}
		actions := []actionType{}
		for _, spec := range strings.Split(specs, "+") {
			act, found := actionNames[strings.ToLower(spec)]
			if !found {
				return errors.Errorf("unknown action: %s", spec)
			}
			actions = append(actions, act)
		}
		keymap[chord] = actions
	}
	return nil
}
