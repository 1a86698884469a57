package skimmer

import (
	"unicode/utf8"

	"github.com/skimmer/skimmer/src/util"
)

// Lines are laid out with a rough width estimate rather than the real East
// Asian width tables: a rune takes one column when it encodes to a single
// UTF-8 byte and two columns otherwise. Accented latin letters are therefore
// counted as wide.

var ellipsis = []rune("..")

func charWidth(r rune) int {
	if utf8.RuneLen(r) == 1 {
		return 1
	}
	return 2
}

func displayWidth(text []rune) int {
	width := 0
	for _, r := range text {
		width += charWidth(r)
	}
	return width
}

// leftFixed returns the index of the last rune that still fits in maxWidth
// columns when the text is drawn from the left
func leftFixed(text []rune, maxWidth int) int {
	if maxWidth <= 0 {
		return 0
	}
	width := 0
	for idx, r := range text {
		width += charWidth(r)
		if width > maxWidth {
			return idx - 1
		}
	}
	return len(text) - 1
}

// rightFixed returns the index of the first rune of the longest suffix that
// fits in maxWidth columns
func rightFixed(text []rune, maxWidth int) int {
	if maxWidth <= 0 {
		return len(text) - 1
	}
	width := 0
	for idx := len(text) - 1; idx >= 0; idx-- {
		width += charWidth(text[idx])
		if width > maxWidth {
			return idx + 1
		}
	}
	return 0
}

// reshape fits text[start:] into width columns while keeping the rune at
// mustShow visible. It returns the runes to draw, including the ".." markers
// when the line had to be cut, and the index in text of the first rune
// drawn. The marker at the end is appended whenever the line does not fit,
// even if the cut happened only on the left.
func reshape(text []rune, width int, start int, mustShow int) ([]rune, int) {
	start = util.Constrain(start, 0, len(text))
	if displayWidth(text[start:]) <= width {
		return text[start:], start
	}

	rightBound := 1 + util.Max(mustShow, start+leftFixed(text[start:], width-2))
	rightBound = util.Constrain(rightBound, start, len(text))

	fit := func(budget int) int {
		return util.Constrain(start+rightFixed(text[start:rightBound], budget), start, rightBound)
	}
	leftBound := fit(width - 2)
	anchor := leftBound

	shown := make([]rune, 0, rightBound-leftBound+4)
	if leftBound > start {
		leftBound = fit(width - 4)
		shown = append(shown, ellipsis...)
		anchor = leftBound - 2
	}
	shown = append(shown, text[leftBound:rightBound]...)
	shown = append(shown, ellipsis...)
	return shown, anchor
}
