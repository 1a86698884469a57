package algo

import (
	"unicode"
)

/*
 * The matchers below never allocate lowered copies of the input. They assume
 * the pattern is already lowercase when caseSensitive is false and fold each
 * input rune on the fly.
 */

// Result is the outcome of a single term matched against a line. Start and
// End delimit the matched region in runes; both are -1 when nothing matched.
type Result struct {
	Start int32
	End   int32

	// Bonus rewards matches on word boundaries and camelCase humps
	Bonus int32

	// Positions lists every matched rune in ascending order. Only the fuzzy
	// matcher fills it in; the others match a contiguous region.
	Positions []int
}

// Matched returns true if the term matched
func (r Result) Matched() bool {
	return r.Start >= 0
}

// MatchFunc is the common signature of the match algorithms
type MatchFunc func(caseSensitive bool, forward bool, runes []rune, pattern []rune) Result

var noMatch = Result{-1, -1, 0, nil}

type charClass int

const (
	charNonWord charClass = iota
	charLower
	charUpper
	charLetter
	charNumber
)

func classOf(char rune) charClass {
	switch {
	case unicode.IsLower(char):
		return charLower
	case unicode.IsUpper(char):
		return charUpper
	case unicode.IsLetter(char):
		return charLetter
	case unicode.IsNumber(char):
		return charNumber
	}
	return charNonWord
}

func fold(caseSensitive bool, char rune) rune {
	if caseSensitive {
		return char
	}
	if char >= 'A' && char <= 'Z' {
		return char + 32
	}
	if char > unicode.MaxASCII {
		return unicode.To(unicode.LowerCase, char)
	}
	return char
}

func runeAt(runes []rune, index int, forward bool) rune {
	if forward {
		return runes[index]
	}
	return runes[len(runes)-index-1]
}

func bonusFor(caseSensitive bool, runes []rune, pattern []rune, sidx int, eidx int) int32 {
	var bonus int32
	pidx := 0
	consecutive := false
	prevClass := charNonWord
	for index := 0; index < eidx; index++ {
		char := runes[index]
		class := classOf(char)

		var point int32
		if prevClass == charNonWord && class != charNonWord {
			point = 2
		} else if prevClass == charLower && class == charUpper ||
			prevClass != charNumber && class == charNumber {
			point = 1
		}
		prevClass = class

		if index < sidx {
			continue
		}
		if pattern[pidx] != fold(caseSensitive, char) {
			consecutive = false
			continue
		}
		if pidx == 0 {
			point *= 2
		}
		if consecutive {
			point++
		}
		bonus += point
		if pidx++; pidx == len(pattern) {
			break
		}
		consecutive = true
	}
	return bonus
}

// FuzzyMatch finds the pattern runes in order, not necessarily adjacent. A
// forward scan finds the first occurrence of the last rune, then a backward
// scan from there shrinks the match to the shortest suffix containing the
// whole pattern.
//
//	a_____b___abc__   forward:  *-----*-----*>
//	a_____b___abc__   backward:         <***
func FuzzyMatch(caseSensitive bool, forward bool, runes []rune, pattern []rune) Result {
	if len(pattern) == 0 {
		return Result{0, 0, 0, nil}
	}

	pidx := 0
	sidx := -1
	eidx := -1
	for index := range runes {
		char := fold(caseSensitive, runeAt(runes, index, forward))
		if char != runeAt(pattern, pidx, forward) {
			continue
		}
		if sidx < 0 {
			sidx = index
		}
		if pidx++; pidx == len(pattern) {
			eidx = index + 1
			break
		}
	}
	if sidx < 0 || eidx < 0 {
		return noMatch
	}

	positions := make([]int, len(pattern))
	pidx--
	for index := eidx - 1; index >= sidx; index-- {
		char := fold(caseSensitive, runeAt(runes, index, forward))
		if char != runeAt(pattern, pidx, forward) {
			continue
		}
		positions[pidx] = index
		if pidx--; pidx < 0 {
			sidx = index
			break
		}
	}

	if !forward {
		// Positions were collected against the reversed line
		sidx, eidx = len(runes)-eidx, len(runes)-sidx
		for i, j := 0, len(positions)-1; i < j; i, j = i+1, j-1 {
			positions[i], positions[j] = positions[j], positions[i]
		}
		for i, pos := range positions {
			positions[i] = len(runes) - pos - 1
		}
	}

	return Result{int32(sidx), int32(eidx),
		bonusFor(caseSensitive, runes, pattern, sidx, eidx), positions}
}

// ExactMatchNaive looks for the pattern as a substring. Although naive, it
// is faster than lowering the whole input and calling strings.Index for the
// short lines and patterns a finder deals with.
func ExactMatchNaive(caseSensitive bool, forward bool, runes []rune, pattern []rune) Result {
	if len(pattern) == 0 {
		return Result{0, 0, 0, nil}
	}
	lenRunes := len(runes)
	lenPattern := len(pattern)
	if lenRunes < lenPattern {
		return noMatch
	}

	pidx := 0
	for index := 0; index < lenRunes; index++ {
		char := fold(caseSensitive, runeAt(runes, index, forward))
		if runeAt(pattern, pidx, forward) != char {
			index -= pidx
			pidx = 0
			continue
		}
		if pidx++; pidx < lenPattern {
			continue
		}
		sidx := index - lenPattern + 1
		eidx := index + 1
		if !forward {
			sidx, eidx = lenRunes-eidx, lenRunes-sidx
		}
		return Result{int32(sidx), int32(eidx),
			bonusFor(caseSensitive, runes, pattern, sidx, eidx), nil}
	}
	return noMatch
}

// PrefixMatch matches the pattern at the beginning of the line
func PrefixMatch(caseSensitive bool, forward bool, runes []rune, pattern []rune) Result {
	if len(runes) < len(pattern) {
		return noMatch
	}
	for index, r := range pattern {
		if fold(caseSensitive, runes[index]) != r {
			return noMatch
		}
	}
	lenPattern := len(pattern)
	return Result{0, int32(lenPattern),
		bonusFor(caseSensitive, runes, pattern, 0, lenPattern), nil}
}

// SuffixMatch matches the pattern at the end of the line, ignoring trailing
// whitespace
func SuffixMatch(caseSensitive bool, forward bool, input []rune, pattern []rune) Result {
	runes := trimRight(input)
	diff := len(runes) - len(pattern)
	if diff < 0 {
		return noMatch
	}
	for index, r := range pattern {
		if fold(caseSensitive, runes[index+diff]) != r {
			return noMatch
		}
	}
	sidx := diff
	eidx := len(runes)
	return Result{int32(sidx), int32(eidx),
		bonusFor(caseSensitive, runes, pattern, sidx, eidx), nil}
}

// EqualMatch matches when the whole line equals the pattern. It always
// reports a zero bonus.
func EqualMatch(caseSensitive bool, forward bool, runes []rune, pattern []rune) Result {
	if len(runes) != len(pattern) {
		return noMatch
	}
	for index, r := range pattern {
		if fold(caseSensitive, runes[index]) != r {
			return noMatch
		}
	}
	return Result{0, int32(len(pattern)), 0, nil}
}

func trimRight(runes []rune) []rune {
	end := len(runes)
	for end > 0 && unicode.IsSpace(runes[end-1]) {
		end--
	}
	return runes[:end]
}
