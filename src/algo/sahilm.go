package algo

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SahilmMatch scores the line with github.com/sahilm/fuzzy, which favours
// matches after separators and on camelCase humps. The library always
// ignores case, so a case-sensitive pattern additionally requires the
// matched runes to be equal.
func SahilmMatch(caseSensitive bool, forward bool, runes []rune, pattern []rune) Result {
	if len(pattern) == 0 {
		return Result{0, 0, 0, nil}
	}
	text := string(runes)
	if strings.ContainsRune(text, 0) {
		// The library treats NUL as the end of the line
		return FuzzyMatch(caseSensitive, forward, runes, pattern)
	}
	matches := fuzzy.FindNoSort(string(pattern), []string{text})
	if len(matches) == 0 || len(matches[0].MatchedIndexes) == 0 {
		return noMatch
	}
	match := matches[0]

	// The library reports byte offsets
	runeIndex := make(map[int]int, len(runes))
	idx := 0
	for byteIdx := range text {
		runeIndex[byteIdx] = idx
		idx++
	}
	positions := make([]int, 0, len(match.MatchedIndexes))
	for _, byteIdx := range match.MatchedIndexes {
		positions = append(positions, runeIndex[byteIdx])
	}

	if caseSensitive {
		if len(positions) != len(pattern) {
			return noMatch
		}
		for i, pos := range positions {
			if runes[pos] != pattern[i] {
				return noMatch
			}
		}
	}

	sidx := positions[0]
	eidx := positions[len(positions)-1] + 1
	return Result{int32(sidx), int32(eidx), int32(match.Score), positions}
}
