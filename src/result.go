package skimmer

import (
	"sort"
)

// Offset holds the begin and end of a matched region of a line in runes
type Offset [2]int32

type highlightKind int

const (
	highlightNone highlightKind = iota
	highlightPositions
	highlightRange
)

// Highlight is the part of a line that matched the query: either a sorted
// set of rune positions, a contiguous range, or nothing
type Highlight struct {
	kind      highlightKind
	positions []int
	begin     int
	end       int
}

// PositionHighlight returns a highlight of individual rune positions
func PositionHighlight(positions []int) Highlight {
	if len(positions) == 0 {
		return Highlight{}
	}
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)
	unique := sorted[:1]
	for _, pos := range sorted[1:] {
		if pos != unique[len(unique)-1] {
			unique = append(unique, pos)
		}
	}
	return Highlight{kind: highlightPositions, positions: unique}
}

// RangeHighlight returns a highlight of runes in [begin, end)
func RangeHighlight(begin int, end int) Highlight {
	if begin >= end {
		return Highlight{}
	}
	return Highlight{kind: highlightRange, begin: begin, end: end}
}

// Empty returns true if nothing is highlighted
func (h Highlight) Empty() bool {
	return h.kind == highlightNone
}

// Positions returns the highlighted rune positions in ascending order
func (h Highlight) Positions() []int {
	switch h.kind {
	case highlightPositions:
		return h.positions
	case highlightRange:
		positions := make([]int, 0, h.end-h.begin)
		for pos := h.begin; pos < h.end; pos++ {
			positions = append(positions, pos)
		}
		return positions
	}
	return nil
}

// Last returns the last highlighted position, or 0 if there is none
func (h Highlight) Last() int {
	switch h.kind {
	case highlightPositions:
		return h.positions[len(h.positions)-1]
	case highlightRange:
		return h.end - 1
	}
	return 0
}

// rank orders results: shorter match, higher bonus, shorter line, then
// input order
type rank struct {
	matchlen int32
	bonus    int32
	length   int32
	index    int32
}

// Result is a ranked match: a reference to an input line plus the part of it
// that matched
type Result struct {
	item      *Item
	highlight Highlight
	rank      rank
}

// Item returns the matched line
func (result *Result) Item() *Item {
	return result.item
}

// Highlight returns the matched part of the line
func (result *Result) Highlight() Highlight {
	return result.highlight
}

func buildResult(item *Item, offsets []Offset, bonus int32, highlight Highlight) Result {
	sort.Sort(ByOrder(offsets))
	matchlen := 0
	prevEnd := 0
	for _, offset := range offsets {
		begin := int(offset[0])
		end := int(offset[1])
		if prevEnd > begin {
			begin = prevEnd
		}
		if end > prevEnd {
			prevEnd = end
		}
		if end > begin {
			matchlen += end - begin
		}
	}
	return Result{
		item:      item,
		highlight: highlight,
		rank:      rank{int32(matchlen), bonus, int32(len(item.text)), item.index}}
}

// ByOrder is for sorting substring offsets
type ByOrder []Offset

func (a ByOrder) Len() int {
	return len(a)
}

func (a ByOrder) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

func (a ByOrder) Less(i, j int) bool {
	ioff := a[i]
	joff := a[j]
	return (ioff[0] < joff[0]) || (ioff[0] == joff[0]) && (ioff[1] <= joff[1])
}

// ByRelevance is for sorting Results
type ByRelevance []Result

func (a ByRelevance) Len() int {
	return len(a)
}

func (a ByRelevance) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

func (a ByRelevance) Less(i, j int) bool {
	return compareRanks(a[i].rank, a[j].rank, false)
}

// ByRelevanceTac is for sorting Results when the input order is reversed
type ByRelevanceTac []Result

func (a ByRelevanceTac) Len() int {
	return len(a)
}

func (a ByRelevanceTac) Swap(i, j int) {
	a[i], a[j] = a[j], a[i]
}

func (a ByRelevanceTac) Less(i, j int) bool {
	return compareRanks(a[i].rank, a[j].rank, true)
}

func compareRanks(irank rank, jrank rank, tac bool) bool {
	if irank.matchlen != jrank.matchlen {
		return irank.matchlen < jrank.matchlen
	}
	if irank.bonus != jrank.bonus {
		return irank.bonus > jrank.bonus
	}
	if irank.length != jrank.length {
		return irank.length < jrank.length
	}
	return (irank.index <= jrank.index) != tac
}
