package skimmer

import "github.com/skimmer/skimmer/src/util"

// viewport tracks the current item in two coordinates: rankCursor is its
// position in the ranked list, rowCursor the screen row it is drawn on.
// Rows are counted from the bottom of the list area, so the bottom row shows
// rank rankCursor-rowCursor. Scrolling happens when rowCursor saturates
// while rankCursor keeps moving.
type viewport struct {
	rankCursor int
	rowCursor  int
	hscroll    int
	rows       int
	cols       int
}

func (v *viewport) windowStart() int {
	return v.rankCursor - v.rowCursor
}

func (v *viewport) resize(rows int, cols int) {
	v.rows = util.Max(rows, 0)
	v.cols = util.Max(cols, 0)
}

func (v *viewport) moveCursor(delta int, total int) {
	if total == 0 {
		v.rankCursor = 0
		v.rowCursor = 0
		return
	}
	if delta > 0 {
		v.rowCursor = util.Constrain(v.rowCursor+delta, 0, util.Min(v.rows-1, total-1))
		v.rankCursor = util.Constrain(v.rankCursor+delta, 0, total-1)
	} else {
		v.rowCursor = util.Max(0, v.rowCursor+delta)
		v.rankCursor = util.Max(0, v.rankCursor+delta)
	}
}

func (v *viewport) movePage(pages int, total int) {
	v.moveCursor(v.rows*pages, total)
}

// clamp pulls the cursors back into the list after it shrank or the screen
// got smaller, keeping the cursor on the same row where possible
func (v *viewport) clamp(total int) {
	if total == 0 {
		v.rankCursor = 0
		v.rowCursor = 0
		return
	}
	if over := v.rankCursor - (total - 1); over > 0 {
		v.rankCursor -= over
		v.rowCursor -= over
	}
	v.rowCursor = util.Constrain(v.rowCursor, 0, util.Min(v.rankCursor, v.rows-1))
}

// scroll shifts the horizontal offset, never past the last rune of a line
// of the given length
func (v *viewport) scroll(delta int, length int) {
	v.hscroll = util.Constrain(v.hscroll+delta, 0, util.Max(length-1, 0))
}
