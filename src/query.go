package skimmer

import "unicode"

// QueryState is the query being edited: a rune buffer and a cursor between
// runes. Editing methods report whether the content of the buffer changed.
type QueryState struct {
	input  []rune
	cx     int
	yanked []rune
}

// NewQueryState returns a QueryState holding the query with the cursor at
// the end
func NewQueryState(query string) *QueryState {
	input := []rune(query)
	return &QueryState{input: input, cx: len(input)}
}

// Runes returns the query
func (q *QueryState) Runes() []rune {
	return q.input
}

// String returns the query
func (q *QueryState) String() string {
	return string(q.input)
}

// Cursor returns the number of runes before the cursor
func (q *QueryState) Cursor() int {
	return q.cx
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordStart returns the start of the word before the cursor
func (q *QueryState) wordStart() int {
	pos := q.cx
	for pos > 0 && !isWordRune(q.input[pos-1]) {
		pos--
	}
	for pos > 0 && isWordRune(q.input[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd returns the end of the word after the cursor
func (q *QueryState) wordEnd() int {
	pos := q.cx
	for pos < len(q.input) && !isWordRune(q.input[pos]) {
		pos++
	}
	for pos < len(q.input) && isWordRune(q.input[pos]) {
		pos++
	}
	return pos
}

// kill removes [from, to) and keeps it for Yank
func (q *QueryState) kill(from int, to int) bool {
	if from >= to {
		return false
	}
	q.yanked = append([]rune{}, q.input[from:to]...)
	q.input = append(q.input[:from], q.input[to:]...)
	q.cx = from
	return true
}

// AddChar inserts a rune at the cursor
func (q *QueryState) AddChar(r rune) bool {
	if len(q.input) >= maxPatternLength {
		return false
	}
	q.input = append(q.input[:q.cx], append([]rune{r}, q.input[q.cx:]...)...)
	q.cx++
	return true
}

// BackwardChar moves the cursor one rune to the left
func (q *QueryState) BackwardChar() bool {
	if q.cx > 0 {
		q.cx--
	}
	return false
}

// ForwardChar moves the cursor one rune to the right
func (q *QueryState) ForwardChar() bool {
	if q.cx < len(q.input) {
		q.cx++
	}
	return false
}

// BackwardWord moves the cursor to the start of the previous word
func (q *QueryState) BackwardWord() bool {
	q.cx = q.wordStart()
	return false
}

// ForwardWord moves the cursor to the end of the next word
func (q *QueryState) ForwardWord() bool {
	q.cx = q.wordEnd()
	return false
}

// BeginningOfLine moves the cursor to the start of the query
func (q *QueryState) BeginningOfLine() bool {
	q.cx = 0
	return false
}

// EndOfLine moves the cursor to the end of the query
func (q *QueryState) EndOfLine() bool {
	q.cx = len(q.input)
	return false
}

// BackwardDeleteChar deletes the rune before the cursor
func (q *QueryState) BackwardDeleteChar() bool {
	if q.cx == 0 {
		return false
	}
	q.input = append(q.input[:q.cx-1], q.input[q.cx:]...)
	q.cx--
	return true
}

// DeleteChar deletes the rune under the cursor
func (q *QueryState) DeleteChar() bool {
	if q.cx >= len(q.input) {
		return false
	}
	q.input = append(q.input[:q.cx], q.input[q.cx+1:]...)
	return true
}

// BackwardKillWord deletes the word before the cursor
func (q *QueryState) BackwardKillWord() bool {
	return q.kill(q.wordStart(), q.cx)
}

// KillWord deletes the word after the cursor
func (q *QueryState) KillWord() bool {
	return q.kill(q.cx, q.wordEnd())
}

// KillLine deletes from the cursor to the end of the query
func (q *QueryState) KillLine() bool {
	return q.kill(q.cx, len(q.input))
}

// UnixLineDiscard deletes the whole query
func (q *QueryState) UnixLineDiscard() bool {
	return q.kill(0, len(q.input))
}

// Yank inserts the text deleted last
func (q *QueryState) Yank() bool {
	if len(q.yanked) == 0 || len(q.input)+len(q.yanked) > maxPatternLength {
		return false
	}
	suffix := append([]rune{}, q.input[q.cx:]...)
	q.input = append(append(q.input[:q.cx], q.yanked...), suffix...)
	q.cx += len(q.yanked)
	return true
}

// SetQuery replaces the query and moves the cursor to the end
func (q *QueryState) SetQuery(query string) bool {
	prev := string(q.input)
	q.input = []rune(query)
	q.cx = len(q.input)
	return prev != query
}
