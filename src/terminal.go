package skimmer

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"github.com/skimmer/skimmer/src/tui"
	"github.com/skimmer/skimmer/src/util"
)

// Terminal owns the screen. Its Loop is the only goroutine that touches the
// viewport and the selection; other goroutines talk to it through reqBox.
type Terminal struct {
	prompt      string
	promptWidth int
	tabstop     int
	multi       bool
	printQuery  bool
	printer     func(string)
	keymap      map[keyChord][]actionType
	history     *History
	query       *QueryState
	view        viewport
	selected    *selection
	store       *RankedStore
	itemList    *ItemList
	progress    ProgressInfo
	reading     bool
	startedAt   time.Time
	eventBox    *util.EventBox
	reqBox      *util.EventBox
	keyChan     chan tui.Event
	mutex       sync.Mutex
	closeOnce   sync.Once
	tui         tui.Renderer
}

const (
	reqRefresh util.EventType = iota
	reqInfo
	reqKey
	reqResize
	reqQuit
)

var _spinner = []string{`-`, `\`, `|`, `/`, `-`, `\`, `|`, `/`}

// NewTerminal returns a Terminal drawing the given store on the renderer
func NewTerminal(opts *Options, store *RankedStore, itemList *ItemList,
	eventBox *util.EventBox, renderer tui.Renderer) *Terminal {
	return &Terminal{
		prompt:      opts.Prompt,
		promptWidth: runewidth.StringWidth(opts.Prompt),
		tabstop:     opts.Tabstop,
		multi:       opts.Multi,
		printQuery:  opts.PrintQuery,
		printer:     opts.Printer,
		keymap:      opts.Keymap,
		history:     opts.History,
		query:       NewQueryState(opts.Query),
		selected:    newSelection(),
		store:       store,
		itemList:    itemList,
		reading:     true,
		startedAt:   time.Now(),
		eventBox:    eventBox,
		reqBox:      util.NewEventBox(),
		keyChan:     make(chan tui.Event, keyChanSize),
		tui:         renderer}
}

// UpdateCount tells whether the reader is still running
func (t *Terminal) UpdateCount(final bool) {
	t.mutex.Lock()
	t.reading = !final
	t.mutex.Unlock()
	t.reqBox.Set(reqInfo, nil)
}

// UpdateProgress updates the search progress
func (t *Terminal) UpdateProgress(progress ProgressInfo) {
	t.mutex.Lock()
	t.progress = progress
	t.mutex.Unlock()
	t.reqBox.Set(reqInfo, nil)
}

// UpdateList is called when the matcher published new results
func (t *Terminal) UpdateList(progress ProgressInfo) {
	t.mutex.Lock()
	t.progress = progress
	t.mutex.Unlock()
	t.reqBox.Set(reqRefresh, nil)
}

func (t *Terminal) close() {
	t.closeOnce.Do(t.tui.Close)
}

// Loop runs the interface until the user accepts or aborts, then prints the
// result and raises EvtQuit with the exit code
func (t *Terminal) Loop() {
	if err := t.tui.Init(); err != nil {
		t.eventBox.Set(EvtQuit, quitSignal{ExitError, errors.Wrap(err, "failed to start interface")})
		return
	}
	util.AtExit(t.close)

	done := make(chan struct{})
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-intChan:
			t.reqBox.Set(reqQuit, nil)
		case <-done:
		}
	}()

	go func() {
		for {
			event := t.tui.GetChar()
			if event.Type == tui.Resize {
				t.reqBox.Set(reqResize, nil)
				continue
			}
			select {
			case t.keyChan <- event:
				t.reqBox.Set(reqKey, nil)
			case <-done:
				return
			}
		}
	}()

	t.render()
	code := t.run()
	close(done)
	signal.Stop(intChan)
	t.close()

	if code != ExitInterrupt {
		t.output()
	}
	t.eventBox.Set(EvtQuit, quitSignal{code, nil})
}

// run handles requests until an action ends the session
func (t *Terminal) run() int {
	for {
		pending := make(map[util.EventType]bool)
		t.reqBox.Wait(func(events *util.Events) {
			for req := range *events {
				pending[req] = true
			}
			events.Clear()
		})

		if pending[reqQuit] {
			astilog.Debug("interrupted")
			return ExitInterrupt
		}
		if pending[reqResize] {
			t.tui.Resize()
			astilog.Debugf("resized to %dx%d", t.tui.MaxX(), t.tui.MaxY())
		}
		if pending[reqKey] {
		Drain:
			for {
				select {
				case event := <-t.keyChan:
					if code, quit := t.handle(event); quit {
						return code
					}
				default:
					break Drain
				}
			}
		}
		t.render()
	}
}

// handle runs the actions bound to the event. Unbound printable characters
// are inserted into the query.
func (t *Terminal) handle(event tui.Event) (int, bool) {
	actions, found := t.keymap[chordOf(event)]
	if !found {
		if event.Type != tui.Rune {
			return 0, false
		}
		actions = []actionType{actAddChar}
	}
	for _, action := range actions {
		if code, quit := t.act(action, event); quit {
			return code, true
		}
	}
	return 0, false
}

func (t *Terminal) act(action actionType, event tui.Event) (int, bool) {
	changed := false
	switch action {
	case actIgnore:
	case actAddChar:
		changed = t.query.AddChar(event.Char)
	case actAbort:
		astilog.Debug("aborted")
		return ExitInterrupt, true
	case actAccept:
		return t.accept(), true
	case actBackwardChar:
		t.query.BackwardChar()
	case actForwardChar:
		t.query.ForwardChar()
	case actBackwardWord:
		t.query.BackwardWord()
	case actForwardWord:
		t.query.ForwardWord()
	case actBeginningOfLine:
		t.query.BeginningOfLine()
	case actEndOfLine:
		t.query.EndOfLine()
	case actBackwardDeleteChar:
		changed = t.query.BackwardDeleteChar()
	case actDeleteChar:
		changed = t.query.DeleteChar()
	case actBackwardKillWord:
		changed = t.query.BackwardKillWord()
	case actKillWord:
		changed = t.query.KillWord()
	case actKillLine:
		changed = t.query.KillLine()
	case actUnixLineDiscard:
		changed = t.query.UnixLineDiscard()
	case actYank:
		changed = t.query.Yank()
	case actPreviousHistory:
		if t.history != nil {
			changed = t.history.older(t.query)
		}
	case actNextHistory:
		if t.history != nil {
			changed = t.history.newer(t.query)
		}
	case actUp:
		t.moveCursor(1)
	case actDown:
		t.moveCursor(-1)
	case actPageUp:
		t.movePage(1)
	case actPageDown:
		t.movePage(-1)
	case actScrollLeft:
		t.view.scroll(-1, t.currentWidth())
	case actScrollRight:
		t.view.scroll(1, t.currentWidth())
	case actToggle, actToggleUp, actToggleDown, actSelect, actDeselect,
		actSelectAll, actDeselectAll, actToggleAll:
		if t.multi {
			t.actSelection(action)
		}
	}
	if changed {
		t.eventBox.Set(EvtSearchNew, t.query.String())
	}
	return 0, false
}

func (t *Terminal) actSelection(action actionType) {
	yes, no := true, false
	switch action {
	case actToggle:
		t.toggle(nil)
	case actToggleUp:
		t.toggle(nil)
		t.moveCursor(1)
	case actToggleDown:
		t.toggle(nil)
		t.moveCursor(-1)
	case actSelect:
		t.toggle(&yes)
	case actDeselect:
		t.toggle(&no)
	case actSelectAll:
		t.selectAll()
	case actDeselectAll:
		t.deselectAll()
	case actToggleAll:
		t.toggleAll()
	}
}

// accept makes sure the current line is selected when nothing else is and
// records the query in the history
func (t *Terminal) accept() int {
	if t.selected.count() == 0 {
		yes := true
		t.toggle(&yes)
	}
	if t.history != nil {
		if err := t.history.record(t.query); err != nil {
			astilog.Error(err)
		}
	}
	astilog.Debugf("accepted %d line(s)", t.selected.count())
	if t.selected.count() == 0 {
		return ExitNoMatch
	}
	return ExitOk
}

// currentWidth is the number of runes on the line under the cursor
func (t *Terminal) currentWidth() int {
	if result, ok := t.store.At(t.view.rankCursor); ok {
		return len(result.Item().Runes())
	}
	return 0
}

func (t *Terminal) moveCursor(delta int) {
	t.view.moveCursor(delta, t.store.Length())
}

func (t *Terminal) movePage(pages int) {
	t.view.movePage(pages, t.store.Length())
}

func (t *Terminal) toggle(force *bool) {
	t.selected.toggle(t.store, t.view.rankCursor, force)
}

func (t *Terminal) selectAll() {
	t.selected.selectAll(t.store)
}

func (t *Terminal) toggleAll() {
	t.selected.toggleAll(t.store)
}

func (t *Terminal) deselectAll() {
	t.selected.deselectAll()
}

func (t *Terminal) selectionCount() int {
	return t.selected.count()
}

// resultLines returns the selected lines in input order
func (t *Terminal) resultLines() []string {
	lines := []string{}
	for _, id := range t.selected.identities() {
		if item, found := t.itemList.Get(id); found {
			lines = append(lines, item.AsString())
		}
	}
	return lines
}

func (t *Terminal) output() {
	if t.printQuery {
		t.printer(t.query.String())
	}
	for _, line := range t.resultLines() {
		t.printer(line)
	}
}

// render redraws the whole screen: the list, the status line below it and
// the query line at the bottom
func (t *Terminal) render() {
	t.mutex.Lock()
	progress := t.progress
	reading := t.reading
	t.mutex.Unlock()

	maxY := t.tui.MaxY()
	t.view.resize(maxY-2, t.tui.MaxX())
	t.view.clamp(t.store.Length())

	t.tui.Clear()
	t.printList()
	if maxY >= 2 {
		t.printInfo(maxY-2, progress, reading)
	}
	if maxY >= 1 {
		t.printPrompt(maxY - 1)
	}
	t.tui.Refresh()
}

func (t *Terminal) printList() {
	start := t.view.windowStart()
	for row := 0; row < t.view.rows; row++ {
		result, found := t.store.At(start + row)
		if !found {
			break
		}
		t.printItem(result, t.view.rows-row-1, row == t.view.rowCursor)
	}
}

func (t *Terminal) printItem(result Result, y int, current bool) {
	item := result.Item()
	t.tui.Move(y, 0)
	if current {
		t.tui.CPrint(tui.ColCursor, true, ">")
	} else {
		t.tui.CPrint(tui.ColNormal, false, " ")
	}
	if t.selected.contains(item.Index()) {
		t.tui.CPrint(tui.ColSelected, true, ">")
	} else if current {
		t.tui.CPrint(tui.ColCurrent, true, " ")
	} else {
		t.tui.CPrint(tui.ColNormal, false, " ")
	}

	col, matchCol := tui.ColNormal, tui.ColMatch
	if current {
		col, matchCol = tui.ColCurrent, tui.ColCurrentMatch
	}
	highlight := result.Highlight()
	positions := highlight.Positions()
	text, anchor := reshape(item.Runes(), t.view.cols-3, t.view.hscroll, highlight.Last())

	next := 0
	for idx, r := range text {
		pos := anchor + idx
		for next < len(positions) && positions[next] < pos {
			next++
		}
		pair := col
		if next < len(positions) && positions[next] == pos {
			pair = matchCol
		}
		if r == '\t' {
			for n := t.tabstop - (t.tui.X()-2)%t.tabstop; n > 0; n-- {
				t.tui.AddChar(' ', pair, current)
			}
			continue
		}
		t.tui.AddChar(r, pair, current)
	}
}

func (t *Terminal) printInfo(y int, progress ProgressInfo, reading bool) {
	t.tui.Move(y, 0)
	if reading {
		idx := int(time.Since(t.startedAt)/spinnerDuration) % len(_spinner)
		t.tui.CPrint(tui.ColSpinner, true, _spinner[idx])
	} else {
		t.tui.CPrint(tui.ColInfo, false, " ")
	}

	output := fmt.Sprintf(" %d/%d", progress.Matched, progress.Total)
	if progress.Processed < progress.Total {
		output += fmt.Sprintf(" (%d%%)", (progress.Processed+1)*100/(progress.Total+1))
	}
	if count := t.selectionCount(); count > 0 {
		output += fmt.Sprintf(" [%d]", count)
	}
	t.tui.CPrint(tui.ColInfo, false, output)
}

func (t *Terminal) printPrompt(y int) {
	t.tui.Move(y, 0)
	t.tui.CPrint(tui.ColPrompt, true, t.prompt)
	t.tui.CPrint(tui.ColNormal, true, t.query.String())

	before := t.query.Runes()[:t.query.Cursor()]
	t.tui.Move(y, t.promptWidth+runewidth.StringWidth(string(before)))
}
