// Package skimmer implements skimmer, an interactive line picker for the
// terminal.
package skimmer

import (
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
	"github.com/skimmer/skimmer/src/tui"
	"github.com/skimmer/skimmer/src/util"
)

/*
Reader   -> EvtReadFin
Reader   -> EvtReadNew        -> Matcher  (restart)
Terminal -> EvtSearchNew      -> Matcher  (restart, cancel)
Matcher  -> EvtSearchProgress -> Terminal (update info)
Matcher  -> EvtSearchFin      -> Terminal (update list)
Terminal -> EvtQuit
*/

type quitSignal struct {
	code int
	err  error
}

// Run starts skimmer and returns the exit code
func Run(opts *Options) (int, error) {
	defer util.RunAtExitFuncs()

	eventBox := util.NewEventBox()
	itemList := NewItemList()
	reader := NewReader(itemList.Push, eventBox, opts.ReadZero)
	go reader.ReadSource()

	cache := NewChunkCache()
	patternCache := make(map[string]*Pattern)
	patternBuilder := func(runes []rune) *Pattern {
		return BuildPattern(cache, patternCache,
			opts.Exact, opts.FuzzyAlgo, opts.Case, true, runes)
	}
	store := NewRankedStore()
	matcher := NewMatcher(patternBuilder, opts.Sort, opts.Tac, eventBox, store)

	if opts.Filter != nil {
		return filter(opts, eventBox, itemList, matcher, patternBuilder)
	}

	go matcher.Loop()
	defer matcher.Stop()

	terminal := NewTerminal(opts, store, itemList, eventBox, tui.NewTcellRenderer(nil, opts.Theme))
	go terminal.Loop()

	query := []rune(opts.Query)
	reading := true
	ticks := 0
	for {
		delay := true
		ticks++
		var quit *quitSignal
		eventBox.Wait(func(events *util.Events) {
			defer events.Clear()
			for evt, value := range *events {
				switch evt {
				case EvtReadNew, EvtReadFin:
					if evt == EvtReadFin {
						reading = false
						if err, ok := value.(error); ok && err != nil {
							astilog.Errorf("input: %v", err)
						}
						terminal.UpdateCount(true)
					}
					snapshot, count := itemList.Snapshot()
					matcher.Reset(snapshot, count, query, false)

				case EvtSearchNew:
					query = []rune(value.(string))
					snapshot, count := itemList.Snapshot()
					matcher.Reset(snapshot, count, query, true)
					delay = false

				case EvtSearchProgress:
					terminal.UpdateProgress(value.(ProgressInfo))

				case EvtSearchFin:
					terminal.UpdateList(value.(ProgressInfo))

				case EvtQuit:
					signal := value.(quitSignal)
					quit = &signal
				}
			}
		})
		if quit != nil {
			reader.terminate()
			return quit.code, quit.err
		}
		if delay && reading {
			dur := util.DurWithin(
				time.Duration(ticks)*coordinatorDelayStep,
				0, coordinatorDelayMax)
			time.Sleep(dur)
		}
	}
}

// filter prints every line matching the filter query in rank order, without
// starting the interface
func filter(opts *Options, eventBox *util.EventBox, itemList *ItemList,
	matcher *Matcher, patternBuilder func([]rune) *Pattern) (int, error) {
	eventBox.Unwatch(EvtReadNew)
	eventBox.WaitFor(EvtReadFin)
	if value, _ := eventBox.Take(EvtReadFin); value != nil {
		if err, ok := value.(error); ok {
			return ExitError, errors.Wrap(err, "failed to read input")
		}
	}

	snapshot, count := itemList.Snapshot()
	merger, _ := matcher.scan(MatchRequest{
		chunks:  snapshot,
		count:   count,
		pattern: patternBuilder([]rune(*opts.Filter))})
	for i := 0; i < merger.Length(); i++ {
		result := merger.Get(i)
		opts.Printer(result.item.AsString())
	}
	astilog.Debugf("filter %q: %d/%d", *opts.Filter, merger.Length(), count)
	if merger.Length() > 0 {
		return ExitOk, nil
	}
	return ExitNoMatch, nil
}
