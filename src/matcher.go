package skimmer

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/skimmer/skimmer/src/util"
)

// MatchRequest represents a search request
type MatchRequest struct {
	chunks  []*Chunk
	count   int
	pattern *Pattern
	version int64
}

// ProgressInfo is a snapshot of the progress of a search
type ProgressInfo struct {
	Matched   int
	Total     int
	Processed int
}

// Matcher is responsible for performing search
type Matcher struct {
	patternBuilder func([]rune) *Pattern
	sort           bool
	tac            bool
	eventBox       *util.EventBox
	reqBox         *util.EventBox
	store          *RankedStore
	partitions     int
	mergerCache    map[string]*Merger
	version        int64
}

const (
	reqRetry util.EventType = iota
	reqReset
)

// NewMatcher returns a new Matcher
func NewMatcher(patternBuilder func([]rune) *Pattern,
	sort bool, tac bool, eventBox *util.EventBox, store *RankedStore) *Matcher {
	partitions := util.Min(numPartitionsMultiplier*runtime.NumCPU(), maxPartitions)
	return &Matcher{
		patternBuilder: patternBuilder,
		sort:           sort,
		tac:            tac,
		eventBox:       eventBox,
		reqBox:         util.NewEventBox(),
		store:          store,
		partitions:     partitions,
		mergerCache:    make(map[string]*Merger)}
}

// Loop puts Matcher in action
func (m *Matcher) Loop() {
	prevCount := 0

	for {
		var request MatchRequest
		stop := false

		m.reqBox.Wait(func(events *util.Events) {
			if _, quit := (*events)[reqQuit]; quit {
				stop = true
				return
			}
			for _, val := range *events {
				switch val := val.(type) {
				case MatchRequest:
					if val.version > request.version {
						request = val
					}
				default:
					panic(fmt.Sprintf("Unexpected type: %T", val))
				}
			}
			events.Clear()
		})
		if stop {
			break
		}

		// Restart search
		patternString := request.pattern.AsString()
		var merger *Merger
		cancelled := false

		foundCache := false
		if request.count == prevCount {
			if cached, found := m.mergerCache[patternString]; found {
				foundCache = true
				merger = cached
			}
		} else {
			// Invalidate mergerCache
			prevCount = request.count
			m.mergerCache = make(map[string]*Merger)
		}

		if !foundCache {
			startedAt := time.Now()
			merger, cancelled = m.scan(request)
			if cancelled {
				astilog.Debugf("search for %q (v%d) cancelled", patternString, request.version)
			} else {
				astilog.Debugf("search for %q (v%d): %d/%d in %v",
					patternString, request.version, merger.Length(), request.count, time.Since(startedAt))
			}
		}

		if !cancelled {
			if merger.Length() < mergerCacheMax {
				m.mergerCache[patternString] = merger
			}
			if merger.publish(m.store, request.version) {
				m.eventBox.Set(EvtSearchFin, ProgressInfo{merger.Length(), request.count, request.count})
			}
		}
	}
}

func (m *Matcher) sliceChunks(chunks []*Chunk) [][]*Chunk {
	perSlice := len(chunks) / m.partitions

	if perSlice == 0 {
		return [][]*Chunk{chunks}
	}

	slices := make([][]*Chunk, m.partitions)
	for i := 0; i < m.partitions; i++ {
		start := i * perSlice
		end := start + perSlice
		if i == m.partitions-1 {
			end = len(chunks)
		}
		slices[i] = chunks[start:end]
	}
	return slices
}

type partialResult struct {
	index   int
	matches []Result
}

type chunkProgress struct {
	matches int
	items   int
}

func everything(chunk *Chunk) []Result {
	matches := make([]Result, chunk.count)
	for idx := 0; idx < chunk.count; idx++ {
		matches[idx] = buildResult(&chunk.items[idx], nil, 0, Highlight{})
	}
	return matches
}

// scan matches the pattern against every chunk of the request. It gives up
// and returns true when a newer request arrives in the meantime.
func (m *Matcher) scan(request MatchRequest) (*Merger, bool) {
	startedAt := time.Now()

	numChunks := len(request.chunks)
	if numChunks == 0 {
		return EmptyMerger, false
	}
	pattern := request.pattern
	empty := pattern.IsEmpty()
	cancelled := util.NewAtomicBool(false)

	slices := m.sliceChunks(request.chunks)
	numSlices := len(slices)
	resultChan := make(chan partialResult, numSlices)
	countChan := make(chan chunkProgress, numChunks)
	waitGroup := sync.WaitGroup{}

	for idx, chunks := range slices {
		waitGroup.Add(1)
		go func(idx int, chunks []*Chunk) {
			defer waitGroup.Done()
			sliceMatches := []Result{}
			for _, chunk := range chunks {
				var matches []Result
				if empty {
					matches = everything(chunk)
				} else {
					matches = pattern.Match(chunk)
				}
				sliceMatches = append(sliceMatches, matches...)
				if cancelled.Get() {
					return
				}
				countChan <- chunkProgress{len(matches), chunk.count}
			}
			if !empty && m.sort {
				if m.tac {
					sort.Sort(ByRelevanceTac(sliceMatches))
				} else {
					sort.Sort(ByRelevance(sliceMatches))
				}
			}
			resultChan <- partialResult{idx, sliceMatches}
		}(idx, chunks)
	}

	wait := func() bool {
		cancelled.Set(true)
		waitGroup.Wait()
		return true
	}

	count := 0
	progress := ProgressInfo{Total: request.count}
	for chunkCount := range countChan {
		count++
		progress.Matched += chunkCount.matches
		progress.Processed += chunkCount.items

		if count == numChunks {
			break
		}

		if m.reqBox.Peek(reqReset) || m.reqBox.Peek(reqQuit) {
			return nil, wait()
		}

		if time.Since(startedAt) > progressMinDuration {
			m.eventBox.Set(EvtSearchProgress, progress)
		}
	}

	partialResults := make([][]Result, numSlices)
	for range slices {
		partialResult := <-resultChan
		partialResults[partialResult.index] = partialResult.matches
	}
	return NewMerger(partialResults, !empty && m.sort, m.tac), false
}

// Reset is called to interrupt/signal the ongoing search. Each request gets
// a new version so that the results of an older one never reach the store
// after the results of a newer one.
func (m *Matcher) Reset(chunks []*Chunk, count int, patternRunes []rune, cancel bool) {
	pattern := m.patternBuilder(patternRunes)
	version := atomic.AddInt64(&m.version, 1)

	var event util.EventType
	if cancel {
		event = reqReset
	} else {
		event = reqRetry
	}
	m.reqBox.Set(event, MatchRequest{chunks, count, pattern, version})
}

// Stop terminates the Loop
func (m *Matcher) Stop() {
	m.reqBox.Set(reqQuit, nil)
}
