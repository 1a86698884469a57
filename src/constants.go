package skimmer

import (
	"time"

	"github.com/skimmer/skimmer/src/util"
)

const (
	// Core
	coordinatorDelayMax  time.Duration = 100 * time.Millisecond
	coordinatorDelayStep time.Duration = 10 * time.Millisecond

	// Reader
	readerBufferSize       = 64 * 1024
	readerPollIntervalMin  = 10 * time.Millisecond
	readerPollIntervalStep = 5 * time.Millisecond
	readerPollIntervalMax  = 50 * time.Millisecond

	// Terminal
	defaultTabstop   = 8
	defaultPrompt    = "> "
	maxPatternLength = 300
	keyChanSize      = 64
	spinnerDuration  = 100 * time.Millisecond

	// Matcher
	numPartitionsMultiplier = 8
	maxPartitions           = 32
	progressMinDuration     = 200 * time.Millisecond

	// Capacity of each chunk
	chunkSize int = 100

	// Do not cache results of low selectivity queries
	queryCacheMax int = chunkSize / 5

	// Not to cache mergers with large lists
	mergerCacheMax int = 100000

	// History
	defaultHistoryMax int = 1000
)

// skimmer events
const (
	EvtReadNew util.EventType = iota
	EvtReadFin
	EvtSearchNew
	EvtSearchProgress
	EvtSearchFin
	EvtReady
	EvtQuit
)

// Exit codes
const (
	ExitOk        = 0
	ExitNoMatch   = 1
	ExitError     = 2
	ExitInterrupt = 130
)
