package skimmer

import "sync"

// RankedList gives positional access to results in rank order
type RankedList interface {
	At(pos int) (Result, bool)
	Length() int
}

// RankedStore holds the results of the latest query in rank order. The
// matcher writes to it while the terminal reads from it. Every write carries
// the version of the request that produced it, and writes from a request
// older than the last Clear are dropped.
type RankedStore struct {
	mutex   sync.RWMutex
	version int64
	results []Result
}

// NewRankedStore returns an empty RankedStore
func NewRankedStore() *RankedStore {
	return &RankedStore{results: []Result{}}
}

// Clear discards every result and starts accepting the results of the given
// version. It returns false if a newer version has already been seen.
func (s *RankedStore) Clear(version int64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if version < s.version {
		return false
	}
	s.version = version
	s.results = s.results[:0:0]
	return true
}

// Replace swaps in the complete result list of the given version at once,
// so readers never see a partially published list. The store keeps the
// slice. It returns false if a newer version has already been seen.
func (s *RankedStore) Replace(version int64, results []Result) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if version < s.version {
		return false
	}
	s.version = version
	s.results = results
	return true
}

// Append adds results to the end of the list unless they are stale
func (s *RankedStore) Append(version int64, results ...Result) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if version != s.version {
		return false
	}
	s.results = append(s.results, results...)
	return true
}

// At returns the result at the given rank position
func (s *RankedStore) At(pos int) (Result, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if pos < 0 || pos >= len(s.results) {
		return Result{}, false
	}
	return s.results[pos], true
}

// Length returns the number of results
func (s *RankedStore) Length() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.results)
}

// Version returns the version of the results currently held
func (s *RankedStore) Version() int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.version
}
