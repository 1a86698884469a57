package skimmer

import "fmt"

// EmptyMerger is a Merger with no data
var EmptyMerger = NewMerger([][]Result{}, false, false)

// Merger holds a set of locally sorted lists of results and provides the
// view of a single, globally-sorted list
type Merger struct {
	lists   [][]Result
	merged  []Result
	cursors []int
	sorted  bool
	tac     bool
	count   int
}

// NewMerger returns a new Merger
func NewMerger(lists [][]Result, sorted bool, tac bool) *Merger {
	mg := Merger{
		lists:   lists,
		merged:  []Result{},
		cursors: make([]int, len(lists)),
		sorted:  sorted,
		tac:     tac,
		count:   0}

	for _, list := range mg.lists {
		mg.count += len(list)
	}
	return &mg
}

// Length returns the number of results
func (mg *Merger) Length() int {
	return mg.count
}

// Get returns the result at the given rank position
func (mg *Merger) Get(idx int) Result {
	if mg.sorted {
		return mg.mergedGet(idx)
	}
	if mg.tac {
		idx = mg.count - idx - 1
	}
	for _, list := range mg.lists {
		numItems := len(list)
		if idx < numItems {
			return list[idx]
		}
		idx -= numItems
	}
	panic(fmt.Sprintf("Index out of bounds (unsorted, %d/%d)", idx, mg.count))
}

func (mg *Merger) mergedGet(idx int) Result {
	for i := len(mg.merged); i <= idx; i++ {
		minRank := rank{}
		minIdx := -1
		for listIdx, list := range mg.lists {
			cursor := mg.cursors[listIdx]
			if cursor < 0 || cursor == len(list) {
				mg.cursors[listIdx] = -1
				continue
			}
			rank := list[cursor].rank
			if minIdx < 0 || compareRanks(rank, minRank, mg.tac) {
				minRank = rank
				minIdx = listIdx
			}
		}

		if minIdx < 0 {
			panic(fmt.Sprintf("Index out of bounds (sorted, %d/%d)", i, mg.count))
		}
		chosen := mg.lists[minIdx]
		mg.merged = append(mg.merged, chosen[mg.cursors[minIdx]])
		mg.cursors[minIdx]++
	}
	return mg.merged[idx]
}

// publish hands the whole merged list over to the store in a single step
func (mg *Merger) publish(store *RankedStore, version int64) bool {
	results := make([]Result, mg.count)
	for idx := 0; idx < mg.count; idx++ {
		results[idx] = mg.Get(idx)
	}
	return store.Replace(version, results)
}
