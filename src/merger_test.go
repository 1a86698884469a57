package skimmer

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

func assert(t *testing.T, cond bool, msg ...interface{}) {
	t.Helper()
	if !cond {
		t.Error(msg...)
	}
}

var randIndex int32

func randResult() Result {
	randIndex++
	item := &Item{index: randIndex, text: []rune(fmt.Sprintf("%d", rand.Uint32()))}
	offsets := make([]Offset, rand.Int()%3)
	for idx := range offsets {
		sidx := int32(rand.Uint32() % 20)
		eidx := sidx + int32(rand.Uint32()%20)
		offsets[idx] = Offset{sidx, eidx}
	}
	return buildResult(item, offsets, rand.Int31()%4, Highlight{})
}

func TestEmptyMerger(t *testing.T) {
	assert(t, EmptyMerger.Length() == 0, "Not empty")
	assert(t, EmptyMerger.count == 0, "Invalid count")
	assert(t, len(EmptyMerger.lists) == 0, "Invalid lists")
	assert(t, len(EmptyMerger.merged) == 0, "Invalid merged list")
}

func buildLists(partiallySorted bool) ([][]Result, []Result) {
	numLists := 4
	lists := make([][]Result, numLists)
	cnt := 0
	for i := 0; i < numLists; i++ {
		numItems := rand.Int() % 20
		cnt += numItems
		lists[i] = make([]Result, numItems)
		for j := 0; j < numItems; j++ {
			lists[i][j] = randResult()
		}
		if partiallySorted {
			sort.Sort(ByRelevance(lists[i]))
		}
	}
	items := []Result{}
	for _, list := range lists {
		items = append(items, list...)
	}
	return lists, items
}

func TestMergerUnsorted(t *testing.T) {
	lists, items := buildLists(false)
	cnt := len(items)

	// Not sorted: same order
	mg := NewMerger(lists, false, false)
	assert(t, cnt == mg.Length(), "Invalid Length")
	for i := 0; i < cnt; i++ {
		assert(t, items[i].item == mg.Get(i).item, "Invalid Get")
	}

	// Not sorted with --tac: reverse order
	mg = NewMerger(lists, false, true)
	for i := 0; i < cnt; i++ {
		assert(t, items[cnt-i-1].item == mg.Get(i).item, "Invalid Get (tac)")
	}
}

func TestMergerSorted(t *testing.T) {
	lists, items := buildLists(true)
	cnt := len(items)

	// Sorted sorted order
	mg := NewMerger(lists, true, false)
	assert(t, cnt == mg.Length(), "Invalid Length")
	sort.Sort(ByRelevance(items))
	for i := 0; i < cnt; i++ {
		if items[i].item != mg.Get(i).item {
			t.Error("Not sorted", items[i], mg.Get(i))
		}
	}

	// Inverse order
	mg2 := NewMerger(lists, true, false)
	for i := cnt - 1; i >= 0; i-- {
		if items[i].item != mg2.Get(i).item {
			t.Error("Not sorted", items[i], mg2.Get(i))
		}
	}
}

func TestMergerPublish(t *testing.T) {
	lists := [][]Result{{}, {}}
	for i := 0; i < chunkSize+10; i++ {
		lists[i%2] = append(lists[i%2], randResult())
	}
	mg := NewMerger(lists, false, false)
	store := NewRankedStore()

	assert(t, mg.publish(store, 2), "publish failed")
	assert(t, store.Length() == mg.Length(), "Invalid length", store.Length())
	for i := 0; i < mg.Length(); i++ {
		result, _ := store.At(i)
		assert(t, result.item == mg.Get(i).item, "Invalid order at", i)
	}

	// Results of an older request are dropped
	assert(t, !EmptyMerger.publish(store, 1), "stale publish accepted")
	assert(t, store.Length() == mg.Length(), "stale publish cleared the store")
}
