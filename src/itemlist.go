package skimmer

import "sync"

// Chunk is a fixed-size block of Items. Items never move once pushed, so
// pointers to them stay valid while the list grows.
type Chunk struct {
	items [chunkSize]Item
	count int
}

// ItemList is the append-only table of every input line. The reader pushes
// lines while the matcher scans snapshots and the terminal resolves
// identities to lines.
type ItemList struct {
	chunks []*Chunk
	count  int
	mutex  sync.RWMutex
}

// NewItemList returns an empty ItemList
func NewItemList() *ItemList {
	return &ItemList{chunks: []*Chunk{}}
}

// IsFull returns true if the Chunk is full
func (c *Chunk) IsFull() bool {
	return c.count == chunkSize
}

// CountItems returns the total number of Items
func CountItems(cs []*Chunk) int {
	if len(cs) == 0 {
		return 0
	}
	return chunkSize*(len(cs)-1) + cs[len(cs)-1].count
}

// Push appends a line and assigns it the next identity
func (il *ItemList) Push(data []byte) bool {
	il.mutex.Lock()
	defer il.mutex.Unlock()

	if len(il.chunks) == 0 || il.chunks[len(il.chunks)-1].IsFull() {
		il.chunks = append(il.chunks, &Chunk{})
	}
	chunk := il.chunks[len(il.chunks)-1]
	chunk.items[chunk.count] = Item{index: int32(il.count), text: []rune(string(data))}
	chunk.count++
	il.count++
	return true
}

// Snapshot returns the chunks pushed so far and the number of items in them.
// The last chunk is copied so the caller never sees it grow.
func (il *ItemList) Snapshot() ([]*Chunk, int) {
	il.mutex.RLock()
	defer il.mutex.RUnlock()

	ret := make([]*Chunk, len(il.chunks))
	copy(ret, il.chunks)
	if cnt := len(ret); cnt > 0 {
		newChunk := *ret[cnt-1]
		ret[cnt-1] = &newChunk
	}
	return ret, CountItems(ret)
}

// Get resolves an identity to its Item
func (il *ItemList) Get(index int32) (*Item, bool) {
	il.mutex.RLock()
	defer il.mutex.RUnlock()
	if index < 0 || int(index) >= il.count {
		return nil, false
	}
	return &il.chunks[int(index)/chunkSize].items[int(index)%chunkSize], true
}

// Count returns the number of items pushed so far
func (il *ItemList) Count() int {
	il.mutex.RLock()
	defer il.mutex.RUnlock()
	return il.count
}
