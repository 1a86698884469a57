package skimmer

import "sort"

// selection is the set of selected lines. It is keyed by item identity so
// that a line stays selected when the ranking changes under it.
type selection struct {
	ids map[int32]struct{}
}

func newSelection() *selection {
	return &selection{ids: make(map[int32]struct{})}
}

func (s *selection) contains(id int32) bool {
	_, found := s.ids[id]
	return found
}

// toggle flips the line at the given rank position, or sets it to force
// when force is not nil. Nothing happens when the position is empty.
func (s *selection) toggle(list RankedList, pos int, force *bool) {
	result, ok := list.At(pos)
	if !ok {
		return
	}
	id := result.item.Index()
	selected := !s.contains(id)
	if force != nil {
		selected = *force
	}
	if selected {
		s.ids[id] = struct{}{}
	} else {
		delete(s.ids, id)
	}
}

func (s *selection) selectAll(list RankedList) {
	for pos := 0; pos < list.Length(); pos++ {
		if result, ok := list.At(pos); ok {
			s.ids[result.item.Index()] = struct{}{}
		}
	}
}

// toggleAll replaces the set with the ranked lines that are not selected
func (s *selection) toggleAll(list RankedList) {
	prev := s.ids
	s.ids = make(map[int32]struct{})
	for pos := 0; pos < list.Length(); pos++ {
		if result, ok := list.At(pos); ok {
			if _, found := prev[result.item.Index()]; !found {
				s.ids[result.item.Index()] = struct{}{}
			}
		}
	}
}

func (s *selection) deselectAll() {
	s.ids = make(map[int32]struct{})
}

func (s *selection) count() int {
	return len(s.ids)
}

// identities returns the selected identities in ascending order
func (s *selection) identities() []int32 {
	ids := make([]int32, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
