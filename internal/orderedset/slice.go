package orderedset

import "slices"

// sliceSet keeps its values sorted in a slice.
// Lookups are O(log n), updates O(n).
type sliceSet struct {
	bounds
	vals []int
}

// NewSlice returns a set backed by a sorted slice.
func NewSlice(universe int) OrderedSet {
	return &sliceSet{bounds: bounds{universeOf(universe)}}
}

func (s *sliceSet) Name() string { return "slice" }

func (s *sliceSet) Len() int { return len(s.vals) }

func (s *sliceSet) Insert(v int) bool {
	if !s.valid(v) {
		return false
	}
	i, found := slices.BinarySearch(s.vals, v)
	if !found {
		s.vals = slices.Insert(s.vals, i, v)
	}
	return true
}

func (s *sliceSet) Contains(v int) bool {
	if !s.valid(v) {
		return false
	}
	_, found := slices.BinarySearch(s.vals, v)
	return found
}

func (s *sliceSet) Remove(v int) bool {
	if !s.valid(v) {
		return false
	}
	i, found := slices.BinarySearch(s.vals, v)
	if !found {
		return false
	}
	s.vals = slices.Delete(s.vals, i, i+1)
	return true
}

func (s *sliceSet) Successor(v int) (int, bool) {
	if !s.valid(v) {
		return -1, false
	}
	i, _ := slices.BinarySearch(s.vals, v+1)
	if i == len(s.vals) {
		return -1, false
	}
	return s.vals[i], true
}

func (s *sliceSet) Predecessor(v int) (int, bool) {
	if !s.valid(v) {
		return -1, false
	}
	i, _ := slices.BinarySearch(s.vals, v)
	if i == 0 {
		return -1, false
	}
	return s.vals[i-1], true
}

func (s *sliceSet) Min() (int, bool) {
	if len(s.vals) == 0 {
		return -1, false
	}
	return s.vals[0], true
}

func (s *sliceSet) Max() (int, bool) {
	if len(s.vals) == 0 {
		return -1, false
	}
	return s.vals[len(s.vals)-1], true
}
