package orderedset

import "github.com/google/btree"

const btreeDegree = 32

type btreeSet struct {
	bounds
	tr *btree.BTreeG[int]
}

// NewBTree returns a set backed by github.com/google/btree.
func NewBTree(universe int) OrderedSet {
	return &btreeSet{
		bounds: bounds{universeOf(universe)},
		tr:     btree.NewOrderedG[int](btreeDegree),
	}
}

func (s *btreeSet) Name() string { return "btree" }

func (s *btreeSet) Len() int { return s.tr.Len() }

func (s *btreeSet) Insert(v int) bool {
	if !s.valid(v) {
		return false
	}
	s.tr.ReplaceOrInsert(v)
	return true
}

func (s *btreeSet) Contains(v int) bool {
	return s.valid(v) && s.tr.Has(v)
}

func (s *btreeSet) Remove(v int) bool {
	if !s.valid(v) {
		return false
	}
	_, ok := s.tr.Delete(v)
	return ok
}

func (s *btreeSet) Successor(v int) (next int, ok bool) {
	if !s.valid(v) {
		return -1, false
	}
	next = -1
	s.tr.AscendGreaterOrEqual(v+1, func(item int) bool {
		next, ok = item, true
		return false
	})
	return next, ok
}

func (s *btreeSet) Predecessor(v int) (prev int, ok bool) {
	if !s.valid(v) {
		return -1, false
	}
	prev = -1
	s.tr.DescendLessOrEqual(v-1, func(item int) bool {
		prev, ok = item, true
		return false
	})
	return prev, ok
}

func (s *btreeSet) Min() (int, bool) {
	v, ok := s.tr.Min()
	if !ok {
		return -1, false
	}
	return v, true
}

func (s *btreeSet) Max() (int, bool) {
	v, ok := s.tr.Max()
	if !ok {
		return -1, false
	}
	return v, true
}
