package orderedset

import "github.com/petar/GoLLRB/llrb"

type llrbSet struct {
	bounds
	tr *llrb.LLRB
}

// NewLLRB returns a set backed by a left-leaning red-black tree.
func NewLLRB(universe int) OrderedSet {
	return &llrbSet{
		bounds: bounds{universeOf(universe)},
		tr:     llrb.New(),
	}
}

func (s *llrbSet) Name() string { return "llrb" }

func (s *llrbSet) Len() int { return s.tr.Len() }

func (s *llrbSet) Insert(v int) bool {
	if !s.valid(v) {
		return false
	}
	s.tr.ReplaceOrInsert(llrb.Int(v))
	return true
}

func (s *llrbSet) Contains(v int) bool {
	return s.valid(v) && s.tr.Has(llrb.Int(v))
}

func (s *llrbSet) Remove(v int) bool {
	if !s.valid(v) {
		return false
	}
	return s.tr.Delete(llrb.Int(v)) != nil
}

func (s *llrbSet) Successor(v int) (next int, ok bool) {
	if !s.valid(v) {
		return -1, false
	}
	next = -1
	s.tr.AscendGreaterOrEqual(llrb.Int(v+1), func(item llrb.Item) bool {
		next, ok = int(item.(llrb.Int)), true
		return false
	})
	return next, ok
}

func (s *llrbSet) Predecessor(v int) (prev int, ok bool) {
	if !s.valid(v) {
		return -1, false
	}
	prev = -1
	s.tr.DescendLessOrEqual(llrb.Int(v-1), func(item llrb.Item) bool {
		prev, ok = int(item.(llrb.Int)), true
		return false
	})
	return prev, ok
}

func (s *llrbSet) Min() (int, bool) {
	item := s.tr.Min()
	if item == nil {
		return -1, false
	}
	return int(item.(llrb.Int)), true
}

func (s *llrbSet) Max() (int, bool) {
	item := s.tr.Max()
	if item == nil {
		return -1, false
	}
	return int(item.(llrb.Int)), true
}
