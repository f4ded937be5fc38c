package veb

import "iter"

// All returns an iterator over the values of t in ascending order.
// t must not be modified during the iteration.
func (t *VEBTree) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v, ok := t.Min(); ok; v, ok = t.Successor(v) {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values of t in descending order.
func (t *VEBTree) Backward() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v, ok := t.Max(); ok; v, ok = t.Predecessor(v) {
			if !yield(v) {
				return
			}
		}
	}
}

// Values returns the values of t in ascending order.
func (t *VEBTree) Values() []int {
	vals := make([]int, 0, t.num)
	for v := range t.All() {
		vals = append(vals, v)
	}
	return vals
}
