// Package veb provides a van Emde Boas tree,
// an ordered set over the integer universe [0, u) supporting
// insert, membership, remove, successor and predecessor in O(log log u).
package veb

import "math/bits"

const (
	// MaxUniverse is the largest universe a VEBTree accepts:
	// 2^40 with a 64-bit int, 2^24 with a 32-bit one.
	// Larger requests are clamped to it.
	MaxUniverse = 1 << maxBits

	maxBits = bits.UintSize/2 + 8

	// none marks an absent min or max.
	none = -1
)

// VEBTree is the core of the library.
// Use New (or UnmarshalBinary) to get a usable tree;
// the zero value is empty and refuses every insert until Reset.
// A VEBTree is not safe for concurrent mutation.
type VEBTree struct {
	universum int
	bits      uint // universum == 1 << bits
	eager     bool

	min int
	max int
	num int // only maintained at the node the caller holds

	clusters []*VEBTree // len == upperSqrt, nil slots are unallocated
	summary  *VEBTree
}

// New returns an empty VEBTree over [0, universum).
// universum is rounded up to a power of two, at least 2.
// Requests above MaxUniverse are clamped down to MaxUniverse,
// so values at or beyond it cannot be inserted.
// If eager is set every cluster and summary is allocated up front,
// otherwise they are allocated on first use.
func New(universum int, eager bool) *VEBTree {
	t := new(VEBTree)
	t.init(universum, eager)
	return t
}

// Reset discards every element and rebuilds t as an empty tree.
// A universum <= 0 keeps the current universe.
func (t *VEBTree) Reset(universum int, eager bool) {
	if universum <= 0 {
		universum = t.universum
	}
	t.init(universum, eager)
}

func (t *VEBTree) init(universum int, eager bool) {
	t.bits = universeBits(universum)
	t.universum = 1 << t.bits
	t.eager = eager
	t.min, t.max = none, none
	t.num = 0
	t.clusters = nil
	t.summary = nil
	if t.universum == 2 {
		return
	}
	t.clusters = make([]*VEBTree, t.upperSqrt())
	if !eager {
		return
	}
	for i := range t.clusters {
		t.clusters[i] = New(t.lowerSqrt(), true)
	}
	t.summary = New(t.upperSqrt(), true)
}

// universeBits returns the exponent of the smallest power of two >= max(u, 2).
func universeBits(u int) uint {
	if u <= 2 {
		return 1
	}
	if u > MaxUniverse {
		return maxBits
	}
	return uint(bits.Len(uint(u - 1)))
}

// Universe returns the (normalized) universe size.
func (t *VEBTree) Universe() int {
	return t.universum
}

// Eager reports whether t allocates its clusters up front.
func (t *VEBTree) Eager() bool {
	return t.eager
}

// Len returns the number of values in t.
func (t *VEBTree) Len() int {
	return t.num
}

// Empty reports whether t holds no values.
func (t *VEBTree) Empty() bool {
	return t.universum == 0 || t.min == none
}

// Min returns the smallest value in t.
func (t *VEBTree) Min() (int, bool) {
	if t.Empty() {
		return none, false
	}
	return t.min, true
}

// Max returns the largest value in t.
func (t *VEBTree) Max() (int, bool) {
	if t.Empty() {
		return none, false
	}
	return t.max, true
}

// lowerSqrt returns 2^floor(bits/2), the universe of each cluster.
func (t *VEBTree) lowerSqrt() int {
	return 1 << (t.bits / 2)
}

// upperSqrt returns 2^ceil(bits/2), the number of clusters and the universe of the summary.
func (t *VEBTree) upperSqrt() int {
	return 1 << ((t.bits + 1) / 2)
}

func (t *VEBTree) high(v int) int {
	return v >> (t.bits / 2)
}

func (t *VEBTree) low(v int) int {
	return v & (t.lowerSqrt() - 1)
}

func (t *VEBTree) index(c, o int) int {
	return c<<(t.bits/2) | o
}

func (t *VEBTree) valid(v int) bool {
	return v >= 0 && v < t.universum
}

// cluster returns cluster c, allocating it if needed.
func (t *VEBTree) cluster(c int) *VEBTree {
	if t.clusters[c] == nil {
		t.clusters[c] = New(t.lowerSqrt(), t.eager)
	}
	return t.clusters[c]
}

func (t *VEBTree) summaryTree() *VEBTree {
	if t.summary == nil {
		t.summary = New(t.upperSqrt(), t.eager)
	}
	return t.summary
}

// Contains returns true if v is in t.
// Values outside [0, Universe()) are never contained.
func (t *VEBTree) Contains(v int) bool {
	if !t.valid(v) {
		return false
	}
	return t.contains(v)
}

func (t *VEBTree) contains(v int) bool {
	for {
		if v == t.min || v == t.max {
			return true
		}
		if t.universum == 2 {
			return false
		}
		c := t.clusters[t.high(v)]
		if c == nil {
			return false
		}
		v = t.low(v)
		t = c
	}
}

// Insert adds v to t.
// It returns false, leaving t untouched, if v is outside [0, Universe()).
// Inserting a value already in t is a no-op returning true.
func (t *VEBTree) Insert(v int) bool {
	if !t.valid(v) {
		return false
	}
	if t.contains(v) {
		return true
	}
	t.insert(v)
	t.num++
	return true
}

// insert requires v to be valid and absent.
func (t *VEBTree) insert(v int) {
	if t.min == none {
		t.min, t.max = v, v
		return
	}
	if v < t.min {
		// The minimum is never stored in a cluster:
		// the old minimum moves down instead.
		t.min, v = v, t.min
	}
	if t.universum > 2 {
		h, l := t.high(v), t.low(v)
		c := t.cluster(h)
		if c.min == none {
			t.summaryTree().insert(h)
			c.min, c.max = l, l
		} else {
			c.insert(l)
		}
	}
	if v > t.max {
		t.max = v
	}
}

// Remove deletes v from t.
// It returns false, leaving t untouched, if v is outside [0, Universe()) or not in t.
func (t *VEBTree) Remove(v int) bool {
	if !t.valid(v) || !t.contains(v) {
		return false
	}
	if !t.remove(v) {
		return false
	}
	t.num--
	return true
}

// remove requires v to be valid.
func (t *VEBTree) remove(v int) bool {
	switch {
	case t.min == none:
		return false
	case t.min == t.max:
		if v != t.min {
			return false
		}
		t.min, t.max = none, none
		return true
	case t.universum == 2:
		// Both 0 and 1 are present.
		t.min = 1 - v
		t.max = t.min
		return true
	}
	if v == t.min {
		// The smallest value left in the clusters becomes the new minimum,
		// and its copy in the cluster is what gets removed below.
		first := t.summary.min
		v = t.index(first, t.clusters[first].min)
		t.min = v
	}
	h := t.high(v)
	c := t.clusters[h]
	if c == nil || !c.remove(t.low(v)) {
		return false
	}
	if c.min == none {
		t.summary.remove(h)
		if v == t.max {
			if last := t.summary.max; last == none {
				t.max = t.min
			} else {
				t.max = t.index(last, t.clusters[last].max)
			}
		}
	} else if v == t.max {
		t.max = t.index(h, c.max)
	}
	return true
}

// Successor returns the smallest value in t strictly greater than v.
// The second result is false if there is none or v is outside [0, Universe()).
func (t *VEBTree) Successor(v int) (int, bool) {
	if !t.valid(v) {
		return none, false
	}
	s := t.successor(v)
	return s, s != none
}

func (t *VEBTree) successor(v int) int {
	if t.universum == 2 {
		if v == 0 && t.max == 1 {
			return 1
		}
		return none
	}
	if t.min != none && v < t.min {
		return t.min
	}
	h, l := t.high(v), t.low(v)
	if c := t.clusters[h]; c != nil && c.max != none && l < c.max {
		return t.index(h, c.successor(l))
	}
	if t.summary == nil {
		return none
	}
	next := t.summary.successor(h)
	if next == none {
		return none
	}
	return t.index(next, t.clusters[next].min)
}

// Predecessor returns the largest value in t strictly less than v.
// The second result is false if there is none or v is outside [0, Universe()).
func (t *VEBTree) Predecessor(v int) (int, bool) {
	if !t.valid(v) {
		return none, false
	}
	p := t.predecessor(v)
	return p, p != none
}

func (t *VEBTree) predecessor(v int) int {
	if t.universum == 2 {
		if v == 1 && t.min == 0 {
			return 0
		}
		return none
	}
	if t.max != none && v > t.max {
		return t.max
	}
	h, l := t.high(v), t.low(v)
	if c := t.clusters[h]; c != nil && c.min != none && c.min < l {
		return t.index(h, c.predecessor(l))
	}
	prev := none
	if t.summary != nil {
		prev = t.summary.predecessor(h)
	}
	if prev != none {
		return t.index(prev, t.clusters[prev].max)
	}
	// The minimum lives in no cluster.
	if t.min != none && v > t.min {
		return t.min
	}
	return none
}
