package veb

// Builder collects values and builds a VEBTree just large enough to hold them.
// A user calls PushBack()s followed by Build().
type Builder struct {
	vals []uint64
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PushBack queues val for insertion.
func (b *Builder) PushBack(val uint64) {
	b.vals = append(b.vals, val)
}

// Build returns a VEBTree whose universe is the smallest power of two
// covering every pushed value, containing all of them.
// Values at or beyond MaxUniverse are dropped.
func (b *Builder) Build(eager bool) *VEBTree {
	dim := getDim(b.vals)
	switch {
	case dim < 2:
		dim = 2
	case dim > MaxUniverse:
		dim = MaxUniverse
	}
	t := New(1<<getBinaryLen(dim-1), eager)
	for _, val := range b.vals {
		if val < uint64(t.universum) {
			t.Insert(int(val))
		}
	}
	return t
}

// getDim returns (max. of vals) + 1, or 0 for no values.
func getDim(vals []uint64) uint64 {
	dim := uint64(0)
	for _, val := range vals {
		if val >= dim {
			dim = val + 1
		}
	}
	return dim
}

func getBinaryLen(val uint64) uint64 {
	blen := uint64(0)
	for val > 0 {
		val >>= 1
		blen++
	}
	return blen
}
