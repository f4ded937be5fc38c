package veb

import (
	"github.com/hillbig/rsdic"
	"github.com/ugorji/go/codec"
)

// RankDict is a frozen, succinct copy of a VEBTree's membership bitmap
// answering rank/select queries.
// It costs about one bit per universe position plus rsdic's index.
type RankDict struct {
	rsd       *rsdic.RSDic
	universum uint64
}

// NewRankDict builds a RankDict from the current contents of t.
// Later changes to t are not reflected.
func NewRankDict(t *VEBTree) *RankDict {
	rsd := rsdic.New()
	pos := uint64(0)
	for v := range t.All() {
		for ; pos < uint64(v); pos++ {
			rsd.PushBack(false)
		}
		rsd.PushBack(true)
		pos++
	}
	for ; pos < uint64(t.universum); pos++ {
		rsd.PushBack(false)
	}
	return &RankDict{rsd: rsd, universum: uint64(t.universum)}
}

// Universe returns the universe size of the source tree.
func (rd *RankDict) Universe() int {
	return int(rd.universum)
}

// Len returns the number of members.
func (rd *RankDict) Len() int {
	return int(rd.rsd.OneNum())
}

// Contains returns true if v is a member.
func (rd *RankDict) Contains(v int) bool {
	if v < 0 || uint64(v) >= rd.universum {
		return false
	}
	return rd.rsd.Bit(uint64(v))
}

// Rank returns the number of members less than v.
func (rd *RankDict) Rank(v int) int {
	switch {
	case v <= 0:
		return 0
	case uint64(v) >= rd.universum:
		return rd.Len()
	}
	return int(rd.rsd.Rank(uint64(v), true))
}

// Select returns the (k+1)-th smallest member.
// The second result is false if there are k or fewer members.
func (rd *RankDict) Select(k int) (int, bool) {
	if k < 0 || k >= rd.Len() {
		return none, false
	}
	return int(rd.rsd.Select(uint64(k), true)), true
}

// MarshalBinary encodes RankDict into a binary form and returns the result.
func (rd *RankDict) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(rd.universum)
	if err != nil {
		return
	}
	err = enc.Encode(rd.rsd)
	return
}

// UnmarshalBinary decodes RankDict from a binary form generated by MarshalBinary.
func (rd *RankDict) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	err = dec.Decode(&rd.universum)
	if err != nil {
		return
	}
	rd.rsd = rsdic.New()
	err = dec.Decode(rd.rsd)
	return
}
