package veb

import (
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"
)

// ErrCorrupt is returned by UnmarshalBinary for input that does not describe a valid tree.
var ErrCorrupt = errors.New("veb: corrupt encoding")

// MarshalBinary encodes VEBTree into a binary form and returns the result.
// Only the universe, the allocation policy and the values are kept;
// the layout is rebuilt on decode.
func (t *VEBTree) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)
	err = enc.Encode(t.universum)
	if err != nil {
		return
	}
	err = enc.Encode(t.eager)
	if err != nil {
		return
	}
	err = enc.Encode(t.num)
	if err != nil {
		return
	}
	for v := range t.All() {
		err = enc.Encode(v)
		if err != nil {
			return
		}
	}
	return
}

// UnmarshalBinary decodes VEBTree from a binary form generated by MarshalBinary.
// If a value fails to decode t is left empty.
func (t *VEBTree) UnmarshalBinary(in []byte) (err error) {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)
	universum := 0
	eager := false
	num := 0
	if err = dec.Decode(&universum); err != nil {
		return fmt.Errorf("decoding universe: %w", err)
	}
	if err = dec.Decode(&eager); err != nil {
		return fmt.Errorf("decoding allocation policy: %w", err)
	}
	if err = dec.Decode(&num); err != nil {
		return fmt.Errorf("decoding length: %w", err)
	}
	if universum < 2 || universum > MaxUniverse || universum&(universum-1) != 0 {
		return fmt.Errorf("%w: universe %d", ErrCorrupt, universum)
	}
	if num < 0 || num > universum {
		return fmt.Errorf("%w: length %d for universe %d", ErrCorrupt, num, universum)
	}
	t.init(universum, eager)
	prev := none
	for i := 0; i < num; i++ {
		v := 0
		if err = dec.Decode(&v); err != nil {
			t.init(universum, eager)
			return fmt.Errorf("decoding value %d of %d: %w", i, num, err)
		}
		if v <= prev || !t.valid(v) {
			t.init(universum, eager)
			return fmt.Errorf("%w: value %d out of order or range", ErrCorrupt, v)
		}
		t.insert(v)
		t.num++
		prev = v
	}
	return nil
}
