package veb

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every error returned from Validate.
var ErrInvariant = errors.New("veb: invariant violated")

// InvariantError describes a structural inconsistency found by Validate.
type InvariantError struct {
	// Path locates the offending node, e.g. "root.cluster[3].summary".
	Path string
	Msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v at %s: %s", ErrInvariant, e.Path, e.Msg)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Validate walks the whole tree and returns the first broken invariant, if any.
func (t *VEBTree) Validate() error {
	return t.validate("root")
}

func (t *VEBTree) validate(path string) error {
	fail := func(format string, args ...interface{}) error {
		return &InvariantError{Path: path, Msg: fmt.Sprintf(format, args...)}
	}
	if t.bits == 0 || t.universum != 1<<t.bits {
		return fail("universum %d is not 2^%d", t.universum, t.bits)
	}
	if (t.min == none) != (t.max == none) {
		return fail("min %d and max %d disagree on emptiness", t.min, t.max)
	}
	if t.min != none {
		if !t.valid(t.min) || !t.valid(t.max) {
			return fail("min %d or max %d outside universe %d", t.min, t.max, t.universum)
		}
		if t.min > t.max {
			return fail("min %d > max %d", t.min, t.max)
		}
	}
	if t.universum == 2 {
		if t.clusters != nil || t.summary != nil {
			return fail("base node has clusters or summary")
		}
		return nil
	}
	if len(t.clusters) != t.upperSqrt() {
		return fail("%d cluster slots, want %d", len(t.clusters), t.upperSqrt())
	}
	if t.summary != nil {
		if t.summary.universum != t.upperSqrt() {
			return fail("summary universum %d, want %d", t.summary.universum, t.upperSqrt())
		}
		if err := t.summary.validate(path + ".summary"); err != nil {
			return err
		}
	} else if t.eager {
		return fail("eager node without summary")
	}
	occupied := false
	for i, c := range t.clusters {
		if c == nil {
			if t.eager {
				return fail("eager node with unallocated cluster %d", i)
			}
			if t.summary != nil && t.summary.contains(i) {
				return fail("summary lists unallocated cluster %d", i)
			}
			continue
		}
		if c.universum != t.lowerSqrt() {
			return fail("cluster %d universum %d, want %d", i, c.universum, t.lowerSqrt())
		}
		if err := c.validate(fmt.Sprintf("%s.cluster[%d]", path, i)); err != nil {
			return err
		}
		inSummary := t.summary != nil && t.summary.contains(i)
		if c.Empty() == inSummary {
			return fail("cluster %d empty=%v but summary membership=%v", i, c.Empty(), inSummary)
		}
		if c.Empty() {
			continue
		}
		occupied = true
		if t.min == none || t.index(i, c.min) <= t.min {
			return fail("cluster %d holds %d which is not above min %d", i, t.index(i, c.min), t.min)
		}
	}
	if !occupied {
		if t.max != t.min {
			return fail("no occupied cluster but max %d != min %d", t.max, t.min)
		}
		return nil
	}
	last := t.summary.max
	if want := t.index(last, t.clusters[last].max); t.max != want {
		return fail("max %d, want %d from cluster %d", t.max, want, last)
	}
	return nil
}
