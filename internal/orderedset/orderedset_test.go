package orderedset

import (
	"fmt"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLookup(t *testing.T) {
	Convey("Every registered set can be looked up by name", t, func() {
		So(Names(), ShouldResemble, []string{"btree", "llrb", "slice", "veb", "veb-eager"})
		for _, name := range Names() {
			f, err := Lookup(name)
			So(err, ShouldBeNil)
			s := f(100)
			So(s.Name(), ShouldEqual, name)
			So(s.Universe(), ShouldEqual, 128)
			So(Eager(name), ShouldEqual, name == "veb-eager")
		}
		_, err := Lookup("skiplist")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "skiplist")
	})
}

func TestScenario(t *testing.T) {
	for _, name := range Names() {
		Convey("Given a "+name+" set over 8 holding 5 1 7 2", t, func() {
			f, err := Lookup(name)
			So(err, ShouldBeNil)
			s := f(8)
			for _, v := range []int{5, 1, 7, 2} {
				So(s.Insert(v), ShouldBeTrue)
			}
			So(s.Len(), ShouldEqual, 4)

			Convey("queries see the ordered values", func() {
				min, _ := s.Min()
				max, _ := s.Max()
				So(min, ShouldEqual, 1)
				So(max, ShouldEqual, 7)
				succ, ok := s.Successor(2)
				So(ok, ShouldBeTrue)
				So(succ, ShouldEqual, 5)
				pred, ok := s.Predecessor(7)
				So(ok, ShouldBeTrue)
				So(pred, ShouldEqual, 5)
				_, ok = s.Successor(7)
				So(ok, ShouldBeFalse)
				_, ok = s.Predecessor(1)
				So(ok, ShouldBeFalse)
			})

			Convey("out of range and absent values are refused", func() {
				So(s.Insert(8), ShouldBeFalse)
				So(s.Insert(-1), ShouldBeFalse)
				So(s.Contains(8), ShouldBeFalse)
				So(s.Remove(-1), ShouldBeFalse)
				So(s.Remove(3), ShouldBeFalse)
				So(s.Len(), ShouldEqual, 4)
			})

			Convey("removing the minimum promotes the next value", func() {
				So(s.Remove(1), ShouldBeTrue)
				So(s.Contains(1), ShouldBeFalse)
				min, _ := s.Min()
				So(min, ShouldEqual, 2)
			})
		})
	}
}

// agree applies one random operation to every set and returns a description
// of the first answer that differs from ref.
func agree(ref OrderedSet, sets []OrderedSet, op, v, universe int) string {
	for _, s := range sets {
		switch op {
		case 0:
			if got, want := s.Contains(v), ref.Contains(v); got != want {
				return fmt.Sprintf("%s: contains %d = %v, want %v", s.Name(), v, got, want)
			}
		case 1:
			if got, want := s.Remove(v), ref.Contains(v); got != want {
				return fmt.Sprintf("%s: remove %d = %v, want %v", s.Name(), v, got, want)
			}
		case 2:
			gotV, gotOK := s.Successor(v)
			wantV, wantOK := ref.Successor(v)
			if gotV != wantV || gotOK != wantOK {
				return fmt.Sprintf("%s: successor %d = %d/%v, want %d/%v", s.Name(), v, gotV, gotOK, wantV, wantOK)
			}
		case 3:
			gotV, gotOK := s.Predecessor(v)
			wantV, wantOK := ref.Predecessor(v)
			if gotV != wantV || gotOK != wantOK {
				return fmt.Sprintf("%s: predecessor %d = %d/%v, want %d/%v", s.Name(), v, gotV, gotOK, wantV, wantOK)
			}
		default:
			if got, want := s.Insert(v), v >= 0 && v < universe; got != want {
				return fmt.Sprintf("%s: insert %d = %v, want %v", s.Name(), v, got, want)
			}
		}
	}
	switch op {
	case 1:
		ref.Remove(v)
	case 4:
		ref.Insert(v)
	}
	for _, s := range sets {
		if s.Len() != ref.Len() {
			return fmt.Sprintf("%s: len %d, want %d", s.Name(), s.Len(), ref.Len())
		}
	}
	return ""
}

func TestAgree(t *testing.T) {
	Convey("Every implementation answers like the btree", t, func() {
		const universe = 1 << 10
		sets := make([]OrderedSet, 0, len(factories))
		for _, name := range Names() {
			f, _ := Lookup(name)
			sets = append(sets, f(universe))
		}
		ref := NewBTree(universe)
		rng := rand.New(rand.NewPCG(7, 11))
		mismatch := ""
		for i := 0; i < 20000 && mismatch == ""; i++ {
			v := rng.IntN(universe+10) - 5
			mismatch = agree(ref, sets, rng.IntN(5), v, universe)
		}
		So(mismatch, ShouldBeEmpty)
	})
}
