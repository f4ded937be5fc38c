// Package orderedset puts the vEB tree and competing ordered integer sets
// behind one interface so they can be checked and timed side by side.
package orderedset

import (
	"fmt"
	"sort"
	"strings"

	veb "github.com/AlexWan0/go-veb"
)

// OrderedSet is a set of integers in [0, Universe()).
// Out of range values are rejected the way VEBTree rejects them.
type OrderedSet interface {
	Name() string
	Universe() int
	Len() int
	Insert(v int) bool
	Contains(v int) bool
	Remove(v int) bool
	Successor(v int) (int, bool)
	Predecessor(v int) (int, bool)
	Min() (int, bool)
	Max() (int, bool)
}

// Factory creates an empty OrderedSet over [0, universe).
type Factory func(universe int) OrderedSet

var factories = map[string]Factory{
	"veb":       NewVEB,
	"veb-eager": NewEagerVEB,
	"btree":     NewBTree,
	"llrb":      NewLLRB,
	"slice":     NewSlice,
}

// Names returns the registered implementation names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown ordered set %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Eager reports whether the implementation registered under name
// allocates storage for its whole universe up front.
func Eager(name string) bool {
	return name == "veb-eager"
}

type vebSet struct {
	*veb.VEBTree
	name string
}

// NewVEB returns a lazily allocated VEBTree.
func NewVEB(universe int) OrderedSet {
	return &vebSet{VEBTree: veb.New(universe, false), name: "veb"}
}

// NewEagerVEB returns a VEBTree with every cluster allocated up front.
func NewEagerVEB(universe int) OrderedSet {
	return &vebSet{VEBTree: veb.New(universe, true), name: "veb-eager"}
}

func (s *vebSet) Name() string {
	return s.name
}

// bounds holds the universe shared by the non-vEB sets.
type bounds struct {
	universe int
}

func (b bounds) Universe() int {
	return b.universe
}

func (b bounds) valid(v int) bool {
	return v >= 0 && v < b.universe
}

// universeOf rounds u the same way veb.New does so every set covers the same values.
func universeOf(u int) int {
	return veb.New(u, false).Universe()
}
