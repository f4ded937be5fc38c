package veb

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"
)

// Dump writes the universe, min and max of t followed by one line per cluster.
// The format is meant for debugging and may change.
func (t *VEBTree) Dump(w io.Writer) {
	fmt.Fprintf(w, "u: %d\n", t.universum)
	fmt.Fprintf(w, "min: %s\tmax: %s\n", optString(t.min), optString(t.max))
	for i, c := range t.clusters {
		if c == nil {
			fmt.Fprintf(w, "Cluster no.%d| unallocated\n", i)
			continue
		}
		fmt.Fprintf(w, "Cluster no.%d| u = %d| min: %s\tmax: %s\n", i, c.universum, optString(c.min), optString(c.max))
	}
}

// DumpCluster writes the Dump of cluster i of t.
func (t *VEBTree) DumpCluster(w io.Writer, i int) error {
	if i < 0 || i >= len(t.clusters) {
		return fmt.Errorf("veb: cluster %d out of range [0, %d)", i, len(t.clusters))
	}
	if t.clusters[i] == nil {
		return fmt.Errorf("veb: cluster %d is unallocated", i)
	}
	t.clusters[i].Dump(w)
	return nil
}

// Tree renders t and all of its allocated descendants.
// Empty clusters are left out.
func (t *VEBTree) Tree() treeprint.Tree {
	root := treeprint.NewWithRoot(t.label())
	t.addBranches(root)
	return root
}

// String returns the rendering of Tree.
func (t *VEBTree) String() string {
	return t.Tree().String()
}

func (t *VEBTree) addBranches(node treeprint.Tree) {
	if t.summary != nil && !t.summary.Empty() {
		t.summary.addBranches(node.AddMetaBranch("summary", t.summary.label()))
	}
	for i, c := range t.clusters {
		if c == nil || c.Empty() {
			continue
		}
		c.addBranches(node.AddMetaBranch(fmt.Sprintf("cluster %d", i), c.label()))
	}
}

func (t *VEBTree) label() string {
	return fmt.Sprintf("u=%d min=%s max=%s", t.universum, optString(t.min), optString(t.max))
}

func optString(v int) string {
	if v == none {
		return "None"
	}
	return fmt.Sprint(v)
}
