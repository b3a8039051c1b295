package mcs

// Wildcard is the atom symbol that matches any element when it appears in a
// query graph.
const Wildcard = "*"

// AtomLabel is the per-atom annotation the default matchers and the chemical
// filters read.  Ring and aromatic flags are expected to be perceived before a
// graph reaches the engine.
type AtomLabel struct {
	Symbol   string
	Type     string
	Charge   int
	Aromatic bool
	InRing   bool
	Stereo   int
}

// BondLabel is the per-bond annotation.  Order is 1, 2 or 3; aromatic bonds
// keep their Kekulé order but are compared through the Aromatic flag.
type BondLabel struct {
	Order    int
	Aromatic bool
	InRing   bool
	Stereo   int
}

// Graph is the read-only view of a molecule the engine searches over.  Atom
// and bond indices are dense, starting at zero.  Implementations must not
// change while a search is running.
type Graph interface {
	AtomCount() int
	BondCount() int
	// BondAtoms returns the two endpoint atom indices of bond e.
	BondAtoms(e int) (a, b int)
	Atom(i int) AtomLabel
	Bond(e int) BondLabel
	// IsQuery reports whether the graph is a pattern rather than a concrete
	// molecule.  Pattern graphs are only accepted in the query position.
	IsQuery() bool
}

// topology caches incidence lists for one graph so that the searches can walk
// neighbours without going back through the interface.
type topology struct {
	g        Graph
	incident [][]int
	ends     [][2]int
}

func newTopology(g Graph) *topology {
	n, m := g.AtomCount(), g.BondCount()
	t := &topology{
		g:        g,
		incident: make([][]int, n),
		ends:     make([][2]int, m),
	}
	for e := 0; e < m; e++ {
		a, b := g.BondAtoms(e)
		t.ends[e] = [2]int{a, b}
		t.incident[a] = append(t.incident[a], e)
		t.incident[b] = append(t.incident[b], e)
	}
	return t
}

// other returns the endpoint of bond e that is not atom a.
func (t *topology) other(e, a int) int {
	if t.ends[e][0] == a {
		return t.ends[e][1]
	}
	return t.ends[e][0]
}

// bondBetween returns the bond joining a and b, or -1.
func (t *topology) bondBetween(a, b int) int {
	for _, e := range t.incident[a] {
		if t.other(e, a) == b {
			return e
		}
	}
	return -1
}

// sharedAtom returns the atom common to bonds e and f, or -1 if they are
// disjoint.
func (t *topology) sharedAtom(e, f int) int {
	ea, eb := t.ends[e][0], t.ends[e][1]
	fa, fb := t.ends[f][0], t.ends[f][1]
	switch {
	case ea == fa || ea == fb:
		return ea
	case eb == fa || eb == fb:
		return eb
	}
	return -1
}

func (t *topology) degree(a int) int { return len(t.incident[a]) }
