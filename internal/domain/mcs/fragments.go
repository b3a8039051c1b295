package mcs

// unionFind is a disjoint-set forest over atom indices.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
	}
	return u
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
}

// ConnectedComponents partitions the atoms of g accepted by keepAtom into
// connected components, using only bonds accepted by keepBond whose both ends
// are kept.  nil filters accept everything.  Components are ordered by their
// smallest atom and each lists its atoms in ascending order.
func ConnectedComponents(g Graph, keepAtom func(int) bool, keepBond func(int) bool) [][]int {
	n := g.AtomCount()
	in := func(a int) bool { return keepAtom == nil || keepAtom(a) }

	uf := newUnionFind(n)
	for e := 0; e < g.BondCount(); e++ {
		if keepBond != nil && !keepBond(e) {
			continue
		}
		a, b := g.BondAtoms(e)
		if in(a) && in(b) {
			uf.union(a, b)
		}
	}

	index := make(map[int]int)
	var out [][]int
	for a := 0; a < n; a++ {
		if !in(a) {
			continue
		}
		r := uf.find(a)
		i, ok := index[r]
		if !ok {
			i = len(out)
			index[r] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], a)
	}
	return out
}

// fragmentCount counts the pieces each molecule falls into once the bonds
// the mapping does not conserve are cut, summed over both sides.
func fragmentCount(qt, tt *topology, mp AtomMapping) int {
	qc, tc := conservedBonds(qt, tt, mp)
	qf := ConnectedComponents(qt.g, nil, func(e int) bool { return qc[e] })
	tf := ConnectedComponents(tt.g, nil, func(e int) bool { return tc[e] })
	return len(qf) + len(tf)
}

// UncommonSubstructure returns the connected fragments of each graph formed by
// the atoms mp leaves unmapped.
func UncommonSubstructure(q, t Graph, mp AtomMapping) (query, target [][]int) {
	query = ConnectedComponents(q, func(a int) bool {
		_, mapped := mp.Target(a)
		return !mapped
	}, nil)
	target = ConnectedComponents(t, func(a int) bool {
		_, mapped := mp.Query(a)
		return !mapped
	}, nil)
	return query, target
}
