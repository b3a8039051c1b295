package mcs

import "sort"

// extender grows partial mappings McGregor-style.  One extender serves one
// search invocation; its best size, result set and seen-state index are owned
// by it and handed out only when the search ends.
type extender struct {
	qt, tt *topology
	m      Matchers
	budget *SearchBudget

	best    int
	results *mappingSet
	seen    *mappingSet
}

func newExtender(qt, tt *topology, m Matchers, budget *SearchBudget) *extender {
	return &extender{
		qt:      qt,
		tt:      tt,
		m:       m,
		budget:  budget,
		results: newMappingSet(),
		seen:    newMappingSet(),
	}
}

// seedFromNodes starts one extension per admissible orientation of every
// compatible bond pair.  This is the search used when no initial mapping is
// available.
func (x *extender) seedFromNodes(nodes []CompatibilityNode) {
	p := &projector{qt: x.qt, tt: x.tt, m: x.m}
	for _, n := range nodes {
		for _, pairs := range p.orientedPairs(n) {
			if x.budget.Exceeded() {
				return
			}
			x.extend(p.mappingOf(pairs))
		}
	}
}

// extend explores every growth of mp through neighbour bonds, one atom pair
// at a time: a query bond a-b with a mapped and b free, paired with a target
// bond M(a)-y with y free, where the bonds match and b matches y.  Bonds
// touching no mapped atom are left for later steps, once growth has reached
// them.  A mapping is recorded when it admits no further step, or when the
// budget runs out before its growths were all explored.
func (x *extender) extend(mp AtomMapping) {
	if !x.budget.Tick() {
		x.record(mp)
		return
	}
	if !x.seen.add(mp) {
		return
	}

	free := x.qt.g.AtomCount() - mp.Len()
	if ft := x.tt.g.AtomCount() - mp.Len(); ft < free {
		free = ft
	}
	if mp.Len()+free < x.best {
		return
	}

	steps := x.candidates(mp)
	if len(steps) == 0 {
		x.record(mp)
		return
	}
	for _, st := range steps {
		if x.budget.Exceeded() {
			x.record(mp)
			return
		}
		child := mp.Clone()
		child.Put(st.Query, st.Target)
		x.extend(child)
	}
}

// candidates returns the admissible single-pair growths of mp, ordered by
// query atom and then target atom.
func (x *extender) candidates(mp AtomMapping) []Pair {
	var steps []Pair
	seen := make(map[Pair]bool)
	for _, p := range mp.Pairs() {
		qa, ta := p.Query, p.Target
		for _, qe := range x.qt.incident[qa] {
			b := x.qt.other(qe, qa)
			if _, mapped := mp.Target(b); mapped {
				continue
			}
			for _, te := range x.tt.incident[ta] {
				y := x.tt.other(te, ta)
				if _, mapped := mp.Query(y); mapped {
					continue
				}
				st := Pair{Query: b, Target: y}
				if seen[st] {
					continue
				}
				if !x.m.Bond(x.qt.g, qe, x.tt.g, te) || !x.m.Atom(x.qt.g, b, x.tt.g, y) {
					continue
				}
				seen[st] = true
				steps = append(steps, st)
			}
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		if steps[i].Query != steps[j].Query {
			return steps[i].Query < steps[j].Query
		}
		return steps[i].Target < steps[j].Target
	})
	return steps
}

func (x *extender) record(mp AtomMapping) {
	k := mp.Len()
	if k == 0 || k < x.best {
		return
	}
	if k > x.best {
		x.best = k
		x.results = newMappingSet()
	}
	x.results.add(mp.Clone())
}
