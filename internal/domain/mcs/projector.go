package mcs

// projector turns cliques of the compatibility graph into atom mappings.
type projector struct {
	qt, tt *topology
	g      *CompatibilityGraph
	m      Matchers
}

// project converts clique into one or more consistent atom mappings.
//
// Bond pairs joined by a continuation edge fix their orientation: the shared
// atoms map onto each other and so do the remaining ends.  Pairs are taken in
// ascending id order and any pair contradicting the mapping built so far is
// skipped, which keeps the result consistent even for cliques whose bond
// adjacency cannot be realised by any atom mapping (triangle against a
// three-pointed star).  Pairs with no continuation partner are placed in the
// first orientation that agrees with the mapping.
//
// A single-pair clique is orientation-ambiguous: both orientations are scored
// and the better one kept, or both when they tie.
func (p *projector) project(clique []int) []AtomMapping {
	switch len(clique) {
	case 0:
		return nil
	case 1:
		return p.projectSingle(p.g.Nodes[clique[0]])
	}

	mp := NewAtomMapping(p.qt.g.AtomCount(), p.tt.g.AtomCount())
	placed := make(map[int]bool, len(clique))

	for i := 0; i < len(clique); i++ {
		a := p.g.Nodes[clique[i]]
		for j := i + 1; j < len(clique); j++ {
			b := p.g.Nodes[clique[j]]
			if kind, ok := p.g.Kind(a.ID, b.ID); !ok || kind != Continuation {
				continue
			}
			sq := p.qt.sharedAtom(a.QueryBond, b.QueryBond)
			st := p.tt.sharedAtom(a.TargetBond, b.TargetBond)
			pairs := [][2]int{
				{sq, st},
				{p.qt.other(a.QueryBond, sq), p.tt.other(a.TargetBond, st)},
				{p.qt.other(b.QueryBond, sq), p.tt.other(b.TargetBond, st)},
			}
			if putAll(&mp, pairs) {
				placed[a.ID] = true
				placed[b.ID] = true
			}
		}
	}

	for _, id := range clique {
		if placed[id] {
			continue
		}
		n := p.g.Nodes[id]
		for _, pairs := range p.orientedPairs(n) {
			if putAll(&mp, pairs) {
				break
			}
		}
	}

	if mp.Len() == 0 {
		return nil
	}
	return []AtomMapping{mp}
}

// weight is the number of atoms clique projects onto.
func (p *projector) weight(clique []int) int {
	w := 0
	for _, mp := range p.project(clique) {
		if mp.Len() > w {
			w = mp.Len()
		}
	}
	return w
}

func (p *projector) projectSingle(n CompatibilityNode) []AtomMapping {
	options := p.orientedPairs(n)
	if len(options) == 1 {
		return []AtomMapping{p.mappingOf(options[0])}
	}
	fs, rs := p.score(options[0]), p.score(options[1])
	switch {
	case fs > rs:
		return []AtomMapping{p.mappingOf(options[0])}
	case rs > fs:
		return []AtomMapping{p.mappingOf(options[1])}
	}
	return []AtomMapping{p.mappingOf(options[0]), p.mappingOf(options[1])}
}

// orientedPairs lists the atom pairs of each admissible orientation of n,
// forward first.
func (p *projector) orientedPairs(n CompatibilityNode) [][][2]int {
	qa, qb := p.qt.ends[n.QueryBond][0], p.qt.ends[n.QueryBond][1]
	ta, tb := p.tt.ends[n.TargetBond][0], p.tt.ends[n.TargetBond][1]
	var out [][][2]int
	if n.Forward {
		out = append(out, [][2]int{{qa, ta}, {qb, tb}})
	}
	if n.Reverse {
		out = append(out, [][2]int{{qa, tb}, {qb, ta}})
	}
	return out
}

// score rates how well the atom pairs agree beyond what the matcher demands.
func (p *projector) score(pairs [][2]int) int {
	s := 0
	for _, pr := range pairs {
		qa, ta := p.qt.g.Atom(pr[0]), p.tt.g.Atom(pr[1])
		if qa.Symbol == ta.Symbol {
			s += 2
		}
		if qa.Type != "" && qa.Type == ta.Type {
			s++
		}
		if qa.Charge == ta.Charge {
			s++
		}
		if qa.Aromatic == ta.Aromatic {
			s++
		}
		if p.qt.degree(pr[0]) == p.tt.degree(pr[1]) {
			s++
		}
	}
	return s
}

func (p *projector) mappingOf(pairs [][2]int) AtomMapping {
	mp := NewAtomMapping(p.qt.g.AtomCount(), p.tt.g.AtomCount())
	putAll(&mp, pairs)
	return mp
}

// putAll adds every pair to mp or none of them.
func putAll(mp *AtomMapping, pairs [][2]int) bool {
	trial := mp.Clone()
	for _, pr := range pairs {
		if !trial.Put(pr[0], pr[1]) {
			return false
		}
	}
	*mp = trial
	return true
}

// atomPairMappings is the degenerate projection used when no bond pair is
// compatible: every matching atom pair becomes a one-atom mapping.
func atomPairMappings(qt, tt *topology, m Matchers) []AtomMapping {
	var out []AtomMapping
	nq, nt := qt.g.AtomCount(), tt.g.AtomCount()
	for qi := 0; qi < nq; qi++ {
		for ti := 0; ti < nt; ti++ {
			if !m.Atom(qt.g, qi, tt.g, ti) {
				continue
			}
			mp := NewAtomMapping(nq, nt)
			mp.Put(qi, ti)
			out = append(out, mp)
		}
	}
	return out
}
