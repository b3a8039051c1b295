package mcs

// MatchOptions selects how strictly atoms and bonds must agree.
type MatchOptions struct {
	// MatchBondOrder requires equal bond orders.  Two aromatic bonds always
	// match each other regardless of their stored order.
	MatchBondOrder bool `json:"match_bond_order" mapstructure:"match_bond_order"`

	// MatchRings requires ring membership of atoms and bonds to agree.
	MatchRings bool `json:"match_rings" mapstructure:"match_rings"`

	// MatchAtomType requires atom types to agree when both sides carry one.
	MatchAtomType bool `json:"match_atom_type" mapstructure:"match_atom_type"`
}

// AtomMatcher decides whether query atom qi may correspond to target atom ti.
type AtomMatcher func(q Graph, qi int, t Graph, ti int) bool

// BondMatcher decides whether query bond qe may correspond to target bond te.
// It only compares the bonds themselves; endpoint compatibility is checked by
// the compatibility graph builder using the AtomMatcher.
type BondMatcher func(q Graph, qe int, t Graph, te int) bool

// StereoMatcher decides whether the stereo descriptors of a mapped atom pair
// agree.  It feeds the stereo ranking filter only.
type StereoMatcher func(q Graph, qi int, t Graph, ti int) bool

// Matchers bundles the atom and bond predicates used by one search.
type Matchers struct {
	Atom AtomMatcher
	Bond BondMatcher
}

// NewMatchers builds the default predicates for opts.
func NewMatchers(opts MatchOptions) Matchers {
	return Matchers{
		Atom: atomMatcher(opts),
		Bond: bondMatcher(opts),
	}
}

func atomMatcher(opts MatchOptions) AtomMatcher {
	return func(q Graph, qi int, t Graph, ti int) bool {
		qa, ta := q.Atom(qi), t.Atom(ti)
		if qa.Symbol != ta.Symbol && !(q.IsQuery() && qa.Symbol == Wildcard) {
			return false
		}
		if opts.MatchAtomType && qa.Type != "" && ta.Type != "" && qa.Type != ta.Type {
			return false
		}
		if opts.MatchRings && qa.InRing != ta.InRing {
			return false
		}
		return true
	}
}

func bondMatcher(opts MatchOptions) BondMatcher {
	return func(q Graph, qe int, t Graph, te int) bool {
		qb, tb := q.Bond(qe), t.Bond(te)
		if opts.MatchRings && qb.InRing != tb.InRing {
			return false
		}
		if !opts.MatchBondOrder {
			return true
		}
		if qb.Aromatic && tb.Aromatic {
			return true
		}
		if qb.Aromatic != tb.Aromatic {
			return false
		}
		return qb.Order == tb.Order
	}
}

// DefaultStereoMatcher compares the Stereo field of the two atom labels.
func DefaultStereoMatcher(q Graph, qi int, t Graph, ti int) bool {
	return q.Atom(qi).Stereo == t.Atom(ti).Stereo
}

// orientations reports which endpoint orientations of the bond pair (qe, te)
// are consistent with the atom matcher.  forward maps the first endpoint of
// qe onto the first endpoint of te.
func orientations(q, t *topology, m Matchers, qe, te int) (forward, reverse bool) {
	qa, qb := q.ends[qe][0], q.ends[qe][1]
	ta, tb := t.ends[te][0], t.ends[te][1]
	forward = m.Atom(q.g, qa, t.g, ta) && m.Atom(q.g, qb, t.g, tb)
	reverse = m.Atom(q.g, qa, t.g, tb) && m.Atom(q.g, qb, t.g, ta)
	return forward, reverse
}
