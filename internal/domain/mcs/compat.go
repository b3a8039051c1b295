package mcs

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// EdgeKind classifies a compatibility edge.
type EdgeKind uint8

const (
	// Continuation links two bond pairs that share a matched atom on both
	// sides.
	Continuation EdgeKind = iota + 1
	// Disjoint links two bond pairs that touch no common atom on either side.
	Disjoint
)

func (k EdgeKind) String() string {
	switch k {
	case Continuation:
		return "continuation"
	case Disjoint:
		return "disjoint"
	default:
		return "none"
	}
}

// CompatibilityNode is one compatible (query bond, target bond) pair.
type CompatibilityNode struct {
	ID         int
	QueryBond  int
	TargetBond int
	// Forward and Reverse record which endpoint orientations the atom matcher
	// accepts; at least one is true.
	Forward bool
	Reverse bool
}

// CompatibilityEdge is an unordered pair of distinct nodes, A < B.
type CompatibilityEdge struct {
	A, B int
	Kind EdgeKind
}

// CompatibilityGraph is the product graph of two molecules.  It is read-only
// once built.
type CompatibilityGraph struct {
	Nodes []CompatibilityNode
	Edges []CompatibilityEdge

	cAdj []*bitset.BitSet
	dAdj []*bitset.BitSet
	adj  []*bitset.BitSet
}

// Size returns the number of nodes.
func (g *CompatibilityGraph) Size() int { return len(g.Nodes) }

// Continuations returns the continuation neighbourhood of node id.  The
// returned set must not be modified.
func (g *CompatibilityGraph) Continuations(id int) *bitset.BitSet { return g.cAdj[id] }

// Disjoints returns the disjoint neighbourhood of node id.
func (g *CompatibilityGraph) Disjoints(id int) *bitset.BitSet { return g.dAdj[id] }

// Neighbors returns the union of both neighbourhoods of node id.
func (g *CompatibilityGraph) Neighbors(id int) *bitset.BitSet { return g.adj[id] }

// Degree returns the total number of neighbours of node id.
func (g *CompatibilityGraph) Degree(id int) int { return int(g.adj[id].Count()) }

// Kind returns the relation between nodes a and b, and false if they are not
// adjacent.
func (g *CompatibilityGraph) Kind(a, b int) (EdgeKind, bool) {
	switch {
	case g.cAdj[a].Test(uint(b)):
		return Continuation, true
	case g.dAdj[a].Test(uint(b)):
		return Disjoint, true
	}
	return 0, false
}

// BuildCompatibilityGraph constructs the product graph of q and t.  maxNodes
// bounds the number of compatible bond pairs; zero or less disables the
// check.  Exceeding it is a configuration error raised before any edge is
// classified.
func BuildCompatibilityGraph(q, t Graph, m Matchers, maxNodes int) (*CompatibilityGraph, error) {
	return buildCompatibilityGraph(newTopology(q), newTopology(t), m, maxNodes)
}

func buildCompatibilityGraph(qt, tt *topology, m Matchers, maxNodes int) (*CompatibilityGraph, error) {
	nodes, err := compatibleNodes(qt, tt, m, maxNodes)
	if err != nil {
		return nil, err
	}
	g := &CompatibilityGraph{Nodes: nodes}

	n := uint(len(g.Nodes))
	g.cAdj = make([]*bitset.BitSet, n)
	g.dAdj = make([]*bitset.BitSet, n)
	g.adj = make([]*bitset.BitSet, n)
	for i := range g.Nodes {
		g.cAdj[i] = bitset.New(n)
		g.dAdj[i] = bitset.New(n)
	}

	for i := 0; i < len(g.Nodes); i++ {
		p1 := g.Nodes[i]
		for j := i + 1; j < len(g.Nodes); j++ {
			p2 := g.Nodes[j]
			kind := classify(qt, tt, m, p1, p2)
			if kind == 0 {
				continue
			}
			g.Edges = append(g.Edges, CompatibilityEdge{A: i, B: j, Kind: kind})
			rel := g.cAdj
			if kind == Disjoint {
				rel = g.dAdj
			}
			rel[i].Set(uint(j))
			rel[j].Set(uint(i))
		}
	}
	for i := range g.Nodes {
		g.adj[i] = g.cAdj[i].Union(g.dAdj[i])
	}
	return g, nil
}

// compatibleNodes lists every bond pair accepted by the bond matcher whose
// endpoints match in at least one orientation.
func compatibleNodes(qt, tt *topology, m Matchers, maxNodes int) ([]CompatibilityNode, error) {
	var nodes []CompatibilityNode
	for qe := range qt.ends {
		for te := range tt.ends {
			if !m.Bond(qt.g, qe, tt.g, te) {
				continue
			}
			fwd, rev := orientations(qt, tt, m, qe, te)
			if !fwd && !rev {
				continue
			}
			nodes = append(nodes, CompatibilityNode{
				ID:         len(nodes),
				QueryBond:  qe,
				TargetBond: te,
				Forward:    fwd,
				Reverse:    rev,
			})
			if maxNodes > 0 && len(nodes) > maxNodes {
				return nil, errors.New(errors.ErrCodeCompatibilityTooLarge, "compatibility graph exceeds node limit").
					WithDetail(fmt.Sprintf("limit=%d query_bonds=%d target_bonds=%d", maxNodes, len(qt.ends), len(tt.ends)))
			}
		}
	}
	return nodes, nil
}

// classify returns the relation between two bond pairs, or 0 when they cannot
// coexist in one common substructure.
func classify(qt, tt *topology, m Matchers, p1, p2 CompatibilityNode) EdgeKind {
	if p1.QueryBond == p2.QueryBond || p1.TargetBond == p2.TargetBond {
		return 0
	}
	sq := qt.sharedAtom(p1.QueryBond, p2.QueryBond)
	st := tt.sharedAtom(p1.TargetBond, p2.TargetBond)
	switch {
	case sq < 0 && st < 0:
		return Disjoint
	case sq >= 0 && st >= 0 && m.Atom(qt.g, sq, tt.g, st) &&
		orientationAllowed(qt, tt, p1, sq, st) && orientationAllowed(qt, tt, p2, sq, st):
		return Continuation
	}
	return 0
}

// orientationAllowed reports whether pinning query atom sq onto target atom st
// leaves node p in an orientation the atom matcher accepted.
func orientationAllowed(qt, tt *topology, p CompatibilityNode, sq, st int) bool {
	sameSide := (qt.ends[p.QueryBond][0] == sq) == (tt.ends[p.TargetBond][0] == st)
	if sameSide {
		return p.Forward
	}
	return p.Reverse
}
