// Package molecule provides the molecule graph aggregate the mapping engine
// searches over.  A Molecule is built once from a validated graph document and
// is immutable afterwards, so one instance may be shared by any number of
// concurrent searches.
package molecule

import (
	"fmt"
	"strings"

	"github.com/asad/ReactionDecoder-sub002/internal/domain/mcs"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// ─────────────────────────────────────────────────────────────────────────────
// Value Objects
// ─────────────────────────────────────────────────────────────────────────────

// Atom is one vertex of a molecule graph.
type Atom struct {
	Symbol   string
	Type     string
	Charge   int
	Aromatic bool
	InRing   bool
	Stereo   int
}

// Bond is one edge of a molecule graph.  Begin and End index the atom list.
type Bond struct {
	Begin    int
	End      int
	Order    int
	Aromatic bool
	InRing   bool
	Stereo   int
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecule Aggregate Root
// ─────────────────────────────────────────────────────────────────────────────

// Molecule is an immutable, validated molecule graph.  It implements mcs.Graph.
type Molecule struct {
	id    string
	name  string
	query bool
	atoms []Atom
	bonds []Bond
	adj   [][]int
}

var _ mcs.Graph = (*Molecule)(nil)

// NewMolecule validates atoms and bonds and builds a Molecule.  The slices are
// copied.
//
// Validation rejects an empty atom symbol, a wildcard atom outside a query
// graph, bonds whose ends are out of range or equal, bond orders outside 1..3
// and a second bond between the same pair of atoms.
func NewMolecule(id, name string, query bool, atoms []Atom, bonds []Bond) (*Molecule, error) {
	for i, a := range atoms {
		sym := strings.TrimSpace(a.Symbol)
		if sym == "" {
			return nil, errors.InvalidGraph("atom has no element symbol").
				WithDetail(fmt.Sprintf("molecule=%s atom=%d", id, i))
		}
		if sym == mcs.Wildcard && !query {
			return nil, errors.InvalidGraph("wildcard atom outside a query graph").
				WithDetail(fmt.Sprintf("molecule=%s atom=%d", id, i))
		}
	}

	n := len(atoms)
	seen := make(map[[2]int]int, len(bonds))
	for e, b := range bonds {
		switch {
		case b.Begin < 0 || b.Begin >= n || b.End < 0 || b.End >= n:
			return nil, errors.InvalidGraph("bond refers to a missing atom").
				WithDetail(fmt.Sprintf("molecule=%s bond=%d atoms=%d-%d", id, e, b.Begin, b.End))
		case b.Begin == b.End:
			return nil, errors.InvalidGraph("bond joins an atom to itself").
				WithDetail(fmt.Sprintf("molecule=%s bond=%d atom=%d", id, e, b.Begin))
		case b.Order < 1 || b.Order > 3:
			return nil, errors.InvalidGraph("bond order must be 1, 2 or 3").
				WithDetail(fmt.Sprintf("molecule=%s bond=%d order=%d", id, e, b.Order))
		}
		key := [2]int{b.Begin, b.End}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if prev, dup := seen[key]; dup {
			return nil, errors.InvalidGraph("duplicate bond").
				WithDetail(fmt.Sprintf("molecule=%s bonds=%d,%d", id, prev, e))
		}
		seen[key] = e
	}

	m := &Molecule{
		id:    id,
		name:  name,
		query: query,
		atoms: append([]Atom(nil), atoms...),
		bonds: append([]Bond(nil), bonds...),
		adj:   make([][]int, n),
	}
	for i := range m.atoms {
		m.atoms[i].Symbol = strings.TrimSpace(m.atoms[i].Symbol)
	}
	for e, b := range m.bonds {
		m.adj[b.Begin] = append(m.adj[b.Begin], e)
		m.adj[b.End] = append(m.adj[b.End], e)
	}
	return m, nil
}

// ID returns the document identifier, possibly empty.
func (m *Molecule) ID() string { return m.id }

// Name returns the display name, possibly empty.
func (m *Molecule) Name() string { return m.name }

// Label returns the ID, the name, or a placeholder, in that order of
// preference.
func (m *Molecule) Label() string {
	switch {
	case m.id != "":
		return m.id
	case m.name != "":
		return m.name
	}
	return "<unnamed>"
}

// ─────────────────────────────────────────────────────────────────────────────
// mcs.Graph
// ─────────────────────────────────────────────────────────────────────────────

func (m *Molecule) AtomCount() int { return len(m.atoms) }

func (m *Molecule) BondCount() int { return len(m.bonds) }

func (m *Molecule) BondAtoms(e int) (int, int) {
	return m.bonds[e].Begin, m.bonds[e].End
}

func (m *Molecule) Atom(i int) mcs.AtomLabel {
	a := m.atoms[i]
	return mcs.AtomLabel{
		Symbol:   a.Symbol,
		Type:     a.Type,
		Charge:   a.Charge,
		Aromatic: a.Aromatic,
		InRing:   a.InRing,
		Stereo:   a.Stereo,
	}
}

func (m *Molecule) Bond(e int) mcs.BondLabel {
	b := m.bonds[e]
	return mcs.BondLabel{Order: b.Order, Aromatic: b.Aromatic, InRing: b.InRing, Stereo: b.Stereo}
}

func (m *Molecule) IsQuery() bool { return m.query }

// ─────────────────────────────────────────────────────────────────────────────
// Structure queries
// ─────────────────────────────────────────────────────────────────────────────

// Neighbors returns the atoms bonded to atom i, in bond order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adj[i]))
	for _, e := range m.adj[i] {
		b := m.bonds[e]
		if b.Begin == i {
			out = append(out, b.End)
		} else {
			out = append(out, b.Begin)
		}
	}
	return out
}

// Degree returns the number of bonds at atom i.
func (m *Molecule) Degree(i int) int { return len(m.adj[i]) }

// Components partitions the atoms into connected components, ignoring the
// bonds listed in without.  Components are ordered by their smallest atom.
func (m *Molecule) Components(without ...int) [][]int {
	if len(without) == 0 {
		return mcs.ConnectedComponents(m, nil, nil)
	}
	skip := make(map[int]bool, len(without))
	for _, e := range without {
		skip[e] = true
	}
	return mcs.ConnectedComponents(m, nil, func(e int) bool { return !skip[e] })
}

// ─────────────────────────────────────────────────────────────────────────────
// DTO conversion
// ─────────────────────────────────────────────────────────────────────────────

// FromDTO validates a graph document and builds a Molecule.
func FromDTO(d mtypes.MoleculeGraphDTO) (*Molecule, error) {
	atoms := make([]Atom, len(d.Atoms))
	for i, a := range d.Atoms {
		atoms[i] = Atom{
			Symbol:   a.Symbol,
			Type:     a.Type,
			Charge:   a.Charge,
			Aromatic: a.Aromatic,
			InRing:   a.InRing,
			Stereo:   a.Stereo,
		}
	}
	bonds := make([]Bond, len(d.Bonds))
	for i, b := range d.Bonds {
		bonds[i] = Bond{
			Begin:    b.Begin,
			End:      b.End,
			Order:    b.Order,
			Aromatic: b.Aromatic,
			InRing:   b.InRing,
			Stereo:   b.Stereo,
		}
	}
	return NewMolecule(d.ID, d.Name, d.Query, atoms, bonds)
}

// ToDTO converts m back into its document form.
func (m *Molecule) ToDTO() mtypes.MoleculeGraphDTO {
	d := mtypes.MoleculeGraphDTO{
		ID:    m.id,
		Name:  m.name,
		Query: m.query,
		Atoms: make([]mtypes.AtomDTO, len(m.atoms)),
		Bonds: make([]mtypes.BondDTO, len(m.bonds)),
	}
	for i, a := range m.atoms {
		d.Atoms[i] = mtypes.AtomDTO{
			Symbol:   a.Symbol,
			Type:     a.Type,
			Charge:   a.Charge,
			Aromatic: a.Aromatic,
			InRing:   a.InRing,
			Stereo:   a.Stereo,
		}
	}
	for i, b := range m.bonds {
		d.Bonds[i] = mtypes.BondDTO{
			Begin:    b.Begin,
			End:      b.End,
			Order:    b.Order,
			Aromatic: b.Aromatic,
			InRing:   b.InRing,
			Stereo:   b.Stereo,
		}
	}
	return d
}

//Personal.AI order the ending
