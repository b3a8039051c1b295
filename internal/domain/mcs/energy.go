package mcs

import "sort"

// DefaultBondEnergy is used for bonds missing from the energy table, in kJ/mol.
const DefaultBondEnergy = 300.0

// EnergyTable maps a bond key to its dissociation energy in kJ/mol.  Keys
// join the two element symbols in lexical order with the bond symbol: "-"
// single, "=" double, "#" triple, ":" aromatic.  For example "C-O", "C=O",
// "C:C", "Br-C".
type EnergyTable map[string]float64

// DefaultEnergyTable holds average bond dissociation energies for the bonds
// common in organic reactions.
var DefaultEnergyTable = EnergyTable{
	"C-C":  346,
	"C=C":  602,
	"C#C":  835,
	"C:C":  518,
	"C-N":  305,
	"C=N":  615,
	"C#N":  887,
	"C:N":  500,
	"C-O":  358,
	"C=O":  799,
	"C-S":  272,
	"C=S":  573,
	"C-H":  411,
	"H-O":  459,
	"H-N":  386,
	"C-F":  485,
	"C-Cl": 327,
	"Br-C": 285,
	"C-I":  213,
	"N-N":  167,
	"N=N":  418,
	"N-O":  201,
	"O-O":  142,
	"S-S":  226,
	"P-O":  335,
	"O=P":  544,
}

// BondKey builds the EnergyTable key of bond e in g.
func BondKey(g Graph, e int) string {
	a, b := g.BondAtoms(e)
	syms := []string{g.Atom(a).Symbol, g.Atom(b).Symbol}
	sort.Strings(syms)
	lbl := g.Bond(e)
	sep := "-"
	switch {
	case lbl.Aromatic:
		sep = ":"
	case lbl.Order == 2:
		sep = "="
	case lbl.Order == 3:
		sep = "#"
	}
	return syms[0] + sep + syms[1]
}

// Energy returns the dissociation energy of bond e in g.
func (t EnergyTable) Energy(g Graph, e int) float64 {
	if v, ok := t[BondKey(g, e)]; ok {
		return v
	}
	return DefaultBondEnergy
}

// conservedBonds marks, for each graph, the bonds whose two endpoints are
// mapped onto the endpoints of a bond on the other side.
func conservedBonds(qt, tt *topology, mp AtomMapping) (q, t []bool) {
	q = make([]bool, len(qt.ends))
	t = make([]bool, len(tt.ends))
	for qe, ends := range qt.ends {
		ta, ok1 := mp.Target(ends[0])
		tb, ok2 := mp.Target(ends[1])
		if !ok1 || !ok2 {
			continue
		}
		if te := tt.bondBetween(ta, tb); te >= 0 {
			q[qe] = true
			t[te] = true
		}
	}
	return q, t
}

// bondBreakingEnergy sums the energies of every bond the mapping does not
// conserve, on both sides.
func bondBreakingEnergy(qt, tt *topology, table EnergyTable, mp AtomMapping) float64 {
	qc, tc := conservedBonds(qt, tt, mp)
	total := 0.0
	for e, kept := range qc {
		if !kept {
			total += table.Energy(qt.g, e)
		}
	}
	for e, kept := range tc {
		if !kept {
			total += table.Energy(tt.g, e)
		}
	}
	return total
}

// ConservedBondCount returns how many query bonds the mapping carries onto
// target bonds.
func ConservedBondCount(q, t Graph, mp AtomMapping) int {
	qc, _ := conservedBonds(newTopology(q), newTopology(t), mp)
	n := 0
	for _, kept := range qc {
		if kept {
			n++
		}
	}
	return n
}
