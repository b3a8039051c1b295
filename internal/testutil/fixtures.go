package testutil

import (
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// Chain returns a saturated carbon chain of n atoms.
func Chain(id string, n int) mtypes.MoleculeGraphDTO {
	d := mtypes.MoleculeGraphDTO{ID: id, Atoms: make([]mtypes.AtomDTO, n)}
	for i := range d.Atoms {
		d.Atoms[i] = mtypes.AtomDTO{Symbol: "C"}
	}
	for i := 0; i+1 < n; i++ {
		d.Bonds = append(d.Bonds, mtypes.BondDTO{Begin: i, End: i + 1, Order: 1})
	}
	return d
}

// Propane is C-C-C.
func Propane() mtypes.MoleculeGraphDTO { return Chain("propane", 3) }

// Butane is C-C-C-C.
func Butane() mtypes.MoleculeGraphDTO { return Chain("butane", 4) }

// Benzene is a Kekulé benzene ring with aromatic, ring-flagged atoms and
// bonds.
func Benzene() mtypes.MoleculeGraphDTO {
	d := mtypes.MoleculeGraphDTO{ID: "benzene", Name: "Benzene"}
	for i := 0; i < 6; i++ {
		d.Atoms = append(d.Atoms, mtypes.AtomDTO{Symbol: "C", Aromatic: true, InRing: true})
		order := 1
		if i%2 == 0 {
			order = 2
		}
		d.Bonds = append(d.Bonds, mtypes.BondDTO{Begin: i, End: (i + 1) % 6, Order: order, Aromatic: true, InRing: true})
	}
	return d
}

// Ethanol is C-C-O.
func Ethanol() mtypes.MoleculeGraphDTO {
	return mtypes.MoleculeGraphDTO{
		ID:    "ethanol",
		Name:  "Ethanol",
		Atoms: []mtypes.AtomDTO{{Symbol: "C"}, {Symbol: "C"}, {Symbol: "O"}},
		Bonds: []mtypes.BondDTO{{Begin: 0, End: 1, Order: 1}, {Begin: 1, End: 2, Order: 1}},
	}
}

// Water is O with two hydrogens.
func Water() mtypes.MoleculeGraphDTO {
	return mtypes.MoleculeGraphDTO{
		ID:    "water",
		Atoms: []mtypes.AtomDTO{{Symbol: "O"}, {Symbol: "H"}, {Symbol: "H"}},
		Bonds: []mtypes.BondDTO{{Begin: 0, End: 1, Order: 1}, {Begin: 0, End: 2, Order: 1}},
	}
}

// Neon is a single noble-gas atom sharing no element with the others.
func Neon() mtypes.MoleculeGraphDTO {
	return mtypes.MoleculeGraphDTO{ID: "neon", Atoms: []mtypes.AtomDTO{{Symbol: "Ne"}}}
}

// CarbonQuery is C-* with a wildcard atom, usable only as a query.
func CarbonQuery() mtypes.MoleculeGraphDTO {
	return mtypes.MoleculeGraphDTO{
		ID:    "c-any",
		Query: true,
		Atoms: []mtypes.AtomDTO{{Symbol: "C"}, {Symbol: "*"}},
		Bonds: []mtypes.BondDTO{{Begin: 0, End: 1, Order: 1}},
	}
}

//Personal.AI order the ending
