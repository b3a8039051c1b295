// Package mcs finds maximum common substructures between two molecule graphs
// and reports them as atom-to-atom mappings.
//
// A search runs in stages:
//
//   - BuildCompatibilityGraph pairs every query bond with every target bond
//     the matchers accept and links two pairs by a Continuation edge (they
//     share a matching atom on both sides) or a Disjoint edge (they share an
//     atom on neither side).
//   - FindCliques enumerates the continuation-connected cliques of that graph
//     with branch and bound.  Each clique is a common edge-subgraph, weighed
//     by the atoms it maps rather than the bonds it holds.
//   - The projector turns cliques into consistent AtomMappings.
//   - The extender grows mappings one atom pair at a time from the atoms
//     already mapped, reaching sizes the clique stage can miss.
//   - Rank narrows equally sized mappings with chemical tie-break filters.
//
// Engine ties the stages together.  Every stage is synchronous and runs under
// a SearchBudget; exhausting it ends the search early with Result.Timeout set
// and the best mappings found so far.
package mcs
