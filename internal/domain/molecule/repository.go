package molecule

import "context"

// Repository defines the read contract for stored molecule graphs.  A ref is
// whatever locator the implementation understands (a file path for the file
// store).
type Repository interface {
	// FindByRef loads the single molecule stored under ref.
	// Returns errors.CodeMoleculeNotFound if nothing is stored there and
	// errors.ErrCodeInvalidGraph if the document holds other than one graph.
	FindByRef(ctx context.Context, ref string) (*Molecule, error)

	// FindAllByRef loads every molecule stored under ref, in document order.
	FindAllByRef(ctx context.Context, ref string) ([]*Molecule, error)
}

//Personal.AI order the ending
