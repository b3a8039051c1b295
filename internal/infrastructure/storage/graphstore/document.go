package graphstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/asad/ReactionDecoder-sub002/internal/domain/molecule"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// DecodeDocument parses a graph document: either one graph object or an
// array of them.  An empty array is rejected.
func DecodeDocument(data []byte) ([]mtypes.MoleculeGraphDTO, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.InvalidGraph("graph document is empty")
	}

	if trimmed[0] == '[' {
		var list []mtypes.MoleculeGraphDTO
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, errors.InvalidGraph("graph document is not valid JSON").WithCause(err)
		}
		if len(list) == 0 {
			return nil, errors.InvalidGraph("graph document holds no graphs")
		}
		return list, nil
	}

	var one mtypes.MoleculeGraphDTO
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, errors.InvalidGraph("graph document is not valid JSON").WithCause(err)
	}
	return []mtypes.MoleculeGraphDTO{one}, nil
}

// BuildMolecules validates every DTO.  A graph without an id gets
// "<source>#<index>" so that results stay traceable.
func BuildMolecules(source string, dtos []mtypes.MoleculeGraphDTO) ([]*molecule.Molecule, error) {
	out := make([]*molecule.Molecule, 0, len(dtos))
	for i, d := range dtos {
		if d.ID == "" {
			d.ID = fmt.Sprintf("%s#%d", source, i)
		}
		m, err := molecule.FromDTO(d)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "invalid graph in document").
				WithDetail(fmt.Sprintf("source=%s index=%d", source, i))
		}
		out = append(out, m)
	}
	return out, nil
}

//Personal.AI order the ending
