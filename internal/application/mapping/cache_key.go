package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// cacheKeyVersion changes whenever the fingerprinted layout or the search
// semantics change, orphaning old entries.
const cacheKeyVersion = "v1"

type fingerprint struct {
	Query   mtypes.MoleculeGraphDTO `json:"query"`
	Target  mtypes.MoleculeGraphDTO `json:"target"`
	Options resolvedOptions         `json:"options"`
}

// cacheKey hashes the canonical JSON of both graphs and the resolved options.
func cacheKey(q, t mtypes.MoleculeGraphDTO, o resolvedOptions) (string, error) {
	b, err := json.Marshal(fingerprint{Query: q, Target: t, Options: o})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%016x", cacheKeyVersion, xxhash.Sum64(b)), nil
}

//Personal.AI order the ending
