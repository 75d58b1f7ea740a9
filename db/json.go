package db

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/suxatcode/klinekart/graph"
)

// JSONFile reads associations from a JSON file, or from stdin for "-".
type JSONFile struct {
	Path  string
	Stdin io.Reader
}

func (f JSONFile) Associations(ctx context.Context) ([]graph.Association, error) {
	if f.Path == "-" || f.Path == "" {
		stdin := f.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return LoadJSON(stdin)
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", f.Path)
	}
	defer file.Close()
	assocs, err := LoadJSON(file)
	return assocs, errors.Wrapf(err, "load %s", f.Path)
}

// LoadJSON decodes a list of association pairs, each a two element array of
// users. Pairs with a missing user are dropped.
func LoadJSON(r io.Reader) ([]graph.Association, error) {
	assocs := []graph.Association{}
	if err := json.NewDecoder(r).Decode(&assocs); err != nil {
		return nil, errors.Wrap(err, "decode associations")
	}
	complete := RemoveIf(assocs, func(a graph.Association) bool {
		return isMissing(a[0]) || isMissing(a[1])
	})
	if dropped := len(assocs) - len(complete); dropped > 0 {
		log.Warn().Msgf("dropped %d incomplete associations", dropped)
	}
	return complete, nil
}

func isMissing(u graph.User) bool {
	return u == graph.User{}
}

func WriteJSON(w io.Writer, assocs []graph.Association) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(assocs), "encode associations")
}
