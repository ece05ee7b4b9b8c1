package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// WriteJSON encodes t as an indented nested JSON document. An empty tree is
// written as null.
func WriteJSON(w io.Writer, t *tree.Tree[tree.Label]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document(t)); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "encode JSON")
	}
	return nil
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *tree.Tree[tree.Label], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "create %s", path)
	}
	if err := WriteJSON(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIOFailure, err, "close %s", path)
	}
	return nil
}
