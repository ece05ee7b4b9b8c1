package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// ReadJSON decodes a nested JSON tree from r.
//
// The input must be a single JSON object (see the package documentation).
// Unknown fields are ignored. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Tree[tree.Label], error) {
	var root *inputNode
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return tree.New[tree.Label](), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON")
	}
	return build(root)
}

// ReadYAML decodes a nested YAML tree from r. ReadYAML does not close r.
func ReadYAML(r io.Reader) (*tree.Tree[tree.Label], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOFailure, err, "read YAML")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.New[tree.Label](), nil
	}

	var root inputNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode YAML")
	}
	return build(&root)
}

// Decoder reads a tree from a stream.
type Decoder func(io.Reader) (*tree.Tree[tree.Label], error)

// DecoderFor returns the decoder for a file name or format name ("json",
// "yaml", "yml").
func DecoderFor(name string) (Decoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		ext = strings.ToLower(name)
	}
	switch ext {
	case "json":
		return ReadJSON, nil
	case "yaml", "yml":
		return ReadYAML, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (must be json or yaml)", name)
}

// ImportFile reads the tree stored at path, choosing the decoder from the
// file extension.
func ImportFile(path string) (*tree.Tree[tree.Label], error) {
	decode, err := DecoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIOFailure, err, "open %s", path)
	}
	defer f.Close()

	t, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
