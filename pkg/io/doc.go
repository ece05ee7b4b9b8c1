// Package io reads and writes labeled trees as nested JSON or YAML documents.
//
// # Format
//
// A document is a single root node. Every node has a label, an optional
// emphasis flag and an ordered list of children:
//
//	{
//	  "label": "S",
//	  "children": [
//	    {"label": "NP", "children": [{"label": "I", "emphasize": true}]},
//	    {"label": "VP"}
//	  ]
//	}
//
// The same shape is accepted as YAML. Parse-tree exports that use "text" for
// the label and "is_terminal" for emphasis are read as well.
//
// An empty document (or JSON null) yields an empty tree.
//
// # Import
//
// Use [ImportFile] to read a file, choosing the decoder by extension, or
// [ReadJSON] and [ReadYAML] to read from any io.Reader:
//
//	t, err := io.ImportFile("parse_tree.json")
//
// Labels are validated with [errors.ValidateLabel]; failures carry the
// INVALID_INPUT code and the path of the offending node.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the canonical form (label, emphasize,
// children) so that exported files re-import identically.
//
// [errors.ValidateLabel]: github.com/matzehuels/treelayout/pkg/errors#ValidateLabel
package io
