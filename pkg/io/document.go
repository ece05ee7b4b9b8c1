package io

import (
	"fmt"

	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// Node is the serialized form of a tree node.
type Node struct {
	Label     string `json:"label" yaml:"label"`
	Emphasize bool   `json:"emphasize,omitempty" yaml:"emphasize,omitempty"`
	Children  []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// inputNode accepts the canonical field names and the parse-tree aliases.
type inputNode struct {
	Label      *string     `json:"label" yaml:"label"`
	Text       *string     `json:"text" yaml:"text"`
	Emphasize  bool        `json:"emphasize" yaml:"emphasize"`
	IsTerminal bool        `json:"is_terminal" yaml:"is_terminal"`
	Children   []inputNode `json:"children" yaml:"children"`
}

func (n *inputNode) label() tree.Label {
	l := tree.Label{Emphasis: n.Emphasize || n.IsTerminal}
	switch {
	case n.Label != nil:
		l.Text = *n.Label
	case n.Text != nil:
		l.Text = *n.Text
	}
	return l
}

// build converts a decoded document into a tree without recursion.
func build(root *inputNode) (*tree.Tree[tree.Label], error) {
	t := tree.New[tree.Label]()
	if root == nil {
		return t, nil
	}

	type frame struct {
		node   *inputNode
		parent tree.NodeID
		path   string
	}
	stack := []frame{{node: root, parent: tree.NoNode, path: "root"}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		l := f.node.label()
		if err := errors.ValidateLabel(l.Text); err != nil {
			return nil, fmt.Errorf("node %s: %w", f.path, err)
		}

		var (
			id  tree.NodeID
			err error
		)
		if f.parent == tree.NoNode {
			id, err = t.SetRoot(l)
		} else {
			id, err = t.AddChild(f.parent, l)
		}
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", f.path, err)
		}

		// Push in reverse so children are inserted left to right.
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:   &f.node.Children[i],
				parent: id,
				path:   fmt.Sprintf("%s.children[%d]", f.path, i),
			})
		}
	}
	return t, nil
}

// Document converts t into its serialized form. It returns nil for an empty
// tree.
func Document(t *tree.Tree[tree.Label]) *Node {
	root, ok := t.Root()
	if !ok {
		return nil
	}

	nodes := make(map[tree.NodeID]*Node, t.Len())
	var out *Node
	t.WalkPreOrder(func(id tree.NodeID, _ int) bool {
		l := t.Data(id)
		n := &Node{Label: l.Text, Emphasize: l.Emphasis}
		nodes[id] = n
		if id == root {
			out = n
		}
		return true
	})

	// Attach bottom-up so every child is complete before it is copied into
	// its parent's slice.
	t.WalkPostOrder(func(id tree.NodeID) bool {
		children := t.Children(id)
		if len(children) == 0 {
			return true
		}
		n := nodes[id]
		n.Children = make([]Node, len(children))
		for i, c := range children {
			n.Children[i] = *nodes[c]
		}
		return true
	})
	return out
}
