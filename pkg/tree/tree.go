package tree

import "errors"

var (
	// ErrRootExists is returned by [Tree.SetRoot] when the tree already has a root.
	ErrRootExists = errors.New("tree already has a root")

	// ErrNoRoot is returned by [Tree.AddChild] on a tree without a root.
	ErrNoRoot = errors.New("tree has no root")

	// ErrUnknownNode is returned when a NodeID does not refer to a node of the tree.
	ErrUnknownNode = errors.New("unknown node")
)

// NodeID identifies a node within one Tree. It is a lookup handle into the
// arena and only meaningful for the tree that issued it.
type NodeID int

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

type node[T any] struct {
	data     T
	parent   NodeID
	children []NodeID
}

// Tree is a rooted, ordered tree whose nodes carry data of type T.
//
// The zero value is an empty tree ready for use.
type Tree[T any] struct {
	nodes []node[T]
}

// New creates an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// SetRoot inserts the root node. It returns ErrRootExists if the tree is
// not empty.
func (t *Tree[T]) SetRoot(data T) (NodeID, error) {
	if len(t.nodes) > 0 {
		return NoNode, ErrRootExists
	}
	t.nodes = append(t.nodes, node[T]{data: data, parent: NoNode})
	return 0, nil
}

// AddChild appends a new node as the last child of parent.
// Returns ErrNoRoot on an empty tree and ErrUnknownNode if parent is not a
// node of this tree.
func (t *Tree[T]) AddChild(parent NodeID, data T) (NodeID, error) {
	if len(t.nodes) == 0 {
		return NoNode, ErrNoRoot
	}
	if !t.valid(parent) {
		return NoNode, ErrUnknownNode
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[T]{data: data, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// Root returns the root node, or NoNode and false for an empty tree.
func (t *Tree[T]) Root() (NodeID, bool) {
	if len(t.nodes) == 0 {
		return NoNode, false
	}
	return 0, true
}

// Children returns the children of id in insertion order. The returned slice
// is a read-only view; it is nil for leaves and unknown nodes.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Parent returns the parent of id. The root and unknown nodes report false.
func (t *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.nodes[id].parent == NoNode {
		return NoNode, false
	}
	return t.nodes[id].parent, true
}

// Data returns the data stored at id. It panics if id is not a node of t,
// like an out-of-range slice index.
func (t *Tree[T]) Data(id NodeID) T {
	return t.nodes[id].data
}

// Len returns the number of nodes.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Depth returns the number of edges between id and the root, or -1 for an
// unknown node.
func (t *Tree[T]) Depth(id NodeID) int {
	if !t.valid(id) {
		return -1
	}
	d := 0
	for p := t.nodes[id].parent; p != NoNode; p = t.nodes[p].parent {
		d++
	}
	return d
}

// Height returns the depth of the deepest node, or -1 for an empty tree.
func (t *Tree[T]) Height() int {
	h := -1
	depth := make([]int, len(t.nodes))
	// Parents are always inserted before their children.
	for i, n := range t.nodes {
		if n.parent != NoNode {
			depth[i] = depth[n.parent] + 1
		}
		h = max(h, depth[i])
	}
	return h
}

// WalkPreOrder calls fn for every node, parents before children, siblings in
// order. Returning false from fn stops the walk.
func (t *Tree[T]) WalkPreOrder(fn func(id NodeID, depth int) bool) {
	root, ok := t.Root()
	if !ok {
		return
	}
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.id, f.depth) {
			return
		}
		children := t.nodes[f.id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], f.depth + 1})
		}
	}
}

// WalkPostOrder calls fn for every node, children before parents, siblings in
// order. Returning false from fn stops the walk.
func (t *Tree[T]) WalkPostOrder(fn func(id NodeID) bool) {
	root, ok := t.Root()
	if !ok {
		return
	}
	type frame struct {
		id   NodeID
		next int
	}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.nodes[top.id].children
		if top.next < len(children) {
			child := children[top.next]
			top.next++
			stack = append(stack, frame{id: child})
			continue
		}
		if !fn(top.id) {
			return
		}
		stack = stack[:len(stack)-1]
	}
}

func (t *Tree[T]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}
