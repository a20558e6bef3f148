// Package tree implements the selection-state engine behind an interactive
// tree widget: tree construction from flat or nested raw records, tri-state
// checked propagation between parents and children, expand/collapse state,
// and extraction of the effectively selected leaves.
package tree

// Node is one item in the tree. The root list and the id index share node
// instances, so a mutation through either view is visible through the other.
type Node struct {
	ID       string
	ParentID string           // empty for roots
	Label    string           // display payload, opaque to the engine
	Value    any              // semantic payload, opaque to the engine
	Raw      map[string]any   // the source record this node was built from
	Children []*Node          // ordered; empty means leaf
	Parent   *Node            // back-reference for upward propagation
	Expanded bool
	State    CheckState
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Depth returns the nesting level of the node (0 = root).
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}
