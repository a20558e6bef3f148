package tree

// The two traversals below use an explicit stack rather than call-stack
// recursion so behavior stays bounded on arbitrarily deep trees.

// forceSetState sets every node in the subtree rooted at n to target.
// Visiting order within the subtree does not matter because every node
// receives the same value.
func forceSetState(n *Node, target CheckState) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.State = target
		stack = append(stack, cur.Children...)
	}
}

// collectCheckedLeaves appends every leaf with State == Checked under the
// given roots, in pre-order left-to-right document order. Children are
// pushed in reverse because a naive stack pop would invert sibling order.
// Internal nodes are walked through regardless of their own state.
func collectCheckedLeaves(roots []*Node) []*Node {
	var out []*Node
	stack := make([]*Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsLeaf() && cur.State == Checked {
			out = append(out, cur)
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return out
}

// Walk visits every node under the tree's roots in pre-order left-to-right
// order, calling fn for each. Used by consumers that need to scan the whole
// tree (state persistence, rebuild carry-over).
func (t *Tree) Walk(fn func(*Node)) {
	stack := make([]*Node, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}
