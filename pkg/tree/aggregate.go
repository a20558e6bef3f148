package tree

// aggregate derives a parent's state from its direct children. Any Partial
// child short-circuits to Partial; otherwise all-checked yields Checked,
// none-checked yields Unchecked, and a mix yields Partial. A childless
// parent aggregates to Unchecked.
func aggregate(children []*Node) CheckState {
	if len(children) == 0 {
		return Unchecked
	}
	checked := 0
	for _, c := range children {
		switch c.State {
		case Partial:
			return Partial
		case Checked:
			checked++
		}
	}
	switch checked {
	case len(children):
		return Checked
	case 0:
		return Unchecked
	default:
		return Partial
	}
}

// propagateUp re-derives each ancestor of n, one parent at a time, from the
// toggled node to the root. Each ancestor depends only on its own direct
// children's already-updated values.
func propagateUp(n *Node) {
	for p := n.Parent; p != nil; p = p.Parent {
		p.State = aggregate(p.Children)
	}
}
