package tree

// Mode selects the interaction state machine.
type Mode int

const (
	// MultiSelect toggles whole subtrees and derives internal-node states
	// from their children.
	MultiSelect Mode = iota
	// SingleSelect tracks one globally unique selected leaf id; internal
	// nodes are not selectable and no stored state is mutated.
	SingleSelect
)

// Options configures an Engine.
type Options struct {
	Mode Mode

	// InitialSelection seeds single-select mode. It may name an id that does
	// not exist, in which case nothing renders as selected.
	InitialSelection string

	// InitialChecked seeds multi-select mode with previously selected
	// records; each record is matched to a node by the configured id field
	// and its whole subtree marked Checked.
	InitialChecked []map[string]any

	// OnChange receives the ordered checked-leaf list after a user-driven
	// toggle completes. It is never invoked during initialization, and is
	// delivered via Flush only after the mutation has committed.
	OnChange func([]*Node)
}

// Engine owns the tree and the per-mode selection state. All mutations are
// synchronous responses to discrete interaction events; the engine is not
// safe for concurrent use and callers delivering events from multiple
// sources must serialize them.
type Engine struct {
	tree    *Tree
	opts    Options
	current string // single-select: id of the selected leaf
	pending bool   // a user-driven change awaits notification
}

// New builds the tree from records and applies the initial selection.
// Initialization updates ancestor aggregation but never fires OnChange.
func New(records []map[string]any, cfg Config, opts Options) *Engine {
	e := &Engine{
		tree: Build(records, cfg),
		opts: opts,
	}
	e.applyInitial()
	return e
}

// Tree exposes the underlying tree for read-side consumers (rendering,
// persistence). Mutations must go through the engine operations.
func (e *Engine) Tree() *Tree {
	return e.tree
}

// Mode returns the configured interaction mode.
func (e *Engine) Mode() Mode {
	return e.opts.Mode
}

// applyInitial seeds selection state from Options.
func (e *Engine) applyInitial() {
	if e.opts.Mode == SingleSelect {
		e.current = e.opts.InitialSelection
		return
	}
	idField := e.tree.cfg.Fields.ID
	for _, rec := range e.opts.InitialChecked {
		n, ok := e.tree.Lookup(fieldString(rec, idField))
		if !ok {
			continue
		}
		forceSetState(n, Checked)
		propagateUp(n)
	}
}

// ToggleCheck routes a tap on the node to the configured state machine.
// Unknown ids are a no-op.
func (e *Engine) ToggleCheck(id string) {
	n, ok := e.tree.Lookup(id)
	if !ok {
		return
	}
	if e.opts.Mode == SingleSelect {
		// Only leaves are selectable in single-select mode.
		if !n.IsLeaf() {
			return
		}
		e.current = n.ID
		e.pending = true
		return
	}

	// Partial toggles to Checked, not Unchecked: tapping a partially
	// checked parent always fully checks its subtree first.
	target := Checked
	if n.State == Checked {
		target = Unchecked
	}
	forceSetState(n, target)
	propagateUp(n)
	e.pending = true
}

// ToggleExpand flips the expansion flag of a node with children. Taps on
// leaves and unknown ids are no-ops. Purely local: no propagation, no
// notification.
func (e *Engine) ToggleExpand(id string) {
	n, ok := e.tree.Lookup(id)
	if !ok || n.IsLeaf() {
		return
	}
	n.Expanded = !n.Expanded
}

// IsExpanded reports the expansion flag of the node, false for unknown ids.
func (e *Engine) IsExpanded(id string) bool {
	n, ok := e.tree.Lookup(id)
	return ok && n.Expanded
}

// CheckedState returns the tri-state value of the node. In single-select
// mode the value is computed, not stored: a leaf is Checked iff it is the
// current selection.
func (e *Engine) CheckedState(id string) CheckState {
	n, ok := e.tree.Lookup(id)
	if !ok {
		return Unchecked
	}
	if e.opts.Mode == SingleSelect {
		if n.IsLeaf() && n.ID == e.current {
			return Checked
		}
		return Unchecked
	}
	return n.State
}

// CheckedLeaves returns the effectively selected leaves in pre-order
// left-to-right document order. In single-select mode this is at most one
// element.
func (e *Engine) CheckedLeaves() []*Node {
	if e.opts.Mode == SingleSelect {
		if n, ok := e.tree.Lookup(e.current); ok && n.IsLeaf() {
			return []*Node{n}
		}
		return nil
	}
	return collectCheckedLeaves(e.tree.roots)
}

// Selection returns the single-select current selection id. It may name an
// id that does not exist in the tree.
func (e *Engine) Selection() string {
	return e.current
}

// Flush delivers the pending change notification, if any. Callers invoke
// it after the surrounding update cycle has committed so the collaborator
// never observes a stale snapshot. Returns true if OnChange was called.
func (e *Engine) Flush() bool {
	if !e.pending {
		return false
	}
	e.pending = false
	if e.opts.OnChange == nil {
		return false
	}
	e.opts.OnChange(e.CheckedLeaves())
	return true
}

// Dirty reports whether a change notification is pending.
func (e *Engine) Dirty() bool {
	return e.pending
}

// Rebuild replaces the tree from fresh records, carrying over checked
// state, expansion flags, and the single-select selection by id. Ids that
// no longer exist are dropped. No notification fires: a rebuild is data
// maintenance, not user interaction.
func (e *Engine) Rebuild(records []map[string]any) {
	var checked []string
	expanded := make(map[string]bool)
	e.tree.Walk(func(n *Node) {
		if n.Expanded != e.tree.cfg.ExpandedByDefault {
			expanded[n.ID] = n.Expanded
		}
		if n.IsLeaf() && n.State == Checked {
			checked = append(checked, n.ID)
		}
	})

	e.tree = Build(records, e.tree.cfg)

	for _, id := range checked {
		if n, ok := e.tree.Lookup(id); ok {
			forceSetState(n, Checked)
			propagateUp(n)
		}
	}
	for id, exp := range expanded {
		if n, ok := e.tree.Lookup(id); ok {
			n.Expanded = exp
		}
	}
}
