package tree

import (
	"fmt"
	"log"
)

// Tree is the built index over the node arena: an ordered root list plus an
// id lookup covering every depth. Both views reference the same node
// instances; nodes are mutated in place and never re-parented or removed.
type Tree struct {
	roots []*Node
	index map[string]*Node
	cfg   Config
}

// Build constructs a Tree from raw records. Malformed input never fails:
// duplicate ids keep the first occurrence in the index, records whose
// parent cannot be resolved (missing, unknown, self, or part of a parent
// cycle) become roots, and a diagnostic is logged for each. Callers always
// receive a best-effort tree.
func Build(records []map[string]any, cfg Config) *Tree {
	cfg.Fields = cfg.Fields.withDefaults()
	t := &Tree{
		index: make(map[string]*Node),
		cfg:   cfg,
	}

	switch cfg.Shape {
	case ShapeNested:
		t.buildNested(records)
	default:
		t.buildFlat(records)
	}
	return t
}

// buildFlat creates one node per record, then links parent/child
// relationships through the id index.
func (t *Tree) buildFlat(records []map[string]any) {
	f := t.cfg.Fields
	nodes := make([]*Node, 0, len(records))
	for _, rec := range records {
		n := t.newNode(rec)
		nodes = append(nodes, n)
		t.insert(n)
	}

	for _, n := range nodes {
		if n.ParentID == "" {
			t.roots = append(t.roots, n)
			continue
		}
		parent, ok := t.index[n.ParentID]
		if !ok {
			log.Printf("tree: node %q references unknown parent %q via %s, treating as root", n.ID, n.ParentID, f.ParentID)
			t.roots = append(t.roots, n)
			continue
		}
		if parent == n {
			log.Printf("tree: node %q is its own parent, treating as root", n.ID)
			t.roots = append(t.roots, n)
			continue
		}
		if wouldCycle(n, parent) {
			log.Printf("tree: node %q closes a parent cycle via %q, treating as root", n.ID, n.ParentID)
			t.roots = append(t.roots, n)
			continue
		}
		n.Parent = parent
		parent.Children = append(parent.Children, n)
	}
}

// buildNested walks the embedded hierarchy with an explicit stack.
// Children are pushed in reverse so siblings attach in document order.
func (t *Tree) buildNested(records []map[string]any) {
	type frame struct {
		rec    map[string]any
		parent *Node
	}

	stack := make([]frame, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		stack = append(stack, frame{rec: records[i]})
	}

	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.newNode(fr.rec)
		t.insert(n)
		if fr.parent == nil {
			t.roots = append(t.roots, n)
		} else {
			n.Parent = fr.parent
			n.ParentID = fr.parent.ID
			fr.parent.Children = append(fr.parent.Children, n)
		}

		kids, _ := fr.rec[t.cfg.Fields.Children].([]any)
		for i := len(kids) - 1; i >= 0; i-- {
			if childRec, ok := kids[i].(map[string]any); ok {
				stack = append(stack, frame{rec: childRec, parent: n})
			}
		}
	}
}

// newNode builds a Node from one raw record using the configured field
// names. Every node starts Unchecked; Expanded comes from the config
// default.
func (t *Tree) newNode(rec map[string]any) *Node {
	f := t.cfg.Fields
	return &Node{
		ID:       fieldString(rec, f.ID),
		ParentID: fieldString(rec, f.ParentID),
		Label:    fieldString(rec, f.Label),
		Value:    rec[f.Value],
		Raw:      rec,
		Expanded: t.cfg.ExpandedByDefault,
		State:    Unchecked,
	}
}

// wouldCycle reports whether linking child under parent would close a
// parent cycle. Links are made one record at a time, so the already-linked
// ancestor chain of parent is enough to decide.
func wouldCycle(child, parent *Node) bool {
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return true
		}
	}
	return false
}

// insert adds a node to the id index, first-write-wins. A duplicate id
// stays in the tree but is not addressable through the index. A record
// with no usable id stays in the tree but is never indexed, so the empty
// string stays a non-id for Lookup.
func (t *Tree) insert(n *Node) {
	if n.ID == "" {
		log.Printf("tree: record with label %q has no id, leaving it out of the index", n.Label)
		return
	}
	if _, exists := t.index[n.ID]; exists {
		log.Printf("tree: duplicate id %q, keeping first occurrence in index", n.ID)
		return
	}
	t.index[n.ID] = n
}

// Roots returns the ordered root list.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Lookup returns the node registered under id.
func (t *Tree) Lookup(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Config returns the configuration the tree was built with.
func (t *Tree) Config() Config {
	return t.cfg
}

// Len returns the number of distinct ids in the index.
func (t *Tree) Len() int {
	return len(t.index)
}

// fieldString coerces a raw field to its string form. JSON decoding yields
// float64 for numbers and YAML yields int, so numeric ids are normalized
// through formatting; a missing field is the empty string.
func fieldString(rec map[string]any, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
