package ui

import (
	"log"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/Dicklesworthstone/treepick/pkg/tree"
)

// PickerState is the persisted expand/collapse state, saved so the tree
// reopens the way the user left it.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "expanded": {
//	    "node-1": true,   // explicitly expanded
//	    "node-2": false   // explicitly collapsed
//	  }
//	}
//
// Only explicit deviations from the configured default are stored; nodes
// absent from the map use the default. A corrupted or missing file means
// defaults. Checked state is deliberately not persisted.
type PickerState struct {
	Version  int             `json:"version"`
	Expanded map[string]bool `json:"expanded"`
}

// PickerStateVersion is the current schema version for state persistence.
const PickerStateVersion = 1

const stateFileName = "expand-state.json"

// StatePath returns the state file location. An empty dir defaults to
// .treepick in the current directory.
func StatePath(dir string) string {
	if dir == "" {
		dir = ".treepick"
	}
	return filepath.Join(dir, stateFileName)
}

// saveState persists the current expand/collapse state. Errors are logged
// but never interrupt the user.
func (m *PickerModel) saveState() {
	if !m.persist {
		return
	}

	state := &PickerState{
		Version:  PickerStateVersion,
		Expanded: make(map[string]bool),
	}
	defaultExpanded := m.engine.Tree().Config().ExpandedByDefault
	m.engine.Tree().Walk(func(n *tree.Node) {
		if n.IsLeaf() {
			return
		}
		if n.Expanded != defaultExpanded {
			state.Expanded[n.ID] = n.Expanded
		}
	})

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal picker state: %v", err)
		return
	}

	path := StatePath(m.stateDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("warning: failed to create state directory: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("warning: failed to write picker state to %s: %v", path, err)
	}
}

// loadState restores expand/collapse state from disk. Missing file means
// first run; corrupted file means defaults. Stale ids are ignored.
func (m *PickerModel) loadState() {
	if !m.persist {
		return
	}

	data, err := os.ReadFile(StatePath(m.stateDir))
	if err != nil {
		return
	}

	var state PickerState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("warning: invalid picker state file, using defaults: %v", err)
		return
	}
	m.applyState(&state)
}

// applyState sets expansion flags from a loaded state. Ids no longer in
// the tree are silently skipped.
func (m *PickerModel) applyState(state *PickerState) {
	if state == nil || len(state.Expanded) == 0 {
		return
	}
	for id, expanded := range state.Expanded {
		if n, ok := m.engine.Tree().Lookup(id); ok && !n.IsLeaf() {
			n.Expanded = expanded
		}
	}
}
