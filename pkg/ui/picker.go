// Package ui implements the terminal widget around the tree selection
// engine: cursor navigation over the visible nodes, check and expand
// toggles, live reload of the backing data file, and expand-state
// persistence.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dicklesworthstone/treepick/pkg/tree"
	"github.com/Dicklesworthstone/treepick/pkg/watcher"
)

// PickerConfig configures a PickerModel.
type PickerConfig struct {
	Theme Theme

	// StateDir is where expand-state.json lives; empty uses .treepick.
	StateDir string

	// NoPersist disables expand-state persistence entirely.
	NoPersist bool

	// Reload re-reads the backing records; nil disables live reload.
	Reload func() ([]map[string]any, error)

	// Watcher signals that the backing file changed. The picker owns it
	// once passed in and stops it on quit.
	Watcher *watcher.Watcher
}

// PickerModel is the bubbletea model wrapping a tree.Engine.
type PickerModel struct {
	engine *tree.Engine
	theme  Theme

	flat   []*tree.Node // currently visible nodes, document order
	cursor int

	viewport viewport.Model
	width    int
	height   int
	ready    bool

	stateDir string
	persist  bool
	reload   func() ([]map[string]any, error)
	watch    *watcher.Watcher

	status   string
	quitting bool
}

// flushMsg asks Update to deliver the pending selection notification.
// Routing it through the message loop means the engine flushes on the UI
// goroutine, strictly after the mutating update has committed.
type flushMsg struct{}

// reloadMsg signals that the backing data file changed on disk.
type reloadMsg struct{}

// NewPicker creates the widget. The engine must already hold its initial
// selection; loading persisted expand state happens here.
func NewPicker(e *tree.Engine, cfg PickerConfig) *PickerModel {
	m := &PickerModel{
		engine:   e,
		theme:    cfg.Theme,
		stateDir: cfg.StateDir,
		persist:  !cfg.NoPersist,
		reload:   cfg.Reload,
		watch:    cfg.Watcher,
	}
	if m.theme.Renderer == nil {
		m.theme = DefaultTheme(nil)
	}
	m.loadState()
	m.rebuildFlat()
	return m
}

// Init implements tea.Model.
func (m *PickerModel) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	if err := m.watch.Start(); err != nil {
		m.status = fmt.Sprintf("watch disabled: %v", err)
		m.watch = nil
		return nil
	}
	return m.waitForChange()
}

// waitForChange blocks on the watcher and converts its signal to a msg.
func (m *PickerModel) waitForChange() tea.Cmd {
	ch := m.watch.Changed()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// Update implements tea.Model.
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := m.height - 2 // header + status line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		return m, nil

	case flushMsg:
		if m.engine.Flush() {
			m.status = fmt.Sprintf("%d selected", len(m.engine.CheckedLeaves()))
		}
		return m, nil

	case reloadMsg:
		return m, m.handleReload()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		if m.watch != nil {
			m.watch.Stop()
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}

	case "g", "home":
		m.cursor = 0

	case "G", "end":
		if len(m.flat) > 0 {
			m.cursor = len(m.flat) - 1
		}

	case " ", "x":
		if n := m.selectedNode(); n != nil {
			m.engine.ToggleCheck(n.ID)
			// Deliver the notification after this update commits.
			return m, func() tea.Msg { return flushMsg{} }
		}

	case "enter", "l", "right":
		m.expandOrDescend()

	case "h", "left":
		m.collapseOrAscend()

	case "E":
		m.setAllExpanded(true)

	case "C":
		m.setAllExpanded(false)

	case "y":
		m.copySelection()
	}
	return m, nil
}

// handleReload re-reads the records, rebuilds the tree with state carried
// over by id, and re-arms the watcher.
func (m *PickerModel) handleReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	keep := ""
	if n := m.selectedNode(); n != nil {
		keep = n.ID
	}

	records, err := m.reload()
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
	} else {
		m.engine.Rebuild(records)
		m.loadState()
		m.rebuildFlat()
		m.selectByID(keep)
		m.status = fmt.Sprintf("reloaded %d nodes", m.engine.Tree().Len())
	}

	if m.watch != nil {
		return m.waitForChange()
	}
	return nil
}

// selectedNode returns the node under the cursor, or nil.
func (m *PickerModel) selectedNode() *tree.Node {
	if m.cursor >= 0 && m.cursor < len(m.flat) {
		return m.flat[m.cursor]
	}
	return nil
}

// selectByID moves the cursor to the node with the given id if visible.
func (m *PickerModel) selectByID(id string) bool {
	for i, n := range m.flat {
		if n.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

// expandOrDescend expands a collapsed node, or moves to the first child of
// an already expanded one. Leaves are a no-op.
func (m *PickerModel) expandOrDescend() {
	n := m.selectedNode()
	if n == nil || n.IsLeaf() {
		return
	}
	if !n.Expanded {
		m.engine.ToggleExpand(n.ID)
		m.rebuildFlat()
		if m.persist {
			m.saveState()
		}
		return
	}
	if m.cursor < len(m.flat)-1 {
		m.cursor++
	}
}

// collapseOrAscend collapses an expanded node, or jumps to the parent of a
// leaf or collapsed node.
func (m *PickerModel) collapseOrAscend() {
	n := m.selectedNode()
	if n == nil {
		return
	}
	if !n.IsLeaf() && n.Expanded {
		m.engine.ToggleExpand(n.ID)
		m.rebuildFlat()
		if m.persist {
			m.saveState()
		}
		return
	}
	if n.Parent != nil {
		m.selectByID(n.Parent.ID)
	}
}

// setAllExpanded expands or collapses every internal node.
func (m *PickerModel) setAllExpanded(expanded bool) {
	m.engine.Tree().Walk(func(n *tree.Node) {
		if !n.IsLeaf() {
			n.Expanded = expanded
		}
	})
	m.rebuildFlat()
	if m.persist {
		m.saveState()
	}
}

// copySelection writes the checked leaf ids to the system clipboard.
func (m *PickerModel) copySelection() {
	leaves := m.engine.CheckedLeaves()
	if len(leaves) == 0 {
		m.status = "nothing selected"
		return
	}
	ids := make([]string, len(leaves))
	for i, n := range leaves {
		ids[i] = n.ID
	}
	if err := clipboard.WriteAll(strings.Join(ids, "\n")); err != nil {
		m.status = fmt.Sprintf("clipboard unavailable: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %d ids", len(ids))
}

// rebuildFlat recomputes the visible node list: every root, descending
// only into expanded nodes, in document order.
func (m *PickerModel) rebuildFlat() {
	m.flat = m.flat[:0]
	roots := m.engine.Tree().Roots()
	stack := make([]*tree.Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		m.flat = append(m.flat, n)
		if !n.Expanded {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// VisibleCount returns the number of currently visible nodes.
func (m *PickerModel) VisibleCount() int {
	return len(m.flat)
}

// Engine exposes the underlying engine, e.g. to read the final selection
// after the program exits.
func (m *PickerModel) Engine() *tree.Engine {
	return m.engine
}
