package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/treepick/pkg/tree"
)

func testTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

func testRecords() []map[string]any {
	return []map[string]any{
		{"id": "a", "label": "Root A"},
		{"id": "b", "parentId": "a", "label": "Child B"},
		{"id": "d", "parentId": "b", "label": "Leaf D"},
		{"id": "e", "parentId": "b", "label": "Leaf E"},
		{"id": "c", "parentId": "a", "label": "Leaf C"},
	}
}

func newTestPicker(t *testing.T, opts tree.Options) *PickerModel {
	t.Helper()
	e := tree.New(testRecords(), tree.Config{Shape: tree.ShapeFlat, ExpandedByDefault: true}, opts)
	return NewPicker(e, PickerConfig{Theme: testTheme(), NoPersist: true})
}

func sizedPicker(t *testing.T, opts tree.Options) *PickerModel {
	t.Helper()
	m := newTestPicker(t, opts)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

// TestPickerVisibleNodes verifies the flattened list respects expansion.
func TestPickerVisibleNodes(t *testing.T) {
	m := newTestPicker(t, tree.Options{})

	if m.VisibleCount() != 5 {
		t.Errorf("expected 5 visible nodes fully expanded, got %d", m.VisibleCount())
	}

	// Collapse b: d and e disappear.
	m.engine.ToggleExpand("b")
	m.rebuildFlat()
	if m.VisibleCount() != 3 {
		t.Errorf("expected 3 visible nodes after collapsing b, got %d", m.VisibleCount())
	}

	// Document order of the remaining nodes.
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if m.flat[i].ID != id {
			t.Errorf("flat[%d] = %s, want %s", i, m.flat[i].ID, id)
		}
	}
}

// TestPickerNavigation verifies cursor movement keys.
func TestPickerNavigation(t *testing.T) {
	m := sizedPicker(t, tree.Options{})

	press := func(r rune) {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if m.selectedNode().ID != "a" {
		t.Fatalf("expected cursor on a, got %s", m.selectedNode().ID)
	}
	press('j')
	if m.selectedNode().ID != "b" {
		t.Errorf("expected b after j, got %s", m.selectedNode().ID)
	}
	press('G')
	if m.selectedNode().ID != "c" {
		t.Errorf("expected c after G, got %s", m.selectedNode().ID)
	}
	press('g')
	if m.selectedNode().ID != "a" {
		t.Errorf("expected a after g, got %s", m.selectedNode().ID)
	}
	press('k') // already at top
	if m.selectedNode().ID != "a" {
		t.Errorf("cursor moved above top: %s", m.selectedNode().ID)
	}
}

// TestPickerToggleDefersNotification verifies the space key mutates state
// immediately but delivers OnChange through the flush message, after the
// update has committed.
func TestPickerToggleDefersNotification(t *testing.T) {
	var notified [][]string
	opts := tree.Options{
		Mode: tree.MultiSelect,
		OnChange: func(leaves []*tree.Node) {
			ids := make([]string, len(leaves))
			for i, n := range leaves {
				ids[i] = n.ID
			}
			notified = append(notified, ids)
		},
	}
	m := sizedPicker(t, opts)

	m.selectByID("d")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})

	if m.engine.CheckedState("d") != tree.Checked {
		t.Fatal("toggle not applied synchronously")
	}
	if len(notified) != 0 {
		t.Fatal("OnChange fired before flush")
	}
	if cmd == nil {
		t.Fatal("expected a flush command")
	}

	m.Update(cmd())
	if len(notified) != 1 || len(notified[0]) != 1 || notified[0][0] != "d" {
		t.Errorf("expected notification [[d]], got %v", notified)
	}
}

// TestPickerExpandOrDescend verifies the right-arrow contract.
func TestPickerExpandOrDescend(t *testing.T) {
	m := sizedPicker(t, tree.Options{})

	// a is expanded: descend to first child.
	m.expandOrDescend()
	if m.selectedNode().ID != "b" {
		t.Errorf("expected descend to b, got %s", m.selectedNode().ID)
	}

	// Collapse b, then expandOrDescend should expand it in place.
	m.collapseOrAscend()         // collapses b
	if m.selectedNode().ID != "b" {
		t.Fatalf("expected cursor still on b, got %s", m.selectedNode().ID)
	}
	if m.VisibleCount() != 3 {
		t.Fatalf("expected 3 visible after collapse, got %d", m.VisibleCount())
	}
	m.expandOrDescend()
	if m.VisibleCount() != 5 {
		t.Errorf("expected 5 visible after expand, got %d", m.VisibleCount())
	}
	if m.selectedNode().ID != "b" {
		t.Errorf("cursor should stay on b after expand, got %s", m.selectedNode().ID)
	}
}

// TestPickerCollapseOrAscend verifies the left-arrow contract on leaves.
func TestPickerCollapseOrAscend(t *testing.T) {
	m := sizedPicker(t, tree.Options{})

	m.selectByID("d")
	m.collapseOrAscend() // leaf: jump to parent
	if m.selectedNode().ID != "b" {
		t.Errorf("expected jump to parent b, got %s", m.selectedNode().ID)
	}
}

// TestPickerExpandCollapseAll verifies the bulk expansion keys.
func TestPickerExpandCollapseAll(t *testing.T) {
	m := sizedPicker(t, tree.Options{})

	m.setAllExpanded(false)
	if m.VisibleCount() != 1 {
		t.Errorf("expected only the root visible, got %d", m.VisibleCount())
	}
	m.setAllExpanded(true)
	if m.VisibleCount() != 5 {
		t.Errorf("expected all 5 visible, got %d", m.VisibleCount())
	}
}

// TestPickerViewRendering verifies the rendered frame shows labels, branch
// glyphs, and check marks.
func TestPickerViewRendering(t *testing.T) {
	m := sizedPicker(t, tree.Options{})
	m.engine.ToggleCheck("d")

	view := m.View()

	for _, want := range []string{"Root A", "Leaf D", "selected"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "└") && !strings.Contains(view, "├") {
		t.Error("expected branch characters in view")
	}
	if !strings.Contains(view, "☑") {
		t.Error("expected checked mark in view")
	}
	if !strings.Contains(view, "◪") {
		t.Error("expected partial mark on ancestors in view")
	}
}

// TestPickerSingleSelectMarks verifies radio marks in single-select mode.
func TestPickerSingleSelectMarks(t *testing.T) {
	m := sizedPicker(t, tree.Options{Mode: tree.SingleSelect})
	m.engine.ToggleCheck("c")

	view := m.View()
	if !strings.Contains(view, "●") {
		t.Error("expected selected radio mark in view")
	}
	if !strings.Contains(view, "○") {
		t.Error("expected unselected radio marks in view")
	}
}

// TestPickerEmptyState verifies the empty-tree rendering.
func TestPickerEmptyState(t *testing.T) {
	e := tree.New(nil, tree.Config{Shape: tree.ShapeFlat}, tree.Options{})
	m := NewPicker(e, PickerConfig{Theme: testTheme(), NoPersist: true})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	if !strings.Contains(view, "No nodes to display") {
		t.Errorf("expected empty state message, got:\n%s", view)
	}
}

// TestPickerReloadCarriesSelection verifies a reload keeps checked state
// and cursor position by id.
func TestPickerReloadCarriesSelection(t *testing.T) {
	records := testRecords()
	e := tree.New(records, tree.Config{Shape: tree.ShapeFlat, ExpandedByDefault: true}, tree.Options{})
	m := NewPicker(e, PickerConfig{
		Theme:     testTheme(),
		NoPersist: true,
		Reload: func() ([]map[string]any, error) {
			// One extra leaf appears under b.
			return append(testRecords(), map[string]any{
				"id": "f", "parentId": "b", "label": "Leaf F",
			}), nil
		},
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.engine.ToggleCheck("d")
	m.selectByID("e")
	m.Update(reloadMsg{})

	if m.engine.CheckedState("d") != tree.Checked {
		t.Error("checked state lost across reload")
	}
	if m.engine.CheckedState("b") != tree.Partial {
		t.Errorf("expected b partial after reload, got %v", m.engine.CheckedState("b"))
	}
	if _, ok := m.engine.Tree().Lookup("f"); !ok {
		t.Error("new node missing after reload")
	}
	if m.selectedNode().ID != "e" {
		t.Errorf("cursor not preserved by id, got %s", m.selectedNode().ID)
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		label    string
		maxWidth int
		want     string
	}{
		{"Short", 20, "Short"},
		{"This is a very long label indeed", 10, "This is a…"},
		{"x", 1, "x"},
		{"xyz", 1, "…"},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := truncateLabel(tt.label, tt.maxWidth); got != tt.want {
			t.Errorf("truncateLabel(%q, %d) = %q, want %q", tt.label, tt.maxWidth, got, tt.want)
		}
	}
}
