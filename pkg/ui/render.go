package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/treepick/pkg/tree"
)

// View implements tea.Model.
func (m *PickerModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if len(m.flat) == 0 {
		return m.renderEmptyState()
	}

	lines := make([]string, 0, len(m.flat))
	for i, n := range m.flat {
		line := m.renderRow(n)
		if i == m.cursor {
			line = m.theme.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.scrollToCursor()

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	return sb.String()
}

// scrollToCursor keeps the cursor row inside the viewport window.
func (m *PickerModel) scrollToCursor() {
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *PickerModel) renderHeader() string {
	checked := len(m.engine.CheckedLeaves())
	title := fmt.Sprintf("treepick — %d nodes, %d selected", m.engine.Tree().Len(), checked)
	return m.theme.Header.Render(title)
}

func (m *PickerModel) renderStatus() string {
	help := "space toggle · enter expand · y copy · q quit"
	if m.status != "" {
		help = m.status
	}
	return m.theme.Status.Render(help)
}

func (m *PickerModel) renderEmptyState() string {
	var sb strings.Builder
	sb.WriteString(m.theme.Header.Render("treepick"))
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.Status.Render("No nodes to display."))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Status.Render("Press q to quit."))
	return sb.String()
}

// renderRow renders one node line: branch prefix, expand indicator, check
// mark, then the label truncated to the available display width.
func (m *PickerModel) renderRow(n *tree.Node) string {
	r := m.theme.Renderer
	var sb strings.Builder

	prefix := m.branchPrefix(n)
	sb.WriteString(r.NewStyle().Foreground(m.theme.Muted).Render(prefix))

	indicator := expandIndicator(n)
	sb.WriteString(r.NewStyle().Foreground(m.theme.Secondary).Render(indicator))
	sb.WriteString(" ")

	mark, color := m.checkMark(n)
	sb.WriteString(r.NewStyle().Foreground(color).Render(mark))
	sb.WriteString(" ")

	label := n.Label
	if label == "" {
		label = n.ID
	}
	maxLen := m.width - lipgloss.Width(prefix) - 8
	if maxLen < 10 {
		maxLen = 10
	}
	sb.WriteString(truncateLabel(label, maxLen))

	return sb.String()
}

// checkMark returns the glyph and color for the node's tri-state value.
// Single-select mode uses radio marks on leaves and no mark on internals.
func (m *PickerModel) checkMark(n *tree.Node) (string, lipgloss.AdaptiveColor) {
	if m.engine.Mode() == tree.SingleSelect {
		if !n.IsLeaf() {
			return " ", m.theme.Muted
		}
		if m.engine.CheckedState(n.ID) == tree.Checked {
			return "●", m.theme.Primary
		}
		return "○", m.theme.Muted
	}

	switch n.State {
	case tree.Checked:
		return "☑", m.theme.Primary
	case tree.Partial:
		return "◪", m.theme.Highlight
	default:
		return "☐", m.theme.Muted
	}
}

// expandIndicator returns the expansion glyph: leaves get a dot.
func expandIndicator(n *tree.Node) string {
	if n.IsLeaf() {
		return "•"
	}
	if n.Expanded {
		return "▾"
	}
	return "▸"
}

// branchPrefix builds the indentation and branch characters for a node by
// walking its ancestor chain.
func (m *PickerModel) branchPrefix(n *tree.Node) string {
	if n.Parent == nil {
		return ""
	}

	var parts []string
	for p := n.Parent; p != nil && p.Parent != nil; p = p.Parent {
		if m.hasSiblingsBelow(p) {
			parts = append([]string{"│   "}, parts...)
		} else {
			parts = append([]string{"    "}, parts...)
		}
	}

	if m.isLastChild(n) {
		parts = append(parts, "└── ")
	} else {
		parts = append(parts, "├── ")
	}
	return strings.Join(parts, "")
}

// hasSiblingsBelow reports whether a node has siblings after it.
func (m *PickerModel) hasSiblingsBelow(n *tree.Node) bool {
	siblings := m.engine.Tree().Roots()
	if n.Parent != nil {
		siblings = n.Parent.Children
	}
	for i, s := range siblings {
		if s == n {
			return i < len(siblings)-1
		}
	}
	return false
}

// isLastChild reports whether a node is the last among its siblings.
func (m *PickerModel) isLastChild(n *tree.Node) bool {
	siblings := m.engine.Tree().Roots()
	if n.Parent != nil {
		siblings = n.Parent.Children
	}
	return len(siblings) > 0 && siblings[len(siblings)-1] == n
}

// truncateLabel shortens a label to maxWidth display cells, appending an
// ellipsis. Uses display width, not rune count, so wide characters are
// measured correctly.
func truncateLabel(label string, maxWidth int) string {
	if runewidth.StringWidth(label) <= maxWidth {
		return label
	}
	if maxWidth <= 1 {
		return "…"
	}
	return runewidth.Truncate(label, maxWidth, "…")
}
