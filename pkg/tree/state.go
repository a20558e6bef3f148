package tree

// CheckState is the tri-state checked value of a node.
//
// Internal nodes never hold a CheckState independently in multi-select
// mode: their value is always derived from their direct children via the
// aggregation rule in aggregate.go.
type CheckState int

const (
	// Unchecked means neither the node nor any descendant leaf is selected.
	Unchecked CheckState = iota
	// Partial means some but not all descendant leaves are selected.
	Partial
	// Checked means the node and every descendant leaf is selected.
	Checked
)

// String returns a human-readable name for the state.
func (s CheckState) String() string {
	switch s {
	case Unchecked:
		return "unchecked"
	case Partial:
		return "partial"
	case Checked:
		return "checked"
	default:
		return "unknown"
	}
}

// IsValid returns true if the state is one of the three recognized values.
func (s CheckState) IsValid() bool {
	return s == Unchecked || s == Partial || s == Checked
}
