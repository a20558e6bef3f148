package tree

// Shape selects which of the two raw input layouts is supplied.
type Shape int

const (
	// ShapeFlat is a flat list where each record names its parent by id and
	// children are synthesized from the parent references.
	ShapeFlat Shape = iota
	// ShapeNested is a list of root records with children embedded under the
	// configured children field.
	ShapeNested
)

// FieldConfig names the keys used to read raw records. Zero-value fields
// fall back to the defaults from DefaultFields.
type FieldConfig struct {
	ID       string
	ParentID string
	Label    string
	Value    string
	Children string
}

// DefaultFields returns the conventional field names.
func DefaultFields() FieldConfig {
	return FieldConfig{
		ID:       "id",
		ParentID: "parentId",
		Label:    "label",
		Value:    "value",
		Children: "children",
	}
}

// withDefaults fills any unset field names from DefaultFields.
func (f FieldConfig) withDefaults() FieldConfig {
	def := DefaultFields()
	if f.ID == "" {
		f.ID = def.ID
	}
	if f.ParentID == "" {
		f.ParentID = def.ParentID
	}
	if f.Label == "" {
		f.Label = def.Label
	}
	if f.Value == "" {
		f.Value = def.Value
	}
	if f.Children == "" {
		f.Children = def.Children
	}
	return f
}

// Config parameterizes tree construction.
type Config struct {
	Shape             Shape
	Fields            FieldConfig
	ExpandedByDefault bool
}
