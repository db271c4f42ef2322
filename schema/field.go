package schema

// Type identifies the value kind of a leaf field.
type Type int

const (
	String Type = iota
	Int
	Float
	Bool
	StringList
	IntList
	FloatList
)

// String returns the YAML-facing name of the type, used in error messages.
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "boolean"
	case StringList:
		return "sequence of strings"
	case IntList:
		return "sequence of integers"
	case FloatList:
		return "sequence of floats"
	}
	return "unknown"
}

// Field describes one schema field. A field is exactly one of:
//
//   - scalar: typed leaf with an optional Default
//   - required: typed leaf with no default; an override must supply a value
//     or validation fails
//   - composite: nested schema, either fixed (Schema) or polymorphic (Group,
//     filled by the defaults list, with an optional Fallback variant)
//   - list-of-composite: List is true and Schema/Group names the element
//     schema; an override's list replaces the base list wholesale
//
// A scalar Default may be a resolver reference string of the form
// name(dotted.path); it is evaluated after the structural merge.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Default  any

	// Optional marks a composite that stays absent unless an override
	// supplies a sub-document. Required fields inside an absent optional
	// composite are not enforced.
	Optional bool

	Schema   *Schema // fixed nested schema
	Group    string  // polymorphic: variant chosen by the defaults list
	Fallback string  // variant used when the group is never selected
	List     bool    // list-of-composite

	// Shorthand names the element field a bare scalar list entry stands
	// for, so "- age" reads as "- {name: age}" when Shorthand is "name".
	Shorthand string

	// Constraints checked by validation.
	Min, Max  *float64 // numeric bounds, inclusive
	Len       int      // fixed sequence length (0 = unconstrained)
	SameLenAs string   // sibling field whose length must match
}

// composite reports whether the field nests another schema.
func (f *Field) composite() bool { return f.Schema != nil || f.Group != "" }

// Bound returns a pointer to v for use as a Min or Max constraint.
func Bound(v float64) *float64 { return &v }

// Selection picks the variant that fills a group slot.
type Selection struct {
	Group, Variant string
}

// Schema is a named, ordered set of fields. Defaults is the schema's own
// defaults list and is only meaningful on root schemas; override documents
// append to it.
type Schema struct {
	Name     string
	Defaults []Selection
	Fields   []Field
}

func (s *Schema) field(name string) (*Field, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}
