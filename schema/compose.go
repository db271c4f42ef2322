package schema

import "fmt"

// Composer runs the composition pipeline: lookup → dispatch → merge →
// resolve → validate. Registry and Resolvers are passed in explicitly
// (constructed once at startup) so tests can compose against isolated state.
type Composer struct {
	Registry  *Registry
	Resolvers Resolvers
}

// Composed is the outcome of a successful composition: the fully merged,
// resolved, and validated document, plus the variant chosen per group so
// typed decoding and external factories can branch on it. Treat it as an
// immutable value; any run-time adaptation must compose a new one.
type Composed struct {
	Doc      Document
	Variants map[string]string
}

// Compose merges the named root schema's defaults with the override
// documents, applied in order (last write wins per leaf field), evaluates
// resolver references, and validates the result. Registry, dispatch, and
// resolver errors abort immediately; constraint violations are aggregated
// into a ValidationError. No partially valid document is ever returned.
func (c *Composer) Compose(root string, overrides ...Document) (*Composed, error) {
	rootSchema, err := c.Registry.Lookup(RootGroup, root)
	if err != nil {
		return nil, err
	}
	sel, err := dispatch(rootSchema, overrides)
	if err != nil {
		return nil, err
	}
	// Every selected variant must exist before any field merge is attempted.
	for group, variant := range sel {
		if _, err := c.Registry.Lookup(group, variant); err != nil {
			return nil, err
		}
	}
	m := &merger{reg: c.Registry, sel: sel}
	doc, err := m.merge(rootSchema, "", stripDefaults(overrides))
	if err != nil {
		return nil, err
	}
	if err := c.Resolvers.resolve(doc); err != nil {
		return nil, err
	}
	v := &validator{reg: c.Registry, sel: sel}
	v.walk(rootSchema, doc, "")
	violations := append(m.violations, v.violations...)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return &Composed{Doc: doc, Variants: sel}, nil
}

// dispatch builds the group → variant selection from the root schema's own
// defaults list followed by each override document's defaults entries, in
// caller order. Later entries override earlier ones for the same group.
func dispatch(root *Schema, overrides []Document) (map[string]string, error) {
	sel := make(map[string]string)
	for _, s := range root.Defaults {
		sel[s.Group] = s.Variant
	}
	for _, o := range overrides {
		raw, ok := o["defaults"]
		if !ok || raw == nil {
			continue
		}
		entries, err := parseDefaults(raw)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			sel[e.Group] = e.Variant
		}
	}
	return sel, nil
}

// parseDefaults reads a defaults list: a sequence of one-pair
// {group: variant} mappings.
func parseDefaults(raw any) ([]Selection, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, &TypeMismatchError{Path: "defaults", Want: "sequence of {group: variant} entries", Got: raw}
	}
	out := make([]Selection, 0, len(list))
	for i, el := range list {
		m, ok := asMap(el)
		if !ok || len(m) != 1 {
			return nil, &TypeMismatchError{Path: fmt.Sprintf("defaults[%d]", i), Want: "one-pair {group: variant} mapping", Got: el}
		}
		for group, v := range m {
			variant, ok := v.(string)
			if !ok {
				return nil, &TypeMismatchError{Path: fmt.Sprintf("defaults[%d].%s", i, group), Want: "variant name string", Got: v}
			}
			out = append(out, Selection{Group: group, Variant: variant})
		}
	}
	return out, nil
}

// stripDefaults removes the defaults key, which dispatch has already
// consumed, so the root merge does not see it as an unknown field.
func stripDefaults(overrides []Document) []Document {
	out := make([]Document, len(overrides))
	for i, o := range overrides {
		if _, ok := o["defaults"]; !ok {
			out[i] = o
			continue
		}
		trimmed := make(Document, len(o))
		for k, v := range o {
			if k != "defaults" {
				trimmed[k] = v
			}
		}
		out[i] = trimmed
	}
	return out
}

// merger deep-merges schema defaults with override documents. Structural
// misuse (wrong-shaped nodes, unknown keys) is collected as violations;
// dispatch failures abort.
type merger struct {
	reg        *Registry
	sel        map[string]string
	violations []error
}

func (m *merger) merge(s *Schema, path string, overrides []Document) (Document, error) {
	for _, o := range overrides {
		for k := range o {
			if _, ok := s.field(k); !ok {
				m.violations = append(m.violations, &UnknownFieldError{Path: joinPath(path, k)})
			}
		}
	}
	out := Document{}
	for i := range s.Fields {
		f := &s.Fields[i]
		fpath := joinPath(path, f.Name)
		var err error
		switch {
		case f.composite() && f.List:
			err = m.mergeList(f, fpath, overrides, out)
		case f.composite():
			err = m.mergeComposite(f, fpath, overrides, out)
		default:
			m.mergeScalar(f, overrides, out)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mergeScalar applies last-write-wins per leaf: the last override with an
// explicit value replaces the default; absence keeps the default, or leaves
// a required field unset for validation to flag.
func (m *merger) mergeScalar(f *Field, overrides []Document, out Document) {
	val, have := lastValue(f.Name, overrides)
	if !have {
		if f.Default != nil {
			out[f.Name] = copyValue(f.Default)
		}
		return
	}
	out[f.Name] = copyValue(val)
}

func (m *merger) mergeComposite(f *Field, fpath string, overrides []Document, out Document) error {
	var subs []Document
	for _, o := range overrides {
		v, ok := o[f.Name]
		if !ok || v == nil {
			continue
		}
		sub, ok := asMap(v)
		if !ok {
			m.violations = append(m.violations, &TypeMismatchError{Path: fpath, Want: "mapping", Got: v})
			continue
		}
		subs = append(subs, Document(sub))
	}
	if f.Optional && len(subs) == 0 {
		return nil
	}
	nested, err := m.schemaFor(f, fpath)
	if err != nil {
		return err
	}
	merged, err := m.merge(nested, fpath, subs)
	if err != nil {
		return err
	}
	out[f.Name] = map[string]any(merged)
	return nil
}

// mergeList implements whole-list replacement: the last override providing
// the key replaces the base list; there is no element-wise merge across
// documents. Each replacing element is still merged against the element
// schema so per-element defaults apply.
func (m *merger) mergeList(f *Field, fpath string, overrides []Document, out Document) error {
	raw, have := lastValue(f.Name, overrides)
	if !have {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		m.violations = append(m.violations, &TypeMismatchError{Path: fpath, Want: "sequence", Got: raw})
		return nil
	}
	nested, err := m.schemaFor(f, fpath)
	if err != nil {
		return err
	}
	merged := make([]any, 0, len(list))
	for i, el := range list {
		epath := fmt.Sprintf("%s[%d]", fpath, i)
		sub, ok := m.elementDoc(f, epath, el)
		if !ok {
			continue
		}
		md, err := m.merge(nested, epath, []Document{sub})
		if err != nil {
			return err
		}
		merged = append(merged, map[string]any(md))
	}
	out[f.Name] = merged
	return nil
}

// elementDoc normalizes one list element to a sub-document, expanding the
// bare-scalar shorthand when the field declares one.
func (m *merger) elementDoc(f *Field, epath string, el any) (Document, bool) {
	if sub, ok := asMap(el); ok {
		return Document(sub), true
	}
	if f.Shorthand != "" {
		if _, isSeq := el.([]any); el != nil && !isSeq {
			return Document{f.Shorthand: el}, true
		}
	}
	m.violations = append(m.violations, &TypeMismatchError{Path: epath, Want: "mapping", Got: el})
	return nil, false
}

func (m *merger) schemaFor(f *Field, fpath string) (*Schema, error) {
	return resolveComposite(m.reg, m.sel, f, fpath)
}

// lastValue returns the value of the last override that sets key. Explicit
// nulls count as absent.
func lastValue(key string, overrides []Document) (any, bool) {
	var val any
	have := false
	for _, o := range overrides {
		if v, ok := o[key]; ok && v != nil {
			val = v
			have = true
		}
	}
	return val, have
}
