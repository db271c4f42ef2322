package schema

import (
	"fmt"
	"math"
)

// validator walks the merged-and-resolved document against the schema tree,
// mirroring the merge traversal (same variant selections), and collects every
// violation instead of stopping at the first.
type validator struct {
	reg        *Registry
	sel        map[string]string
	violations []error
}

func (v *validator) walk(s *Schema, doc Document, path string) {
	for i := range s.Fields {
		f := &s.Fields[i]
		fpath := joinPath(path, f.Name)
		val, present := doc[f.Name]
		if !present {
			if f.Required {
				v.violations = append(v.violations, &MissingRequiredFieldError{Path: fpath})
			}
			continue
		}
		switch {
		case f.composite() && f.List:
			v.walkList(f, fpath, val, doc, path)
		case f.composite():
			v.walkComposite(f, fpath, val)
		default:
			v.scalar(f, fpath, val, doc, path)
		}
	}
}

func (v *validator) walkComposite(f *Field, fpath string, val any) {
	m, ok := asMap(val)
	if !ok {
		v.violations = append(v.violations, &TypeMismatchError{Path: fpath, Want: "mapping", Got: val})
		return
	}
	nested, err := resolveComposite(v.reg, v.sel, f, fpath)
	if err != nil {
		// The merge phase resolves the same schema and aborts first, so this
		// is unreachable in Compose; kept for standalone walks.
		v.violations = append(v.violations, err)
		return
	}
	v.walk(nested, Document(m), fpath)
}

func (v *validator) walkList(f *Field, fpath string, val any, doc Document, parentPath string) {
	list, ok := val.([]any)
	if !ok {
		v.violations = append(v.violations, &TypeMismatchError{Path: fpath, Want: "sequence", Got: val})
		return
	}
	if f.Len > 0 && len(list) != f.Len {
		v.violations = append(v.violations, &LengthMismatchError{Path: fpath, Expected: f.Len, Actual: len(list)})
	}
	v.sameLen(f, fpath, val, doc, parentPath)
	nested, err := resolveComposite(v.reg, v.sel, f, fpath)
	if err != nil {
		v.violations = append(v.violations, err)
		return
	}
	for i, el := range list {
		epath := fmt.Sprintf("%s[%d]", fpath, i)
		m, ok := asMap(el)
		if !ok {
			v.violations = append(v.violations, &TypeMismatchError{Path: epath, Want: "mapping", Got: el})
			continue
		}
		v.walk(nested, Document(m), epath)
	}
}

func (v *validator) scalar(f *Field, fpath string, val any, doc Document, parentPath string) {
	if !conforms(f.Type, val) {
		v.violations = append(v.violations, &TypeMismatchError{Path: fpath, Want: f.Type.String(), Got: val})
		return
	}
	if f.Min != nil || f.Max != nil {
		if n, ok := toFloat(val); ok {
			lo, hi := boundsOf(f)
			if n < lo || n > hi {
				v.violations = append(v.violations, &InvalidRangeError{Path: fpath, Value: n, Min: lo, Max: hi})
			}
		}
	}
	if f.Len > 0 {
		if l, ok := lengthOf(val); ok && l != f.Len {
			v.violations = append(v.violations, &LengthMismatchError{Path: fpath, Expected: f.Len, Actual: l})
		}
	}
	v.sameLen(f, fpath, val, doc, parentPath)
}

// sameLen checks a cross-field length-agreement constraint against a sibling.
func (v *validator) sameLen(f *Field, fpath string, val any, doc Document, parentPath string) {
	if f.SameLenAs == "" {
		return
	}
	other, ok := doc[f.SameLenAs]
	if !ok {
		return
	}
	l, lok := lengthOf(val)
	ol, ook := lengthOf(other)
	if lok && ook && l != ol {
		v.violations = append(v.violations, &LengthMismatchError{
			Path:      fpath,
			OtherPath: joinPath(parentPath, f.SameLenAs),
			Expected:  ol,
			Actual:    l,
		})
	}
}

// resolveComposite resolves the nested schema for a composite field: the
// fixed schema, or the variant selected for the field's group (falling back
// to the declared fallback variant).
func resolveComposite(reg *Registry, sel map[string]string, f *Field, fpath string) (*Schema, error) {
	if f.Schema != nil {
		return f.Schema, nil
	}
	variant, ok := sel[f.Group]
	if !ok {
		variant = f.Fallback
	}
	if variant == "" {
		return nil, &UnresolvedGroupError{Path: fpath, Group: f.Group}
	}
	return reg.Lookup(f.Group, variant)
}

func boundsOf(f *Field) (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if f.Min != nil {
		lo = *f.Min
	}
	if f.Max != nil {
		hi = *f.Max
	}
	return lo, hi
}

// conforms reports whether val is acceptable for a leaf type. Integers are
// accepted where floats are expected; resolver results may arrive as typed
// slices ([]float64, []string, []int) as well as raw []any.
func conforms(t Type, val any) bool {
	switch t {
	case String:
		_, ok := val.(string)
		return ok
	case Bool:
		_, ok := val.(bool)
		return ok
	case Int:
		_, ok := toInt(val)
		return ok
	case Float:
		_, ok := toFloat(val)
		return ok
	case StringList:
		return listConforms(val, func(e any) bool { _, ok := e.(string); return ok })
	case IntList:
		return listConforms(val, func(e any) bool { _, ok := toInt(e); return ok })
	case FloatList:
		return listConforms(val, func(e any) bool { _, ok := toFloat(e); return ok })
	}
	return false
}

func listConforms(val any, elem func(any) bool) bool {
	switch list := val.(type) {
	case []any:
		for _, e := range list {
			if !elem(e) {
				return false
			}
		}
		return true
	case []string:
		return elem("")
	case []int:
		return elem(0)
	case []float64:
		return elem(0.0)
	}
	return false
}

func lengthOf(val any) (int, bool) {
	switch list := val.(type) {
	case []any:
		return len(list), true
	case []string:
		return len(list), true
	case []int:
		return len(list), true
	case []float64:
		return len(list), true
	}
	return 0, false
}

func toInt(val any) (int, bool) {
	switch n := val.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

func toFloat(val any) (float64, bool) {
	switch n := val.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
