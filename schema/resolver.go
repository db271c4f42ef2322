package schema

import (
	"regexp"
	"sort"
)

// Resolver is a pure function that computes a field value from the already
// merged value at the reference's argument path.
type Resolver func(arg any) (any, error)

// Resolvers maps resolver names to functions. The table is passed into the
// composition step explicitly so tests can run with isolated tables.
type Resolvers map[string]Resolver

// Ref is a parsed resolver reference.
type Ref struct {
	Resolver string
	Path     string
}

var refPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\(([A-Za-z0-9_.]*)\)$`)

// ParseRef reports whether s is a resolver reference of the exact form
// name(dotted.path). The reference grammar is the only computed-value
// mechanism at the document boundary; it is parsed, never executed.
func ParseRef(s string) (Ref, bool) {
	m := refPattern.FindStringSubmatch(s)
	if m == nil {
		return Ref{}, false
	}
	return Ref{Resolver: m[1], Path: m[2]}, true
}

// resolve walks doc and replaces every resolver reference with the resolver's
// result. Arguments are looked up in the full merged document, so resolvers
// see values merged from every override. Walk order is deterministic (sorted
// keys). The first error aborts: resolver failures indicate a setup defect or
// an unusable document, never a partial success.
func (t Resolvers) resolve(doc Document) error {
	return t.resolveMap(doc, map[string]any(doc))
}

func (t Resolvers) resolveMap(doc Document, node map[string]any) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out, err := t.resolveValue(doc, node[k])
		if err != nil {
			return err
		}
		node[k] = out
	}
	return nil
}

func (t Resolvers) resolveValue(doc Document, v any) (any, error) {
	switch val := v.(type) {
	case string:
		ref, ok := ParseRef(val)
		if !ok {
			return v, nil
		}
		return t.eval(doc, ref)
	case map[string]any:
		if err := t.resolveMap(doc, val); err != nil {
			return nil, err
		}
		return val, nil
	case []any:
		for i, el := range val {
			out, err := t.resolveValue(doc, el)
			if err != nil {
				return nil, err
			}
			val[i] = out
		}
		return val, nil
	}
	return v, nil
}

func (t Resolvers) eval(doc Document, ref Ref) (any, error) {
	fn, ok := t[ref.Resolver]
	if !ok {
		return nil, &UnknownResolverError{Name: ref.Resolver}
	}
	arg, ok := doc.Lookup(ref.Path)
	if !ok {
		return nil, &ResolverArgumentError{Path: ref.Path, Reason: "path not found in merged document"}
	}
	// References must not chain: the argument has to be a plain merged value.
	if s, ok := arg.(string); ok {
		if _, isRef := ParseRef(s); isRef {
			return nil, &ResolverArgumentError{Path: ref.Path, Reason: "value is itself an unevaluated resolver reference"}
		}
	}
	out, err := fn(arg)
	if err != nil {
		return nil, &ResolverArgumentError{Path: ref.Path, Reason: err.Error()}
	}
	return out, nil
}
