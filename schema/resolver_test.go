package schema

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestParseRef(t *testing.T) {
	ref, ok := ParseRef("weights(data.categorical_inputs)")
	if !ok {
		t.Fatal("expected a reference")
	}
	if ref.Resolver != "weights" || ref.Path != "data.categorical_inputs" {
		t.Errorf("ref: %+v", ref)
	}
	for _, s := range []string{"models.vae.VAE", "weights", "weights(a)(b)", "wei ghts(a)", ""} {
		if _, ok := ParseRef(s); ok {
			t.Errorf("%q should not parse as a reference", s)
		}
	}
}

// resolverRegistry declares a worker list and a derived field whose default
// is a resolver reference over it.
func resolverRegistry(t *testing.T, derivedDefault string) *Registry {
	t.Helper()
	reg := NewRegistry()
	workerSchema := &Schema{
		Name: "worker",
		Fields: []Field{
			{Name: "id", Type: String, Required: true},
			{Name: "weight", Type: Float, Default: 1.0},
		},
	}
	reg.MustRegister(RootGroup, "app", &Schema{
		Name: "app",
		Fields: []Field{
			{Name: "workers", Schema: workerSchema, List: true, Required: true, Shorthand: "id"},
			{Name: "weights", Type: FloatList, Default: derivedDefault, SameLenAs: "workers"},
		},
	})
	return reg
}

func weightsResolver(arg any) (any, error) {
	list, ok := arg.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence, got %T", arg)
	}
	out := make([]float64, 0, len(list))
	for _, el := range list {
		m := el.(map[string]any)
		out = append(out, m["weight"].(float64))
	}
	return out, nil
}

func TestResolve_DerivedFieldPreservesOrder(t *testing.T) {
	c := &Composer{
		Registry:  resolverRegistry(t, "weights(workers)"),
		Resolvers: Resolvers{"weights": weightsResolver},
	}
	o := MustParseDocument([]byte(`
workers:
  - id: age
    weight: 2.0
  - id: sex
`))
	composed, err := c.Compose("app", o)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2.0, 1.0}
	if !reflect.DeepEqual(composed.Doc["weights"], want) {
		t.Errorf("weights: got %v, want %v", composed.Doc["weights"], want)
	}
}

func TestResolve_UnknownResolver(t *testing.T) {
	c := &Composer{
		Registry:  resolverRegistry(t, "nope(workers)"),
		Resolvers: Resolvers{"weights": weightsResolver},
	}
	_, err := c.Compose("app", Document{"workers": []any{map[string]any{"id": "a"}}})
	var unknown *UnknownResolverError
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Fatalf("expected UnknownResolverError, got %v", err)
	}
}

func TestResolve_MissingArgumentPath(t *testing.T) {
	c := &Composer{
		Registry:  resolverRegistry(t, "weights(no.such.path)"),
		Resolvers: Resolvers{"weights": weightsResolver},
	}
	_, err := c.Compose("app", Document{"workers": []any{map[string]any{"id": "a"}}})
	var argErr *ResolverArgumentError
	if !errors.As(err, &argErr) || argErr.Path != "no.such.path" {
		t.Fatalf("expected ResolverArgumentError, got %v", err)
	}
}

func TestResolve_WrongArgumentShape(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(RootGroup, "app", &Schema{
		Name: "app",
		Fields: []Field{
			{Name: "count", Type: Int, Default: 3},
			{Name: "weights", Type: FloatList, Default: "weights(count)"},
		},
	})
	c := &Composer{Registry: reg, Resolvers: Resolvers{"weights": weightsResolver}}
	_, err := c.Compose("app")
	var argErr *ResolverArgumentError
	if !errors.As(err, &argErr) || argErr.Path != "count" {
		t.Fatalf("expected ResolverArgumentError, got %v", err)
	}
}

func TestResolve_ChainedReferenceRejected(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(RootGroup, "app", &Schema{
		Name: "app",
		Fields: []Field{
			{Name: "a", Type: String, Default: "echo(b)"},
			{Name: "b", Type: String, Default: "echo(a)"},
		},
	})
	echo := func(arg any) (any, error) { return arg, nil }
	c := &Composer{Registry: reg, Resolvers: Resolvers{"echo": echo}}
	_, err := c.Compose("app")
	var argErr *ResolverArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected ResolverArgumentError, got %v", err)
	}
}
