package schema

import (
	"errors"
	"reflect"
	"testing"
)

// newTestRegistry registers a small root schema with a polymorphic store
// slot, a worker list, and a bounded threshold.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	workerSchema := &Schema{
		Name: "worker",
		Fields: []Field{
			{Name: "id", Type: String, Required: true},
			{Name: "weight", Type: Float, Default: 1.0},
		},
	}
	reg.MustRegister("store", "memory", &Schema{
		Name: "memory",
		Fields: []Field{
			{Name: "size", Type: Int, Default: 64},
		},
	})
	reg.MustRegister("store", "disk", &Schema{
		Name: "disk",
		Fields: []Field{
			{Name: "path", Type: String, Required: true},
			{Name: "fsync", Type: Bool, Default: true},
		},
	})
	reg.MustRegister(RootGroup, "app", &Schema{
		Name:     "app",
		Defaults: []Selection{{Group: "store", Variant: "memory"}},
		Fields: []Field{
			{Name: "name", Type: String, Required: true},
			{Name: "store", Group: "store"},
			{Name: "workers", Schema: workerSchema, List: true, Shorthand: "id"},
			{Name: "threshold", Type: Float, Default: 0.5, Min: Bound(0), Max: Bound(1)},
		},
	})
	return reg
}

func testComposer(t *testing.T) *Composer {
	return &Composer{Registry: newTestRegistry(t), Resolvers: Resolvers{}}
}

func TestCompose_SchemaDefaults(t *testing.T) {
	c := testComposer(t)
	composed, err := c.Compose("app", Document{"name": "demo"})
	if err != nil {
		t.Fatal(err)
	}
	if got := composed.Doc["threshold"]; got != 0.5 {
		t.Errorf("threshold: got %v", got)
	}
	store, ok := composed.Doc["store"].(map[string]any)
	if !ok || store["size"] != 64 {
		t.Errorf("store: %v", composed.Doc["store"])
	}
	if composed.Variants["store"] != "memory" {
		t.Errorf("variant: %v", composed.Variants)
	}
}

func TestCompose_OverridePrecedence(t *testing.T) {
	c := testComposer(t)
	first := MustParseDocument([]byte("name: demo\nthreshold: 0.2"))
	second := MustParseDocument([]byte("threshold: 0.9"))
	composed, err := c.Compose("app", first, second)
	if err != nil {
		t.Fatal(err)
	}
	// Later document wins per leaf; untouched fields keep earlier values.
	if composed.Doc["threshold"] != 0.9 {
		t.Errorf("threshold: got %v", composed.Doc["threshold"])
	}
	if composed.Doc["name"] != "demo" {
		t.Errorf("name: got %v", composed.Doc["name"])
	}
}

func TestCompose_Idempotent(t *testing.T) {
	c := testComposer(t)
	o := MustParseDocument([]byte(`
name: demo
workers:
  - id: a
    weight: 2.0
  - b
`))
	one, err := c.Compose("app", o)
	if err != nil {
		t.Fatal(err)
	}
	two, err := c.Compose("app", o)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(one.Doc, two.Doc) {
		t.Errorf("documents differ:\n%v\n%v", one.Doc, two.Doc)
	}
}

func TestCompose_DefaultsListLaterEntryWins(t *testing.T) {
	c := testComposer(t)
	o := MustParseDocument([]byte(`
defaults:
  - store: disk
name: demo
store:
  path: /var/data
`))
	composed, err := c.Compose("app", o)
	if err != nil {
		t.Fatal(err)
	}
	if composed.Variants["store"] != "disk" {
		t.Errorf("variant: %v", composed.Variants)
	}
	store := composed.Doc["store"].(map[string]any)
	if store["path"] != "/var/data" || store["fsync"] != true {
		t.Errorf("store: %v", store)
	}
}

func TestCompose_UnknownVariantBeforeMerge(t *testing.T) {
	c := testComposer(t)
	o := MustParseDocument([]byte("defaults:\n  - store: nonexistent\nname: demo"))
	_, err := c.Compose("app", o)
	var unknown *UnknownVariantError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownVariantError, got %v", err)
	}
	if unknown.Group != "store" || unknown.Name != "nonexistent" {
		t.Errorf("error key: %+v", unknown)
	}
}

func TestCompose_UnresolvedGroup(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(RootGroup, "app", &Schema{
		Name: "app",
		Fields: []Field{
			{Name: "queue", Group: "queue"},
		},
	})
	c := &Composer{Registry: reg, Resolvers: Resolvers{}}
	_, err := c.Compose("app", Document{})
	var unresolved *UnresolvedGroupError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedGroupError, got %v", err)
	}
	if unresolved.Group != "queue" || unresolved.Path != "queue" {
		t.Errorf("error: %+v", unresolved)
	}
}

func TestCompose_FallbackVariant(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("codec", "json", &Schema{
		Name:   "json",
		Fields: []Field{{Name: "indent", Type: Int, Default: 0}},
	})
	reg.MustRegister(RootGroup, "app", &Schema{
		Name: "app",
		Fields: []Field{
			{Name: "codec", Group: "codec", Fallback: "json"},
		},
	})
	c := &Composer{Registry: reg, Resolvers: Resolvers{}}
	composed, err := c.Compose("app")
	if err != nil {
		t.Fatal(err)
	}
	codec := composed.Doc["codec"].(map[string]any)
	if codec["indent"] != 0 {
		t.Errorf("codec: %v", codec)
	}
}

func TestCompose_ListReplacedWholesale(t *testing.T) {
	c := testComposer(t)
	first := MustParseDocument([]byte(`
name: demo
workers:
  - id: a
  - id: b
`))
	second := MustParseDocument([]byte(`
workers:
  - c
`))
	composed, err := c.Compose("app", first, second)
	if err != nil {
		t.Fatal(err)
	}
	workers := composed.Doc["workers"].([]any)
	if len(workers) != 1 {
		t.Fatalf("workers: %v", workers)
	}
	w := workers[0].(map[string]any)
	// Shorthand element expands and still receives element defaults.
	if w["id"] != "c" || w["weight"] != 1.0 {
		t.Errorf("worker: %v", w)
	}
}

func TestCompose_UnknownFieldRejected(t *testing.T) {
	c := testComposer(t)
	o := MustParseDocument([]byte("name: demo\nthresold: 0.3"))
	_, err := c.Compose("app", o)
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	var unknown *UnknownFieldError
	if !errors.As(ve, &unknown) || unknown.Path != "thresold" {
		t.Errorf("violations: %v", ve)
	}
}

func TestCompose_ExplicitNullKeepsDefault(t *testing.T) {
	c := testComposer(t)
	o := MustParseDocument([]byte("name: demo\nthreshold: null"))
	composed, err := c.Compose("app", o)
	if err != nil {
		t.Fatal(err)
	}
	if composed.Doc["threshold"] != 0.5 {
		t.Errorf("threshold: got %v", composed.Doc["threshold"])
	}
}

func TestCompose_ResultDoesNotAliasOverrides(t *testing.T) {
	c := testComposer(t)
	o := Document{"name": "demo", "workers": []any{map[string]any{"id": "a"}}}
	composed, err := c.Compose("app", o)
	if err != nil {
		t.Fatal(err)
	}
	o["workers"].([]any)[0].(map[string]any)["id"] = "mutated"
	w := composed.Doc["workers"].([]any)[0].(map[string]any)
	if w["id"] != "a" {
		t.Error("composed document should not alias caller data")
	}
}
