// Package schema composes typed run configurations from registered schema
// variants and user-supplied override documents.
//
// Register schema variants by (group, name), then compose a root schema with
// zero or more YAML override documents. An override's defaults list selects
// which variant fills each polymorphic group slot (later entries win):
//
//	defaults:
//	  - task: identify_associations_ttest
//	task:
//	  target_dataset: drugs
//	  target_value: "yes"
//	  num_refits: 10
//	  num_latent: [4, 8, 16, 32]
//
// Composition runs lookup → dispatch → merge → resolve → validate and either
// returns a fully merged document or fails. Registry and dispatch errors
// (DuplicateVariantError, UnknownVariantError, UnresolvedGroupError) abort
// immediately; constraint violations are collected into a single
// ValidationError so one run reports every problem at once.
//
// A field value of the exact form name(dotted.path) is a resolver reference:
// after the structural merge, the named resolver is called with the already
// merged value at that path and its result replaces the reference. References
// are parsed, never executed as code.
package schema
