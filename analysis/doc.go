// Package analysis defines the run configuration for the multi-stage
// data-analysis pipeline: one data definition, one task (data encoding or one
// of two "identify associations" approaches), a legacy model section, and the
// hyperparameter sweep sections.
//
// Schemas are registered once per composition into an isolated registry, so
// callers (and tests) never share mutable state. Load composes the override
// documents and returns the immutable typed configuration the downstream
// training and analysis components consume:
//
//	cfg, err := analysis.Load(base, userOverrides)
//
// Derived data fields (categorical_names, categorical_weights, and their
// continuous counterparts) are declared as resolver references over the input
// lists, so they stay consistent with categorical_inputs/continuous_inputs
// without the author duplicating data.
package analysis
