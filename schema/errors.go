package schema

import (
	"errors"
	"fmt"
	"strings"
)

// DuplicateVariantError is returned by Registry.Register when the
// (group, name) key is already taken. Registration is write-once.
type DuplicateVariantError struct {
	Group, Name string
}

func (e *DuplicateVariantError) Error() string {
	return fmt.Sprintf("schema: variant %q already registered in group %q", e.Name, e.Group)
}

// UnknownVariantError is returned by Registry.Lookup (and by composition,
// before any field merge) when no variant is registered under (group, name).
type UnknownVariantError struct {
	Group, Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("schema: variant %q not registered in group %q", e.Name, e.Group)
}

// UnresolvedGroupError is returned when a polymorphic field's group never
// appears in the defaults list and the field declares no fallback variant.
type UnresolvedGroupError struct {
	Path, Group string
}

func (e *UnresolvedGroupError) Error() string {
	return fmt.Sprintf("schema: %s: no variant selected for group %q and no fallback declared", e.Path, e.Group)
}

// MissingRequiredFieldError reports a required field that no document set.
type MissingRequiredFieldError struct {
	Path string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("schema: %s: required field not set", e.Path)
}

// InvalidRangeError reports a numeric value outside its declared bounds.
type InvalidRangeError struct {
	Path     string
	Value    float64
	Min, Max float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("schema: %s: value %v outside range [%v, %v]", e.Path, e.Value, e.Min, e.Max)
}

// LengthMismatchError reports a sequence whose length violates a fixed-length
// constraint or disagrees with another sequence it must match. OtherPath is
// empty for fixed-length violations.
type LengthMismatchError struct {
	Path      string
	OtherPath string
	Expected  int
	Actual    int
}

func (e *LengthMismatchError) Error() string {
	if e.OtherPath != "" {
		return fmt.Sprintf("schema: %s: length %d does not match %s length %d", e.Path, e.Actual, e.OtherPath, e.Expected)
	}
	return fmt.Sprintf("schema: %s: expected length %d, got %d", e.Path, e.Expected, e.Actual)
}

// TypeMismatchError reports a value of the wrong kind for its field.
type TypeMismatchError struct {
	Path string
	Want string
	Got  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("schema: %s: expected %s, got %T", e.Path, e.Want, e.Got)
}

// UnknownFieldError reports an override key that no schema field declares.
type UnknownFieldError struct {
	Path string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("schema: %s: unknown field", e.Path)
}

// UnknownResolverError is returned when a document references a resolver name
// that is not in the resolver table.
type UnknownResolverError struct {
	Name string
}

func (e *UnknownResolverError) Error() string {
	return fmt.Sprintf("schema: resolver %q not registered", e.Name)
}

// ResolverArgumentError is returned when a resolver reference's argument path
// does not exist in the merged document or holds a value the resolver cannot
// consume.
type ResolverArgumentError struct {
	Path   string
	Reason string
}

func (e *ResolverArgumentError) Error() string {
	return fmt.Sprintf("schema: resolver argument %s: %s", e.Path, e.Reason)
}

// ValidationError aggregates every violation found in one composition pass so
// a single run reports all problems at once instead of one at a time.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("schema: validation failed with %d violations: %s", len(e.Violations), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error { return e.Violations }

// AsValidation unpacks err as a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
