package config

import (
	"github.com/KirkDiggler/psychics/internal/errors"
)

// Result reports the outcome of Bind
type Result struct {
	// Defaulted lists schema keys absent or null in the section, in schema order
	Defaulted []string
	// Unknown lists section keys the schema does not mention, sorted
	Unknown []string

	defaults map[string]any
	err      error
}

// OK reports whether every present key bound successfully
func (r *Result) OK() bool {
	return r.err == nil
}

// Err returns an InvalidArgument error listing every failing key, or nil
func (r *Result) Err() error {
	return r.err
}

// Default returns the value a defaulted key kept
func (r *Result) Default(key string) (any, bool) {
	v, ok := r.defaults[key]
	return v, ok
}

// Bind populates each field from section. Absent or null keys keep their
// current value; a failing key keeps its current value and is recorded, and
// binding continues with the remaining fields.
func Bind(section *Section, fields ...Field) *Result {
	result := &Result{defaults: make(map[string]any)}
	vb := errors.NewValidationBuilder()
	known := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		known[f.Key] = struct{}{}
		if f.reserved {
			continue
		}

		raw, ok := section.Get(f.Key)
		if !ok {
			result.Defaulted = append(result.Defaulted, f.Key)
			result.defaults[f.Key] = f.current()
			continue
		}

		f.bind(raw, vb)
	}

	for _, key := range section.Keys() {
		if _, ok := known[key]; !ok {
			result.Unknown = append(result.Unknown, key)
		}
	}

	result.err = vb.Build()
	return result
}
