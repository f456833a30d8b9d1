// Package errors provides the structured error type used across psychics.
//
// Errors carry a Code, a human readable message, an optional cause and
// free-form metadata:
//
//	err := errors.NotFoundf("psychic concept %s not found", name).
//	    WithMeta("source", "redis")
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to fetch concept config")
//	}
//
// Configuration problems are collected field by field with a
// ValidationBuilder and surface as a single InvalidArgument error:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateFloatRange("mana", mana, 0, 32767, vb)
//	errors.ValidateRequired("dir", cfg.Dir, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Layer guidelines:
//   - Repositories return NotFound/AlreadyExists and wrap storage failures.
//   - The config binder and concepts return InvalidArgument for bad values.
//   - The manager wraps everything with the concept name in metadata.
package errors
