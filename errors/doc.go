// Package errors provides structured error types for the gpu-layout library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: member path, Go/GPU type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWrite, errors.KindTypeMismatch).
//		Path("light", "color").
//		GoType("string").
//		GPUType("vec3<f32>").
//		Detail("cannot convert string to vector").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseView, path, 4, 4)
//	err := errors.FieldUnknown(errors.PhaseView, path, "colour")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
